package parser

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func ParseYAML(path string) (*domain.Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAMLBytes(b)
}

func ParseYAMLBytes(b []byte) (*domain.Dataset, error) {
	var ds domain.Dataset
	if err := yaml.Unmarshal(b, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func ParseYAMLString(s string) (*domain.Dataset, error) {
	return ParseYAMLBytes([]byte(s))
}

func ParseExecutionYAMLBytes(b []byte) (*domain.ExecutionRecord, error) {
	var rec domain.ExecutionRecord
	if err := yaml.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
