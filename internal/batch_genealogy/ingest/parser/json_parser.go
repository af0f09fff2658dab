package parser

import (
	"encoding/json"
	"os"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func ParseJSON(path string) (*domain.Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSONBytes(b)
}

func ParseJSONBytes(b []byte) (*domain.Dataset, error) {
	var ds domain.Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func ParseJSONString(s string) (*domain.Dataset, error) {
	return ParseJSONBytes([]byte(s))
}

func ParseExecutionJSONBytes(b []byte) (*domain.ExecutionRecord, error) {
	var rec domain.ExecutionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
