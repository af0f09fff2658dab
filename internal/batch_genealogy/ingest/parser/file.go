package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// ParseFile picks the decoder from the file extension.
func ParseFile(path string) (*domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(path)
	case ".json":
		return ParseJSON(path)
	default:
		return nil, fmt.Errorf("parser: unsupported dataset file %q", path)
	}
}

// IsDatasetFile reports whether ParseFile understands path.
func IsDatasetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ParseExecutionFile reads an execution record, YAML or JSON by extension.
func ParseExecutionFile(path string) (*domain.ExecutionRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseExecutionYAMLBytes(b)
	case ".json":
		return ParseExecutionJSONBytes(b)
	default:
		return nil, fmt.Errorf("parser: unsupported execution file %q", path)
	}
}
