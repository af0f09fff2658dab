package main

import (
	"fmt"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/parser"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/validator"
)

// loadGraph parses, validates and builds the dataset at path.
func loadGraph(path string) (*domain.Dataset, *domain.Graph, *mapper.BuildReport, error) {
	policy, ok := domain.ParseDanglingPolicy(policyFlag)
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown policy %q", policyFlag)
	}
	ds, err := parser.ParseFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := validator.Validate(ds); err != nil {
		return nil, nil, nil, err
	}
	g, report, err := mapper.Build(ds, mapper.Options{Policy: policy})
	if err != nil {
		return nil, nil, nil, err
	}
	return ds, g, report, nil
}
