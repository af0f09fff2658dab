package provider

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/parser"
)

//go:embed fixtures/datasets/*.yaml fixtures/executions/*.yaml
var fixtures embed.FS

// Mock serves the embedded demo fixtures. It is decoded on every call so
// callers always get a private copy.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Keys(ctx context.Context) ([]string, error) {
	return fixtureStems("fixtures/datasets")
}

func (m *Mock) Dataset(ctx context.Context, key string) (*domain.Dataset, error) {
	b, err := fixtures.ReadFile(path.Join("fixtures/datasets", key+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, key)
	}
	ds, err := parser.ParseYAMLBytes(b)
	if err != nil {
		return nil, fmt.Errorf("mock fixture %q: %w", key, err)
	}
	if ds.Key == "" {
		ds.Key = key
	}
	return ds, nil
}

func (m *Mock) Execution(ctx context.Context, batchID string) (*domain.ExecutionRecord, error) {
	b, err := fixtures.ReadFile(path.Join("fixtures/executions", batchID+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBatchNotFound, batchID)
	}
	rec, err := parser.ParseExecutionYAMLBytes(b)
	if err != nil {
		return nil, fmt.Errorf("mock execution %q: %w", batchID, err)
	}
	return rec, nil
}

// ExecutionIDs lists the batches with an embedded execution record.
func (m *Mock) ExecutionIDs() ([]string, error) {
	return fixtureStems("fixtures/executions")
}

func fixtureStems(dir string) ([]string, error) {
	entries, err := fixtures.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out, nil
}
