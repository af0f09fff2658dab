package provider

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrBatchNotFound   = errors.New("execution batch not found")
)

// DatasetProvider supplies batch datasets to the graph builder. Each call
// returns a dataset the caller may keep; providers never share instances.
type DatasetProvider interface {
	Keys(ctx context.Context) ([]string, error)
	Dataset(ctx context.Context, key string) (*domain.Dataset, error)
}

// ExecutionProvider supplies execution records of single batches.
type ExecutionProvider interface {
	Execution(ctx context.Context, batchID string) (*domain.ExecutionRecord, error)
}
