package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/parser"
)

// File reads datasets from YAML or JSON files in a directory; the file name
// without extension is the dataset key. Execution records live in the
// executions/ subdirectory, one file per batch ID.
type File struct {
	dir string
}

func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsDatasetFile(e.Name()) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(out)
	return out, nil
}

var fileExts = []string{".yaml", ".yml", ".json"}

func safeKey(key string) bool {
	return key != "" && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

func (f *File) Dataset(ctx context.Context, key string) (*domain.Dataset, error) {
	if !safeKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, key)
	}
	for _, ext := range fileExts {
		p := filepath.Join(f.dir, key+ext)
		ds, err := parser.ParseFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", key, err)
		}
		if ds.Key == "" {
			ds.Key = key
		}
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, key)
}

func (f *File) Execution(ctx context.Context, batchID string) (*domain.ExecutionRecord, error) {
	if !safeKey(batchID) {
		return nil, fmt.Errorf("%w: %q", ErrBatchNotFound, batchID)
	}
	for _, ext := range fileExts {
		rec, err := parser.ParseExecutionFile(filepath.Join(f.dir, "executions", batchID+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("execution %q: %w", batchID, err)
		}
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBatchNotFound, batchID)
}
