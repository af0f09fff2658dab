package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
)

const (
	graphKeyPrefix   = "genealogy:graph:"   // snapshot by fingerprint: genealogy:graph:{fp}
	datasetKeyPrefix = "genealogy:dataset:" // latest fingerprint of a dataset: genealogy:dataset:{key}
	defaultTTL       = 24 * time.Hour
)

// ErrMiss is returned by Get when no snapshot is stored for a fingerprint.
var ErrMiss = errors.New("graph cache miss")

// entry is the stored value: the graph together with the report of the build
// that produced it.
type entry struct {
	Snapshot *domain.Snapshot    `json:"snapshot"`
	Report   *mapper.BuildReport `json:"report"`
}

// GraphCache stores built graphs in Redis keyed by input fingerprint. A
// snapshot is written with a single SET, and every Get decodes a private
// graph, so readers never observe a partially written build.
type GraphCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGraphCache(client *redis.Client, ttl time.Duration) *GraphCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &GraphCache{client: client, ttl: ttl}
}

// Get returns the graph stored under fingerprint and its build report. The
// report is never nil.
func (c *GraphCache) Get(ctx context.Context, fingerprint string) (*domain.Graph, *mapper.BuildReport, error) {
	data, err := c.client.Get(ctx, graphKeyPrefix+fingerprint).Bytes()
	if err == redis.Nil {
		return nil, nil, ErrMiss
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get graph snapshot: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal graph snapshot: %w", err)
	}
	if e.Snapshot == nil {
		return nil, nil, fmt.Errorf("graph snapshot %s has no graph", fingerprint)
	}
	g := domain.FromSnapshot(e.Snapshot)
	if e.Report == nil {
		e.Report = &mapper.BuildReport{Nodes: g.NodeCount(), Edges: g.EdgeCount()}
	}
	return g, e.Report, nil
}

// Put stores g and its build report under fingerprint and records it as the
// latest build of datasetKey.
func (c *GraphCache) Put(ctx context.Context, datasetKey, fingerprint string, g *domain.Graph, report *mapper.BuildReport) error {
	data, err := json.Marshal(entry{Snapshot: g.Snapshot(), Report: report})
	if err != nil {
		return fmt.Errorf("failed to marshal graph snapshot: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, graphKeyPrefix+fingerprint, data, c.ttl)
	if datasetKey != "" {
		pipe.Set(ctx, datasetKeyPrefix+datasetKey, fingerprint, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store graph snapshot: %w", err)
	}
	return nil
}

// Latest returns the fingerprint of the last graph stored for datasetKey.
func (c *GraphCache) Latest(ctx context.Context, datasetKey string) (string, error) {
	fp, err := c.client.Get(ctx, datasetKeyPrefix+datasetKey).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest fingerprint: %w", err)
	}
	return fp, nil
}

func (c *GraphCache) Delete(ctx context.Context, fingerprint string) error {
	if err := c.client.Del(ctx, graphKeyPrefix+fingerprint).Err(); err != nil {
		return fmt.Errorf("failed to delete graph snapshot: %w", err)
	}
	return nil
}
