package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/cache"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/execution"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/validator"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/provider"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/trace"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

// Cache is the subset of cache.GraphCache the service needs.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*domain.Graph, *mapper.BuildReport, error)
	Put(ctx context.Context, datasetKey, fingerprint string, g *domain.Graph, report *mapper.BuildReport) error
}

// Syncer mirrors a built graph into an external store.
type Syncer func(ctx context.Context, datasetKey string, g *domain.Graph) error

type Options struct {
	Policy      domain.DanglingPolicy
	Cache       Cache
	Executions  provider.ExecutionProvider
	Sync        Syncer
	Metrics     *Metrics
	Logger      *logger.Logger
	WarmWorkers int
}

// GenealogyService builds graphs from a dataset provider and answers
// traceability queries over them. Built graphs are never mutated by the
// service, so one graph may serve concurrent queries.
type GenealogyService struct {
	datasets   provider.DatasetProvider
	executions provider.ExecutionProvider
	cache      Cache
	sync       Syncer
	policy     domain.DanglingPolicy
	metrics    *Metrics
	log        *logger.Logger
	workers    int
}

func NewGenealogyService(datasets provider.DatasetProvider, opt Options) *GenealogyService {
	s := &GenealogyService{
		datasets:   datasets,
		executions: opt.Executions,
		cache:      opt.Cache,
		sync:       opt.Sync,
		policy:     opt.Policy,
		metrics:    opt.Metrics,
		log:        opt.Logger,
		workers:    opt.WarmWorkers,
	}
	if s.policy == "" {
		s.policy = domain.PolicySkip
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.workers <= 0 {
		s.workers = 4
	}
	return s
}

// GraphResult is a built graph plus how it was obtained.
type GraphResult struct {
	Key         string              `json:"key"`
	Fingerprint string              `json:"fingerprint"`
	Cached      bool                `json:"cached"`
	Report      *mapper.BuildReport `json:"report,omitempty"`
	Graph       *domain.Graph       `json:"-"`
}

func (s *GenealogyService) Policy() domain.DanglingPolicy { return s.policy }

func (s *GenealogyService) Datasets(ctx context.Context) ([]string, error) {
	return s.datasets.Keys(ctx)
}

// Graph returns the graph for dataset key, from cache when the dataset
// content is unchanged. Cache failures are logged and the graph is rebuilt.
func (s *GenealogyService) Graph(ctx context.Context, key string) (*GraphResult, error) {
	ds, err := s.datasets.Dataset(ctx, key)
	if err != nil {
		return nil, err
	}
	fp, err := cache.Fingerprint(ds, s.policy)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint dataset %q: %w", key, err)
	}

	if s.cache != nil {
		g, report, err := s.cache.Get(ctx, fp)
		switch {
		case err == nil:
			s.metrics.cacheLookups.WithLabelValues("hit").Inc()
			return &GraphResult{Key: key, Fingerprint: fp, Cached: true, Report: report, Graph: g}, nil
		case errors.Is(err, cache.ErrMiss):
			s.metrics.cacheLookups.WithLabelValues("miss").Inc()
		default:
			s.metrics.cacheLookups.WithLabelValues("error").Inc()
			s.log.Warn("graph cache read failed", "dataset", key, "error", err)
		}
	}

	g, report, err := s.build(ds)
	if err != nil {
		return nil, err
	}
	if len(report.Skipped) > 0 {
		s.log.Warn("dangling relations skipped", "dataset", key, "count", len(report.Skipped))
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, fp, g, report); err != nil {
			s.log.Warn("graph cache write failed", "dataset", key, "error", err)
		}
	}
	return &GraphResult{Key: key, Fingerprint: fp, Report: report, Graph: g}, nil
}

func (s *GenealogyService) build(ds *domain.Dataset) (*domain.Graph, *mapper.BuildReport, error) {
	start := time.Now()
	defer func() { s.metrics.buildDuration.Observe(time.Since(start).Seconds()) }()

	if err := validator.Validate(ds); err != nil {
		s.metrics.builds.WithLabelValues("invalid").Inc()
		return nil, nil, err
	}
	g, report, err := mapper.Build(ds, mapper.Options{Policy: s.policy})
	if err != nil {
		s.metrics.builds.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	s.metrics.builds.WithLabelValues("ok").Inc()
	return g, report, nil
}

// Node returns the entity id of dataset key.
func (s *GenealogyService) Node(ctx context.Context, key, id string) (*domain.Entity, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	n, ok := res.Graph.Node(id)
	if !ok {
		return nil, &domain.UnknownEntityError{ID: id}
	}
	return n, nil
}

func (s *GenealogyService) Ancestors(ctx context.Context, key, id string) (*trace.Lineage, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := trace.Ancestors(res.Graph, id)
	s.metrics.query("ancestors", err)
	return out, err
}

func (s *GenealogyService) Descendants(ctx context.Context, key, id string) (*trace.Lineage, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := trace.Descendants(res.Graph, id)
	s.metrics.query("descendants", err)
	return out, err
}

func (s *GenealogyService) Trace(ctx context.Context, key, id string, dir domain.TraceDirection) (*trace.Highlight, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := trace.Trace(res.Graph, id, dir)
	s.metrics.query("trace", err)
	return out, err
}

func (s *GenealogyService) BillOfMaterials(ctx context.Context, key, id string) (*trace.BOM, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := trace.BillOfMaterials(res.Graph, id)
	s.metrics.query("bom", err)
	return out, err
}

// AuditResult is the cycle report of one dataset.
type AuditResult struct {
	Key     string                         `json:"key"`
	Nodes   int                            `json:"nodes"`
	Edges   int                            `json:"edges"`
	Skipped int                            `json:"skipped"`
	Cycles  []*domain.CycleDetectedWarning `json:"cycles"`
	Error   string                         `json:"error,omitempty"`
}

func (s *GenealogyService) Audit(ctx context.Context, key string) (*AuditResult, error) {
	res, err := s.Graph(ctx, key)
	if err != nil {
		return nil, err
	}
	return audit(key, res), nil
}

func audit(key string, res *GraphResult) *AuditResult {
	out := &AuditResult{
		Key:    key,
		Nodes:  res.Graph.NodeCount(),
		Edges:  res.Graph.EdgeCount(),
		Cycles: trace.Cycles(res.Graph),
	}
	if out.Cycles == nil {
		out.Cycles = []*domain.CycleDetectedWarning{}
	}
	if res.Report != nil {
		out.Skipped = len(res.Report.Skipped)
	}
	return out
}

// Warm builds, and thereby caches, every dataset of the provider and mirrors
// each built graph through the configured Syncer. A dataset that fails to
// build does not stop the others; its error is reported in the result. Sync
// failures are logged only.
func (s *GenealogyService) Warm(ctx context.Context) ([]*AuditResult, error) {
	keys, err := s.datasets.Keys(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*AuditResult, len(keys))
	var mu sync.Mutex
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, k := range keys {
		i, k := i, k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var r *AuditResult
			res, err := s.Graph(gctx, k)
			switch {
			case err == nil:
				s.push(gctx, res)
				r = audit(k, res)
			case gctx.Err() != nil:
				return gctx.Err()
			default:
				s.log.Warn("dataset warm-up failed", "dataset", k, "error", err)
				r = &AuditResult{Key: k, Cycles: []*domain.CycleDetectedWarning{}, Error: err.Error()}
			}
			mu.Lock()
			total += len(r.Cycles)
			mu.Unlock()
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.metrics.cycles.Set(float64(total))
	return out, nil
}

func (s *GenealogyService) push(ctx context.Context, res *GraphResult) {
	if s.sync == nil {
		return
	}
	if err := s.sync(ctx, res.Key, res.Graph); err != nil {
		s.log.Warn("graph sync failed", "dataset", res.Key, "error", err)
	}
}

func (s *GenealogyService) execution(ctx context.Context, batchID string) (*domain.ExecutionRecord, error) {
	if s.executions == nil {
		return nil, fmt.Errorf("%w: %q", provider.ErrBatchNotFound, batchID)
	}
	rec, err := s.executions.Execution(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateExecution(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *GenealogyService) ExecutionSummary(ctx context.Context, batchID string) (*execution.Summary, error) {
	rec, err := s.execution(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return execution.Summarize(rec), nil
}

func (s *GenealogyService) ExecutionHierarchy(ctx context.Context, batchID string) ([]execution.PhaseView, error) {
	rec, err := s.execution(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return execution.Hierarchy(rec), nil
}

func (s *GenealogyService) ExecutionGraph(ctx context.Context, batchID string) (*domain.Graph, error) {
	rec, err := s.execution(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return mapper.BuildExecution(rec), nil
}
