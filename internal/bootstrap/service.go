package bootstrap

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/cache"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/neo4jsync"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/service"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

type ServiceDeps struct {
	Providers *Providers
	Redis     *redis.Client
	Neo4j     *neo4jsync.Client
	Registry  prometheus.Registerer
	Logger    *logger.Logger
}

func BuildService(cfg *config.Config, dep ServiceDeps) *service.GenealogyService {
	log := dep.Logger
	if log == nil {
		log = logger.Nop()
	}
	policy, _ := domain.ParseDanglingPolicy(cfg.Genealogy.Policy)
	opt := service.Options{
		Policy:      policy,
		Executions:  dep.Providers.Executions,
		Metrics:     service.NewMetrics(dep.Registry),
		Logger:      log.With("component", "GenealogyService"),
		WarmWorkers: cfg.Genealogy.WarmWorkers,
	}
	if dep.Redis != nil {
		opt.Cache = cache.NewGraphCache(dep.Redis, cfg.Genealogy.CacheTTL)
	}
	if dep.Neo4j != nil {
		client := dep.Neo4j
		opt.Sync = func(ctx context.Context, key string, g *domain.Graph) error {
			return neo4jsync.Push(ctx, client, key, g)
		}
	}
	return service.NewGenealogyService(dep.Providers.Datasets, opt)
}
