package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
	httpapi "github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/api/http"
	cronjob "github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/cron"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/neo4jsync"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

const serviceName = "batch-genealogy-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)
	ctx := context.Background()

	providers, err := bootstrap.OpenProviders(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open dataset source", "source", cfg.Genealogy.Source, "error", err)
	}
	defer providers.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, graph cache disabled", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	neo, err := neo4jsync.New(ctx, neo4jsync.Options{
		URI:      cfg.Neo4j.URI,
		User:     cfg.Neo4j.User,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	}, log)
	if err != nil {
		log.Warn("neo4j unavailable, graph sync disabled", "error", err)
		neo = nil
	}
	defer neo.Close(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := bootstrap.BuildService(cfg, bootstrap.ServiceDeps{
		Providers: providers,
		Redis:     rdb,
		Neo4j:     neo,
		Registry:  reg,
		Logger:    log,
	})

	checks := []httpapi.Check{{Name: "source"}}
	if providers.DB != nil {
		checks[0].Ping = providers.DB.PingContext
	}
	cacheCheck := httpapi.Check{Name: "redis"}
	if rdb != nil {
		cacheCheck.Ping = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	checks = append(checks, cacheCheck)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		Checks:         checks,
		Service:        svc,
		Gatherer:       reg,
		Logger:         log,
	})

	sched := cronjob.NewScheduler(svc, cfg.Genealogy.CronSpec, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start genealogy cron", "spec", cfg.Genealogy.CronSpec, "error", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr, "source", cfg.Genealogy.Source, "policy", svc.Policy())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
