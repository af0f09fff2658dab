package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
	httpapi "github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/provider"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8080"},
		Database:  config.DatabaseConfig{Driver: "pgx"},
		Genealogy: config.GenealogyConfig{Source: "mock", Policy: "skip", WarmWorkers: 2},
	}
}

func TestOpenProviders(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	p, err := OpenProviders(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &provider.Mock{}, p.Datasets)
	assert.Nil(t, p.DB)
	assert.NoError(t, p.Close())

	cfg.Genealogy.Source = "file"
	cfg.Genealogy.DataDir = t.TempDir()
	p, err = OpenProviders(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &provider.File{}, p.Datasets)

	cfg.Genealogy.Source = "s3"
	_, err = OpenProviders(ctx, cfg)
	assert.Error(t, err)
}

func TestOpenRedis(t *testing.T) {
	ctx := context.Background()

	client, err := OpenRedis(ctx, config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err = OpenRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	client.Close()

	mr.Close()
	_, err = OpenRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestBuildService_WithRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	client, err := OpenRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	cfg := testConfig()
	cfg.Genealogy.Policy = "strict"
	p, err := OpenProviders(ctx, cfg)
	require.NoError(t, err)

	svc := BuildService(cfg, ServiceDeps{Providers: p, Redis: client, Registry: prometheus.NewRegistry()})
	assert.Equal(t, "strict", string(svc.Policy()))

	first, err := svc.Graph(ctx, "tablet-a")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Graph(ctx, "tablet-a")
	require.NoError(t, err)
	assert.True(t, second.Cached)
}

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := testConfig()
	p, err := OpenProviders(ctx, cfg)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	svc := BuildService(cfg, ServiceDeps{Providers: p, Registry: reg})
	r := BuildRouter(RouterDeps{
		ServiceName:    "batch-genealogy-backend",
		Version:        "test",
		AllowedOrigins: []string{"http://ui.test"},
		RateLimit:      100,
		RateBurst:      100,
		Checks:         []httpapi.Check{{Name: "redis"}},
		Service:        svc,
		Gatherer:       reg,
	})

	do := func(path string, header ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for i := 0; i+1 < len(header); i += 2 {
			req.Header.Set(header[i], header[i+1])
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := do("/health")
	require.Equal(t, http.StatusOK, rr.Code)
	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "disabled", health.Dependencies["redis"])
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = do("/api/v1/genealogy/datasets/tablet-a/graph", "Origin", "http://ui.test")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://ui.test", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = do("/api/v1/execution/batches/B001/summary")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do("/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "genealogy_graph_builds_total"))
}
