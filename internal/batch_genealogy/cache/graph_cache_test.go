package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func sampleGraph() *domain.Graph {
	g := domain.NewGraph()
	g.AddNode(&domain.Entity{ID: "RM-001", Type: domain.EntityRawMaterial, Label: "API", Quantity: 5, Unit: "kg"})
	g.AddNode(&domain.Entity{ID: "FP-001", Type: domain.EntityFinishedProduct, Label: "Tablet"})
	g.AddEdge(&domain.Relationship{From: "RM-001", To: "FP-001", Kind: domain.RelConsumedBy, Quantity: 5, Unit: "kg"})
	return g
}

func TestGraphCache_PutGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	c := NewGraphCache(client, time.Hour)

	_, _, err := c.Get(ctx, "fp-1")
	assert.ErrorIs(t, err, ErrMiss)

	report := &mapper.BuildReport{Nodes: 2, Edges: 1, Skipped: []mapper.SkippedRelation{
		{From: "GHOST", To: "FP-001", Kind: domain.RelConsumedBy},
	}}
	require.NoError(t, c.Put(ctx, "demo", "fp-1", sampleGraph(), report))
	assert.True(t, mr.Exists("genealogy:graph:fp-1"))
	assert.Equal(t, time.Hour, mr.TTL("genealogy:graph:fp-1"))

	got, gotReport, err := c.Get(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, report, gotReport)
	assert.Equal(t, []string{"RM-001", "FP-001"}, got.NodeIDs())
	require.Equal(t, 1, got.EdgeCount())
	assert.Equal(t, []int{0}, got.Incoming("FP-001"))
	assert.Equal(t, 5.0, got.Edge(0).Quantity)

	latest, err := c.Latest(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "fp-1", latest)
}

func TestGraphCache_ReadersGetPrivateGraphs(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()
	c := NewGraphCache(client, 0)
	require.NoError(t, c.Put(ctx, "", "fp-2", sampleGraph(), nil))

	a, report, err := c.Get(ctx, "fp-2")
	require.NoError(t, err)
	assert.Equal(t, &mapper.BuildReport{Nodes: 2, Edges: 1}, report)
	a.AddNode(&domain.Entity{ID: "EXTRA"})

	b, _, err := c.Get(ctx, "fp-2")
	require.NoError(t, err)
	assert.False(t, b.Has("EXTRA"))

	_, err = c.Latest(ctx, "")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGraphCache_DeleteAndCorruption(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	c := NewGraphCache(client, time.Minute)

	require.NoError(t, c.Put(ctx, "demo", "fp-3", sampleGraph(), nil))
	require.NoError(t, c.Delete(ctx, "fp-3"))
	_, _, err := c.Get(ctx, "fp-3")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, mr.Set("genealogy:graph:bad", "{not json"))
	_, _, err = c.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	require.NoError(t, mr.Set("genealogy:graph:empty", `{"report":{"nodes":0,"edges":0}}`))
	_, _, err = c.Get(ctx, "empty")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestGraphCache_BackendDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewGraphCache(client, time.Minute)
	mr.Close()

	_, _, err := c.Get(context.Background(), "fp")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestFingerprint(t *testing.T) {
	ds := &domain.Dataset{Key: "demo", Batches: []domain.BatchRecord{
		{ID: "RM-1", Type: "RawMaterial", Attrs: map[string]any{"b": 1, "a": 2}},
	}}

	a, err := Fingerprint(ds, domain.PolicySkip)
	require.NoError(t, err)
	b, err := Fingerprint(ds, domain.PolicySkip)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	strict, err := Fingerprint(ds, domain.PolicyStrict)
	require.NoError(t, err)
	assert.NotEqual(t, a, strict)

	ds.Batches[0].Quantity = 1
	changed, err := Fingerprint(ds, domain.PolicySkip)
	require.NoError(t, err)
	assert.NotEqual(t, a, changed)
}
