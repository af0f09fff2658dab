package neo4jsync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func graphFixture() *domain.Graph {
	made := time.Date(2024, 3, 1, 8, 30, 0, 0, time.FixedZone("CET", 3600))
	g := domain.NewGraph()
	g.AddNode(&domain.Entity{
		ID: "RM-1", Type: domain.EntityRawMaterial, Label: "API",
		MaterialName: "Paracetamol", Quantity: 12.5, Unit: "kg", Supplier: "Acme",
		ManufacturedAt: &made,
		Attrs:          domain.Attrs{"lot_notes": []string{"a", "b"}},
	})
	g.AddNode(&domain.Entity{ID: "FP-1", Type: domain.EntityFinishedProduct, Label: "Tablet"})
	g.AddEdge(&domain.Relationship{From: "RM-1", To: "FP-1", Kind: domain.RelConsumedBy, Quantity: 12.5, Unit: "kg"})
	g.AddEdge(&domain.Relationship{From: "RM-1", To: "FP-1", Kind: domain.RelPrecedes})
	return g
}

func TestNodeParams(t *testing.T) {
	nodes := NodeParams("tablet-a", graphFixture(), "2024-01-01T00:00:00Z")
	require.Len(t, nodes, 2)

	assert.Equal(t, map[string]any{
		"dataset":         "tablet-a",
		"id":              "RM-1",
		"type":            "RawMaterial",
		"label":           "API",
		"synced_at":       "2024-01-01T00:00:00Z",
		"material_name":   "Paracetamol",
		"unit":            "kg",
		"supplier":        "Acme",
		"quantity":        12.5,
		"manufactured_at": "2024-03-01T07:30:00Z",
	}, nodes[0])

	assert.Equal(t, map[string]any{
		"dataset":   "tablet-a",
		"id":        "FP-1",
		"type":      "FinishedProduct",
		"label":     "Tablet",
		"synced_at": "2024-01-01T00:00:00Z",
	}, nodes[1])
}

func TestRelationshipParams(t *testing.T) {
	rels := RelationshipParams("tablet-a", graphFixture(), "ts")
	require.Len(t, rels, 2)

	assert.Equal(t, 0, rels[0]["index"])
	assert.Equal(t, "consumed_by", rels[0]["kind"])
	assert.Equal(t, 12.5, rels[0]["quantity"])
	assert.Equal(t, "kg", rels[0]["unit"])

	assert.Equal(t, 1, rels[1]["index"])
	assert.Equal(t, "precedes", rels[1]["kind"])
	assert.NotContains(t, rels[1], "quantity")
	assert.NotContains(t, rels[1], "unit")
	assert.Equal(t, "RM-1", rels[1]["from"])
	assert.Equal(t, "FP-1", rels[1]["to"])
}

func TestStatements(t *testing.T) {
	g := graphFixture()
	nodes := NodeParams("tablet-a", g, "ts")
	rels := RelationshipParams("tablet-a", g, "ts")

	got := statements("tablet-a", nodes, rels, "ts")
	require.Len(t, got, 4)
	assert.Equal(t, upsertNodes, got[0].cypher)
	assert.Equal(t, pruneRelationships, got[1].cypher)
	assert.Equal(t, pruneNodes, got[2].cypher)
	assert.Equal(t, upsertRelationships, got[3].cypher)

	scope := map[string]any{"dataset": "tablet-a", "synced_at": "ts"}
	assert.Equal(t, scope, got[1].params)
	assert.Equal(t, scope, got[2].params)
	assert.Contains(t, got[2].cypher, "DETACH DELETE e")
	assert.Equal(t, nodes, got[0].params["nodes"])
	assert.Equal(t, rels, got[3].params["rels"])
}

func TestStatements_EmptyGraphPrunesEverything(t *testing.T) {
	got := statements("tablet-a", nil, nil, "ts")
	require.Len(t, got, 2)
	assert.Equal(t, pruneRelationships, got[0].cypher)
	assert.Equal(t, pruneNodes, got[1].cypher)
}

func TestDisabledClient(t *testing.T) {
	c, err := New(context.Background(), Options{}, nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.NoError(t, Push(context.Background(), c, "tablet-a", graphFixture()))
	assert.NoError(t, c.Close(context.Background()))
}
