package trace

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

type edge struct {
	from, to string
	kind     domain.RelationKind
	qty      float64
	unit     string
}

func newGraph(t *testing.T, nodes map[string]domain.EntityType, edges ...edge) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, id := range sortedKeys(nodes) {
		require.True(t, g.AddNode(&domain.Entity{ID: id, Type: nodes[id], Label: id, MaterialName: "mat-" + id}))
	}
	for _, e := range edges {
		require.True(t, g.Has(e.from), "unknown node %s", e.from)
		require.True(t, g.Has(e.to), "unknown node %s", e.to)
		g.AddEdge(&domain.Relationship{From: e.from, To: e.to, Kind: e.kind, Quantity: e.qty, Unit: e.unit})
	}
	return g
}

func sortedKeys(m map[string]domain.EntityType) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// chain is RM-001 -consumed_by-> BATCH-A -produces-> FP-001.
func chain(t *testing.T) *domain.Graph {
	return newGraph(t,
		map[string]domain.EntityType{
			"RM-001":  domain.EntityRawMaterial,
			"BATCH-A": domain.EntityIntermediate,
			"FP-001":  domain.EntityFinishedProduct,
		},
		edge{"RM-001", "BATCH-A", domain.RelConsumedBy, 5, "kg"},
		edge{"BATCH-A", "FP-001", domain.RelProduces, 1000, "tablets"},
	)
}

// shared has FP-001 and FP-002 both made from the raw batch RM-001.
func shared(t *testing.T) *domain.Graph {
	return newGraph(t,
		map[string]domain.EntityType{
			"RM-001":  domain.EntityRawMaterial,
			"BATCH-A": domain.EntityIntermediate,
			"BATCH-B": domain.EntityIntermediate,
			"FP-001":  domain.EntityFinishedProduct,
			"FP-002":  domain.EntityFinishedProduct,
		},
		edge{"RM-001", "BATCH-A", domain.RelConsumedBy, 2, "kg"},
		edge{"RM-001", "BATCH-B", domain.RelConsumedBy, 3, "kg"},
		edge{"BATCH-A", "FP-001", domain.RelProduces, 0, ""},
		edge{"BATCH-B", "FP-002", domain.RelProduces, 0, ""},
	)
}
