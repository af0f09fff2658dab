package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func executionRecord() *domain.ExecutionRecord {
	return &domain.ExecutionRecord{
		Batch: domain.ExecutionBatch{ID: "B001", Product: "Tablet_A", Status: "Completed"},
		Phases: []domain.ExecutionPhase{
			{ID: "P10", Name: "Dispensing"},
			{ID: "P20", Name: "Mixing"},
		},
		ProcessInstructions: []domain.ProcessInstruction{
			{ID: "PI101", Phase: "P10", Name: "Weigh API", Result: "PASS"},
			{ID: "PI201", Phase: "P20", Name: "Set Speed", Result: "FAIL"},
			{ID: "PI999", Phase: "P99", Name: "Orphan", Result: "PASS"},
		},
		Materials: []domain.ExecutionMaterial{
			{PI: "PI101", Name: "API Lot A", Type: domain.MaterialConsumed},
			{PI: "PI201", Name: "Final Blend", Type: domain.MaterialProduced},
		},
	}
}

func TestMaterialID(t *testing.T) {
	assert.Equal(t, "M_API_Lot_A", MaterialID("API Lot A"))
	assert.Equal(t, "M_Blend", MaterialID("  Blend "))
}

func TestBuildExecution(t *testing.T) {
	g := BuildExecution(executionRecord())

	batch, ok := g.Node("B001")
	require.True(t, ok)
	assert.Equal(t, "Batch B001", batch.Label)
	assert.Equal(t, "Tablet_A", batch.Attrs["product"])

	assert.False(t, g.Has("PI999"), "PI of an undeclared phase is dropped")

	kinds := map[domain.RelationKind][][2]string{}
	for _, e := range g.Edges {
		kinds[e.Kind] = append(kinds[e.Kind], [2]string{e.From, e.To})
	}
	assert.Equal(t, [][2]string{{"B001", "P10"}, {"B001", "P20"}}, kinds[domain.RelHasPhase])
	assert.Equal(t, [][2]string{{"P10", "P20"}}, kinds[domain.RelNextPhase])
	assert.Equal(t, [][2]string{{"P10", "PI101"}, {"P20", "PI201"}}, kinds[domain.RelHasPI])
	assert.Equal(t, [][2]string{{"M_API_Lot_A", "PI101"}}, kinds[domain.RelConsumedBy])
	assert.Equal(t, [][2]string{{"PI201", "M_Final_Blend"}}, kinds[domain.RelProduces])

	m, _ := g.Node("M_API_Lot_A")
	assert.Equal(t, domain.EntityMaterialLot, m.Type)
}
