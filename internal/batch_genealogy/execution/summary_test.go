package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func record() *domain.ExecutionRecord {
	return &domain.ExecutionRecord{
		Batch: domain.ExecutionBatch{ID: "B001", Product: "Tablet_A", Status: "Completed"},
		Phases: []domain.ExecutionPhase{
			{ID: "P10", Name: "Dispensing"},
			{ID: "P20", Name: "Mixing"},
		},
		ProcessInstructions: []domain.ProcessInstruction{
			{ID: "PI101", Phase: "P10", Name: "Weigh API", Result: "PASS"},
			{ID: "PI102", Phase: "P10", Name: "Charge API", Result: "PASS"},
			{ID: "PI201", Phase: "P20", Name: "Set Speed", Result: "fail"},
			{ID: "PI202", Phase: "P20", Name: "Mix for Time", Result: "PASS"},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(record())
	assert.Equal(t, "B001", s.BatchID)
	assert.Equal(t, "Tablet_A", s.Product)
	assert.Equal(t, "Completed", s.Status)
	assert.Equal(t, 2, s.PhaseCount)
	assert.Equal(t, 4, s.PICount)
	assert.Equal(t, 1, s.FailedCount)
	require.Len(t, s.FailedPIs, 1)
	assert.Equal(t, "PI201", s.FailedPIs[0].ID)
}

func TestSummarize_NoFailures(t *testing.T) {
	rec := record()
	rec.ProcessInstructions = rec.ProcessInstructions[:2]
	s := Summarize(rec)
	assert.Equal(t, 0, s.FailedCount)
	assert.NotNil(t, s.FailedPIs)
}

func TestHierarchy(t *testing.T) {
	h := Hierarchy(record())
	require.Len(t, h, 2)

	assert.Equal(t, "P10", h[0].ID)
	assert.False(t, h[0].Failed)
	assert.Equal(t, []string{"PI101", "PI102"}, ids(h[0].Instructions))

	assert.Equal(t, "P20", h[1].ID)
	assert.True(t, h[1].Failed)
	assert.True(t, h[1].Instructions[0].Failed)
	assert.False(t, h[1].Instructions[1].Failed)
}

func ids(pis []PIView) []string {
	out := make([]string, 0, len(pis))
	for _, p := range pis {
		out = append(out, p.ID)
	}
	return out
}
