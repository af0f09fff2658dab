package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func problems(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	return ve.Problems
}

func TestValidate(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		ds := &domain.Dataset{Batches: []domain.BatchRecord{
			{ID: "RM-1", Type: "RawMaterial"},
			{ID: "FP-1", Type: "FinishedProduct", Consumes: []domain.Consumption{{ID: "RM-1", Quantity: 1}}},
		}}
		assert.NoError(t, Validate(ds))
	})

	t.Run("dangling references are left to the builder", func(t *testing.T) {
		ds := &domain.Dataset{Batches: []domain.BatchRecord{
			{ID: "FP-1", Type: "FinishedProduct", Consumes: []domain.Consumption{{ID: "RM-404"}}},
		}}
		assert.NoError(t, Validate(ds))
	})

	t.Run("collects every problem", func(t *testing.T) {
		ds := &domain.Dataset{Batches: []domain.BatchRecord{
			{ID: "", Type: "RawMaterial"},
			{ID: "RM-1", Type: "RawMaterial"},
			{ID: "RM-1", Type: "Gadget", Quantity: -1},
			{ID: " X ", Type: "Intermediate"},
			{
				ID:        "FP-1",
				Type:      "FinishedProduct",
				Consumes:  []domain.Consumption{{ID: " ", Quantity: -2}},
				Relations: []domain.RelationRecord{{To: "RM-1", Kind: "refines"}},
			},
		}}

		err := Validate(ds)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
		assert.ElementsMatch(t, []string{
			`batch #0 has an empty id`,
			`duplicate batch id "RM-1"`,
			`batch "RM-1" has unknown type "Gadget"`,
			`batch "RM-1" has negative quantity`,
			`batch id " X " has surrounding whitespace`,
			`batch "FP-1" has a consumes entry with an empty id`,
			`batch "FP-1" has a consumes entry with negative quantity`,
			`batch "FP-1" has relation of unknown kind "refines"`,
		}, problems(t, err))
	})

	t.Run("nil dataset", func(t *testing.T) {
		assert.ErrorIs(t, Validate(nil), domain.ErrInvalidDataset)
	})
}

func TestValidateExecution(t *testing.T) {
	rec := &domain.ExecutionRecord{
		Batch:  domain.ExecutionBatch{ID: "B001"},
		Phases: []domain.ExecutionPhase{{ID: "P10"}, {ID: "P10"}},
		ProcessInstructions: []domain.ProcessInstruction{
			{ID: "PI1", Phase: "P10"},
			{ID: "PI2", Phase: "P99"},
		},
		Materials: []domain.ExecutionMaterial{
			{PI: "PI1", Name: "API", Type: domain.MaterialConsumed},
			{PI: "PI3", Name: "Blend", Type: "wasted"},
		},
	}

	err := ValidateExecution(rec)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		`duplicate phase "P10"`,
		`process instruction "PI2" references unknown phase "P99"`,
		`material "Blend" references unknown process instruction "PI3"`,
		`material "Blend" has unknown type "wasted"`,
	}, problems(t, err))

	rec.Phases = rec.Phases[:1]
	rec.ProcessInstructions = rec.ProcessInstructions[:1]
	rec.Materials = rec.Materials[:1]
	assert.NoError(t, ValidateExecution(rec))
}
