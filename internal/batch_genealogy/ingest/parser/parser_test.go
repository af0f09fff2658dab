package parser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetYAML = `
key: demo
name: Demo
batches:
  - id: RM-001
    type: RawMaterial
    material_name: API
    quantity: 10
    unit: kg
    manufactured_at: 2024-05-02T08:00:00Z
  - id: BATCH-A
    type: Intermediate
    consumes:
      - id: RM-001
        quantity: 5
        unit: kg
    produces:
      - id: FP-001
    relations:
      - to: FP-001
        kind: precedes
`

const datasetJSON = `{
  "key": "demo",
  "batches": [
    {"id": "RM-001", "type": "RawMaterial", "attrs": {"grade": "USP"}},
    {"id": "FP-001", "type": "FinishedProduct", "consumes": [{"id": "RM-001", "quantity": 2, "unit": "kg"}]}
  ]
}`

func TestParseYAMLString(t *testing.T) {
	ds, err := ParseYAMLString(datasetYAML)
	require.NoError(t, err)

	assert.Equal(t, "demo", ds.Key)
	require.Len(t, ds.Batches, 2)

	rm := ds.Batches[0]
	assert.Equal(t, "API", rm.MaterialName)
	require.NotNil(t, rm.ManufacturedAt)
	assert.True(t, rm.ManufacturedAt.Equal(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)))

	b := ds.Batches[1]
	require.Len(t, b.Consumes, 1)
	assert.Equal(t, "RM-001", b.Consumes[0].ID)
	assert.Equal(t, 5.0, b.Consumes[0].Quantity)
	assert.Equal(t, "FP-001", b.Produces[0].ID)
	assert.Equal(t, "precedes", b.Relations[0].Kind)
}

func TestParseJSONString(t *testing.T) {
	ds, err := ParseJSONString(datasetJSON)
	require.NoError(t, err)
	require.Len(t, ds.Batches, 2)
	assert.Equal(t, "USP", ds.Batches[0].Attrs["grade"])
	assert.Equal(t, "kg", ds.Batches[1].Consumes[0].Unit)

	_, err = ParseJSONString("{")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "a.yml")
	jsonPath := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(yamlPath, []byte(datasetYAML), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(datasetJSON), 0o644))

	ds, err := ParseFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, ds.Batches, 2)

	ds, err = ParseFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, ds.Batches, 2)

	_, err = ParseFile(filepath.Join(dir, "c.txt"))
	assert.Error(t, err)

	assert.True(t, IsDatasetFile("x.YAML"))
	assert.False(t, IsDatasetFile("x.csv"))
}

func TestParseExecutionFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "B001.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
batch: {id: B001, product: Tablet_A, status: Completed}
phases: [{id: P10, name: Dispensing}]
pis: [{id: PI101, phase: P10, name: Weigh API, result: PASS}]
materials: [{pi: PI101, name: API Lot A, type: consumed}]
`), 0o644))

	rec, err := ParseExecutionFile(p)
	require.NoError(t, err)
	assert.Equal(t, "B001", rec.Batch.ID)
	require.Len(t, rec.ProcessInstructions, 1)
	assert.Equal(t, "P10", rec.ProcessInstructions[0].Phase)
	assert.Equal(t, "consumed", rec.Materials[0].Type)

	_, err = ParseExecutionFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
