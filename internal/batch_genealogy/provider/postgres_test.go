package provider

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

func setupPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgres(db), mock, db
}

var batchColumns = []string{"id", "type", "label", "material_name", "quantity", "unit", "status", "quality",
	"specification", "supplier", "result", "manufactured_at", "expires_at", "attrs"}

func TestPostgres_Keys(t *testing.T) {
	p, mock, db := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT key FROM genealogy_datasets ORDER BY key`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("alpha").AddRow("beta"))

	keys, err := p.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Dataset(t *testing.T) {
	p, mock, db := setupPostgres(t)
	defer db.Close()

	made := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	t.Run("folds relations onto their owners", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name FROM genealogy_datasets WHERE key = \$1`).
			WithArgs("shared").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Shared API"))
		mock.ExpectQuery(`SELECT id, type, label, material_name`).
			WithArgs("shared").
			WillReturnRows(sqlmock.NewRows(batchColumns).
				AddRow("RM-001", "RawMaterial", "API lot 7", "API", 100.0, "kg", "Released", nil, nil, "Acme",
					nil, made, nil, []byte(`{"coa":"COA-77","assay_pct":99.2}`)).
				AddRow("BATCH-A", "Intermediate", nil, nil, nil, nil, nil, nil, nil, nil, "Pass", nil, nil, nil).
				AddRow("FP-001", "FinishedProduct", nil, "Tablet", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))
		mock.ExpectQuery(`SELECT from_id, to_id, kind, quantity, unit`).
			WithArgs("shared").
			WillReturnRows(sqlmock.NewRows([]string{"from_id", "to_id", "kind", "quantity", "unit"}).
				AddRow("RM-001", "BATCH-A", "consumed_by", 40.0, "kg").
				AddRow("BATCH-A", "FP-001", "produces", 1000.0, "pcs").
				AddRow("BATCH-A", "FP-001", "precedes", nil, nil).
				AddRow("GHOST", "BATCH-A", "consumed_by", 1.0, "kg"))

		ds, err := p.Dataset(context.Background(), "shared")
		require.NoError(t, err)
		assert.Equal(t, "Shared API", ds.Name)
		require.Len(t, ds.Batches, 3)

		rm := ds.Batches[0]
		assert.Equal(t, "Acme", rm.Supplier)
		assert.Equal(t, 100.0, rm.Quantity)
		require.NotNil(t, rm.ManufacturedAt)
		assert.True(t, made.Equal(*rm.ManufacturedAt))
		assert.Nil(t, rm.ExpiresAt)
		assert.Equal(t, "API lot 7", rm.Label)
		assert.Equal(t, map[string]any{"coa": "COA-77", "assay_pct": 99.2}, rm.Attrs)
		assert.Empty(t, rm.Result)

		b := ds.Batches[1]
		assert.Equal(t, "Pass", b.Result)
		assert.Empty(t, b.Label)
		assert.Nil(t, b.Attrs)
		assert.Equal(t, []domain.Consumption{
			{ID: "RM-001", Quantity: 40, Unit: "kg"},
			{ID: "GHOST", Quantity: 1, Unit: "kg"},
		}, b.Consumes)
		assert.Equal(t, []domain.Consumption{{ID: "FP-001", Quantity: 1000, Unit: "pcs"}}, b.Produces)
		assert.Equal(t, []domain.RelationRecord{{To: "FP-001", Kind: "precedes"}}, b.Relations)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt attrs", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name FROM genealogy_datasets WHERE key = \$1`).
			WithArgs("bad-attrs").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(nil))
		mock.ExpectQuery(`SELECT id, type, label, material_name`).
			WithArgs("bad-attrs").
			WillReturnRows(sqlmock.NewRows(batchColumns).
				AddRow("RM-001", "RawMaterial", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, []byte(`[1,2]`)))

		_, err := p.Dataset(context.Background(), "bad-attrs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `attrs of batch "RM-001"`)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown key", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name FROM genealogy_datasets WHERE key = \$1`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := p.Dataset(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrDatasetNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name FROM genealogy_datasets WHERE key = \$1`).
			WithArgs("broken").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(nil))
		mock.ExpectQuery(`SELECT id, type, label, material_name`).
			WithArgs("broken").
			WillReturnError(assert.AnError)

		_, err := p.Dataset(context.Background(), "broken")
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to query batches")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
