package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL of the genealogy tables.
func Schema() string { return schemaSQL }

// GenealogyStore writes datasets into the tables read by provider.Postgres.
type GenealogyStore struct {
	pool *pgxpool.Pool
}

func NewGenealogyStore(pool *pgxpool.Pool) *GenealogyStore {
	return &GenealogyStore{pool: pool}
}

func (s *GenealogyStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply genealogy schema: %w", err)
	}
	return nil
}

// BatchRow and RelationRow are the flattened table rows of a dataset.
type BatchRow struct {
	ID             string
	Type           string
	Label          string
	MaterialName   string
	Quantity       float64
	Unit           string
	Status         string
	Quality        string
	Specification  string
	Supplier       string
	Result         string
	ManufacturedAt *time.Time
	ExpiresAt      *time.Time
	Attrs          map[string]any
	Position       int
}

type RelationRow struct {
	From     string
	To       string
	Kind     string
	Quantity float64
	Unit     string
	Position int
}

// Rows flattens a dataset in flow direction, the same direction the graph
// builder uses, keeping declaration order in Position.
func Rows(ds *domain.Dataset) ([]BatchRow, []RelationRow) {
	batches := make([]BatchRow, 0, len(ds.Batches))
	var rels []RelationRow
	for i, b := range ds.Batches {
		batches = append(batches, BatchRow{
			ID:             b.ID,
			Type:           b.Type,
			Label:          b.Label,
			MaterialName:   b.MaterialName,
			Quantity:       b.Quantity,
			Unit:           b.Unit,
			Status:         b.Status,
			Quality:        b.Quality,
			Specification:  b.Specification,
			Supplier:       b.Supplier,
			Result:         b.Result,
			ManufacturedAt: b.ManufacturedAt,
			ExpiresAt:      b.ExpiresAt,
			Attrs:          b.Attrs,
			Position:       i,
		})
		for _, c := range b.Consumes {
			rels = append(rels, RelationRow{From: c.ID, To: b.ID, Kind: string(domain.RelConsumedBy),
				Quantity: c.Quantity, Unit: c.Unit, Position: len(rels)})
		}
		for _, p := range b.Produces {
			rels = append(rels, RelationRow{From: b.ID, To: p.ID, Kind: string(domain.RelProduces),
				Quantity: p.Quantity, Unit: p.Unit, Position: len(rels)})
		}
		for _, r := range b.Relations {
			rels = append(rels, RelationRow{From: b.ID, To: r.To, Kind: r.Kind,
				Quantity: r.Quantity, Unit: r.Unit, Position: len(rels)})
		}
	}
	return batches, rels
}

// SaveDataset replaces dataset ds.Key in one transaction.
func (s *GenealogyStore) SaveDataset(ctx context.Context, ds *domain.Dataset) error {
	if ds.Key == "" {
		return fmt.Errorf("dataset key is required")
	}
	batches, rels := Rows(ds)

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM genealogy_datasets WHERE key = $1`, ds.Key); err != nil {
			return fmt.Errorf("failed to clear dataset: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO genealogy_datasets (key, name, updated_at) VALUES ($1, $2, now())`,
			ds.Key, ds.Name); err != nil {
			return fmt.Errorf("failed to insert dataset: %w", err)
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"genealogy_batches"},
			[]string{"dataset_key", "id", "type", "label", "material_name", "quantity", "unit", "status",
				"quality", "specification", "supplier", "result", "manufactured_at", "expires_at", "attrs", "position"},
			pgx.CopyFromSlice(len(batches), func(i int) ([]any, error) {
				b := batches[i]
				var attrs any
				if len(b.Attrs) > 0 {
					attrs = b.Attrs
				}
				return []any{ds.Key, b.ID, b.Type, b.Label, b.MaterialName, b.Quantity, b.Unit, b.Status,
					b.Quality, b.Specification, b.Supplier, b.Result, b.ManufacturedAt, b.ExpiresAt, attrs, b.Position}, nil
			}),
		); err != nil {
			return fmt.Errorf("failed to copy batches: %w", err)
		}

		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"genealogy_relations"},
			[]string{"dataset_key", "from_id", "to_id", "kind", "quantity", "unit", "position"},
			pgx.CopyFromSlice(len(rels), func(i int) ([]any, error) {
				r := rels[i]
				return []any{ds.Key, r.From, r.To, r.Kind, r.Quantity, r.Unit, r.Position}, nil
			}),
		); err != nil {
			return fmt.Errorf("failed to copy relations: %w", err)
		}
		return nil
	})
}
