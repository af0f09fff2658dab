package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Postgres reads datasets from the genealogy tables:
//
//	genealogy_datasets(key, name)
//	genealogy_batches(dataset_key, id, type, label, material_name, quantity, unit,
//	    status, quality, specification, supplier, result, manufactured_at,
//	    expires_at, attrs, position)
//	genealogy_relations(dataset_key, from_id, to_id, kind, quantity, unit, position)
//
// Relations are stored in flow direction and folded back onto the owning
// batch record: consumed_by onto the consumer, everything else onto from_id.
// A relation whose owner is not a batch of the dataset cannot be expressed
// as a record and is dropped.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT key FROM genealogy_datasets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan dataset key: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (p *Postgres) Dataset(ctx context.Context, key string) (*domain.Dataset, error) {
	ds := &domain.Dataset{Key: key}

	var name sql.NullString
	err := p.db.QueryRowContext(ctx,
		`SELECT name FROM genealogy_datasets WHERE key = $1`, key,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	ds.Name = name.String

	if err := p.loadBatches(ctx, ds); err != nil {
		return nil, err
	}
	if err := p.loadRelations(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (p *Postgres) loadBatches(ctx context.Context, ds *domain.Dataset) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, type, label, material_name, quantity, unit, status, quality,
		       specification, supplier, result, manufactured_at, expires_at, attrs
		FROM genealogy_batches
		WHERE dataset_key = $1
		ORDER BY position, id`, ds.Key)
	if err != nil {
		return fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b                                                         domain.BatchRecord
			label, material, unit, status, quality, spec, sup, result sql.NullString
			qty                                                       sql.NullFloat64
			made, expires                                             sql.NullTime
			attrs                                                     []byte
		)
		if err := rows.Scan(&b.ID, &b.Type, &label, &material, &qty, &unit, &status, &quality,
			&spec, &sup, &result, &made, &expires, &attrs); err != nil {
			return fmt.Errorf("failed to scan batch: %w", err)
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &b.Attrs); err != nil {
				return fmt.Errorf("failed to decode attrs of batch %q: %w", b.ID, err)
			}
		}
		b.Label = label.String
		b.Result = result.String
		b.MaterialName = material.String
		b.Quantity = qty.Float64
		b.Unit = unit.String
		b.Status = status.String
		b.Quality = quality.String
		b.Specification = spec.String
		b.Supplier = sup.String
		if made.Valid {
			t := made.Time
			b.ManufacturedAt = &t
		}
		if expires.Valid {
			t := expires.Time
			b.ExpiresAt = &t
		}
		ds.Batches = append(ds.Batches, b)
	}
	return rows.Err()
}

func (p *Postgres) loadRelations(ctx context.Context, ds *domain.Dataset) error {
	rows, err := p.db.QueryContext(ctx, `
		SELECT from_id, to_id, kind, quantity, unit
		FROM genealogy_relations
		WHERE dataset_key = $1
		ORDER BY position`, ds.Key)
	if err != nil {
		return fmt.Errorf("failed to query relations: %w", err)
	}
	defer rows.Close()

	idx := make(map[string]int, len(ds.Batches))
	for i, b := range ds.Batches {
		idx[b.ID] = i
	}

	for rows.Next() {
		var (
			from, to, kind string
			qty            sql.NullFloat64
			unit           sql.NullString
		)
		if err := rows.Scan(&from, &to, &kind, &qty, &unit); err != nil {
			return fmt.Errorf("failed to scan relation: %w", err)
		}
		switch domain.RelationKind(kind) {
		case domain.RelConsumedBy:
			if i, ok := idx[to]; ok {
				ds.Batches[i].Consumes = append(ds.Batches[i].Consumes,
					domain.Consumption{ID: from, Quantity: qty.Float64, Unit: unit.String})
			}
		case domain.RelProduces:
			if i, ok := idx[from]; ok {
				ds.Batches[i].Produces = append(ds.Batches[i].Produces,
					domain.Consumption{ID: to, Quantity: qty.Float64, Unit: unit.String})
			}
		default:
			if i, ok := idx[from]; ok {
				ds.Batches[i].Relations = append(ds.Batches[i].Relations,
					domain.RelationRecord{To: to, Kind: kind, Quantity: qty.Float64, Unit: unit.String})
			}
		}
	}
	return rows.Err()
}
