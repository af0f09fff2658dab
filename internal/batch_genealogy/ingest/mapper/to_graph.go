package mapper

import (
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

type Options struct {
	Policy domain.DanglingPolicy
}

// SkippedRelation is a relation dropped under the skip policy.
type SkippedRelation struct {
	From string              `json:"from"`
	To   string              `json:"to"`
	Kind domain.RelationKind `json:"kind"`
}

type BuildReport struct {
	Nodes   int               `json:"nodes"`
	Edges   int               `json:"edges"`
	Skipped []SkippedRelation `json:"skipped,omitempty"`
}

// Build turns a dataset into a genealogy graph. Every edge points in the
// direction material flows: a consumed batch points at its consumer, a
// producer at its product. The dataset is expected to be validated.
//
// Under PolicyStrict the first relation to an unknown batch aborts the build
// with a *domain.DanglingReferenceError and no graph is returned.
func Build(ds *domain.Dataset, opt Options) (*domain.Graph, *BuildReport, error) {
	policy := opt.Policy
	if policy == "" {
		policy = domain.PolicySkip
	}

	g := domain.NewGraph()
	report := &BuildReport{}

	for _, b := range ds.Batches {
		g.AddNode(toEntity(b))
	}

	link := func(from, to string, kind domain.RelationKind, qty float64, unit string) error {
		if !g.Has(from) || !g.Has(to) {
			if policy == domain.PolicyStrict {
				return &domain.DanglingReferenceError{From: from, To: to, Kind: kind}
			}
			report.Skipped = append(report.Skipped, SkippedRelation{From: from, To: to, Kind: kind})
			return nil
		}
		g.AddEdge(&domain.Relationship{From: from, To: to, Kind: kind, Quantity: qty, Unit: unit})
		return nil
	}

	for _, b := range ds.Batches {
		for _, c := range b.Consumes {
			if err := link(c.ID, b.ID, domain.RelConsumedBy, c.Quantity, c.Unit); err != nil {
				return nil, nil, err
			}
		}
		for _, p := range b.Produces {
			if err := link(b.ID, p.ID, domain.RelProduces, p.Quantity, p.Unit); err != nil {
				return nil, nil, err
			}
		}
		for _, r := range b.Relations {
			if err := link(b.ID, r.To, domain.RelationKind(r.Kind), r.Quantity, r.Unit); err != nil {
				return nil, nil, err
			}
		}
	}

	report.Nodes = g.NodeCount()
	report.Edges = g.EdgeCount()
	return g, report, nil
}

func toEntity(b domain.BatchRecord) *domain.Entity {
	t, _ := domain.ParseEntityType(b.Type)
	label := b.Label
	if label == "" {
		label = b.ID
		if b.MaterialName != "" {
			label = b.MaterialName + " " + b.ID
		}
	}
	var attrs domain.Attrs
	if len(b.Attrs) > 0 {
		attrs = make(domain.Attrs, len(b.Attrs))
		for k, v := range b.Attrs {
			attrs[k] = v
		}
	}
	return &domain.Entity{
		ID:             b.ID,
		Type:           t,
		Label:          strings.TrimSpace(label),
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
		Attrs:          attrs,
	}
}
