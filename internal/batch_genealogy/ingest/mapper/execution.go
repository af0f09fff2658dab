package mapper

import (
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// MaterialID derives the node ID of a material named in an execution record.
func MaterialID(name string) string {
	return "M_" + strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// BuildExecution maps an execution record to a graph:
//
//	batch -has_phase-> phase -has_pi-> PI
//	phase -next_phase-> following phase
//	material -consumed_by-> PI, PI -produces-> material
//
// References to undeclared phases or PIs are dropped; run
// validator.ValidateExecution first to reject them instead.
func BuildExecution(rec *domain.ExecutionRecord) *domain.Graph {
	g := domain.NewGraph()

	b := rec.Batch
	g.AddNode(&domain.Entity{
		ID:     b.ID,
		Type:   domain.EntityFinishedProduct,
		Label:  "Batch " + b.ID,
		Status: b.Status,
		Attrs:  domain.Attrs{"product": b.Product},
	})

	var prev string
	for _, p := range rec.Phases {
		g.AddNode(&domain.Entity{ID: p.ID, Type: domain.EntityPhase, Label: p.Name})
		g.AddEdge(&domain.Relationship{From: b.ID, To: p.ID, Kind: domain.RelHasPhase})
		if prev != "" {
			g.AddEdge(&domain.Relationship{From: prev, To: p.ID, Kind: domain.RelNextPhase})
		}
		prev = p.ID
	}

	for _, pi := range rec.ProcessInstructions {
		if !g.Has(pi.Phase) {
			continue
		}
		g.AddNode(&domain.Entity{
			ID:     pi.ID,
			Type:   domain.EntityProcessInstruction,
			Label:  pi.Name,
			Result: pi.Result,
		})
		g.AddEdge(&domain.Relationship{From: pi.Phase, To: pi.ID, Kind: domain.RelHasPI})
	}

	for _, m := range rec.Materials {
		if n, ok := g.Node(m.PI); !ok || n.Type != domain.EntityProcessInstruction {
			continue
		}
		id := MaterialID(m.Name)
		g.AddNode(&domain.Entity{ID: id, Type: domain.EntityMaterialLot, Label: m.Name, MaterialName: m.Name})
		switch m.Type {
		case domain.MaterialConsumed:
			g.AddEdge(&domain.Relationship{From: id, To: m.PI, Kind: domain.RelConsumedBy})
		case domain.MaterialProduced:
			g.AddEdge(&domain.Relationship{From: m.PI, To: id, Kind: domain.RelProduces})
		}
	}

	return g
}
