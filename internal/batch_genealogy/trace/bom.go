package trace

import (
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// BOMLine is one row of a bill of materials. Quantity and Unit are the
// amounts declared on the consuming relationship.
type BOMLine struct {
	Level        int               `json:"level"`
	EntityID     string            `json:"entity_id"`
	Type         domain.EntityType `json:"type"`
	MaterialName string            `json:"material_name,omitempty"`
	Quantity     float64           `json:"quantity,omitempty"`
	Unit         string            `json:"unit,omitempty"`
	Supplier     string            `json:"supplier,omitempty"`
	ConsumerID   string            `json:"consumer_id"`
	Edge         int               `json:"edge"`
}

type BOM struct {
	Target   string                         `json:"target"`
	Lines    []BOMLine                      `json:"lines"`
	Warnings []*domain.CycleDetectedWarning `json:"warnings,omitempty"`
}

// MaxLevel returns the deepest level present, or -1 for an empty BOM.
func (b *BOM) MaxLevel() int {
	deepest := -1
	for _, l := range b.Lines {
		if l.Level > deepest {
			deepest = l.Level
		}
	}
	return deepest
}

type bomFrame struct {
	edge  int
	level int
}

// BillOfMaterials expands the inputs of target depth first. Direct inputs are
// level 0. Only material flow edges are followed. Raw materials and
// intermediates are listed; other ancestors are walked through without a row.
// Intermediates are listed and expanded.
//
// Every relationship is emitted at most once: a material reached twice
// through the same consumer appears once, while one batch consumed by two
// different consumers appears under each of them.
func BillOfMaterials(g *domain.Graph, target string) (*BOM, error) {
	if !g.Has(target) {
		return nil, &domain.UnknownEntityError{ID: target}
	}

	out := &BOM{Target: target, Lines: []BOMLine{}}
	usedEdge := map[int]bool{}
	visited := map[string]bool{target: true}

	var stack []bomFrame
	push := func(node string, level int) {
		in := g.Incoming(node)
		// reversed so the first declared input is expanded first
		for i := len(in) - 1; i >= 0; i-- {
			if g.Edges[in[i]].Kind.MaterialFlow() {
				stack = append(stack, bomFrame{edge: in[i], level: level})
			}
		}
	}
	push(target, 0)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if usedEdge[f.edge] {
			continue
		}
		usedEdge[f.edge] = true

		e := g.Edges[f.edge]
		if e.From == target {
			continue
		}
		src, ok := g.Node(e.From)
		if !ok {
			continue
		}
		visited[src.ID] = true

		if src.Type.BOMListable() {
			out.Lines = append(out.Lines, BOMLine{
				Level:        f.level,
				EntityID:     src.ID,
				Type:         src.Type,
				MaterialName: src.MaterialName,
				Quantity:     e.Quantity,
				Unit:         e.Unit,
				Supplier:     src.Supplier,
				ConsumerID:   e.To,
				Edge:         f.edge,
			})
		}
		push(src.ID, f.level+1)
	}

	out.Warnings = cyclesTouching(g, visited)
	return out, nil
}
