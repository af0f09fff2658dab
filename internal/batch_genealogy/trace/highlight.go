package trace

import (
	"fmt"
	"sort"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Highlight is what a visualisation needs to emphasise for a trace. Edge
// values are indexes into Graph.Edges. PathEdges lie on a shortest path
// between the target and a highlighted node; IncidentalEdges merely join
// two highlighted nodes.
type Highlight struct {
	Target          string                         `json:"target"`
	Direction       domain.TraceDirection          `json:"direction"`
	Nodes           []string                       `json:"nodes"`
	PathEdges       []int                          `json:"path_edges"`
	IncidentalEdges []int                          `json:"incidental_edges"`
	Warnings        []*domain.CycleDetectedWarning `json:"warnings,omitempty"`
}

func (h *Highlight) HasNode(id string) bool {
	for _, n := range h.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

func (h *Highlight) HasPathEdge(idx int) bool {
	for _, e := range h.PathEdges {
		if e == idx {
			return true
		}
	}
	return false
}

// Trace computes the highlight set of target for direction. TraceNone yields
// an empty highlight; every other direction includes the target itself. A
// direction outside the four known values is rejected with ErrInvalidDirection.
func Trace(g *domain.Graph, target string, direction domain.TraceDirection) (*Highlight, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, direction)
	}
	if !g.Has(target) {
		return nil, &domain.UnknownEntityError{ID: target}
	}
	h := &Highlight{
		Target:          target,
		Direction:       direction,
		Nodes:           []string{},
		PathEdges:       []int{},
		IncidentalEdges: []int{},
	}
	if direction == domain.TraceNone {
		return h, nil
	}

	var back, fwd map[string]int
	if direction == domain.TraceBackward || direction == domain.TraceBoth {
		back = walk(g, target, backward)
	}
	if direction == domain.TraceForward || direction == domain.TraceBoth {
		fwd = walk(g, target, forward)
	}

	nodes := map[string]bool{target: true}
	for id := range back {
		nodes[id] = true
	}
	for id := range fwd {
		nodes[id] = true
	}

	onPath := map[int]bool{}
	for ei, e := range g.Edges {
		// backward: e.From is one hop further from the target than e.To
		if du, ok := back[e.From]; ok {
			if dv, ok := back[e.To]; ok && du == dv+1 {
				onPath[ei] = true
			}
		}
		if du, ok := fwd[e.From]; ok {
			if dv, ok := fwd[e.To]; ok && dv == du+1 {
				onPath[ei] = true
			}
		}
	}

	for ei, e := range g.Edges {
		switch {
		case onPath[ei]:
			h.PathEdges = append(h.PathEdges, ei)
		case nodes[e.From] && nodes[e.To]:
			h.IncidentalEdges = append(h.IncidentalEdges, ei)
		}
	}

	for id := range nodes {
		h.Nodes = append(h.Nodes, id)
	}
	sort.Strings(h.Nodes)
	h.Warnings = cyclesTouching(g, nodes)
	return h, nil
}
