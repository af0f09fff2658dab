package trace

import (
	"sort"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Lineage is the ancestor or descendant set of a target.
type Lineage struct {
	Target   string                         `json:"target"`
	Entities []*domain.Entity               `json:"entities"`
	Warnings []*domain.CycleDetectedWarning `json:"warnings,omitempty"`
}

// IDs returns the member IDs in the same (sorted) order as Entities.
func (l *Lineage) IDs() []string {
	out := make([]string, 0, len(l.Entities))
	for _, e := range l.Entities {
		out = append(out, e.ID)
	}
	return out
}

func (l *Lineage) Contains(id string) bool {
	for _, e := range l.Entities {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Ancestors returns every entity with a directed path to target: what was
// consumed, directly or not, to make it.
func Ancestors(g *domain.Graph, target string) (*Lineage, error) {
	return lineage(g, target, backward)
}

// Descendants returns every entity reachable from target: what was made from it.
func Descendants(g *domain.Graph, target string) (*Lineage, error) {
	return lineage(g, target, forward)
}

func lineage(g *domain.Graph, target string, dir step) (*Lineage, error) {
	if !g.Has(target) {
		return nil, &domain.UnknownEntityError{ID: target}
	}
	dist := walk(g, target, dir)

	visited := make(map[string]bool, len(dist))
	ids := make([]string, 0, len(dist))
	for id := range dist {
		visited[id] = true
		if id != target {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := &Lineage{Target: target, Entities: make([]*domain.Entity, 0, len(ids))}
	for _, id := range ids {
		if n, ok := g.Node(id); ok {
			out.Entities = append(out.Entities, n)
		}
	}
	out.Warnings = cyclesTouching(g, visited)
	return out, nil
}

type step int

const (
	backward step = iota
	forward
)

// neighbours returns, for each edge leaving v in direction dir, the edge
// index and the node on its far side.
func neighbours(g *domain.Graph, v string, dir step) ([]int, func(int) string) {
	if dir == backward {
		return g.Incoming(v), func(ei int) string { return g.Edges[ei].From }
	}
	return g.Outgoing(v), func(ei int) string { return g.Edges[ei].To }
}

// walk is an iterative breadth-first search from start. It returns the hop
// distance of every reached node, start included at 0. A target sitting on a
// cycle is reached again, but keeps distance 0.
func walk(g *domain.Graph, start string, dir step) map[string]int {
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		edges, far := neighbours(g, v, dir)
		for _, ei := range edges {
			w := far(ei)
			if _, seen := dist[w]; seen {
				continue
			}
			dist[w] = dist[v] + 1
			queue = append(queue, w)
		}
	}
	return dist
}
