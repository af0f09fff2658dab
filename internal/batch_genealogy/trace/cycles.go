package trace

import (
	"sort"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// Cycles returns one warning per strongly connected component that contains
// a cycle, including single nodes with a self loop. Component members are
// sorted, components are ordered by their first member.
func Cycles(g *domain.Graph) []*domain.CycleDetectedWarning {
	// Tarjan SCC over every edge kind
	index := 0
	stack := []string{}
	onStack := map[string]bool{}
	id := map[string]int{}
	low := map[string]int{}
	var out []*domain.CycleDetectedWarning

	var dfs func(v string)
	dfs = func(v string) {
		index++
		id[v], low[v] = index, index
		stack = append(stack, v)
		onStack[v] = true

		for _, ei := range g.Outgoing(v) {
			w := g.Edges[ei].To
			if _, seen := id[w]; !seen {
				dfs(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && id[w] < low[v] {
				low[v] = id[w]
			}
		}

		if low[v] == id[v] {
			comp := []string{}
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if len(comp) > 1 || hasSelfLoop(g, v) {
				sort.Strings(comp)
				out = append(out, &domain.CycleDetectedWarning{Nodes: comp})
			}
		}
	}

	for _, v := range g.NodeIDs() {
		if _, seen := id[v]; !seen {
			dfs(v)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Nodes[0] < out[j].Nodes[0] })
	return out
}

func hasSelfLoop(g *domain.Graph, v string) bool {
	for _, ei := range g.Outgoing(v) {
		if g.Edges[ei].To == v {
			return true
		}
	}
	return false
}

// cyclesTouching keeps the warnings whose component intersects visited.
func cyclesTouching(g *domain.Graph, visited map[string]bool) []*domain.CycleDetectedWarning {
	var out []*domain.CycleDetectedWarning
	for _, w := range Cycles(g) {
		for _, n := range w.Nodes {
			if visited[n] {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
