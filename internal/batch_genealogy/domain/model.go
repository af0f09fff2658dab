package domain

import "time"

type Attrs map[string]any

// Entity is a node of the genealogy graph: a batch, a material lot, a process
// step or a finished product. Which optional fields carry meaning depends on Type.
type Entity struct {
	ID             string     `json:"id" yaml:"id"`
	Type           EntityType `json:"type" yaml:"type"`
	Label          string     `json:"label" yaml:"label"`
	MaterialName   string     `json:"material_name,omitempty" yaml:"material_name,omitempty"`
	Quantity       float64    `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit           string     `json:"unit,omitempty" yaml:"unit,omitempty"`
	Status         string     `json:"status,omitempty" yaml:"status,omitempty"`
	Quality        string     `json:"quality,omitempty" yaml:"quality,omitempty"`
	Specification  string     `json:"specification,omitempty" yaml:"specification,omitempty"`
	Supplier       string     `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Result         string     `json:"result,omitempty" yaml:"result,omitempty"`
	ManufacturedAt *time.Time `json:"manufactured_at,omitempty" yaml:"manufactured_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Attrs          Attrs      `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Attributes flattens the entity into a key/value map for detail panels.
// Empty optional fields are left out.
func (e *Entity) Attributes() Attrs {
	out := Attrs{
		"id":    e.ID,
		"type":  string(e.Type),
		"label": e.Label,
	}
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("material_name", e.MaterialName)
	put("unit", e.Unit)
	put("status", e.Status)
	put("quality", e.Quality)
	put("specification", e.Specification)
	put("supplier", e.Supplier)
	put("result", e.Result)
	if e.Quantity != 0 {
		out["quantity"] = e.Quantity
	}
	if e.ManufacturedAt != nil {
		out["manufactured_at"] = e.ManufacturedAt.UTC().Format(time.RFC3339)
	}
	if e.ExpiresAt != nil {
		out["expires_at"] = e.ExpiresAt.UTC().Format(time.RFC3339)
	}
	for k, v := range e.Attrs {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return out
}

// Relationship is a directed edge. From feeds into, precedes or is consumed by To.
type Relationship struct {
	From     string       `json:"from" yaml:"from"`
	To       string       `json:"to" yaml:"to"`
	Kind     RelationKind `json:"kind" yaml:"kind"`
	Quantity float64      `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string       `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Graph is the genealogy of one manufacturing context. Edge identity is the
// index into Edges; Out and In hold those indexes per node.
type Graph struct {
	Nodes map[string]*Entity `json:"nodes"`
	Edges []*Relationship    `json:"edges"`

	order []string
	out   map[string][]int
	in    map[string][]int
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: map[string]*Entity{},
		Edges: []*Relationship{},
		out:   map[string][]int{},
		in:    map[string][]int{},
	}
}

// AddNode keeps the first entity registered under an ID.
func (g *Graph) AddNode(n *Entity) bool {
	if _, ok := g.Nodes[n.ID]; ok {
		return false
	}
	g.Nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return true
}

// AddEdge appends e and returns its index.
func (g *Graph) AddEdge(e *Relationship) int {
	idx := len(g.Edges)
	g.Edges = append(g.Edges, e)
	g.out[e.From] = append(g.out[e.From], idx)
	g.in[e.To] = append(g.in[e.To], idx)
	return idx
}

func (g *Graph) Has(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

func (g *Graph) Node(id string) (*Entity, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// NodeIDs returns node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Graph) Edge(idx int) *Relationship {
	if idx < 0 || idx >= len(g.Edges) {
		return nil
	}
	return g.Edges[idx]
}

// Outgoing returns indexes of edges leaving id.
func (g *Graph) Outgoing(id string) []int {
	return append([]int(nil), g.out[id]...)
}

// Incoming returns indexes of edges entering id.
func (g *Graph) Incoming(id string) []int {
	return append([]int(nil), g.in[id]...)
}

func (g *Graph) NodeCount() int { return len(g.order) }
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Snapshot is the serialisable form of a Graph.
type Snapshot struct {
	Entities      []*Entity       `json:"entities" yaml:"entities"`
	Relationships []*Relationship `json:"relationships" yaml:"relationships"`
}

func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{
		Entities:      make([]*Entity, 0, len(g.order)),
		Relationships: make([]*Relationship, 0, len(g.Edges)),
	}
	for _, id := range g.order {
		s.Entities = append(s.Entities, g.Nodes[id])
	}
	s.Relationships = append(s.Relationships, g.Edges...)
	return s
}

// FromSnapshot rebuilds a graph. Edge order, and therefore edge indexes, are preserved.
func FromSnapshot(s *Snapshot) *Graph {
	g := NewGraph()
	if s == nil {
		return g
	}
	for _, e := range s.Entities {
		if e != nil {
			g.AddNode(e)
		}
	}
	for _, r := range s.Relationships {
		if r != nil {
			g.AddEdge(r)
		}
	}
	return g
}
