package export

import (
	"encoding/json"
	"os"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
)

// VisNode and VisEdge are the semantic payload handed to a network widget.
// Colours, shapes and coordinates are the widget's business.
type VisNode struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Type       domain.EntityType `json:"type"`
	Attributes domain.Attrs      `json:"attributes"`
}

type VisEdge struct {
	Index    int                 `json:"index"`
	From     string              `json:"from"`
	To       string              `json:"to"`
	Kind     domain.RelationKind `json:"kind"`
	Quantity float64             `json:"quantity,omitempty"`
	Unit     string              `json:"unit,omitempty"`
}

type VisGraph struct {
	Nodes []VisNode `json:"nodes"`
	Edges []VisEdge `json:"edges"`
}

func ToVisGraph(g *domain.Graph) *VisGraph {
	out := &VisGraph{
		Nodes: make([]VisNode, 0, g.NodeCount()),
		Edges: make([]VisEdge, 0, g.EdgeCount()),
	}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		out.Nodes = append(out.Nodes, VisNode{ID: n.ID, Label: n.Label, Type: n.Type, Attributes: n.Attributes()})
	}
	for i, e := range g.Edges {
		out.Edges = append(out.Edges, VisEdge{Index: i, From: e.From, To: e.To, Kind: e.Kind, Quantity: e.Quantity, Unit: e.Unit})
	}
	return out
}

func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
