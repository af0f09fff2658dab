package export

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/trace"
)

var nodeStyles = map[domain.EntityType]string{
	domain.EntityRawMaterial:        `shape=box,style="rounded,filled",fillcolor="#e8f1fb"`,
	domain.EntityIntermediate:       `shape=box,style="filled",fillcolor="#fff3cd"`,
	domain.EntityFinishedProduct:    `shape=box3d,style="filled",fillcolor="#d4edda"`,
	domain.EntityPhase:              `shape=folder,style="filled",fillcolor="#e2f0d9"`,
	domain.EntityProcessInstruction: `shape=note,style="filled",fillcolor="#ddebf7"`,
	domain.EntityMaterialLot:        `shape=cylinder,style="filled",fillcolor="#ededed"`,
}

// ToDOT renders g as Graphviz source. With a highlight, highlighted nodes are
// outlined, path edges drawn bold and incidental edges dashed.
func ToDOT(g *domain.Graph, title string, h *trace.Highlight) string {
	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=LR;\n  node [fontname=\"Helvetica\"];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label="%s"; fontname="Helvetica";`, escape(title)))
		b.WriteString("\n")
	}

	lit := map[string]bool{}
	path := map[int]bool{}
	incidental := map[int]bool{}
	if h != nil {
		for _, n := range h.Nodes {
			lit[n] = true
		}
		for _, e := range h.PathEdges {
			path[e] = true
		}
		for _, e := range h.IncidentalEdges {
			incidental[e] = true
		}
	}

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		style, ok := nodeStyles[n.Type]
		if !ok {
			style = `shape=box`
		}
		if n.Type == domain.EntityProcessInstruction && strings.EqualFold(n.Result, domain.ResultFail) {
			style = `shape=note,style="filled",fillcolor="#f8d7da"`
		}
		if lit[id] {
			style += `,penwidth=2.5,color="#d39e00"`
			if h != nil && id == h.Target {
				style += `,peripheries=2`
			}
		}
		b.WriteString(fmt.Sprintf(`  "%s" [label="%s", %s];`+"\n", escape(n.ID), escape(n.Label), style))
	}

	for i, e := range g.Edges {
		lbl := string(e.Kind)
		if e.Quantity != 0 {
			lbl = fmt.Sprintf("%s (%g %s)", lbl, e.Quantity, e.Unit)
		}
		attrs := fmt.Sprintf(`label="%s", tooltip="edge#%d"`, escape(strings.TrimSpace(lbl)), i)
		switch {
		case path[i]:
			attrs += `, penwidth=2.5, color="#d39e00"`
		case incidental[i]:
			attrs += `, style=dashed, color="#d39e00"`
		}
		b.WriteString(fmt.Sprintf(`  "%s" -> "%s" [%s];`+"\n", escape(e.From), escape(e.To), attrs))
	}

	b.WriteString("}\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}
