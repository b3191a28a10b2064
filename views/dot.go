package views

import (
	"fmt"
	"strings"

	"github.com/zero-day-ai/threatgraph/graph"
)

// nodeShapes maps node kinds to Graphviz shapes.
var nodeShapes = map[graph.NodeKind]string{
	graph.NodeProperty:   "ellipse",
	graph.NodeContext:    "folder",
	graph.NodeMitigation: "note",
	graph.NodePattern:    "octagon",
	graph.NodeAttack:     "box",
}

// DOT renders the graph in Graphviz DOT format. Nodes are shaped by kind,
// edges are labeled with their relation, and inherited mitigation edges are
// dashed.
func DOT(g *graph.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", dotQuote(g.ModelName))
	sb.WriteString("  rankdir=LR;\n")

	for _, n := range g.Nodes() {
		label := n.ID
		if n.Name != "" && n.Name != n.ID {
			name := n.Name
			if len(name) > maxLabel {
				name = name[:maxLabel] + ".."
			}
			label = n.ID + "\\n" + name
		}
		fmt.Fprintf(&sb, "  %s [shape=%s, label=%s];\n", dotQuote(n.ID), nodeShapes[n.Kind], dotQuote(label))
	}

	for _, e := range g.Edges() {
		attrs := fmt.Sprintf("label=%s", dotQuote(string(e.Kind)))
		if e.Inherited {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&sb, "  %s -> %s [%s];\n", dotQuote(e.From), dotQuote(e.To), attrs)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
