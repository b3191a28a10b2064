// Package views renders compiled threat graphs as text: property and attack
// trees, mitigation coverage listings, and Graphviz DOT export.
//
// All functions are pure consumers of the graph package's query API; they
// embed no graph semantics of their own.
package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/zero-day-ai/threatgraph/graph"
)

// maxLabel is the display truncation length for descriptions.
const maxLabel = 50

// PropertyTree renders the property refinement forest with box-drawing
// characters, one root per top-level property:
//
//	CONFIDENTIALITY It must not be possible to link a voter ..
//	├── P1 Cryptograms are unlinkable.
//	│   └── P1.1 The only information leaked is the cryptog..
//	└── P2 Everlasting privacy holds.
func PropertyTree(g *graph.Graph) string {
	return renderForest(g, graph.NodeProperty, graph.EdgeRefines)
}

// AttackTree renders the attack composition forest following achieves
// relationships, children being the attacks that achieve their parent.
func AttackTree(g *graph.Graph) string {
	return renderForest(g, graph.NodeAttack, graph.EdgeAchieves)
}

// renderForest renders every node of the given kind that has no outgoing
// edge of the given relation as a root, with the nodes pointing at it as
// children.
func renderForest(g *graph.Graph, kind graph.NodeKind, relation graph.EdgeKind) string {
	var sb strings.Builder
	for _, n := range g.Nodes() {
		if n.Kind != kind || hasOut(g, n.ID, relation) {
			continue
		}
		renderSubtree(g, &sb, n, relation, "", true, true)
	}
	return sb.String()
}

func renderSubtree(g *graph.Graph, sb *strings.Builder, n graph.Node, relation graph.EdgeKind, prefix string, isLast, isRoot bool) {
	label := n.Name
	if len(label) > maxLabel {
		label = label[:maxLabel] + ".."
	}

	var childPrefix string
	if isRoot {
		fmt.Fprintf(sb, "%s %s\n", n.ID, label)
		childPrefix = ""
	} else {
		connector := "├── "
		childPrefix = prefix + "│   "
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(sb, "%s%s%s %s\n", prefix, connector, n.ID, label)
	}

	children := childrenOf(g, n, relation)
	for i, child := range children {
		renderSubtree(g, sb, child, relation, childPrefix, i == len(children)-1, false)
	}
}

// childrenOf returns the same-kind nodes pointing at n with the given
// relation, in id order.
func childrenOf(g *graph.Graph, n graph.Node, relation graph.EdgeKind) []graph.Node {
	in, err := g.In(n.ID)
	if err != nil {
		return nil
	}
	var children []graph.Node
	for _, e := range in {
		if e.Kind != relation {
			continue
		}
		child, err := g.Node(e.From)
		if err != nil || child.Kind != n.Kind {
			continue
		}
		children = append(children, child)
	}
	return children
}

func hasOut(g *graph.Graph, id string, relation graph.EdgeKind) bool {
	out, err := g.Out(id)
	if err != nil {
		return false
	}
	for _, e := range out {
		if e.Kind == relation {
			return true
		}
	}
	return false
}

// Coverage lists every attack with its full mitigation set, inherited
// applications marked. Attacks without any mitigation are flagged.
func Coverage(ctx context.Context, g *graph.Graph) (string, error) {
	var sb strings.Builder
	for _, n := range g.Nodes() {
		if n.Kind != graph.NodeAttack {
			continue
		}
		mits, err := g.MitigationsFor(ctx, n.ID)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&sb, "%s %s\n", n.ID, n.Name)
		if len(mits) == 0 {
			sb.WriteString("    (no mitigations)\n")
			continue
		}
		for _, am := range mits {
			marker := ""
			if am.Inherited {
				marker = ", inherited"
			}
			fmt.Fprintf(&sb, "    %s %s (%s%s)\n", am.Mitigation.ID, am.Mitigation.Name, am.Mitigation.Scope, marker)
		}
	}
	return sb.String(), nil
}
