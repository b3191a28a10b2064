package graph

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/threatgraph/threat"
)

// Graph is the compiled, immutable form of a threat model.
//
// Nodes are entity ids tagged with their kind; edges encode the typed
// relationships between entities, with pattern mitigations already
// materialized onto their variant attacks. A Graph is produced by Compile
// and never mutated afterwards, so it is safe to share across concurrent
// readers without locking.
type Graph struct {
	// BuildID uniquely identifies this compilation for provenance. A new id
	// is generated on every Compile call.
	BuildID string

	// BuiltAt is the time the graph was compiled.
	BuiltAt time.Time

	// ModelName is the name of the source threat model.
	ModelName string

	nodes   map[string]Node
	nodeIDs []string // sorted
	edges   []Edge   // sorted by (From, Kind, To)
	out     map[string][]Edge
	in      map[string][]Edge

	// Entity lookups for query results. These reference the source model's
	// records and must not be mutated.
	attacks     map[string]*threat.Attack
	mitigations map[string]*threat.Mitigation
	attackIDs   []string // sorted

	tracer trace.Tracer
}

// Node returns the node with the given id.
// Returns ErrNotFound if the id is not present in the graph.
func (g *Graph) Node(id string) (Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, notFound(id)
	}
	return n, nil
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []Node {
	result := make([]Node, 0, len(g.nodeIDs))
	for _, id := range g.nodeIDs {
		result = append(result, g.nodes[id])
	}
	return result
}

// Edges returns all edges sorted by (from, kind, to).
func (g *Graph) Edges() []Edge {
	result := make([]Edge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Out returns the outgoing edges of the given node, sorted.
// Returns ErrNotFound if the id is not present in the graph.
func (g *Graph) Out(id string) ([]Edge, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, notFound(id)
	}
	edges := g.out[id]
	result := make([]Edge, len(edges))
	copy(result, edges)
	return result, nil
}

// In returns the incoming edges of the given node, sorted.
// Returns ErrNotFound if the id is not present in the graph.
func (g *Graph) In(id string) ([]Edge, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, notFound(id)
	}
	edges := g.in[id]
	result := make([]Edge, len(edges))
	copy(result, edges)
	return result, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// node returns the node and whether it exists, for internal use.
func (g *Graph) node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// requireKind returns ErrNotFound if the id is absent or tagged with a
// different kind than the query expects.
func (g *Graph) requireKind(id string, kind NodeKind) error {
	n, ok := g.nodes[id]
	if !ok {
		return notFound(id)
	}
	if n.Kind != kind {
		return fmt.Errorf("%w: %q is a %s, not a %s", ErrNotFound, id, n.Kind, kind)
	}
	return nil
}
