package graph

import "fmt"

// NodeKind tags a graph node with the entity kind it was compiled from.
type NodeKind string

const (
	// NodeProperty is a node compiled from a threat.Property.
	NodeProperty NodeKind = "property"

	// NodeContext is a node compiled from a threat.Context.
	NodeContext NodeKind = "context"

	// NodeMitigation is a node compiled from a threat.Mitigation.
	NodeMitigation NodeKind = "mitigation"

	// NodePattern is a node compiled from a threat.AttackPattern.
	NodePattern NodeKind = "pattern"

	// NodeAttack is a node compiled from a threat.Attack.
	NodeAttack NodeKind = "attack"
)

// IsValid returns true if the node kind is a known value.
func (k NodeKind) IsValid() bool {
	switch k {
	case NodeProperty, NodeContext, NodeMitigation, NodePattern, NodeAttack:
		return true
	default:
		return false
	}
}

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	return string(k)
}

// AllNodeKinds returns all known node kind values.
func AllNodeKinds() []NodeKind {
	return []NodeKind{NodeProperty, NodeContext, NodeMitigation, NodePattern, NodeAttack}
}

// Node is a vertex in the compiled graph: an entity id tagged with its kind
// and display name. The full entity record stays in the source model; the
// node carries only what traversal and rendering need.
type Node struct {
	// ID is the entity id, unique across the whole graph.
	ID string `json:"id"`

	// Kind is the entity kind this node was compiled from.
	Kind NodeKind `json:"kind"`

	// Name is the entity's human-readable name. For properties, which have
	// no separate name, this holds the description.
	Name string `json:"name"`
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Kind, n.ID)
}
