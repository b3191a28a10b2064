package graph

import "fmt"

// EdgeKind tags a graph edge with the relationship it encodes.
type EdgeKind string

const (
	// EdgeRefines connects a property to the property it refines, and a
	// pattern to the pattern it specializes.
	EdgeRefines EdgeKind = "refines"

	// EdgeVariantOf connects a concrete attack to the pattern it
	// instantiates.
	EdgeVariantOf EdgeKind = "variant_of"

	// EdgeOccursIn connects an attack to a context where it can occur.
	EdgeOccursIn EdgeKind = "occurs_in"

	// EdgeTargets connects an attack to a property it threatens.
	EdgeTargets EdgeKind = "targets"

	// EdgeAchieves connects a child attack to a parent attack it realizes
	// (OR composition).
	EdgeAchieves EdgeKind = "achieves"

	// EdgeRequires connects an attack to a prerequisite attack (AND
	// composition).
	EdgeRequires EdgeKind = "requires"

	// EdgeMitigatedBy connects an attack or pattern to a mitigation that
	// addresses it. Edges inherited from a pattern carry Inherited=true.
	EdgeMitigatedBy EdgeKind = "mitigated_by"
)

// IsValid returns true if the edge kind is a known value.
func (k EdgeKind) IsValid() bool {
	switch k {
	case EdgeRefines, EdgeVariantOf, EdgeOccursIn, EdgeTargets, EdgeAchieves, EdgeRequires, EdgeMitigatedBy:
		return true
	default:
		return false
	}
}

// String returns the string representation of the edge kind.
func (k EdgeKind) String() string {
	return string(k)
}

// AllEdgeKinds returns all known edge kind values.
func AllEdgeKinds() []EdgeKind {
	return []EdgeKind{EdgeRefines, EdgeVariantOf, EdgeOccursIn, EdgeTargets, EdgeAchieves, EdgeRequires, EdgeMitigatedBy}
}

// Edge is a directed edge in the compiled graph.
type Edge struct {
	// From is the source node id.
	From string `json:"from"`

	// To is the target node id.
	To string `json:"to"`

	// Kind is the relationship this edge encodes.
	Kind EdgeKind `json:"kind"`

	// Rationale explains how a mitigation helps against the attack or
	// pattern. Set only on mitigated_by edges.
	Rationale string `json:"rationale,omitempty"`

	// Inherited marks mitigated_by edges materialized from the attack's
	// pattern rather than declared directly on the attack. The flag exists
	// for display; query semantics treat inherited and direct edges alike.
	Inherited bool `json:"inherited,omitempty"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.From, e.Kind, e.To)
}
