// Package threat provides the entity model for authoring threat models.
//
// A threat model is a collection of strongly-typed entities with
// cross-references between them:
//
//   - Property: a security objective the system should satisfy. Properties
//     form a refinement forest (AND composition): a property holds only if
//     all of the properties refining it hold.
//   - Context: a location, subsystem, or actor where attacks can occur.
//   - Mitigation: a countermeasure, tagged with a Scope indicating how fully
//     the core system provides it.
//   - AttackPattern: a reusable, abstract attack template carrying default
//     mitigations that concrete variants inherit.
//   - Attack: a concrete attack instance, optionally a variant of a pattern.
//   - MitigationApplication: a (mitigation, rationale) pair attached to an
//     attack or pattern.
//
// Entities reference each other by id string only. Object resolution happens
// when a Model is compiled into a graph (see the graph package); the entity
// records themselves stay flat, independently constructible, and free of
// cyclic ownership.
//
// # Authoring
//
// Entities are created with constructors and fluent builder methods:
//
//	confidentiality := threat.NewProperty("CONFIDENTIALITY",
//	    "It must not be possible to link a voter to their vote.")
//	p1 := threat.NewProperty("P1", "Cryptograms are unlinkable.").
//	    WithRefines("CONFIDENTIALITY")
//
//	model := &threat.Model{
//	    Name:       "E2E-VIV Threat Model",
//	    Properties: []*threat.Property{confidentiality, p1},
//	}
//
// Each entity exposes a Validate method that checks required fields and
// enumeration values; Model.Validate validates every entity in the model.
// Cross-reference resolution and cycle detection are deferred to graph
// compilation.
package threat
