// Package graph compiles a threat model into a directed graph and answers
// queries over it.
//
// Compile validates a threat.Model, resolves every cross-reference, checks
// the refinement and composition chains for cycles, and materializes one
// node per entity and one edge per relationship. Mitigations inherited from
// attack patterns are materialized as real edges at compile time, so every
// downstream traversal sees a uniform graph and inheritance is never
// re-derived per query.
//
// The compiled Graph is immutable. It is rebuilt from scratch on every
// Compile call and is safe to share across any number of concurrent readers.
//
// # Compiling
//
//	g, err := graph.Compile(ctx, model)
//	if err != nil {
//	    // threat.ErrInvalidEntity, graph.ErrDuplicateID,
//	    // graph.ErrUnresolvedReference, or graph.ErrCycle
//	}
//
// # Querying
//
//	mits, err := g.MitigationsFor(ctx, "ballot_tampering.network.IN")
//	attacks, err := g.AttacksTargeting(ctx, "CONFIDENTIALITY")
//	outstanding, err := g.OutstandingAttacks(ctx, graph.DefaultOutstandingOptions())
//
// Named queries report unknown ids with ErrNotFound so callers can
// distinguish "no matches" from "unknown entity". Generic traversal is
// available through Ancestors, Descendants, Paths, and the raw Out/In edge
// accessors.
package graph
