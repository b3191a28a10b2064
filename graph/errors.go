package graph

import "errors"

// Sentinel errors for graph compilation and queries.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDuplicateID indicates that two entities in the model share an id.
	// Node ids form a single namespace in the compiled graph, so ids must be
	// unique across all entity collections. Returned by Compile.
	//
	// Example:
	//	if _, err := graph.Compile(model); errors.Is(err, graph.ErrDuplicateID) {
	//	    log.Error("model has colliding ids", "error", err)
	//	}
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrUnresolvedReference indicates that a reference field names an id
	// absent from the model's collection of the expected kind. Returned by
	// Compile before any edges are materialized; no partial graph is built.
	//
	// The wrapped message names the offending entity, the field, and the
	// missing target id.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrCycle indicates that a refines or achieves chain revisits an entity.
	// Returned by Compile; the wrapped message reports the cycle's id
	// sequence.
	ErrCycle = errors.New("cycle detected")

	// ErrNotFound indicates that a query named an id not present in the
	// compiled graph. Queries never return an empty result for unknown ids.
	//
	// Example:
	//	_, err := g.MitigationsFor(ctx, "nonexistent")
	//	if errors.Is(err, graph.ErrNotFound) {
	//	    log.Error("unknown attack", "error", err)
	//	}
	ErrNotFound = errors.New("node not found")
)
