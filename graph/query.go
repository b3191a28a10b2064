package graph

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/threatgraph/threat"
)

// AppliedMitigation pairs a mitigation with the rationale of its application
// to a specific attack, and whether the application was inherited from the
// attack's pattern.
type AppliedMitigation struct {
	// Mitigation is a copy of the applied mitigation record.
	Mitigation threat.Mitigation `json:"mitigation"`

	// Rationale explains how this mitigation helps against the attack.
	Rationale string `json:"rationale"`

	// Inherited is true when the application came from the attack's pattern
	// chain rather than the attack itself.
	Inherited bool `json:"inherited"`
}

// AttacksTargeting returns the ids of all attacks that target the given
// property, directly or through any property that transitively refines it.
// An attack targeting a sub-property counts as targeting every ancestor of
// that sub-property.
//
// Returns ErrNotFound if the id is absent from the graph or is not a
// property. Returns an empty slice, not an error, when no attacks match.
func (g *Graph) AttacksTargeting(ctx context.Context, propertyID string) ([]string, error) {
	_, span := g.tracer.Start(ctx, "graph.AttacksTargeting", trace.WithAttributes(
		attribute.String("property.id", propertyID),
	))
	defer span.End()

	if err := g.requireKind(propertyID, NodeProperty); err != nil {
		return nil, spanErr(span, err)
	}

	// The property itself plus every property refining it, transitively.
	targets := map[string]bool{propertyID: true}
	queue := []string{propertyID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range g.in[id] {
			if e.Kind != EdgeRefines || targets[e.From] {
				continue
			}
			if n, ok := g.node(e.From); !ok || n.Kind != NodeProperty {
				continue
			}
			targets[e.From] = true
			queue = append(queue, e.From)
		}
	}

	result := make([]string, 0)
	for _, attackID := range g.attackIDs {
		for _, e := range g.out[attackID] {
			if e.Kind == EdgeTargets && targets[e.To] {
				result = append(result, attackID)
				break
			}
		}
	}

	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

// AttacksInContext returns the ids of all attacks with an occurs_in edge to
// the given context. There is no inheritance over contexts.
//
// Returns ErrNotFound if the id is absent from the graph or is not a
// context.
func (g *Graph) AttacksInContext(ctx context.Context, contextID string) ([]string, error) {
	_, span := g.tracer.Start(ctx, "graph.AttacksInContext", trace.WithAttributes(
		attribute.String("context.id", contextID),
	))
	defer span.End()

	if err := g.requireKind(contextID, NodeContext); err != nil {
		return nil, spanErr(span, err)
	}

	result := make([]string, 0)
	for _, e := range g.in[contextID] {
		if e.Kind == EdgeOccursIn {
			result = append(result, e.From)
		}
	}
	sort.Strings(result)

	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

// MitigationsFor returns the full de-duplicated mitigation set of an attack:
// direct applications plus the ones inherited from its pattern chain,
// already materialized at compile time. Results are sorted by mitigation id.
//
// Returns ErrNotFound if the id is absent from the graph or is not an
// attack.
func (g *Graph) MitigationsFor(ctx context.Context, attackID string) ([]AppliedMitigation, error) {
	_, span := g.tracer.Start(ctx, "graph.MitigationsFor", trace.WithAttributes(
		attribute.String("attack.id", attackID),
	))
	defer span.End()

	if err := g.requireKind(attackID, NodeAttack); err != nil {
		return nil, spanErr(span, err)
	}

	result := make([]AppliedMitigation, 0)
	for _, e := range g.out[attackID] {
		if e.Kind != EdgeMitigatedBy {
			continue
		}
		result = append(result, AppliedMitigation{
			Mitigation: *g.mitigations[e.To],
			Rationale:  e.Rationale,
			Inherited:  e.Inherited,
		})
	}

	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

// OutstandingOptions configures which attacks OutstandingAttacks reports as
// lacking mitigation coverage. The zero value is the strictest policy; use
// DefaultOutstandingOptions for the conventional one.
type OutstandingOptions struct {
	// CountNonCore controls whether non-core mitigations count as coverage.
	// When false, an attack whose only mitigations have scope non-core
	// (including the conventional OutOfScope mitigation) is reported as
	// outstanding.
	CountNonCore bool

	// IncludeAchieved controls whether attacks that are achieved by child
	// attacks are eligible. Such attacks are aggregation points whose
	// coverage lives on their children; by default they are excluded.
	IncludeAchieved bool

	// Filter is an optional CEL expression evaluated against each candidate
	// attack. Available variables: id, name, pattern (the variant_of id, or
	// ""), contexts (list of occurs_in ids), targets (list of property ids).
	// The expression must evaluate to a boolean; candidates evaluating to
	// false are dropped.
	//
	// Example: `pattern != "" && "IN" in contexts`
	Filter string
}

// DefaultOutstandingOptions returns the conventional outstanding-attack
// policy: a mitigation of any scope counts as coverage, and attacks achieved
// by children are excluded.
func DefaultOutstandingOptions() OutstandingOptions {
	return OutstandingOptions{CountNonCore: true}
}

// OutstandingAttacks returns the ids of all attacks without effective
// mitigation coverage under the given policy: no mitigated_by edge whose
// mitigation counts as coverage, direct or inherited.
//
// Returns an error only if the filter expression is invalid or fails to
// evaluate; an empty result is a valid outcome.
func (g *Graph) OutstandingAttacks(ctx context.Context, opts OutstandingOptions) ([]string, error) {
	_, span := g.tracer.Start(ctx, "graph.OutstandingAttacks", trace.WithAttributes(
		attribute.Bool("opts.count_non_core", opts.CountNonCore),
		attribute.Bool("opts.include_achieved", opts.IncludeAchieved),
	))
	defer span.End()

	var filter *attackFilter
	if opts.Filter != "" {
		f, err := compileAttackFilter(opts.Filter)
		if err != nil {
			return nil, spanErr(span, err)
		}
		filter = f
	}

	result := make([]string, 0)
	for _, attackID := range g.attackIDs {
		if g.covered(attackID, opts.CountNonCore) {
			continue
		}
		if !opts.IncludeAchieved && g.achievedByChildren(attackID) {
			continue
		}
		if filter != nil {
			ok, err := filter.match(g.attacks[attackID])
			if err != nil {
				return nil, spanErr(span, err)
			}
			if !ok {
				continue
			}
		}
		result = append(result, attackID)
	}

	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

// covered reports whether the attack has at least one mitigation edge that
// counts as coverage under the scope policy.
func (g *Graph) covered(attackID string, countNonCore bool) bool {
	for _, e := range g.out[attackID] {
		if e.Kind != EdgeMitigatedBy {
			continue
		}
		if countNonCore || g.mitigations[e.To].Scope != threat.ScopeNonCore {
			return true
		}
	}
	return false
}

// achievedByChildren reports whether any child attack achieves this one.
func (g *Graph) achievedByChildren(attackID string) bool {
	for _, e := range g.in[attackID] {
		if e.Kind == EdgeAchieves {
			return true
		}
	}
	return false
}

// spanErr records the error on the span and returns it unchanged.
func spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
