package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/threatgraph/threat"
)

// Compile builds a new immutable Graph from the given threat model.
//
// Compilation is one-shot: the whole entity set is validated, every
// cross-reference is resolved, refinement and composition chains are checked
// for cycles, and nodes and edges are emitted in a single pass. Any failure
// aborts the build; no partial graph is ever returned.
//
// Patterns are processed before attacks so that each attack's inherited
// mitigation edges can be materialized from its pattern chain. When an
// attack both inherits a mitigation from its pattern and applies it
// directly, a single edge is kept and the direct rationale wins. Within a
// pattern refinement chain, the nearest pattern's rationale wins.
//
// Possible errors: threat.ErrInvalidEntity, ErrDuplicateID,
// ErrUnresolvedReference, ErrCycle.
func Compile(ctx context.Context, m *threat.Model, opts ...Option) (*Graph, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	tracer := o.tracerProvider.Tracer(tracerName)

	_, span := tracer.Start(ctx, "graph.Compile", trace.WithAttributes(
		attribute.String("model.name", m.Name),
		attribute.Int("model.entities", m.EntityCount()),
	))
	defer span.End()

	g, err := compile(m, tracer)
	if err != nil {
		return nil, spanErr(span, err)
	}

	span.SetAttributes(
		attribute.Int("graph.nodes", g.NodeCount()),
		attribute.Int("graph.edges", g.EdgeCount()),
	)
	return g, nil
}

// compiler holds the per-build working state: entity lookups by id plus the
// nodes and edges emitted so far.
type compiler struct {
	model *threat.Model

	properties  map[string]*threat.Property
	contexts    map[string]*threat.Context
	mitigations map[string]*threat.Mitigation
	patterns    map[string]*threat.AttackPattern
	attacks     map[string]*threat.Attack

	nodes   map[string]Node
	edges   []Edge
	edgeSet map[Edge]bool
}

func compile(m *threat.Model, tracer trace.Tracer) (*Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	c := &compiler{
		model:       m,
		properties:  make(map[string]*threat.Property, len(m.Properties)),
		contexts:    make(map[string]*threat.Context, len(m.Contexts)),
		mitigations: make(map[string]*threat.Mitigation, len(m.Mitigations)),
		patterns:    make(map[string]*threat.AttackPattern, len(m.Patterns)),
		attacks:     make(map[string]*threat.Attack, len(m.Attacks)),
		nodes:       make(map[string]Node, m.EntityCount()),
		edgeSet:     make(map[Edge]bool),
	}

	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	if err := c.checkCycles(); err != nil {
		return nil, err
	}

	c.emitNodes()
	c.emitEdges()

	return c.finish(tracer), nil
}

// index fills the per-kind lookup maps, rejecting duplicate ids. Node ids
// share one namespace in the graph, so uniqueness is enforced across all
// collections, not just within each one.
func (c *compiler) index() error {
	seen := make(map[string]NodeKind, c.model.EntityCount())

	claim := func(id string, kind NodeKind) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q used by both %s and %s", ErrDuplicateID, id, prev, kind)
		}
		seen[id] = kind
		return nil
	}

	for _, p := range c.model.Properties {
		if err := claim(p.ID, NodeProperty); err != nil {
			return err
		}
		c.properties[p.ID] = p
	}
	for _, ctx := range c.model.Contexts {
		if err := claim(ctx.ID, NodeContext); err != nil {
			return err
		}
		c.contexts[ctx.ID] = ctx
	}
	for _, m := range c.model.Mitigations {
		if err := claim(m.ID, NodeMitigation); err != nil {
			return err
		}
		c.mitigations[m.ID] = m
	}
	for _, p := range c.model.Patterns {
		if err := claim(p.ID, NodePattern); err != nil {
			return err
		}
		c.patterns[p.ID] = p
	}
	for _, a := range c.model.Attacks {
		if err := claim(a.ID, NodeAttack); err != nil {
			return err
		}
		c.attacks[a.ID] = a
	}
	return nil
}

// resolve checks that every reference field names an entity present in the
// model's collection of the expected kind. Runs before any edges are
// emitted; a single unresolved reference aborts the whole build.
func (c *compiler) resolve() error {
	for _, p := range c.model.Properties {
		if p.Refines != "" {
			if _, ok := c.properties[p.Refines]; !ok {
				return unresolved(NodeProperty, p.ID, "refines", NodeProperty, p.Refines)
			}
		}
	}

	for _, pat := range c.model.Patterns {
		if pat.Refines != "" {
			if _, ok := c.patterns[pat.Refines]; !ok {
				return unresolved(NodePattern, pat.ID, "refines", NodePattern, pat.Refines)
			}
		}
		for _, ma := range pat.Mitigations {
			if _, ok := c.mitigations[ma.MitigationID]; !ok {
				return unresolved(NodePattern, pat.ID, "mitigations", NodeMitigation, ma.MitigationID)
			}
		}
	}

	for _, a := range c.model.Attacks {
		if a.VariantOf != "" {
			if _, ok := c.patterns[a.VariantOf]; !ok {
				return unresolved(NodeAttack, a.ID, "variant_of", NodePattern, a.VariantOf)
			}
		}
		for _, parent := range a.Achieves {
			if _, ok := c.attacks[parent]; !ok {
				return unresolved(NodeAttack, a.ID, "achieves", NodeAttack, parent)
			}
		}
		for _, prereq := range a.Requires {
			if _, ok := c.attacks[prereq]; !ok {
				return unresolved(NodeAttack, a.ID, "requires", NodeAttack, prereq)
			}
		}
		for _, ctxID := range a.OccursIn {
			if _, ok := c.contexts[ctxID]; !ok {
				return unresolved(NodeAttack, a.ID, "occurs_in", NodeContext, ctxID)
			}
		}
		for _, propID := range a.Targets {
			if _, ok := c.properties[propID]; !ok {
				return unresolved(NodeAttack, a.ID, "targets", NodeProperty, propID)
			}
		}
		for _, ma := range a.Mitigations {
			if _, ok := c.mitigations[ma.MitigationID]; !ok {
				return unresolved(NodeAttack, a.ID, "mitigations", NodeMitigation, ma.MitigationID)
			}
		}
	}
	return nil
}

func unresolved(ownerKind NodeKind, ownerID, field string, targetKind NodeKind, targetID string) error {
	return fmt.Errorf("%w: %s %q field %q names unknown %s %q",
		ErrUnresolvedReference, ownerKind, ownerID, field, targetKind, targetID)
}

// checkCycles rejects cyclic refines chains (properties and patterns) and
// cyclic achieves composition among attacks. Runs before edge
// materialization so the inheritance walks in emitEdges always terminate.
func (c *compiler) checkCycles() error {
	for _, p := range c.model.Properties {
		if cyc := chainCycle(p.ID, func(id string) string {
			return c.properties[id].Refines
		}); cyc != nil {
			return cycleErr("refines", cyc)
		}
	}

	for _, pat := range c.model.Patterns {
		if cyc := chainCycle(pat.ID, func(id string) string {
			return c.patterns[id].Refines
		}); cyc != nil {
			return cycleErr("refines", cyc)
		}
	}

	// Achieves forms a DAG, not a chain; detect cycles with a coloring DFS.
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(c.attacks))

	var visit func(id string, path []string) []string
	visit = func(id string, path []string) []string {
		color[id] = gray
		path = append(path, id)
		for _, parent := range c.attacks[id].Achieves {
			switch color[parent] {
			case gray:
				return append(path, parent)
			case white:
				if cyc := visit(parent, path); cyc != nil {
					return cyc
				}
			}
		}
		color[id] = black
		return nil
	}

	for _, a := range c.model.Attacks {
		if color[a.ID] == white {
			if cyc := visit(a.ID, nil); cyc != nil {
				return cycleErr("achieves", cyc)
			}
		}
	}
	return nil
}

// chainCycle walks a single-parent chain from start and returns the id
// sequence if the chain revisits an entity, nil otherwise.
func chainCycle(start string, next func(string) string) []string {
	seen := make(map[string]bool)
	var path []string
	for id := start; id != ""; id = next(id) {
		path = append(path, id)
		if seen[id] {
			return path
		}
		seen[id] = true
	}
	return nil
}

func cycleErr(relation string, path []string) error {
	return fmt.Errorf("%w: %s chain %s", ErrCycle, relation, strings.Join(path, " -> "))
}

func (c *compiler) emitNodes() {
	for _, p := range c.model.Properties {
		c.nodes[p.ID] = Node{ID: p.ID, Kind: NodeProperty, Name: p.Description}
	}
	for _, ctx := range c.model.Contexts {
		c.nodes[ctx.ID] = Node{ID: ctx.ID, Kind: NodeContext, Name: ctx.Name}
	}
	for _, m := range c.model.Mitigations {
		c.nodes[m.ID] = Node{ID: m.ID, Kind: NodeMitigation, Name: m.Name}
	}
	for _, p := range c.model.Patterns {
		c.nodes[p.ID] = Node{ID: p.ID, Kind: NodePattern, Name: p.Name}
	}
	for _, a := range c.model.Attacks {
		c.nodes[a.ID] = Node{ID: a.ID, Kind: NodeAttack, Name: a.Name}
	}
}

func (c *compiler) emitEdges() {
	for _, p := range c.model.Properties {
		if p.Refines != "" {
			c.add(Edge{From: p.ID, To: p.Refines, Kind: EdgeRefines})
		}
	}

	// Patterns before attacks: attacks materialize inherited mitigation
	// edges from their pattern chains.
	for _, pat := range c.model.Patterns {
		if pat.Refines != "" {
			c.add(Edge{From: pat.ID, To: pat.Refines, Kind: EdgeRefines})
		}
		for _, ma := range pat.Mitigations {
			c.add(Edge{From: pat.ID, To: ma.MitigationID, Kind: EdgeMitigatedBy, Rationale: ma.Rationale})
		}
	}

	for _, a := range c.model.Attacks {
		if a.VariantOf != "" {
			c.add(Edge{From: a.ID, To: a.VariantOf, Kind: EdgeVariantOf})
		}
		for _, parent := range a.Achieves {
			c.add(Edge{From: a.ID, To: parent, Kind: EdgeAchieves})
		}
		for _, prereq := range a.Requires {
			c.add(Edge{From: a.ID, To: prereq, Kind: EdgeRequires})
		}
		for _, ctxID := range a.OccursIn {
			c.add(Edge{From: a.ID, To: ctxID, Kind: EdgeOccursIn})
		}
		for _, propID := range a.Targets {
			c.add(Edge{From: a.ID, To: propID, Kind: EdgeTargets})
		}

		applied := make(map[string]bool, len(a.Mitigations))
		for _, ma := range a.Mitigations {
			if applied[ma.MitigationID] {
				continue
			}
			applied[ma.MitigationID] = true
			c.add(Edge{From: a.ID, To: ma.MitigationID, Kind: EdgeMitigatedBy, Rationale: ma.Rationale})
		}

		if a.VariantOf != "" {
			for _, ma := range c.patternChainMitigations(a.VariantOf) {
				if applied[ma.MitigationID] {
					// Direct application wins the rationale.
					continue
				}
				applied[ma.MitigationID] = true
				c.add(Edge{From: a.ID, To: ma.MitigationID, Kind: EdgeMitigatedBy, Rationale: ma.Rationale, Inherited: true})
			}
		}
	}
}

// patternChainMitigations collects the mitigation applications of a pattern
// and its refines ancestors, nearest pattern first. The chain is acyclic by
// the time this runs.
func (c *compiler) patternChainMitigations(patternID string) []threat.MitigationApplication {
	var result []threat.MitigationApplication
	for id := patternID; id != ""; id = c.patterns[id].Refines {
		result = append(result, c.patterns[id].Mitigations...)
	}
	return result
}

func (c *compiler) add(e Edge) {
	if c.edgeSet[e] {
		return
	}
	c.edgeSet[e] = true
	c.edges = append(c.edges, e)
}

// finish sorts nodes and edges into their canonical order and assembles the
// immutable Graph. Sorting makes the build deterministic regardless of the
// input collections' iteration order.
func (c *compiler) finish(tracer trace.Tracer) *Graph {
	nodeIDs := make([]string, 0, len(c.nodes))
	for id := range c.nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	sort.Slice(c.edges, func(i, j int) bool {
		a, b := c.edges[i], c.edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.To < b.To
	})

	out := make(map[string][]Edge)
	in := make(map[string][]Edge)
	for _, e := range c.edges {
		out[e.From] = append(out[e.From], e)
		in[e.To] = append(in[e.To], e)
	}

	attackIDs := make([]string, 0, len(c.attacks))
	for id := range c.attacks {
		attackIDs = append(attackIDs, id)
	}
	sort.Strings(attackIDs)

	return &Graph{
		BuildID:     uuid.NewString(),
		BuiltAt:     time.Now().UTC(),
		ModelName:   c.model.Name,
		nodes:       c.nodes,
		nodeIDs:     nodeIDs,
		edges:       c.edges,
		out:         out,
		in:          in,
		attacks:     c.attacks,
		mitigations: c.mitigations,
		attackIDs:   attackIDs,
		tracer:      tracer,
	}
}
