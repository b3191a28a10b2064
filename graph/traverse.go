package graph

import (
	"fmt"
	"sort"
)

// Ancestors returns every node reachable from the given node by following
// outgoing edges, optionally restricted to the given edge kinds. The start
// node is not included. Results are sorted by id.
//
// Returns ErrNotFound if the id is absent from the graph.
func (g *Graph) Ancestors(id string, kinds ...EdgeKind) ([]string, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, notFound(id)
	}
	return g.reach(id, g.out, func(e Edge) string { return e.To }, kinds), nil
}

// Descendants returns every node reachable from the given node by following
// incoming edges backwards, optionally restricted to the given edge kinds.
// The start node is not included. Results are sorted by id.
//
// Returns ErrNotFound if the id is absent from the graph.
func (g *Graph) Descendants(id string, kinds ...EdgeKind) ([]string, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, notFound(id)
	}
	return g.reach(id, g.in, func(e Edge) string { return e.From }, kinds), nil
}

// Paths returns every simple path from one node to another along outgoing
// edges, optionally restricted to the given edge kinds. Each path is the
// sequence of node ids from source to destination inclusive. Paths are
// returned in lexicographic order; an empty slice means the destination is
// unreachable.
//
// Returns ErrNotFound if either id is absent from the graph.
func (g *Graph) Paths(fromID, toID string, kinds ...EdgeKind) ([][]string, error) {
	if _, ok := g.nodes[fromID]; !ok {
		return nil, notFound(fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil, notFound(toID)
	}

	accept := kindSet(kinds)
	result := make([][]string, 0)
	onPath := map[string]bool{fromID: true}
	path := []string{fromID}

	var walk func(id string)
	walk = func(id string) {
		if id == toID {
			found := make([]string, len(path))
			copy(found, path)
			result = append(result, found)
			return
		}
		for _, e := range g.out[id] {
			if accept != nil && !accept[e.Kind] {
				continue
			}
			if onPath[e.To] {
				continue
			}
			onPath[e.To] = true
			path = append(path, e.To)
			walk(e.To)
			path = path[:len(path)-1]
			onPath[e.To] = false
		}
	}
	walk(fromID)

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return result, nil
}

// reach is a BFS over one adjacency direction, restricted to the given edge
// kinds. The far end of each edge is produced by next.
func (g *Graph) reach(start string, adjacency map[string][]Edge, next func(Edge) string, kinds []EdgeKind) []string {
	accept := kindSet(kinds)
	seen := map[string]bool{start: true}
	queue := []string{start}
	result := make([]string, 0)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range adjacency[id] {
			if accept != nil && !accept[e.Kind] {
				continue
			}
			far := next(e)
			if seen[far] {
				continue
			}
			seen[far] = true
			result = append(result, far)
			queue = append(queue, far)
		}
	}

	sort.Strings(result)
	return result
}

// kindSet returns nil for an empty kind list, meaning "accept all kinds".
func kindSet(kinds []EdgeKind) map[EdgeKind]bool {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[EdgeKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}
