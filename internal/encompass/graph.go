// Package encompass builds and queries the weighted directed graph that
// propagates practice credit between lessons and learning items.
// An edge a→b with weight w means practicing a implicitly exercises b
// with confidence w.
package encompass

import "sort"

// Edge is one outgoing or incoming adjacency entry.
type Edge struct {
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph holds two adjacency views over the same edge set.
// It is immutable once returned by a Builder.
type Graph struct {
	Encompasses   map[string][]Edge `json:"encompasses"`
	EncompassedBy map[string][]Edge `json:"encompassedBy"`
}

// Builder accumulates edges with max-weight dedup before freezing them
// into a Graph. The intermediate map-of-maps form makes the merge rule
// cheap; Finalize produces the sorted adjacency slices.
type Builder struct {
	out map[string]map[string]float64
	in  map[string]map[string]float64
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		out: make(map[string]map[string]float64),
		in:  make(map[string]map[string]float64),
	}
}

// AddEdge inserts a directed edge. Self-loops and weights below
// minWeight are rejected. If the ordered pair already has an edge, the
// larger weight wins. Both adjacency views are updated together.
func (b *Builder) AddEdge(from, to string, weight, minWeight float64) {
	if from == to || from == "" || to == "" {
		return
	}
	if weight < minWeight {
		return
	}
	if existing, ok := b.out[from][to]; ok && existing >= weight {
		return
	}
	if b.out[from] == nil {
		b.out[from] = make(map[string]float64)
	}
	if b.in[to] == nil {
		b.in[to] = make(map[string]float64)
	}
	b.out[from][to] = weight
	b.in[to][from] = weight
}

// Finalize freezes the accumulated edges into an immutable Graph with
// deterministic (target-sorted) adjacency order.
func (b *Builder) Finalize() *Graph {
	return &Graph{
		Encompasses:   freeze(b.out),
		EncompassedBy: freeze(b.in),
	}
}

func freeze(m map[string]map[string]float64) map[string][]Edge {
	result := make(map[string][]Edge, len(m))
	for id, targets := range m {
		edges := make([]Edge, 0, len(targets))
		for target, weight := range targets {
			edges = append(edges, Edge{Target: target, Weight: weight})
		}
		sort.Slice(edges, func(i, j int) bool { return edges[i].Target < edges[j].Target })
		result[id] = edges
	}
	return result
}
