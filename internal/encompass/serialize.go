package encompass

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalGraph serializes a graph to its canonical JSON form.
// Adjacency slices are already target-sorted, so output is stable.
func MarshalGraph(g *Graph) ([]byte, error) {
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	return raw, nil
}

// UnmarshalGraph parses serialized graph text. Malformed input returns
// the parse error; edges are re-sorted so a hand-edited file still
// yields deterministic iteration.
func UnmarshalGraph(raw []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	if g.Encompasses == nil {
		g.Encompasses = make(map[string][]Edge)
	}
	if g.EncompassedBy == nil {
		g.EncompassedBy = make(map[string][]Edge)
	}
	for _, view := range []map[string][]Edge{g.Encompasses, g.EncompassedBy} {
		for id, edges := range view {
			sort.Slice(edges, func(i, j int) bool { return edges[i].Target < edges[j].Target })
			view[id] = edges
		}
	}
	return &g, nil
}
