package encompass

import (
	"sort"

	"github.com/karim/itqan/internal/content"
)

type itemPair struct {
	a, b string // a < b
}

// CooccurrenceEdges analyzes which items appear together in the same
// exercise across a corpus and converts the pair counts to weighted
// bidirectional edges. Weights are normalized to [0,1] by the most
// frequent pair; pairs below minWeight are dropped.
func CooccurrenceEdges(exercises []content.Exercise, minWeight float64) []ManualEdge {
	counts := make(map[itemPair]int)

	for _, ex := range exercises {
		// Dedup item ids within one exercise before pairing.
		unique := make([]string, 0, len(ex.ItemIDs))
		seen := make(map[string]bool, len(ex.ItemIDs))
		for _, id := range ex.ItemIDs {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			unique = append(unique, id)
		}

		for i := 0; i < len(unique); i++ {
			for j := i + 1; j < len(unique); j++ {
				a, b := unique[i], unique[j]
				if b < a {
					a, b = b, a
				}
				counts[itemPair{a, b}]++
			}
		}
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return nil
	}

	var edges []ManualEdge
	for pair, c := range counts {
		weight := float64(c) / float64(maxCount)
		if weight > 1 {
			weight = 1
		}
		if weight < minWeight {
			continue
		}
		edges = append(edges,
			ManualEdge{From: pair.a, To: pair.b, Weight: weight},
			ManualEdge{From: pair.b, To: pair.a, Weight: weight},
		)
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
