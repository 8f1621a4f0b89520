package encompass

import "sort"

// ReachThreshold is the fixed edge-weight threshold used for reach scoring.
const ReachThreshold = 0.5

// AllEncompassed returns every id transitively credited by practicing
// itemID, following only edges whose own weight meets minWeight.
//
// Each edge is filtered independently; weight is not discounted across
// hops, so a chain of two 0.6 edges reaches as far as a single one.
// The start id is excluded unless a cycle leads back to it.
func AllEncompassed(itemID string, g *Graph, minWeight float64) map[string]bool {
	result := make(map[string]bool)
	if g == nil {
		return result
	}

	seen := map[string]bool{itemID: true}
	queue := []string{itemID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range g.Encompasses[current] {
			if e.Weight < minWeight {
				continue
			}
			// The start id enters the result only here, via a cycle.
			result[e.Target] = true
			if !seen[e.Target] {
				seen[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}

	return result
}

// Reach returns how many other items benefit from practicing itemID,
// at the fixed reach threshold.
func Reach(itemID string, g *Graph) int {
	return len(AllEncompassed(itemID, g, ReachThreshold))
}

// RankedItem pairs an item id with its reach score.
type RankedItem struct {
	ID    string
	Reach int
}

// HighReachItems ranks ids by reach, descending. Ties keep input order.
// Returns at most topN entries; topN <= 0 returns all.
func HighReachItems(ids []string, g *Graph, topN int) []RankedItem {
	ranked := make([]RankedItem, len(ids))
	for i, id := range ids {
		ranked[i] = RankedItem{ID: id, Reach: Reach(id, g)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Reach > ranked[j].Reach })
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
