package encompass

import (
	"reflect"
	"testing"
)

func chainGraph() *Graph {
	// a →0.6 b →0.6 c →0.3 d
	b := NewBuilder()
	b.AddEdge("a", "b", 0.6, 0)
	b.AddEdge("b", "c", 0.6, 0)
	b.AddEdge("c", "d", 0.3, 0)
	return b.Finalize()
}

func TestAllEncompassed_MultiHopNoDiscount(t *testing.T) {
	// Each edge is filtered on its own weight; a path of two 0.6 edges
	// reaches exactly as far as one 0.6 edge. Intentional: traversal
	// does not compound weights across hops.
	g := chainGraph()
	got := AllEncompassed("a", g, 0.5)
	want := map[string]bool{"b": true, "c": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllEncompassed(a, 0.5) = %v, want %v", got, want)
	}
}

func TestAllEncompassed_LowerThresholdReachesFurther(t *testing.T) {
	g := chainGraph()
	got := AllEncompassed("a", g, 0.2)
	if !got["d"] {
		t.Errorf("d unreachable at threshold 0.2: %v", got)
	}
}

func TestAllEncompassed_ExcludesStartWithoutCycle(t *testing.T) {
	g := chainGraph()
	if got := AllEncompassed("a", g, 0.1); got["a"] {
		t.Error("start id included without a cycle back to it")
	}
}

func TestAllEncompassed_IncludesStartViaCycle(t *testing.T) {
	b := NewBuilder()
	b.AddEdge("a", "b", 0.6, 0)
	b.AddEdge("b", "a", 0.6, 0)
	g := b.Finalize()

	got := AllEncompassed("a", g, 0.5)
	if !got["a"] {
		t.Error("start id reached via cycle must be included")
	}
}

func TestAllEncompassed_UnknownItem(t *testing.T) {
	g := chainGraph()
	if got := AllEncompassed("nope", g, 0.1); len(got) != 0 {
		t.Errorf("unknown item reached %v, want empty set", got)
	}
}

func TestReach_FixedThreshold(t *testing.T) {
	g := chainGraph()
	if got := Reach("a", g); got != 2 {
		t.Errorf("Reach(a) = %d, want 2 (threshold 0.5 stops at c)", got)
	}
	if got := Reach("d", g); got != 0 {
		t.Errorf("Reach(d) = %d, want 0", got)
	}
}

func TestHighReachItems_StableTies(t *testing.T) {
	b := NewBuilder()
	b.AddEdge("x", "p", 0.9, 0)
	b.AddEdge("y", "q", 0.9, 0)
	b.AddEdge("z", "p", 0.9, 0)
	b.AddEdge("z", "q", 0.9, 0)
	g := b.Finalize()

	ranked := HighReachItems([]string{"x", "y", "z"}, g, 0)
	wantIDs := []string{"z", "x", "y"} // z first; x/y tie keeps input order
	for i, want := range wantIDs {
		if ranked[i].ID != want {
			t.Fatalf("ranked[%d] = %s, want %s (full: %v)", i, ranked[i].ID, want, ranked)
		}
	}
}

func TestHighReachItems_TopN(t *testing.T) {
	b := NewBuilder()
	b.AddEdge("x", "p", 0.9, 0)
	g := b.Finalize()

	ranked := HighReachItems([]string{"x", "y", "z"}, g, 2)
	if len(ranked) != 2 {
		t.Fatalf("got %d entries, want 2", len(ranked))
	}
	if ranked[0].ID != "x" || ranked[0].Reach != 1 {
		t.Errorf("ranked[0] = %+v, want x with reach 1", ranked[0])
	}
}
