package force

import (
	"math"
	"testing"
)

func TestMeasure(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}, {From: "a", To: "ghost"}},
	}
	pos := map[string]Position{
		"a": {0, 0},
		"b": {3, 4},
		"c": {0, 10},
	}
	r := Rect(100, 100)
	q := Measure(g, r, pos, WithRepulsion(10), WithAttraction(0.3))

	if q.MinSeparation != 5 {
		t.Errorf("MinSeparation = %v, want 5", q.MinSeparation)
	}
	if q.MeanEdgeLength != 5 {
		t.Errorf("MeanEdgeLength = %v, want 5", q.MeanEdgeLength)
	}

	k := r.OptimalDistance(3)
	bc := math.Sqrt(9 + 36)
	want := 10/5.0 + 10/10.0 + 10/bc + 0.3*125/(3*k)
	if math.Abs(q.Energy-want) > 1e-9 {
		t.Errorf("Energy = %v, want %v", q.Energy, want)
	}
}

func TestMeasure_Degenerate(t *testing.T) {
	r := Rect(100, 100)
	if q := Measure(Graph{}, r, nil); q != (Quality{}) {
		t.Errorf("Measure(empty) = %+v, want zero", q)
	}

	g := Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}}
	q := Measure(g, r, map[string]Position{"a": {50, 50}})
	if q != (Quality{}) {
		t.Errorf("Measure(one placed) = %+v, want zero", q)
	}
}

func TestMeasure_PrefersBalancedLayout(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	r := Rect(800, 600)
	k := r.OptimalDistance(2)

	balanced := Measure(g, r, map[string]Position{"a": {100, 300}, "b": {100 + k, 300}})
	cramped := Measure(g, r, map[string]Position{"a": {100, 300}, "b": {110, 300}})
	stretched := Measure(g, r, map[string]Position{"a": {30, 30}, "b": {770, 570}})

	if balanced.Energy >= cramped.Energy || balanced.Energy >= stretched.Energy {
		t.Errorf("balanced energy %v should be below cramped %v and stretched %v",
			balanced.Energy, cramped.Energy, stretched.Energy)
	}
}
