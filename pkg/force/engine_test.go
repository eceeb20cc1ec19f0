package force

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

func chain(n int) Graph {
	var g Graph
	for i := range n {
		g.Nodes = append(g.Nodes, Node{ID: fmt.Sprintf("n%d", i)})
		if i > 0 {
			g.Edges = append(g.Edges, Edge{From: fmt.Sprintf("n%d", i-1), To: fmt.Sprintf("n%d", i)})
		}
	}
	return g
}

func samePositions(t *testing.T, got, want map[string]Position) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for id, w := range want {
		g, ok := got[id]
		if !ok {
			t.Fatalf("missing position for %q", id)
		}
		for a := range w {
			if g[a] != w[a] {
				t.Errorf("%s[%d] = %v, want %v", id, a, g[a], w[a])
			}
		}
	}
}

func TestCompute_KeySet(t *testing.T) {
	g := chain(7)
	g.Nodes = append(g.Nodes, Node{ID: "isolated"})

	pos, err := Compute(g, Rect(800, 600), WithSeed(1))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(pos) != len(g.Nodes) {
		t.Errorf("len(pos) = %d, want %d", len(pos), len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if _, ok := pos[n.ID]; !ok {
			t.Errorf("missing position for %q", n.ID)
		}
	}
}

func TestCompute_StaysInRegion(t *testing.T) {
	regions := []Region{
		Rect(800, 600),
		Rect(200, 1000),
		{Extents: []float64{50, 50}, Margin: 0},
		{Extents: []float64{100, 100}, Margin: 50},
		Cube(40),
		{Extents: []float64{10, 20, 30}, Margin: 1},
	}
	opts := [][]Option{
		nil,
		{WithTemperature(1e6)},
		{WithCooling(1), WithIterations(200)},
		{WithRepulsion(1e9), WithAttraction(5)},
	}

	for ri, r := range regions {
		for oi, o := range opts {
			for seed := range uint64(5) {
				pos, err := Compute(chain(12), r, append(o, WithSeed(seed))...)
				if err != nil {
					t.Fatalf("region %d opts %d: Compute() error: %v", ri, oi, err)
				}
				for id, p := range pos {
					if len(p) != r.Dims() {
						t.Fatalf("%s has %d coordinates, want %d", id, len(p), r.Dims())
					}
					if !r.Contains(p) {
						t.Errorf("region %d opts %d seed %d: %s = %v outside clamp box", ri, oi, seed, id, p)
					}
				}
			}
		}
	}
}

func TestCompute_Empty(t *testing.T) {
	pos, err := Compute(Graph{}, Rect(800, 600))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("len(pos) = %d, want 0", len(pos))
	}
}

func TestCompute_SingleNode(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   Position
	}{
		{"rect", Rect(800, 600), Position{400, 300}},
		{"cube", Cube(40), Position{20, 20, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(3, 4))
			pos, err := Compute(Graph{Nodes: []Node{{ID: "solo"}}}, tt.region, WithRand(rng))
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			samePositions(t, pos, map[string]Position{"solo": tt.want})

			fresh := rand.New(rand.NewPCG(3, 4))
			if rng.Uint64() != fresh.Uint64() {
				t.Error("single node layout consumed randomness")
			}
		})
	}
}

func TestCompute_UnknownEndpoints(t *testing.T) {
	base := chain(4)
	withGhosts := chain(4)
	withGhosts.Edges = append(withGhosts.Edges,
		Edge{From: "n0", To: "ghost"},
		Edge{From: "ghost", To: "n3"},
		Edge{From: "a", To: "b"},
	)

	want, err := Compute(base, Rect(800, 600), WithSeed(9))
	if err != nil {
		t.Fatalf("Compute(base) error: %v", err)
	}
	got, err := Compute(withGhosts, Rect(800, 600), WithSeed(9))
	if err != nil {
		t.Fatalf("Compute(withGhosts) error: %v", err)
	}
	samePositions(t, got, want)
}

func TestCompute_EdgeNormalization(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}
	want, err := Compute(g, Rect(800, 600), WithSeed(5))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	tests := []struct {
		name  string
		edges []Edge
	}{
		{"reversed", []Edge{{From: "b", To: "a"}}},
		{"duplicated", []Edge{{From: "a", To: "b"}, {From: "a", To: "b"}}},
		{"both directions", []Edge{{From: "a", To: "b"}, {From: "b", To: "a"}}},
		{"self loop", []Edge{{From: "a", To: "b"}, {From: "c", To: "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(Graph{Nodes: g.Nodes, Edges: tt.edges}, Rect(800, 600), WithSeed(5))
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			samePositions(t, got, want)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	g := chain(10)

	a, _ := Compute(g, Rect(800, 600), WithSeed(42))
	b, _ := Compute(g, Rect(800, 600), WithSeed(42))
	samePositions(t, a, b)

	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
	c, _ := Compute(g, Rect(800, 600), WithRand(rng))
	samePositions(t, c, a)

	d, _ := Compute(g, Rect(800, 600), WithSeed(43))
	differs := false
	for id := range a {
		if a[id].Distance(d[id]) > 1e-6 {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical layouts")
	}
}

func TestCompute_PairRestsNearOptimalDistance(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	for _, r := range []Region{Rect(800, 600), Cube(40)} {
		k := r.OptimalDistance(2)
		for seed := range uint64(10) {
			pos, err := Compute(g, r, WithSeed(seed))
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			d := pos["a"].Distance(pos["b"])
			if math.Abs(d-k) > 0.25*k {
				t.Errorf("%dD seed %d: distance = %.2f, want within 25%% of k = %.2f", r.Dims(), seed, d, k)
			}
		}
	}
}

func TestCompute_EdgelessGraphSpreads(t *testing.T) {
	var g Graph
	for i := range 10 {
		g.Nodes = append(g.Nodes, Node{ID: fmt.Sprintf("n%d", i)})
	}
	r := Rect(800, 600)

	var before, after float64
	const trials = 20
	for seed := range uint64(trials) {
		initial, err := Compute(g, r, WithSeed(seed), WithIterations(0))
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		final, err := Compute(g, r, WithSeed(seed))
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		before += Measure(g, r, initial).MinSeparation
		after += Measure(g, r, final).MinSeparation
	}
	if after <= before {
		t.Errorf("mean min separation after layout = %.1f, want more than initial %.1f", after/trials, before/trials)
	}
}

// A connected pair should end up closer together than either is to an
// unconnected third node.
func TestCompute_ConnectedPairCloserThanStranger(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	closer := 0
	const trials = 50
	for seed := range uint64(trials) {
		pos, err := Compute(g, Rect(800, 600), WithSeed(seed))
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		if pos["a"].Distance(pos["b"]) < pos["a"].Distance(pos["c"]) {
			closer++
		}
	}
	if closer < trials*4/5 {
		t.Errorf("d(a,b) < d(a,c) in %d/%d runs, want at least %d", closer, trials, trials*4/5)
	}
}

func TestCompute_CoincidentNodes(t *testing.T) {
	stacked := func(nodes []Node, r Region, _ *rand.Rand) []Position {
		out := make([]Position, len(nodes))
		for i := range out {
			out[i] = r.Center()
		}
		return out
	}

	for _, r := range []Region{Rect(800, 600), Cube(40)} {
		g := chain(2)
		pos, err := Compute(g, r, WithSeed(2), WithInitializer(stacked))
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		for id, p := range pos {
			for _, v := range p {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("%s = %v is not finite", id, p)
				}
			}
		}
		if q := Measure(g, r, pos); q.MinSeparation <= 0 {
			t.Errorf("%dD: nodes still coincide, min separation = %v", r.Dims(), q.MinSeparation)
		}
	}
}

func TestCompute_ZeroIterationsKeepsPlacement(t *testing.T) {
	g := chain(6)
	r := Rect(800, 600)

	pos, err := Compute(g, r, WithSeed(11), WithIterations(0))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	initial := Uniform(g.Nodes, r, rand.New(rand.NewPCG(11, 11^0xdeadbeef)))
	for i, n := range g.Nodes {
		if pos[n.ID].Distance(initial[i]) != 0 {
			t.Errorf("%s = %v, want initial %v", n.ID, pos[n.ID], initial[i])
		}
	}
}

func TestCompute_Errors(t *testing.T) {
	g := chain(3)

	tests := []struct {
		name   string
		graph  Graph
		region Region
		opts   []Option
		code   errors.Code
	}{
		{"zero width", g, Rect(0, 600), nil, errors.ErrCodeInvalidRegion},
		{"negative height", g, Rect(800, -1), nil, errors.ErrCodeInvalidRegion},
		{"nan extent", g, Region{Extents: []float64{math.NaN(), 10}}, nil, errors.ErrCodeInvalidRegion},
		{"infinite extent", g, Cube(math.Inf(1)), nil, errors.ErrCodeInvalidRegion},
		{"one axis", g, Region{Extents: []float64{10}}, nil, errors.ErrCodeInvalidRegion},
		{"four axes", g, Region{Extents: []float64{10, 10, 10, 10}}, nil, errors.ErrCodeInvalidRegion},
		{"margin too large", g, Region{Extents: []float64{100, 50}, Margin: 30}, nil, errors.ErrCodeInvalidRegion},
		{"negative iterations", g, Rect(800, 600), []Option{WithIterations(-1)}, errors.ErrCodeInvalidOptions},
		{"zero cooling", g, Rect(800, 600), []Option{WithCooling(0)}, errors.ErrCodeInvalidOptions},
		{"cooling above one", g, Rect(800, 600), []Option{WithCooling(1.5)}, errors.ErrCodeInvalidOptions},
		{"negative temperature", g, Rect(800, 600), []Option{WithTemperature(-1)}, errors.ErrCodeInvalidOptions},
		{"zero step", g, Rect(800, 600), []Option{WithStep(0)}, errors.ErrCodeInvalidOptions},
		{"zero min distance", g, Rect(800, 600), []Option{WithMinDistance(0)}, errors.ErrCodeInvalidOptions},
		{"duplicate id", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, Rect(800, 600), nil, errors.ErrCodeInvalidGraph},
		{"empty id", Graph{Nodes: []Node{{ID: ""}}}, Rect(800, 600), nil, errors.ErrCodeInvalidGraph},
		{"short initializer", g, Rect(800, 600), []Option{WithInitializer(func([]Node, Region, *rand.Rand) []Position {
			return nil
		})}, errors.ErrCodeInvalidOptions},
		{"planar initializer in 3D", g, Cube(40), []Option{WithInitializer(func(nodes []Node, _ Region, _ *rand.Rand) []Position {
			out := make([]Position, len(nodes))
			for i := range out {
				out[i] = Position{1, 1}
			}
			return out
		})}, errors.ErrCodeInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := Compute(tt.graph, tt.region, tt.opts...)
			if err == nil {
				t.Fatalf("Compute() = %v, want error", pos)
			}
			if pos != nil {
				t.Errorf("Compute() returned positions alongside error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestLayoutHelpers(t *testing.T) {
	g := chain(3)

	flat, err := Layout2D(g, 400, 300, WithSeed(1))
	if err != nil {
		t.Fatalf("Layout2D() error: %v", err)
	}
	if got := len(flat["n0"]); got != 2 {
		t.Errorf("Layout2D coordinates = %d, want 2", got)
	}

	deep, err := Layout3D(g, DefaultSide, WithSeed(1))
	if err != nil {
		t.Fatalf("Layout3D() error: %v", err)
	}
	if got := len(deep["n0"]); got != 3 {
		t.Errorf("Layout3D coordinates = %d, want 3", got)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Group: "frontend"}, {ID: "b", Group: "backend"}},
		Edges: []Edge{{From: "b", To: "a"}},
	}
	if _, err := Compute(g, Rect(800, 600), WithSeed(1)); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if g.Nodes[0] != (Node{ID: "a", Group: "frontend"}) || g.Edges[0] != (Edge{From: "b", To: "a"}) {
		t.Errorf("input graph mutated: %+v", g)
	}
}
