package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Compute lays out g inside r and returns one position per node id.
//
// The call fails before doing any work when the region or an option is
// invalid, or when node ids are empty or duplicated. Edges that reference
// unknown ids are ignored.
func Compute(g Graph, r Region, opts ...Option) (map[string]Position, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cfg := defaultConfig(r.Dims())
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	index, err := indexNodes(g.Nodes)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Position, len(g.Nodes))
	switch len(g.Nodes) {
	case 0:
		return out, nil
	case 1:
		out[g.Nodes[0].ID] = r.Center()
		return out, nil
	}

	s := newSimulation(g, index, r, &cfg)
	if err := s.place(); err != nil {
		return nil, err
	}
	s.run()

	for i, n := range g.Nodes {
		out[n.ID] = s.pos[i]
	}
	return out, nil
}

// Layout2D is shorthand for Compute over [Rect](width, height).
func Layout2D(g Graph, width, height float64, opts ...Option) (map[string]Position, error) {
	return Compute(g, Rect(width, height), opts...)
}

// Layout3D is shorthand for Compute over [Cube](side).
func Layout3D(g Graph, side float64, opts ...Option) (map[string]Position, error) {
	return Compute(g, Cube(side), opts...)
}

func indexNodes(nodes []Node) (map[string]int, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, err
		}
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		index[n.ID] = i
	}
	return index, nil
}

// simulation holds the mutable state of one Compute call.
type simulation struct {
	region    Region
	cfg       *config
	nodes     []Node
	links     [][2]int
	k         float64
	repulsion float64
	rng       *rand.Rand

	pos  []Position
	disp [][]float64
	dir  []float64
}

func newSimulation(g Graph, index map[string]int, r Region, cfg *config) *simulation {
	k := r.OptimalDistance(len(g.Nodes))
	dims := r.Dims()
	s := &simulation{
		region:    r,
		cfg:       cfg,
		nodes:     g.Nodes,
		links:     resolveLinks(g.Edges, index),
		k:         k,
		repulsion: cfg.repulsionFor(k),
		rng:       cfg.source(),
		disp:      make([][]float64, len(g.Nodes)),
		dir:       make([]float64, dims),
	}
	for i := range s.disp {
		s.disp[i] = make([]float64, dims)
	}
	return s
}

// resolveLinks maps edges to index pairs, dropping unknown endpoints,
// self-loops and repeated pairs in either direction.
func resolveLinks(edges []Edge, index map[string]int) [][2]int {
	seen := make(map[[2]int]struct{}, len(edges))
	links := make([][2]int, 0, len(edges))
	for _, e := range edges {
		i, okFrom := index[e.From]
		j, okTo := index[e.To]
		if !okFrom || !okTo || i == j {
			continue
		}
		key := [2]int{min(i, j), max(i, j)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, key)
	}
	return links
}

func (s *simulation) place() error {
	initial := s.cfg.init(s.nodes, s.region, s.rng)
	if len(initial) != len(s.nodes) {
		return errors.New(errors.ErrCodeInvalidOptions,
			"initializer returned %d positions for %d nodes", len(initial), len(s.nodes))
	}
	s.pos = make([]Position, len(initial))
	for i, p := range initial {
		if len(p) != s.region.Dims() {
			return errors.New(errors.ErrCodeInvalidOptions,
				"initializer returned %d coordinates for node %q in a %dD region", len(p), s.nodes[i].ID, s.region.Dims())
		}
		s.pos[i] = append(Position(nil), p...)
		s.region.clamp(s.pos[i])
	}
	return nil
}

func (s *simulation) run() {
	temp := s.cfg.temperature
	for range s.cfg.iterations {
		for _, d := range s.disp {
			clear(d)
		}
		s.repel()
		s.attract()

		scale := temp * s.cfg.step
		for i, p := range s.pos {
			for a := range p {
				p[a] += s.disp[i][a] * scale
			}
			s.region.clamp(p)
		}
		temp *= s.cfg.cooling
	}
}

func (s *simulation) repel() {
	for i := range s.pos {
		for j := i + 1; j < len(s.pos); j++ {
			d := s.separation(i, j)
			f := s.repulsion / (d * d)
			for a, u := range s.dir {
				s.disp[i][a] -= u * f
				s.disp[j][a] += u * f
			}
		}
	}
}

func (s *simulation) attract() {
	for _, l := range s.links {
		i, j := l[0], l[1]
		d := s.separation(i, j)
		f := d * d / s.k * s.cfg.attraction
		for a, u := range s.dir {
			s.disp[i][a] += u * f
			s.disp[j][a] -= u * f
		}
	}
}

// separation stores the unit vector from node i to node j in s.dir and
// returns their distance, floored at the configured minimum.
func (s *simulation) separation(i, j int) float64 {
	var sum float64
	for a := range s.dir {
		s.dir[a] = s.pos[j][a] - s.pos[i][a]
		sum += s.dir[a] * s.dir[a]
	}
	dist := math.Sqrt(sum)
	if dist < 1e-9 {
		s.randomDirection()
		return s.cfg.minDistance
	}
	for a := range s.dir {
		s.dir[a] /= dist
	}
	return math.Max(dist, s.cfg.minDistance)
}

// randomDirection fills s.dir with a uniformly distributed unit vector.
func (s *simulation) randomDirection() {
	for {
		var sum float64
		for a := range s.dir {
			s.dir[a] = s.rng.NormFloat64()
			sum += s.dir[a] * s.dir[a]
		}
		if sum > 0 {
			n := math.Sqrt(sum)
			for a := range s.dir {
				s.dir[a] /= n
			}
			return
		}
	}
}
