package force

import "math"

// Quality summarizes a computed layout.
type Quality struct {
	// MinSeparation is the smallest distance between any two nodes.
	// Zero when fewer than two nodes are placed.
	MinSeparation float64 `json:"min_separation"`

	// MeanEdgeLength averages the length of every resolvable edge.
	MeanEdgeLength float64 `json:"mean_edge_length"`

	// Energy is the total potential of the force model: k_r/d per pair plus
	// k_a·d³/(3k) per edge. Lower is better balanced.
	Energy float64 `json:"energy"`
}

// Measure scores positions against the force model that produced them.
// Pass the same options given to [Compute] so the constants match. Nodes
// without a position are ignored.
func Measure(g Graph, r Region, pos map[string]Position, opts ...Option) Quality {
	cfg := defaultConfig(r.Dims())
	for _, opt := range opts {
		opt(&cfg)
	}

	placed := make([]Position, 0, len(g.Nodes))
	index := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		if _, dup := index[n.ID]; dup {
			continue
		}
		index[n.ID] = len(placed)
		placed = append(placed, p)
	}

	var q Quality
	if len(placed) == 0 {
		return q
	}
	k := r.OptimalDistance(len(placed))
	kr := cfg.repulsionFor(k)

	q.MinSeparation = math.Inf(1)
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			d := placed[i].Distance(placed[j])
			q.MinSeparation = math.Min(q.MinSeparation, d)
			q.Energy += kr / math.Max(d, cfg.minDistance)
		}
	}
	if math.IsInf(q.MinSeparation, 1) {
		q.MinSeparation = 0
	}

	links := resolveLinks(g.Edges, index)
	for _, l := range links {
		d := placed[l[0]].Distance(placed[l[1]])
		q.MeanEdgeLength += d
		q.Energy += cfg.attraction * d * d * d / (3 * k)
	}
	if len(links) > 0 {
		q.MeanEdgeLength /= float64(len(links))
	}
	return q
}
