package force

import (
	"math"
	"math/rand/v2"
)

// Initializer returns the starting position of every node, in input order.
// The engine clamps whatever it returns, so an initializer may ignore the
// margin. It must return exactly one position per node with one coordinate
// per region axis.
type Initializer func(nodes []Node, r Region, rng *rand.Rand) []Position

// Uniform places every node uniformly at random inside the clamp box.
func Uniform(nodes []Node, r Region, rng *rand.Rand) []Position {
	out := make([]Position, len(nodes))
	for i := range nodes {
		out[i] = r.randomPoint(rng)
	}
	return out
}

// Anchor defaults used by the skill graph.
const (
	DefaultAnchorRadius = 0.15
	DefaultAnchorJitter = 50.0
)

// SkillAnchors places the four skill categories in distinct parts of the
// canvas, as fractions of each extent.
var SkillAnchors = map[string][]float64{
	"frontend":      {0.25, 0.3},
	"backend":       {0.75, 0.3},
	"cloud":         {0.5, 0.7},
	"system-design": {0.5, 0.1},
}

// GroupAnchors seeds each group on a ring around its anchor.
//
// Anchors are fractions of the region extents; a missing trailing axis
// defaults to the middle. The ring radius is radius × the smallest extent and
// members are spaced 2π/len(group) apart in the plane of the first two axes.
// Every coordinate then receives uniform noise in ±jitter/2. Nodes whose group
// has no anchor fall back to [Uniform].
func GroupAnchors(anchors map[string][]float64, radius, jitter float64) Initializer {
	return func(nodes []Node, r Region, rng *rand.Rand) []Position {
		out := make([]Position, len(nodes))
		ringRadius := radius * r.minExtent()

		for _, members := range groupsInOrder(nodes) {
			anchor, ok := anchors[nodes[members[0]].Group]
			for slot, idx := range members {
				if !ok {
					out[idx] = r.randomPoint(rng)
					continue
				}
				p := make(Position, r.Dims())
				for a, extent := range r.Extents {
					frac := 0.5
					if a < len(anchor) {
						frac = anchor[a]
					}
					p[a] = frac * extent
				}
				angle := 2 * math.Pi * float64(slot) / float64(len(members))
				p[0] += ringRadius * math.Cos(angle)
				p[1] += ringRadius * math.Sin(angle)
				for a := range p {
					p[a] += (rng.Float64() - 0.5) * jitter
				}
				out[idx] = p
			}
		}
		return out
	}
}

// DefaultLayerPadding is the horizontal inset of [Layers] rows.
const DefaultLayerPadding = 100.0

// ArchitectureRows maps architecture tiers to their row coordinate.
var ArchitectureRows = map[string]float64{
	"client":   80,
	"api":      200,
	"auth":     200,
	"cache":    320,
	"database": 440,
	"cloud":    560,
}

// Layers arranges nodes in horizontal rows.
//
// The row of a node is rows[node.Group] on the second axis. Nodes sharing a
// row coordinate are spread evenly along the first axis between padding and
// extent - padding, in input order; a row holding a single node is centered.
// Remaining axes sit at the region center. Nodes whose group has no row fall
// back to [Uniform]. With zero iterations this is a deterministic tiered
// diagram.
func Layers(rows map[string]float64, padding float64) Initializer {
	return func(nodes []Node, r Region, rng *rand.Rand) []Position {
		out := make([]Position, len(nodes))
		byRow := make(map[float64][]int)
		var order []float64

		for i, n := range nodes {
			y, ok := rows[n.Group]
			if !ok {
				out[i] = r.randomPoint(rng)
				continue
			}
			if _, seen := byRow[y]; !seen {
				order = append(order, y)
			}
			byRow[y] = append(byRow[y], i)
		}

		width := r.Extents[0]
		for _, y := range order {
			members := byRow[y]
			spacing := 0.0
			if len(members) > 1 {
				spacing = (width - 2*padding) / float64(len(members)-1)
			}
			for slot, idx := range members {
				p := r.Center()
				p[1] = y
				if len(members) == 1 {
					p[0] = width / 2
				} else {
					p[0] = padding + float64(slot)*spacing
				}
				out[idx] = p
			}
		}
		return out
	}
}

// groupsInOrder buckets node indices by group, ordered by first appearance.
func groupsInOrder(nodes []Node) [][]int {
	index := make(map[string]int)
	var groups [][]int
	for i, n := range nodes {
		g, ok := index[n.Group]
		if !ok {
			g = len(groups)
			index[n.Group] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
