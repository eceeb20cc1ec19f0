package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Region defaults.
const (
	// DefaultMargin keeps node centers away from the edges of a 2D canvas.
	DefaultMargin = 30.0

	// DefaultSide is the edge length of the default 3D scene cube.
	DefaultSide = 40.0

	// DefaultMargin3D is the clamp margin used by [Cube].
	DefaultMargin3D = 2.0
)

// Position is a point in layout space with one coordinate per region axis.
type Position []float64

// X returns the first coordinate.
func (p Position) X() float64 { return p.at(0) }

// Y returns the second coordinate.
func (p Position) Y() float64 { return p.at(1) }

// Z returns the third coordinate, or 0 for planar positions.
func (p Position) Z() float64 { return p.at(2) }

func (p Position) at(i int) float64 {
	if i < len(p) {
		return p[i]
	}
	return 0
}

// Distance returns the Euclidean distance between p and q over their shared axes.
func (p Position) Distance(q Position) float64 {
	var sum float64
	for i := range min(len(p), len(q)) {
		d := q[i] - p[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Node is a graph vertex as seen by the engine.
// Group is opaque to the simulation; only initializers read it.
type Node struct {
	ID    string
	Group string
}

// Edge connects two node ids. Direction does not matter to the layout.
type Edge struct {
	From string
	To   string
}

// Graph is the engine input. It does not need to be connected.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Region is the bounding box positions are confined to.
// Node centers are kept within [Margin, Extents[i]-Margin] on every axis.
type Region struct {
	Extents []float64
	Margin  float64
}

// Rect returns a 2D region with the default margin.
func Rect(width, height float64) Region {
	return Region{Extents: []float64{width, height}, Margin: DefaultMargin}
}

// Cube returns a 3D region with equal extents and [DefaultMargin3D].
func Cube(side float64) Region {
	return Region{Extents: []float64{side, side, side}, Margin: DefaultMargin3D}
}

// Dims returns the number of axes.
func (r Region) Dims() int { return len(r.Extents) }

// Validate checks dimensionality, extents and margin.
func (r Region) Validate() error {
	if d := r.Dims(); d != 2 && d != 3 {
		return errors.New(errors.ErrCodeInvalidRegion, "region must have 2 or 3 axes, got %d", d)
	}
	for i, e := range r.Extents {
		if err := errors.ValidateExtent(i, e); err != nil {
			return err
		}
	}
	return errors.ValidateMargin(r.Margin, r.Extents)
}

// Center returns the midpoint of the region.
func (r Region) Center() Position {
	p := make(Position, r.Dims())
	for i, e := range r.Extents {
		p[i] = e / 2
	}
	return p
}

// Bounds returns the clamp interval of one axis.
func (r Region) Bounds(axis int) (lo, hi float64) {
	return r.Margin, r.Extents[axis] - r.Margin
}

// Measure returns the area (2D) or volume (3D) of the region.
func (r Region) Measure() float64 {
	m := 1.0
	for _, e := range r.Extents {
		m *= e
	}
	return m
}

// OptimalDistance returns the spacing constant k for n nodes:
// the square root of area/n in 2D, the cube root of volume/n in 3D.
func (r Region) OptimalDistance(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Pow(r.Measure()/float64(n), 1/float64(r.Dims()))
}

// Contains reports whether p lies inside the clamp box (inclusive).
func (r Region) Contains(p Position) bool {
	if len(p) != r.Dims() {
		return false
	}
	for i, v := range p {
		lo, hi := r.Bounds(i)
		if v < lo || v > hi {
			return false
		}
	}
	return true
}

// clamp forces p into the clamp box in place. NaN coordinates, which only
// arise from caller-supplied initial positions or overflowing constants,
// are reset to the axis center.
func (r Region) clamp(p Position) {
	for i := range p {
		lo, hi := r.Bounds(i)
		if math.IsNaN(p[i]) {
			p[i] = r.Extents[i] / 2
			continue
		}
		p[i] = math.Max(lo, math.Min(hi, p[i]))
	}
}

// randomPoint draws a point uniformly from the clamp box.
func (r Region) randomPoint(rng *rand.Rand) Position {
	p := make(Position, r.Dims())
	for i := range p {
		lo, hi := r.Bounds(i)
		p[i] = lo + rng.Float64()*(hi-lo)
	}
	return p
}

func (r Region) minExtent() float64 {
	m := math.Inf(1)
	for _, e := range r.Extents {
		m = math.Min(m, e)
	}
	return m
}
