package svg

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

// DefaultCanvas3D is the edge length in pixels of the square a 3D layout is
// projected onto.
const DefaultCanvas3D = 600.0

// nodeSize3D shrinks nodes in projected views, where the graph is denser.
const nodeSize3D = 0.3

// projected is a node position on the canvas. depth grows toward the viewer.
type projected struct {
	x, y  float64
	depth float64
	size  float64 // node size factor
}

// projector maps layout coordinates to canvas coordinates.
type projector struct {
	width, height float64
	threeD        bool

	cx, cz   float64
	cos, sin float64
	scale    float64
	maxDepth float64
}

func newProjector(l graph.Layout, rotationDeg float64) projector {
	if !l.Is3D() {
		return projector{width: l.Width(), height: l.Height(), scale: 1}
	}

	// The rotated footprint of the x/z rectangle never exceeds its diagonal.
	diag := math.Hypot(l.Width(), l.Depth())
	scale := DefaultCanvas3D / math.Max(diag, l.Height())
	rad := rotationDeg * math.Pi / 180
	return projector{
		width:    DefaultCanvas3D,
		height:   DefaultCanvas3D,
		threeD:   true,
		cx:       l.Width() / 2,
		cz:       l.Depth() / 2,
		cos:      math.Cos(rad),
		sin:      math.Sin(rad),
		scale:    scale,
		maxDepth: diag / 2,
	}
}

// project rotates p about the vertical axis through the region center, then
// drops the depth axis. Screen y grows downward, matching the 2D canvas.
func (pr projector) project(p graph.Placed) projected {
	if !pr.threeD {
		return projected{x: p.X, y: p.Y, size: 1}
	}
	dx, dz := p.X-pr.cx, p.Z-pr.cz
	rx := dx*pr.cos + dz*pr.sin
	rz := -dx*pr.sin + dz*pr.cos
	return projected{
		x:     pr.width/2 + rx*pr.scale,
		y:     p.Y * pr.scale,
		depth: rz,
		size:  nodeSize3D,
	}
}

// fade maps depth to an opacity in [0.35, 1]; nearer is more opaque.
func (pr projector) fade(depth float64) float64 {
	if !pr.threeD || pr.maxDepth == 0 {
		return 1
	}
	t := (depth + pr.maxDepth) / (2 * pr.maxDepth)
	return 0.35 + 0.65*math.Max(0, math.Min(1, t))
}
