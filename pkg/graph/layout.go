package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/force"
)

// =============================================================================
// Layout - Computed Positions
// =============================================================================

// Layout is the serialization format for a computed layout.
//
// It carries everything a renderer needs without re-running the engine:
//
//   - Extents, Margin: the region the positions are confined to
//   - Nodes, Edges: the (possibly year-filtered) graph that was laid out
//   - Positions: one entry per node, in node order
//   - Quality: metrics of the winning trial
//
// Seed and Iterations are recorded so the same layout can be reproduced.
type Layout struct {
	ID         string    `json:"id"`
	Dims       int       `json:"dims"`
	Extents    []float64 `json:"extents"`
	Margin     float64   `json:"margin"`
	Seed       uint64    `json:"seed,omitempty"`
	Iterations int       `json:"iterations"`
	Year       int       `json:"year,omitempty"`
	GroupBy    string    `json:"group_by,omitempty"`

	Nodes     []Node        `json:"nodes"`
	Edges     []Edge        `json:"edges,omitempty"`
	Positions []Placed      `json:"positions"`
	Quality   force.Quality `json:"quality"`
}

// Placed is the position of one node. Z is zero for planar layouts.
type Placed struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z,omitempty"`
}

// NewLayout captures engine output for g inside r. Links are resolved so
// that renderers see each connection once.
func NewLayout(g Graph, r force.Region, pos map[string]force.Position) Layout {
	l := Layout{
		ID:      uuid.NewString(),
		Dims:    r.Dims(),
		Extents: append([]float64(nil), r.Extents...),
		Margin:  r.Margin,
		Nodes:   g.Nodes,
		Edges:   g.Links(),
	}
	for _, n := range g.Nodes {
		p := pos[n.ID]
		l.Positions = append(l.Positions, Placed{ID: n.ID, X: p.X(), Y: p.Y(), Z: p.Z()})
	}
	return l
}

// Is3D reports whether the layout has a depth axis.
func (l *Layout) Is3D() bool { return l.Dims == 3 }

// Width returns the first extent.
func (l *Layout) Width() float64 { return l.extent(0) }

// Height returns the second extent.
func (l *Layout) Height() float64 { return l.extent(1) }

// Depth returns the third extent, or zero for planar layouts.
func (l *Layout) Depth() float64 { return l.extent(2) }

func (l *Layout) extent(i int) float64 {
	if i < len(l.Extents) {
		return l.Extents[i]
	}
	return 0
}

// Region returns the region the layout was computed in.
func (l *Layout) Region() force.Region {
	return force.Region{Extents: append([]float64(nil), l.Extents...), Margin: l.Margin}
}

// PositionMap indexes positions by node id.
func (l *Layout) PositionMap() map[string]force.Position {
	out := make(map[string]force.Position, len(l.Positions))
	for _, p := range l.Positions {
		pos := force.Position{p.X, p.Y}
		if l.Is3D() {
			pos = append(pos, p.Z)
		}
		out[p.ID] = pos
	}
	return out
}

// Graph returns the laid-out graph.
func (l *Layout) Graph() Graph {
	return Graph{Nodes: l.Nodes, Edges: l.Edges}
}

// Validate checks that the layout is self-consistent.
func (l *Layout) Validate() error {
	if len(l.Extents) != l.Dims {
		return errors.New(errors.ErrCodeInvalidLayout, "dims = %d but %d extents given", l.Dims, len(l.Extents))
	}
	if err := l.Region().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "region")
	}

	ids := make(map[string]struct{}, len(l.Nodes))
	for _, n := range l.Nodes {
		ids[n.ID] = struct{}{}
	}
	placed := make(map[string]struct{}, len(l.Positions))
	for _, p := range l.Positions {
		if _, ok := ids[p.ID]; !ok {
			return errors.New(errors.ErrCodeInvalidLayout, "position for unknown node %q", p.ID)
		}
		placed[p.ID] = struct{}{}
	}
	for id := range ids {
		if _, ok := placed[id]; !ok {
			return errors.New(errors.ErrCodeInvalidLayout, "node %q has no position", id)
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}
	if l.Dims == 0 {
		l.Dims = len(l.Extents)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
