package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/render/svg"
)

// Default coordinate scales. Planar layouts are already in pixels; 3D cubes
// are small and need stretching to leave room for labels.
const (
	DefaultScale2D = 1.0
	DefaultScale3D = 15.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes category, tier, year and metadata in node labels.
	// When false, only the display label is shown.
	Detailed bool

	// Scale multiplies every coordinate. Zero selects DefaultScale2D or
	// DefaultScale3D.
	Scale float64
}

// ToDOT converts a layout to an undirected Graphviz graph whose nodes are
// pinned at their computed positions. neato keeps pinned nodes in place, so
// Graphviz only routes edges and places labels.
//
// The y axis is flipped because Graphviz measures it upward. 3D layouts keep
// all three coordinates with dim=3; Graphviz draws the x/y projection.
func ToDOT(l graph.Layout, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale2D
		if l.Is3D() {
			scale = DefaultScale3D
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if l.Is3D() {
		buf.WriteString("  dim=3;\n")
	}
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, fillcolor=white, penwidth=3, fontsize=10];\n")
	buf.WriteString("  edge [style=dashed, penwidth=2, color=\"#9ca3af\", fontsize=9];\n")
	buf.WriteString("\n")

	nodes := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}
	placed := make(map[string]struct{}, len(l.Positions))
	for _, p := range l.Positions {
		placed[p.ID] = struct{}{}
		n := nodes[p.ID]
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), fmtPos(l, p, scale))
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		_, okFrom := placed[e.From]
		_, okTo := placed[e.To]
		if !okFrom || !okTo {
			continue
		}
		if attrs := fmtEdgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtPos(l graph.Layout, p graph.Placed, scale float64) string {
	x := p.X * scale
	y := (l.Height() - p.Y) * scale
	if l.Is3D() {
		return fmt.Sprintf("%.2f,%.2f,%.2f!", x, y, p.Z*scale)
	}
	return fmt.Sprintf("%.2f,%.2f!", x, y)
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}

	var parts []string
	if n.Category != "" {
		parts = append(parts, "category: "+n.Category)
	}
	if n.Layer != "" {
		parts = append(parts, "layer: "+n.Layer)
	}
	if n.Year > 0 {
		parts = append(parts, fmt.Sprintf("year: %d", n.Year))
	}
	if n.Proficiency > 0 {
		parts = append(parts, fmt.Sprintf("proficiency: %.0f", n.Proficiency))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return strings.Join(append([]string{n.DisplayLabel()}, parts...), "\n")
}

func fmtAttrs(n graph.Node, label, pos string) []string {
	diameter := 2 * svg.Radius(n) / 72
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=%q", pos),
		fmt.Sprintf("width=%.3f", diameter),
		fmt.Sprintf("color=%q", svg.NodeColor(n)),
	}
	if n.Description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Description))
	}
	return attrs
}

func fmtEdgeAttrs(e graph.Edge) []string {
	var attrs []string
	if c, ok := svg.ProtocolColor(e.Protocol); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", c), fmt.Sprintf("fontcolor=%q", c))
	}
	if e.Protocol != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Protocol))
	}
	if e.Reason != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Reason))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// whose width and height match the viewBox.
func normalizeViewBox(doc []byte) []byte {
	match := viewBoxRe.FindSubmatch(doc)
	if match == nil {
		return doc
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return doc
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(doc, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	doc, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(doc)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	doc, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(doc, scale)
}
