package svg

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Node radius bounds. Radius grows linearly with proficiency.
const (
	MinRadius     = 20.0
	RadiusRange   = 30.0
	DefaultRadius = 30.0
	labelOffset   = 16.0
	newNodeAlpha  = 0.5
	edgeDashArray = "4 4"
)

const interactionCSS = `
    .node circle { transition: stroke-width 0.2s ease; }
    .node.highlight circle { stroke-width: 5; }
    .edge { transition: opacity 0.2s ease; }
    .dim { opacity: 0.15; }`

const interactionJS = `
    function focus(id) {
      const keep = new Set([id]);
      document.querySelectorAll('.edge').forEach(e => {
        const hit = e.dataset.from === id || e.dataset.to === id;
        e.classList.toggle('dim', !hit);
        if (hit) { keep.add(e.dataset.from); keep.add(e.dataset.to); }
      });
      document.querySelectorAll('.node').forEach(n => {
        n.classList.toggle('dim', !keep.has(n.dataset.id));
        n.classList.toggle('highlight', n.dataset.id === id);
      });
    }
    function clearFocus() {
      document.querySelectorAll('.dim, .highlight').forEach(el => el.classList.remove('dim', 'highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => focus(el.dataset.id));
      el.addEventListener('mouseleave', clearFocus);
    });`

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	style       string
	rotation    float64
	labels      bool
	interactive bool
	highlight   string
}

// WithStyle selects [StyleLight] or [StyleDark]. Unknown names fall back to light.
func WithStyle(s string) Option { return func(r *renderer) { r.style = s } }

// WithRotation sets the view angle in degrees about the vertical axis of a
// 3D layout. Planar layouts ignore it.
func WithRotation(deg float64) Option { return func(r *renderer) { r.rotation = deg } }

// WithoutLabels omits node labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithInteraction embeds hover highlighting of a node's neighborhood.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// WithHighlight draws the named node with the accent stroke.
func WithHighlight(id string) Option { return func(r *renderer) { r.highlight = id } }

// Render draws the layout as a standalone SVG document.
//
// Planar layouts map one layout unit to one pixel. 3D layouts are rotated,
// orthographically projected onto a [DefaultCanvas3D] square and painted back
// to front so nearer nodes cover farther ones.
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: StyleLight, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	t := themeFor(r.style)
	pr := newProjector(l, r.rotation)

	nodes := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}
	screen := make(map[string]projected, len(l.Positions))
	order := make([]string, 0, len(l.Positions))
	for _, p := range l.Positions {
		screen[p.ID] = pr.project(p)
		order = append(order, p.ID)
	}
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(screen[a].depth, screen[b].depth)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		pr.width, pr.height, pr.width, pr.height)
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", t.background)

	buf.WriteString("  <g class=\"edges\">\n")
	for _, e := range l.Edges {
		a, okA := screen[e.From]
		b, okB := screen[e.To]
		if !okA || !okB {
			continue
		}
		renderEdge(&buf, e, a, b, pr.fade((a.depth+b.depth)/2), t)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"nodes\">\n")
	for _, id := range order {
		n := nodes[id]
		renderNode(&buf, &r, n, screen[id], pr.fade(screen[id].depth)*nodeAlpha(n, l.Year), t)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Radius returns the drawn radius of n in layout units.
func Radius(n graph.Node) float64 {
	if n.Proficiency <= 0 {
		return DefaultRadius
	}
	return MinRadius + n.Proficiency/graph.MaxProficiency*RadiusRange
}

// nodeAlpha fades nodes that first appear in the snapshot year.
func nodeAlpha(n graph.Node, year int) float64 {
	if year > 0 && n.Year == year {
		return newNodeAlpha
	}
	return 1
}

func renderEdge(buf *bytes.Buffer, e graph.Edge, a, b projected, opacity float64, t theme) {
	fmt.Fprintf(buf, `    <line class="edge" data-from="%s" data-to="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" stroke-dasharray="%s" opacity="%.2f">`,
		escape(e.From), escape(e.To), a.x, a.y, b.x, b.y, edgeColor(e, t), edgeDashArray, opacity)
	if title := edgeTitle(e); title != "" {
		fmt.Fprintf(buf, "<title>%s</title>", escape(title))
	}
	buf.WriteString("</line>\n")
}

func edgeTitle(e graph.Edge) string {
	switch {
	case e.Protocol != "" && e.Reason != "":
		return e.Protocol + ": " + e.Reason
	case e.Protocol != "":
		return e.Protocol
	default:
		return e.Reason
	}
}

func renderNode(buf *bytes.Buffer, r *renderer, n graph.Node, p projected, opacity float64, t theme) {
	radius := Radius(n) * p.size
	stroke := NodeColor(n)
	fill := t.nodeFill
	if _, ok := layerColors[n.Layer]; ok && n.Category == "" {
		fill = stroke
	}
	width := 3.0
	if n.ID == r.highlight {
		stroke, width = t.highlight, 5
	}

	fmt.Fprintf(buf, `    <g class="node" data-id="%s" opacity="%.2f">`+"\n", escape(n.ID), opacity)
	fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.0f">`,
		p.x, p.y, radius, fill, stroke, width)
	if n.Description != "" {
		fmt.Fprintf(buf, "<title>%s</title>", escape(n.Description))
	}
	buf.WriteString("</circle>\n")
	if r.labels {
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
			p.x, p.y+radius+labelOffset, t.text, escape(n.DisplayLabel()))
	}
	buf.WriteString("    </g>\n")
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
