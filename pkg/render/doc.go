// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// Every renderer consumes a [github.com/matzehuels/forcegraph/pkg/graph.Layout]
// and never re-runs the engine, so a layout file renders identically on every
// machine:
//
//   - [svg]: native SVG, proficiency-sized circles with category colors; 3D
//     layouts are projected orthographically with a configurable rotation
//   - [nodelink]: Graphviz DOT with pinned positions, rendered by neato to
//     SVG or PNG
//   - [visjs]: vis-network JSON with fixed coordinates for browser embedding
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	out := svg.Render(layout, svg.WithStyle(svg.StyleDark))
//	pdf, err := render.ToPDF(out)
//
// [svg]: github.com/matzehuels/forcegraph/pkg/render/svg
// [nodelink]: github.com/matzehuels/forcegraph/pkg/render/nodelink
// [visjs]: github.com/matzehuels/forcegraph/pkg/render/visjs
package render
