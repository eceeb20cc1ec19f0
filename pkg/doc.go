// Package pkg provides the libraries behind forcegraph.
//
// # Overview
//
// forcegraph places the nodes of small graphs (a skills map, a service
// architecture) with a force-directed engine and renders the result. The pkg
// directory is organized into four areas:
//
//  1. [force] - The layout engine (repulsion, attraction, cooling, clamping)
//  2. [graph] - Serialization types for graphs and computed layouts
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [render] - Output formats (SVG, DOT/Graphviz, vis-network, PNG, PDF)
//
// # Architecture
//
// The typical data flow:
//
//	graph.json / graph.yaml / graph.toml
//	         ↓
//	    [graph] package (decode, filter by year, resolve links)
//	         ↓
//	    [force] package (seeded engine runs inside a Region)
//	         ↓
//	    [graph.Layout] (positions + quality metrics)
//	         ↓
//	    [render] packages (SVG, DOT, vis-network, ...)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/forcegraph/pkg/force"
//	    "github.com/matzehuels/forcegraph/pkg/graph"
//	    "github.com/matzehuels/forcegraph/pkg/render/svg"
//	)
//
//	g, _ := graph.ReadGraphFile("skills.json")
//	r := force.Rect(800, 600)
//	pos, _ := force.Compute(g.ToForce(graph.GroupByCategory), r, force.WithSeed(42))
//	l := graph.NewLayout(g, r, pos)
//	out := svg.Render(l)
//
// # Main Packages
//
// [force] - A pure function from (graph, region, options) to one position
// per node. The same core drives planar and volumetric layouts; only the
// number of axes differs. Initializers ([force.Uniform], [force.GroupAnchors],
// [force.Layers]) pick starting points, and [force.Measure] scores results.
//
// [graph] - Wire types. [graph.Graph] reads and writes JSON, YAML and TOML;
// [graph.Layout] is the JSON document passed from layout to render.
//
// [pipeline] - The code path shared by the CLI and the timeline view. Runs
// several seeded trials concurrently and keeps the lowest-energy layout.
//
// [cache] - In-memory cache and key derivation used by [pipeline.Runner].
//
// [config] - Optional TOML file with layout and render defaults.
//
// [observability] - Hooks for layout, render and cache events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/force/...    # Specific package
//	go test -run Example ./... # Examples only
//
// [force]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/force
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/errors
package pkg
