// Package graph provides serialization types for skill graphs and layouts.
//
// This package defines the canonical wire format for forcegraph's data, used
// for input files, layout files and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between user data and the
// layout engine:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/force.Graph: Engine input (ids, edges and an opaque group)
//   - pkg/force.Position: Engine output
//
// Use [Graph.ToForce] to hand a graph to the engine and [NewLayout] to capture
// the result.
//
// # Graph Files
//
// Graphs use a node-link format and can be written as JSON, YAML or TOML.
// The format is picked from the file extension:
//
//	{
//	  "nodes": [
//	    {"id": "js", "label": "JavaScript", "category": "frontend", "year": 2021, "proficiency": 95},
//	    {"id": "react", "label": "React", "category": "frontend", "year": 2021}
//	  ],
//	  "edges": [{"from": "js", "to": "react", "year": 2021, "reason": "built on JavaScript"}]
//	}
//
// Nodes may also list neighbours inline with "connections". Each unordered
// pair contributes a single link no matter how often it is listed, so datasets
// that record a link from both ends are fine.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("skills.yaml")   // File → Graph
//	visible := g.AsOf(2023)                      // Timeline filter
//	fg := visible.ToForce(graph.GroupByCategory) // Graph → engine input
//
// # Layout Files
//
// A [Layout] records the region, the engine settings that matter for
// reproduction, the graph it was computed from and one [Placed] entry per node:
//
//	l := graph.NewLayout(g, region, positions)
//	graph.WriteLayoutFile(l, "skills.layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
