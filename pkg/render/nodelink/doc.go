// Package nodelink renders layouts as Graphviz node-link diagrams.
//
// [ToDOT] emits an undirected graph with every node pinned at its computed
// position ("x,y!") and inputscale=72, so one layout unit maps to one point.
// [RenderSVG] runs neato through go-graphviz, which honours pinned nodes and
// only routes edges and labels. The layout itself always comes from
// pkg/force; Graphviz never moves a node.
//
// Architecture edges are labeled and colored by protocol, and edge reasons
// and node descriptions become SVG tooltips.
package nodelink
