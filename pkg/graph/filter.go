package graph

import (
	"github.com/matzehuels/forcegraph/pkg/force"
)

// Links returns every undirected link of g exactly once.
//
// Explicit edges come first, followed by links declared through
// [Node.Connections]. The first occurrence of a pair wins, so an explicit
// edge keeps its year and reason even when a connection list repeats it.
// Self-loops and links to unknown nodes are dropped.
func (g Graph) Links() []Edge {
	known := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.ID] = struct{}{}
	}

	seen := make(map[[2]string]struct{})
	var out []Edge
	add := func(e Edge) {
		if e.From == e.To {
			return
		}
		if _, ok := known[e.From]; !ok {
			return
		}
		if _, ok := known[e.To]; !ok {
			return
		}
		key := [2]string{e.From, e.To}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}

	for _, e := range g.Edges {
		add(e)
	}
	for _, n := range g.Nodes {
		for _, to := range n.Connections {
			add(Edge{From: n.ID, To: to})
		}
	}
	return out
}

// YearRange returns the earliest and latest year mentioned by any node or
// edge. ok is false when the graph carries no years.
func (g Graph) YearRange() (lo, hi int, ok bool) {
	note := func(y int) {
		if y == 0 {
			return
		}
		if !ok || y < lo {
			lo = y
		}
		if !ok || y > hi {
			hi = y
		}
		ok = true
	}
	for _, n := range g.Nodes {
		note(n.Year)
	}
	for _, e := range g.Edges {
		note(e.Year)
	}
	return lo, hi, ok
}

// AsOf returns the graph as it looked in the given year.
//
// Nodes are kept when their year is at most year. Edges are kept when their
// own year is at most year and both endpoints survived. Connection lists are
// trimmed to surviving nodes. Items without a year are always kept.
func (g Graph) AsOf(year int) Graph {
	var out Graph
	visible := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Year <= year {
			visible[n.ID] = struct{}{}
		}
	}

	for _, n := range g.Nodes {
		if _, ok := visible[n.ID]; !ok {
			continue
		}
		if len(n.Connections) > 0 {
			conns := make([]string, 0, len(n.Connections))
			for _, c := range n.Connections {
				if _, ok := visible[c]; ok {
					conns = append(conns, c)
				}
			}
			n.Connections = conns
		}
		out.Nodes = append(out.Nodes, n)
	}

	for _, e := range g.Edges {
		if e.Year > year {
			continue
		}
		_, fromOK := visible[e.From]
		_, toOK := visible[e.To]
		if fromOK && toOK {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// ToForce converts g to engine input. groupBy selects the node attribute
// that becomes [force.Node.Group]; see the GroupBy constants.
func (g Graph) ToForce(groupBy string) force.Graph {
	out := force.Graph{Nodes: make([]force.Node, len(g.Nodes))}
	for i := range g.Nodes {
		out.Nodes[i] = force.Node{ID: g.Nodes[i].ID, Group: g.Nodes[i].Group(groupBy)}
	}
	for _, e := range g.Links() {
		out.Edges = append(out.Edges, force.Edge{From: e.From, To: e.To})
	}
	return out
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
