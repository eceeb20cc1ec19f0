package visjs

import (
	"encoding/json"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render/svg"
)

type nodeShape string

const ShapeDot nodeShape = "dot"

type highlight struct {
	Border string `json:"border"`
}

type color struct {
	Border     string    `json:"border"`
	Background string    `json:"background"`
	Highlight  highlight `json:"highlight"`
}

type fixed struct {
	X bool `json:"x"`
	Y bool `json:"y"`
}

// Node is a vis-network node pinned at its computed position.
type Node struct {
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Shape   nodeShape `json:"shape"`
	Size    float64   `json:"size"`
	Color   color     `json:"color"`
	Group   string    `json:"group,omitempty"`
	Title   string    `json:"title,omitempty"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Fixed   fixed     `json:"fixed"`
	Opacity float64   `json:"opacity"`
}

// Edge is a vis-network edge. Title shows as a hover tooltip.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Dashes bool   `json:"dashes"`
	Label  string `json:"label,omitempty"`
	Title  string `json:"title,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Network is the data set handed to vis.Network.
type Network struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CreateNetwork converts a layout to vis-network nodes and edges. Physics is
// left to the engine: every node is fixed at its computed x and y. 3D layouts
// contribute their x/y projection.
func CreateNetwork(l graph.Layout) Network {
	nodes := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}

	net := Network{Nodes: []Node{}, Edges: []Edge{}}
	placed := make(map[string]struct{}, len(l.Positions))
	for _, p := range l.Positions {
		n := nodes[p.ID]
		placed[p.ID] = struct{}{}

		c := svg.NodeColor(n)
		opacity := 1.0
		if l.Year > 0 && n.Year == l.Year {
			opacity = 0.5
		}
		net.Nodes = append(net.Nodes, Node{
			ID:      p.ID,
			Label:   n.DisplayLabel(),
			Shape:   ShapeDot,
			Size:    svg.Radius(n),
			Color:   color{Border: c, Background: c, Highlight: highlight{Border: c}},
			Group:   n.Group(l.GroupBy),
			Title:   n.Description,
			X:       p.X,
			Y:       p.Y,
			Fixed:   fixed{X: true, Y: true},
			Opacity: opacity,
		})
	}

	for _, e := range l.Edges {
		_, okFrom := placed[e.From]
		_, okTo := placed[e.To]
		if !okFrom || !okTo {
			continue
		}
		edge := Edge{From: e.From, To: e.To, Dashes: true, Label: e.Protocol, Title: e.Reason}
		if c, ok := svg.ProtocolColor(e.Protocol); ok {
			edge.Color = c
		}
		net.Edges = append(net.Edges, edge)
	}

	return net
}

// Marshal encodes the network as indented JSON.
func Marshal(l graph.Layout) ([]byte, error) {
	return json.MarshalIndent(CreateNetwork(l), "", "  ")
}
