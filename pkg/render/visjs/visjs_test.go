package visjs

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

func Test_createNetwork(t *testing.T) {
	tests := []struct {
		name      string
		layout    graph.Layout
		wantNodes []Node
		wantEdges []Edge
	}{
		{
			name: "skills",
			layout: graph.Layout{
				Dims:    2,
				Extents: []float64{800, 600},
				Year:    2022,
				GroupBy: graph.GroupByCategory,
				Nodes: []graph.Node{
					{ID: "js", Label: "JavaScript", Category: graph.CategoryFrontend, Proficiency: 100, Year: 2021},
					{ID: "node", Category: graph.CategoryBackend, Year: 2022, Description: "Runtime"},
				},
				Edges: []graph.Edge{
					{From: "js", To: "node", Reason: "Node.js uses JavaScript"},
					{From: "node", To: "unplaced"},
				},
				Positions: []graph.Placed{
					{ID: "js", X: 100, Y: 150},
					{ID: "node", X: 300, Y: 350},
				},
			},
			wantNodes: []Node{
				{
					ID: "js", Label: "JavaScript", Shape: ShapeDot, Size: 50,
					Color: color{"#06b6d4", "#06b6d4", highlight{"#06b6d4"}},
					Group: "frontend", X: 100, Y: 150, Fixed: fixed{true, true}, Opacity: 1,
				},
				{
					ID: "node", Label: "node", Shape: ShapeDot, Size: 30,
					Color: color{"#a855f7", "#a855f7", highlight{"#a855f7"}},
					Group: "backend", Title: "Runtime", X: 300, Y: 350, Fixed: fixed{true, true}, Opacity: 0.5,
				},
			},
			wantEdges: []Edge{
				{From: "js", To: "node", Dashes: true, Title: "Node.js uses JavaScript"},
			},
		},
		{
			name: "architecture",
			layout: graph.Layout{
				Dims:      2,
				Extents:   []float64{800, 600},
				Nodes:     []graph.Node{{ID: "web", Layer: "client"}, {ID: "ws", Layer: "api"}},
				Edges:     []graph.Edge{{From: "web", To: "ws", Protocol: "WebSocket"}},
				Positions: []graph.Placed{{ID: "web", X: 400, Y: 100}, {ID: "ws", X: 400, Y: 200}},
			},
			wantNodes: []Node{
				{
					ID: "web", Label: "web", Shape: ShapeDot, Size: 30,
					Color: color{"rgb(96, 165, 250)", "rgb(96, 165, 250)", highlight{"rgb(96, 165, 250)"}},
					X: 400, Y: 100, Fixed: fixed{true, true}, Opacity: 1,
				},
				{
					ID: "ws", Label: "ws", Shape: ShapeDot, Size: 30,
					Color: color{"rgb(196, 181, 253)", "rgb(196, 181, 253)", highlight{"rgb(196, 181, 253)"}},
					X: 400, Y: 200, Fixed: fixed{true, true}, Opacity: 1,
				},
			},
			wantEdges: []Edge{
				{From: "web", To: "ws", Dashes: true, Label: "WebSocket", Color: "#c084fc"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateNetwork(tt.layout)
			if !reflect.DeepEqual(got.Nodes, tt.wantNodes) {
				t.Errorf("CreateNetwork() nodes = %+v, want %+v", got.Nodes, tt.wantNodes)
			}
			if !reflect.DeepEqual(got.Edges, tt.wantEdges) {
				t.Errorf("CreateNetwork() edges = %+v, want %+v", got.Edges, tt.wantEdges)
			}
		})
	}
}

func TestMarshal_EmptyLayout(t *testing.T) {
	data, err := Marshal(graph.Layout{Dims: 2, Extents: []float64{800, 600}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var net Network
	if err := json.Unmarshal(data, &net); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": []`) {
		t.Errorf("empty layout should encode empty arrays, got %s", data)
	}
}

func TestRenderHTML(t *testing.T) {
	l := graph.Layout{
		Dims:      2,
		Extents:   []float64{800, 600},
		Nodes:     []graph.Node{{ID: "a", Label: "</script><b>"}},
		Positions: []graph.Placed{{ID: "a", X: 10, Y: 20}},
	}
	page, err := RenderHTML(l, "Skills & Tools")
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	s := string(page)
	for _, want := range []string{"<title>Skills &amp; Tools</title>", "width: 800px", "height: 600px", `"fixed":{"x":true,"y":true}`} {
		if !strings.Contains(s, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(s, "</script><b>") {
		t.Error("label was not escaped inside the script block")
	}
}
