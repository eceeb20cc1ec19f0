package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

func ExampleReadGraph() {
	input := `
nodes:
  - id: js
    category: frontend
    year: 2021
  - id: ts
    category: frontend
    year: 2022
edges:
  - from: js
    to: ts
    year: 2022
`
	g, err := graph.ReadGraph(strings.NewReader(input), graph.FormatYAML)
	if err != nil {
		panic(err)
	}
	fmt.Println("nodes:", len(g.Nodes))
	fmt.Println("edges:", len(g.Edges))
	// Output:
	// nodes: 2
	// edges: 1
}

func ExampleGraph_AsOf() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "js", Year: 2021},
			{ID: "react", Year: 2021},
			{ID: "nextjs", Year: 2023},
		},
		Edges: []graph.Edge{
			{From: "js", To: "react", Year: 2021},
			{From: "react", To: "nextjs", Year: 2023},
		},
	}

	lo, hi, _ := g.YearRange()
	for year := lo; year <= hi; year++ {
		v := g.AsOf(year)
		fmt.Printf("%d: %d nodes, %d edges\n", year, len(v.Nodes), len(v.Edges))
	}
	// Output:
	// 2021: 2 nodes, 1 edges
	// 2022: 2 nodes, 1 edges
	// 2023: 3 nodes, 2 edges
}

func ExampleGraph_Links() {
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "react", Connections: []string{"javascript", "typescript"}},
		{ID: "javascript", Connections: []string{"react"}},
		{ID: "typescript", Connections: []string{"react", "javascript"}},
	}}

	for _, e := range g.Links() {
		fmt.Println(e.From, "-", e.To)
	}
	// Output:
	// react - javascript
	// react - typescript
	// typescript - javascript
}
