package visjs

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

type pageData struct {
	Title  string
	Width  int
	Height int
	Nodes  template.JS
	Edges  template.JS
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="text/javascript" src="https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"></script>
<style type="text/css">
#network {
width: {{.Width}}px;
height: {{.Height}}px;
}
</style>
</head>
<body>
<div id="network"></div>
<script type="text/javascript">
new vis.Network(
document.getElementById('network'),
{nodes: new vis.DataSet({{.Nodes}}), edges: new vis.DataSet({{.Edges}})},
{physics: false, interaction: {hover: true}});
</script>
</body>
</html>
`))

// RenderHTML returns a standalone page that draws the layout with
// vis-network loaded from a CDN.
func RenderHTML(l graph.Layout, title string) ([]byte, error) {
	net := CreateNetwork(l)
	nodes, err := json.Marshal(net.Nodes)
	if err != nil {
		return nil, err
	}
	edges, err := json.Marshal(net.Edges)
	if err != nil {
		return nil, err
	}

	data := pageData{
		Title:  title,
		Width:  int(l.Width()),
		Height: int(l.Height()),
		Nodes:  template.JS(nodes),
		Edges:  template.JS(edges),
	}
	if l.Is3D() {
		data.Width, data.Height = 800, 800
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
