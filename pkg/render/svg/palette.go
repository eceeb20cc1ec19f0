package svg

import "github.com/matzehuels/forcegraph/pkg/graph"

// Visual styles.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

// theme holds the colors that differ between styles.
type theme struct {
	background string
	text       string
	edge       string
	highlight  string
	nodeFill   string
}

var themes = map[string]theme{
	StyleLight: {background: "#ffffff", text: "#1f2937", edge: "#9ca3af", highlight: "#2563eb", nodeFill: "#f8fafc"},
	StyleDark:  {background: "#0b1120", text: "#e5e7eb", edge: "#475569", highlight: "#60a5fa", nodeFill: "#111827"},
}

// Styles lists the supported style names.
func Styles() []string { return []string{StyleLight, StyleDark} }

func themeFor(style string) theme {
	if t, ok := themes[style]; ok {
		return t
	}
	return themes[StyleLight]
}

// Category strokes.
var categoryColors = map[string]string{
	graph.CategoryFrontend:     "#06b6d4",
	graph.CategoryBackend:      "#a855f7",
	graph.CategoryCloud:        "#f97316",
	graph.CategorySystemDesign: "#10b981",
}

// Architecture tier fills.
var layerColors = map[string]string{
	"client":   "rgb(96, 165, 250)",
	"api":      "rgb(196, 181, 253)",
	"auth":     "rgb(251, 146, 60)",
	"cache":    "rgb(250, 204, 21)",
	"database": "rgb(74, 222, 128)",
	"cloud":    "rgb(34, 211, 238)",
}

var protocolColors = map[string]string{
	"HTTP":      "#60a5fa",
	"WebSocket": "#c084fc",
	"gRPC":      "#4ade80",
	"GraphQL":   "#f472b6",
	"TCP":       "#fb923c",
	"UDP":       "#f87171",
}

const fallbackNodeColor = "#64748b"

// NodeColor returns the stroke color of a node: its category color, else its
// tier color, else a neutral grey.
func NodeColor(n graph.Node) string {
	if c, ok := categoryColors[n.Category]; ok {
		return c
	}
	if c, ok := layerColors[n.Layer]; ok {
		return c
	}
	return fallbackNodeColor
}

// ProtocolColor returns the color assigned to an architecture protocol.
func ProtocolColor(protocol string) (string, bool) {
	c, ok := protocolColors[protocol]
	return c, ok
}

func edgeColor(e graph.Edge, t theme) string {
	if c, ok := ProtocolColor(e.Protocol); ok {
		return c
	}
	return t.edge
}
