package graph

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// File formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Grouping attributes for [Graph.ToForce].
const (
	GroupByNone     = ""
	GroupByCategory = "category"
	GroupByLayer    = "layer"
)

// Skill categories used by the bundled datasets.
const (
	CategoryFrontend     = "frontend"
	CategoryBackend      = "backend"
	CategoryCloud        = "cloud"
	CategorySystemDesign = "system-design"
)

// MaxProficiency is the upper bound of [Node.Proficiency].
const MaxProficiency = 100

// =============================================================================
// Graph - Skill Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for skill and architecture graphs.
//
// Edges may reference nodes that are not present; they are kept on disk and
// skipped when the graph is laid out.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
}

// =============================================================================
// Node
// =============================================================================

// Node is a skill, technology or system component.
type Node struct {
	ID          string         `json:"id" yaml:"id" toml:"id"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`                   // Display label (defaults to ID)
	Category    string         `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`          // Skill category
	Layer       string         `json:"layer,omitempty" yaml:"layer,omitempty" toml:"layer,omitempty"`                   // Architecture tier
	Year        int            `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`                      // First year visible, 0 = always
	Proficiency float64        `json:"proficiency,omitempty" yaml:"proficiency,omitempty" toml:"proficiency,omitempty"` // 0-100
	Description string         `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Connections []string       `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty"` // Inline undirected links
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Group returns the attribute named by groupBy.
func (n *Node) Group(groupBy string) string {
	switch groupBy {
	case GroupByCategory:
		return n.Category
	case GroupByLayer:
		return n.Layer
	default:
		return ""
	}
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two nodes. Layout treats it as undirected; renderers may draw
// it with an arrow.
type Edge struct {
	From     string `json:"from" yaml:"from" toml:"from"`
	To       string `json:"to" yaml:"to" toml:"to"`
	Year     int    `json:"year,omitempty" yaml:"year,omitempty" toml:"year,omitempty"`             // First year visible, 0 = always
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty" toml:"reason,omitempty"`       // Tooltip text
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty" toml:"protocol,omitempty"` // Architecture edges
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks node identifiers and attribute ranges.
// Dangling edges and connections are not errors.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		if math.IsNaN(n.Proficiency) || n.Proficiency < 0 || n.Proficiency > MaxProficiency {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: proficiency must be in [0, %d], got %g", n.ID, MaxProficiency, n.Proficiency)
		}
		if n.Year < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: year must not be negative, got %d", n.ID, n.Year)
		}
	}
	for _, e := range g.Edges {
		if e.Year < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %s→%s: year must not be negative, got %d", e.From, e.To, e.Year)
		}
	}
	return nil
}
