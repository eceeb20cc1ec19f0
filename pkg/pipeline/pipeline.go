// Package pipeline provides the parse → layout → render pipeline for forcegraph.
//
// The CLI, the timeline view and tests all run the same code path, so a
// layout computed interactively is byte-for-byte the layout written by
// `forcegraph layout` for the same options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read a skill or architecture graph from JSON, YAML or TOML
//  2. Layout: filter by year, run one or more seeded engine trials and keep
//     the lowest-energy result
//  3. Render: generate outputs (SVG, PDF, PNG, DOT, vis-network, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	opts := pipeline.Options{
//	    Input:   "skills.json",
//	    Year:    2023,
//	    Trials:  4,
//	    Formats: []string{"svg", "visjs"},
//	}
//	g, err := runner.Parse(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/force"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Timeline
// =============================================================================

const (
	// DefaultWidth is the default canvas width of planar layouts.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height of planar layouts.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultTrials runs the engine once.
	DefaultTrials = 1

	// MaxTrials bounds the number of concurrent engine runs.
	MaxTrials = 64

	// DefaultPNGScale renders PNGs at twice the canvas size.
	DefaultPNGScale = 2.0
)

// Initializer names.
const (
	InitUniform = "uniform"
	InitGroups  = "groups"
	InitLayers  = "layers"
)

// Format constants for output formats.
const (
	FormatSVG         = "svg"
	FormatPNG         = "png"
	FormatPDF         = "pdf"
	FormatDOT         = "dot"
	FormatGraphvizSVG = "graphviz-svg"
	FormatVisJS       = "visjs"
	FormatHTML        = "html"
	FormatJSON        = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatPNG:         true,
	FormatPDF:         true,
	FormatDOT:         true,
	FormatGraphvizSVG: true,
	FormatVisJS:       true,
	FormatHTML:        true,
	FormatJSON:        true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	svg.StyleLight: true,
	svg.StyleDark:  true,
}

// ValidInits is the set of supported initializers.
var ValidInits = map[string]bool{
	InitUniform: true,
	InitGroups:  true,
	InitLayers:  true,
}

// ValidGroupBys is the set of node attributes layouts can group by.
var ValidGroupBys = map[string]bool{
	graph.GroupByNone:     true,
	graph.GroupByCategory: true,
	graph.GroupByLayer:    true,
}

// FormatExtensions maps each format to the file extension it is written with.
var FormatExtensions = map[string]string{
	FormatSVG:         ".svg",
	FormatPNG:         ".png",
	FormatPDF:         ".pdf",
	FormatDOT:         ".dot",
	FormatGraphvizSVG: ".graphviz.svg",
	FormatVisJS:       ".visjs.json",
	FormatHTML:        ".html",
	FormatJSON:        ".layout.json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// Zero values select defaults; see the Set*Defaults methods.
type Options struct {
	// Parse options
	Input       string `json:"input,omitempty"`
	InputFormat string `json:"input_format,omitempty"` // Overrides the extension
	Data        []byte `json:"-"`                      // Inline graph, used instead of Input

	// Region options
	Dims   int      `json:"dims,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Depth  float64  `json:"depth,omitempty"`
	Margin *float64 `json:"margin,omitempty"` // nil selects the per-dimension default

	// Engine options
	Iterations  int     `json:"iterations,omitempty"`
	Static      bool    `json:"static,omitempty"` // Zero iterations: keep the initial placement
	Temperature float64 `json:"temperature,omitempty"`
	Cooling     float64 `json:"cooling,omitempty"`
	Repulsion   float64 `json:"repulsion,omitempty"`
	Attraction  float64 `json:"attraction,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	Trials      int     `json:"trials,omitempty"`
	Init        string  `json:"init,omitempty"`
	GroupBy     string  `json:"group_by,omitempty"`

	// Filter options
	Year int `json:"year,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG scale factor
	Detailed bool     `json:"detailed,omitempty"`
	Title    string   `json:"title,omitempty"` // HTML page title

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the year-filtered graph that was laid out.
	Graph graph.Graph

	// GraphHash is the content hash of Graph.
	GraphHash string

	// Layout holds the winning positions.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Trials     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid style: %q (must be one of: light, dark)", style)
	}
	return nil
}

// ValidateInit checks that an initializer name is valid.
func ValidateInit(init string) error {
	if !ValidInits[init] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid init: %q (must be one of: uniform, groups, layers)", init)
	}
	return nil
}

// ValidateGroupBy checks that a grouping attribute is valid.
func ValidateGroupBy(groupBy string) error {
	if !ValidGroupBys[groupBy] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid group_by: %q (must be one of: category, layer)", groupBy)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Dims == 0 {
		o.Dims = 2
	}
	if o.Dims == 3 {
		if o.Width == 0 {
			o.Width = force.DefaultSide
		}
		if o.Height == 0 {
			o.Height = force.DefaultSide
		}
		if o.Depth == 0 {
			o.Depth = force.DefaultSide
		}
	} else {
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
	}
	if o.Margin == nil {
		m := force.DefaultMargin
		if o.Dims == 3 {
			m = force.DefaultMargin3D
		}
		o.Margin = &m
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if o.Init == "" {
		o.Init = InitUniform
	}
	if o.GroupBy == "" {
		switch o.Init {
		case InitGroups:
			o.GroupBy = graph.GroupByCategory
		case InitLayers:
			o.GroupBy = graph.GroupByLayer
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Engine constants are checked again by [force.Compute]; this catches
// pipeline-level mistakes before any work starts.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Dims != 2 && o.Dims != 3 {
		return errors.New(errors.ErrCodeInvalidRegion, "dims must be 2 or 3, got %d", o.Dims)
	}
	if err := o.Region().Validate(); err != nil {
		return err
	}
	if o.Trials < 1 || o.Trials > MaxTrials {
		return errors.New(errors.ErrCodeInvalidOptions, "trials must be in [1, %d], got %d", MaxTrials, o.Trials)
	}
	if o.Year < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "year must not be negative, got %d", o.Year)
	}
	if err := errors.ValidateIterations(o.Iterations); err != nil {
		return err
	}
	if err := ValidateInit(o.Init); err != nil {
		return err
	}
	return ValidateGroupBy(o.GroupBy)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = svg.StyleLight
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must not be negative, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// Region returns the layout region described by the options.
// Call after SetLayoutDefaults.
func (o *Options) Region() force.Region {
	var margin float64
	if o.Margin != nil {
		margin = *o.Margin
	}
	if o.Dims == 3 {
		return force.Region{Extents: []float64{o.Width, o.Height, o.Depth}, Margin: margin}
	}
	return force.Region{Extents: []float64{o.Width, o.Height}, Margin: margin}
}

// Is3D reports whether the options describe a volumetric layout.
func (o *Options) Is3D() bool { return o.Dims == 3 }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	r := o.Region()
	iterations := o.Iterations
	if o.Static {
		iterations = -1
	}
	return cache.LayoutKeyOpts{
		Extents:     r.Extents,
		Margin:      r.Margin,
		Iterations:  iterations,
		Temperature: o.Temperature,
		Cooling:     o.Cooling,
		Repulsion:   o.Repulsion,
		Attraction:  o.Attraction,
		Seed:        o.Seed,
		Trials:      o.Trials,
		Init:        o.Init,
		GroupBy:     o.GroupBy,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Rotation: o.Rotation,
		Scale:    o.Scale,
		Detailed: o.Detailed,
		Title:    o.Title,
	}
}

// String summarizes the layout options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%dD %v seed=%d trials=%d init=%s", o.Dims, o.Region().Extents, o.Seed, o.Trials, o.Init)
}
