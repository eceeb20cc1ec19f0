package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// renderCommand creates the render command for generating output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		lf         layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [layout.json|graph]",
		Short: "Render a layout or graph to SVG, PNG, PDF, DOT or vis-network",
		Long: `Render a layout or graph to one or more output formats.

Files ending in .layout.json (produced by 'layout') are rendered as is.
Any other input is parsed as a graph and laid out first, using the same
flags as 'layout'.

Formats:
  svg           native SVG, 3D layouts projected with --rotation
  png, pdf      converted from the native SVG with rsvg-convert
  dot           Graphviz source with pinned node positions
  graphviz-svg  the DOT source rendered by Graphviz neato
  visjs         vis-network JSON with fixed node coordinates
  html          standalone vis-network page
  json          the layout itself`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			lf.apply(cmd, &opts)
			c.applyConfig(&opts)
			opts.Logger = c.Logger
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, graphviz-svg, visjs, html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: light (default), dark")
	cmd.Flags().Float64Var(&opts.Rotation, "rotation", 0, "rotation about the vertical axis in degrees (3D)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "add hover highlighting and tooltips")
	cmd.Flags().StringVar(&opts.Title, "title", "", "HTML page title (default: forcegraph)")
	addLayoutFlags(cmd, &opts, &lf)

	return cmd
}

// runRender renders input, laying it out first unless it is a layout file.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner(noCache)
	defer runner.Close()

	var (
		artifacts map[string][]byte
		cacheHit  bool
		nodes     int
		edges     int
	)

	if isLayoutFile(input) {
		layout, err := graph.ReadLayoutFile(input)
		if err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		s := newSpinner(ctx, os.Stderr, "Rendering...").start()
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, layout, opts)
		s.stop()
		if err != nil {
			printError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
		nodes, edges = len(layout.Nodes), len(layout.Edges)
	} else {
		opts.Input = input
		g, err := runner.Parse(ctx, opts)
		if err != nil {
			return fmt.Errorf("load graph %s: %w", input, err)
		}
		s := newSpinner(ctx, os.Stderr, "Computing layout and rendering...").start()
		result, err := runner.Execute(ctx, g, opts)
		s.stop()
		if err != nil {
			printError("Render failed")
			return err
		}
		artifacts = result.Artifacts
		cacheHit = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
		nodes, edges = result.Stats.NodeCount, result.Stats.EdgeCount
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(strings.Join(opts.Formats, ", ")))
	for _, p := range paths {
		printFile(p)
	}
	printStats(nodes, edges, cacheHit)
	return nil
}

// isLayoutFile reports whether path names a computed layout rather than a graph.
func isLayoutFile(path string) bool {
	return strings.HasSuffix(path, pipeline.FormatExtensions[pipeline.FormatJSON])
}

// artifactPaths decides where each format is written. A single format goes
// to output verbatim; otherwise output (or the input) is used as a base.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := outputBase(input)
	if output != "" {
		base = outputBase(output)
	}
	for _, f := range formats {
		paths[f] = base + pipeline.FormatExtensions[f]
	}
	return paths
}

// writeArtifacts writes every rendered format and returns the written paths
// in format order. The input file itself is never overwritten.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := artifactPaths(formats, input, output)
	var written []string
	for _, f := range formats {
		path := paths[f]
		if filepath.Clean(path) == filepath.Clean(input) {
			printWarning("Skipping %s: would overwrite the input", f)
			continue
		}
		if err := writeFile(path, artifacts[f]); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
