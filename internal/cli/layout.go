package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// layoutFlags holds flags that cannot bind directly to pipeline.Options.
type layoutFlags struct {
	threeD bool
	margin float64
}

// addLayoutFlags registers region, engine and filter flags on cmd.
// Unset flags stay zero so the config file and pipeline defaults apply.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options, lf *layoutFlags) {
	f := cmd.Flags()
	f.BoolVar(&lf.threeD, "3d", false, "compute a volumetric layout (default cube side 40)")
	f.Float64Var(&opts.Width, "width", 0, "region width (default 800, or 40 in 3D)")
	f.Float64Var(&opts.Height, "height", 0, "region height (default 600, or 40 in 3D)")
	f.Float64Var(&opts.Depth, "depth", 0, "region depth (3D only, default 40)")
	f.Float64Var(&lf.margin, "margin", 0, "distance kept from every boundary (default 30, or 2 in 3D)")
	f.IntVar(&opts.Iterations, "iterations", 0, "engine iterations (default 50, or 60 in 3D)")
	f.BoolVar(&opts.Static, "static", false, "skip the simulation and keep the initial placement")
	f.Float64Var(&opts.Temperature, "temperature", 0, "initial displacement cap (default derived from the region)")
	f.Float64Var(&opts.Cooling, "cooling", 0, "temperature decay per iteration, in (0, 1]")
	f.Float64Var(&opts.Repulsion, "repulsion", 0, "repulsive force constant (default derived from the region)")
	f.Float64Var(&opts.Attraction, "attraction", 0, "attractive spring constant (default derived from the region)")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed (default 42)")
	f.IntVar(&opts.Trials, "trials", 0, "independent seeded runs, keeping the lowest energy (default 1)")
	f.StringVar(&opts.Init, "init", "", "initial placement: uniform (default), groups, layers")
	f.StringVar(&opts.GroupBy, "group-by", "", "node attribute used for grouping: category, layer")
	f.IntVar(&opts.Year, "year", 0, "only lay out nodes and edges that exist in this year")
}

// apply copies the indirect flags into opts.
func (lf *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if lf.threeD {
		opts.Dims = 3
	}
	if cmd.Flags().Changed("margin") {
		m := lf.margin
		opts.Margin = &m
	}
}

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		showTable bool
		lf        layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.yaml|graph.toml]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command reads a skill or architecture graph and runs the
force-directed engine over it. The result is written as a layout.json file
that 'render' turns into SVG, PNG, PDF, DOT or vis-network output without
running the engine again.

With --trials N the engine runs N times with different seeds and keeps the
layout with the lowest energy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf.apply(cmd, &opts)
			c.applyConfig(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, showTable)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&showTable, "table", true, "print the computed positions")
	addLayoutFlags(cmd, &opts, &lf)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, showTable bool) error {
	runner := c.newRunner(noCache)
	defer runner.Close()

	opts.Input = input
	g, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	prog := newProgress(loggerFromContext(ctx))
	s := newSpinner(ctx, os.Stderr, "Computing layout...").start()
	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	s.stop()
	if err != nil {
		printError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Placed %d nodes", len(layout.Positions)))

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input) + pipeline.FormatExtensions[pipeline.FormatJSON]
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Nodes), len(layout.Edges), cacheHit)
	printNewline()
	printQuality(layout)
	if showTable {
		printNewline()
		fmt.Println(positionsTable(layout))
	}
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// printQuality prints the seed and metrics of a layout.
func printQuality(l graph.Layout) {
	printKeyValue("seed", strconv.FormatUint(l.Seed, 10))
	if l.Year > 0 {
		printKeyValue("year", strconv.Itoa(l.Year))
	}
	printKeyValue("energy", formatFloat(l.Quality.Energy))
	printKeyValue("min sep", formatFloat(l.Quality.MinSeparation))
	printKeyValue("mean edge", formatFloat(l.Quality.MeanEdgeLength))
}

// positionsTable renders the layout's positions as a bordered table.
// A Z column is included for volumetric layouts only.
func positionsTable(l graph.Layout) string {
	labels := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		labels[n.ID] = n
	}

	headers := []string{"Node", "Group", "X", "Y"}
	if l.Is3D() {
		headers = append(headers, "Z")
	}

	rows := make([][]string, 0, len(l.Positions))
	for _, p := range l.Positions {
		n := labels[p.ID]
		group := "—"
		if g := n.Group(l.GroupBy); g != "" {
			group = g
		}
		row := []string{n.DisplayLabel(), group, formatFloat(p.X), formatFloat(p.Y)}
		if l.Is3D() {
			row = append(row, formatFloat(p.Z))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col >= 2:
				return cellStyle.Foreground(colorCyan).Align(lipgloss.Right)
			default:
				return cellStyle
			}
		}).
		Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
