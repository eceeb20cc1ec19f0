package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	year   int    // snapshot year, 0 for everything
	to     string // output encoding: json, yaml, toml
	output string // output file path (stdout if empty)
}

// parseCommand creates the parse command for checking and converting graphs.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [graph]",
		Short: "Validate a graph and convert it between JSON, YAML and TOML",
		Long: `Validate a graph and convert it between JSON, YAML and TOML.

Without --to or --output the graph is only checked and summarized.

Examples:
  forcegraph parse skills.json                      # Summary
  forcegraph parse skills.json --year 2021 --to yaml  # Snapshot to stdout
  forcegraph parse architecture.toml -o arch.json   # Convert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "keep only nodes and edges that exist in this year")
	cmd.Flags().StringVar(&opts.to, "to", "", "output encoding: json, yaml, toml (default: from --output extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, opts parseOpts) error {
	ctx := cmd.Context()
	g, err := c.loadGraph(ctx, input, opts.year)
	if err != nil {
		return err
	}

	switch {
	case opts.output != "" && opts.to == "":
		if err := graph.WriteGraphFile(g, opts.output); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
	case opts.output != "":
		data, err := graph.MarshalGraph(g, opts.to)
		if err != nil {
			return err
		}
		if err := writeFile(opts.output, data); err != nil {
			return err
		}
	case opts.to != "":
		return graph.WriteGraph(cmd.OutOrStdout(), g, opts.to)
	}

	printSuccess("Parsed %s", input)
	if opts.output != "" {
		printFile(opts.output)
	}
	printStats(len(g.Nodes), len(g.Links()), false)
	printNewline()
	printGraphSummary(g)
	return nil
}

// loadGraph reads input and applies the year filter.
func (c *CLI) loadGraph(ctx context.Context, input string, year int) (graph.Graph, error) {
	runner := c.newRunner(true)
	defer runner.Close()

	g, err := runner.Parse(ctx, pipeline.Options{Input: input})
	if err != nil {
		return graph.Graph{}, fmt.Errorf("load graph %s: %w", input, err)
	}
	if year > 0 {
		g = g.AsOf(year)
	}
	return g, nil
}

// printGraphSummary prints the year range and group sizes of g.
func printGraphSummary(g graph.Graph) {
	if lo, hi, ok := g.YearRange(); ok {
		printKeyValue("years", fmt.Sprintf("%d–%d", lo, hi))
	}
	for _, groupBy := range []string{graph.GroupByCategory, graph.GroupByLayer} {
		if s := groupCounts(g, groupBy); s != "" {
			printKeyValue(groupBy, s)
		}
	}
}

// groupCounts formats the number of nodes per group, sorted by group name.
func groupCounts(g graph.Graph, groupBy string) string {
	counts := make(map[string]int)
	for _, n := range g.Nodes {
		if v := n.Group(groupBy); v != "" {
			counts[v]++
		}
	}
	parts := make([]string, 0, len(counts))
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		parts = append(parts, k+" "+StyleNumber.Render(strconv.Itoa(counts[k])))
	}
	return strings.Join(parts, ", ")
}
