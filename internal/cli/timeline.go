package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// timelineCommand creates the interactive timeline command.
func (c *CLI) timelineCommand() *cobra.Command {
	var lf layoutFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "timeline [graph]",
		Short: "Step through a graph's history year by year",
		Long: `Step through a graph's history year by year.

Each year shows only the nodes and edges that existed by then. Moving to a
year or pressing r (new seed) re-runs the engine on that snapshot; layouts
already seen are served from memory.

--year picks the starting year (default: the latest).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf.apply(cmd, &opts)
			c.applyConfig(&opts)
			return c.runTimeline(cmd.Context(), args[0], opts)
		},
	}

	addLayoutFlags(cmd, &opts, &lf)

	return cmd
}

// runTimeline parses the graph and hands it to the bubbletea program.
func (c *CLI) runTimeline(ctx context.Context, input string, opts pipeline.Options) error {
	runner := c.newRunner(false)
	defer runner.Close()

	opts.Input = input
	g, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	// The alternate screen owns the terminal; engine logs would tear it.
	opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	p := tea.NewProgram(newTimelineModel(ctx, runner, g, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("timeline: %w", err)
	}

	m, ok := final.(timelineModel)
	if !ok || m.err != nil || m.pending {
		return nil
	}
	printSuccess("Last view: %d nodes, seed %s", len(m.layout.Nodes), StyleNumber.Render(strconv.FormatUint(m.opts.Seed, 10)))
	reproduce := fmt.Sprintf("%s layout %s --seed %d", appName, input, m.opts.Seed)
	if m.opts.Year > 0 {
		reproduce += fmt.Sprintf(" --year %d", m.opts.Year)
	}
	printNextStep("Reproduce", reproduce)
	return nil
}
