package cli

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// Plot dimensions in terminal cells.
const (
	defaultPlotCols = 64
	defaultPlotRows = 20
	minPlotCols     = 20
	minPlotRows     = 8
	maxPlotCols     = 160
	maxPlotRows     = 60
)

const (
	plotEdge  = '·'
	plotEmpty = ' '
)

var (
	tuiYearStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tuiCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiNodeStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	tuiEdgeStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tuiErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	tuiPlotStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)
)

// =============================================================================
// TimelineModel - Year-by-year layout browser
// =============================================================================

// timelineModel is the bubbletea model behind `forcegraph timeline`.
// Every year or seed change runs the engine on the graph as of that year.
type timelineModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	graph  graph.Graph
	opts   pipeline.Options

	years []int
	index int

	layout  graph.Layout
	cached  bool
	err     error
	pending bool

	cols, rows int
}

// layoutMsg delivers a finished computation. Year and seed identify the
// request so results for an outdated selection can be dropped.
type layoutMsg struct {
	year   int
	seed   uint64
	layout graph.Layout
	cached bool
	err    error
}

func newTimelineModel(ctx context.Context, runner *pipeline.Runner, g graph.Graph, opts pipeline.Options) timelineModel {
	opts.SetLayoutDefaults()
	years := timelineYears(g)

	index := len(years) - 1
	if opts.Year > 0 {
		index = 0
		for i, y := range years {
			if y <= opts.Year {
				index = i
			}
		}
	}
	opts.Year = years[index]

	return timelineModel{
		ctx:     ctx,
		runner:  runner,
		graph:   g,
		opts:    opts,
		years:   years,
		index:   index,
		pending: true,
		cols:    defaultPlotCols,
		rows:    defaultPlotRows,
	}
}

// timelineYears returns the distinct years at which nodes or edges appear.
// A graph without years has the single entry 0, meaning "everything".
func timelineYears(g graph.Graph) []int {
	seen := make(map[int]bool)
	for _, n := range g.Nodes {
		if n.Year > 0 {
			seen[n.Year] = true
		}
	}
	for _, e := range g.Links() {
		if e.Year > 0 {
			seen[e.Year] = true
		}
	}
	if len(seen) == 0 {
		return []int{0}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

func (m timelineModel) Init() tea.Cmd {
	return m.compute()
}

// compute runs the layout for the current selection off the UI goroutine.
func (m timelineModel) compute() tea.Cmd {
	ctx, runner, g, opts := m.ctx, m.runner, m.graph, m.opts
	return func() tea.Msg {
		l, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
		return layoutMsg{year: opts.Year, seed: opts.Seed, layout: l, cached: hit, err: err}
	}
}

func (m timelineModel) refresh() (tea.Model, tea.Cmd) {
	m.opts.Year = m.years[m.index]
	m.pending = true
	return m, m.compute()
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.index > 0 {
				m.index--
				return m.refresh()
			}
		case "right", "l":
			if m.index < len(m.years)-1 {
				m.index++
				return m.refresh()
			}
		case "r":
			m.opts = pipeline.ReseedLayout(m.opts)
			return m.refresh()
		}
	case tea.WindowSizeMsg:
		m.cols = min(max(msg.Width-4, minPlotCols), maxPlotCols)
		m.rows = min(max(msg.Height-10, minPlotRows), maxPlotRows)
	case layoutMsg:
		if msg.year != m.opts.Year || msg.seed != m.opts.Seed {
			return m, nil
		}
		m.pending = false
		m.layout, m.cached, m.err = msg.layout, msg.cached, msg.err
	}
	return m, nil
}

func (m timelineModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName + " timeline"))
	b.WriteString("\n")
	b.WriteString(m.yearBar())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(tuiErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(tuiPlotStyle.Render(m.styledPlot()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(m.cols + 2).Render(legend(m.layout)))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("←/→ year  r reseed  q quit"))
	return b.String()
}

func (m timelineModel) yearBar() string {
	if len(m.years) == 1 && m.years[0] == 0 {
		return tuiYearStyle.Render("no dated nodes")
	}
	parts := make([]string, len(m.years))
	for i, y := range m.years {
		if i == m.index {
			parts[i] = tuiCurrentStyle.Render("[" + strconv.Itoa(y) + "]")
		} else {
			parts[i] = tuiYearStyle.Render(strconv.Itoa(y))
		}
	}
	return strings.Join(parts, " ")
}

func (m timelineModel) status() string {
	if m.pending {
		return StyleDim.Render("computing...")
	}
	state := styleComputed.Render(iconFresh)
	if m.cached {
		state = styleCached.Render(iconCached)
	}
	return StyleDim.Render(fmt.Sprintf("%d nodes · %d edges · seed %d · energy %s · ",
		len(m.layout.Nodes), len(m.layout.Edges), m.opts.Seed, formatFloat(m.layout.Quality.Energy))) + state
}

func (m timelineModel) styledPlot() string {
	lines := plot(m.layout, m.cols, m.rows)
	for i, line := range lines {
		var b strings.Builder
		for _, r := range line {
			switch r {
			case plotEmpty:
				b.WriteRune(r)
			case plotEdge:
				b.WriteString(tuiEdgeStyle.Render(string(r)))
			default:
				b.WriteString(tuiNodeStyle.Render(string(r)))
			}
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// ASCII Plot
// =============================================================================

// plot draws the layout as a cols×rows character grid looking down the Z
// axis. Nodes are marked with the first letter of their label, edges with
// dots. Later nodes overwrite earlier ones sharing a cell.
func plot(l graph.Layout, cols, rows int) []string {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(plotEmpty), cols))
	}

	w, h := l.Width(), l.Height()
	if w > 0 && h > 0 && cols > 0 && rows > 0 {
		cells := make(map[string][2]int, len(l.Positions))
		for _, p := range l.Positions {
			cells[p.ID] = [2]int{cell(p.X, w, cols), cell(p.Y, h, rows)}
		}
		for _, e := range l.Edges {
			from, ok1 := cells[e.From]
			to, ok2 := cells[e.To]
			if ok1 && ok2 {
				drawLine(grid, from, to)
			}
		}
		nodes := make(map[string]graph.Node, len(l.Nodes))
		for _, n := range l.Nodes {
			nodes[n.ID] = n
		}
		for _, p := range l.Positions {
			c := cells[p.ID]
			n := nodes[p.ID]
			grid[c[1]][c[0]] = glyph(n.DisplayLabel())
		}
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}

// cell maps a coordinate in [0, extent] to a cell index in [0, n).
func cell(v, extent float64, n int) int {
	i := int(math.Round(v / extent * float64(n-1)))
	return min(max(i, 0), n-1)
}

// drawLine marks the empty cells strictly between two endpoints.
func drawLine(grid [][]rune, from, to [2]int) {
	dc, dr := to[0]-from[0], to[1]-from[1]
	steps := max(abs(dc), abs(dr))
	for i := 1; i < steps; i++ {
		c := from[0] + int(math.Round(float64(dc*i)/float64(steps)))
		r := from[1] + int(math.Round(float64(dr*i)/float64(steps)))
		if grid[r][c] == plotEmpty {
			grid[r][c] = plotEdge
		}
	}
}

func glyph(label string) rune {
	for _, r := range label {
		return unicode.ToUpper(r)
	}
	return '?'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// legend lists the glyph used for every node.
func legend(l graph.Layout) string {
	parts := make([]string, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		label := n.DisplayLabel()
		parts = append(parts, tuiNodeStyle.Render(string(glyph(label)))+" "+StyleDim.Render(label))
	}
	return strings.Join(parts, "  ")
}
