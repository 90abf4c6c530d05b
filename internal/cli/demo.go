package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pack"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/pipeline"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/relayout"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/score"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/sizing"
	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/stream"
)

// demoCommand creates the demo command: an animated TUI that streams sections
// through the re-layout coordinator.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		sections int
		seed     uint64
		steps    int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Watch sections stream into a live grid layout",
		Long: `Watch sections stream into a live grid layout.

Simulates sections arriving and growing the way streamed card content does,
repacking incrementally on every tick. Keys: 1/2/3 switch the packing
strategy (row-first, skyline, legacy), space pauses, r restarts, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := newDemoModel(sections, seed, steps)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&sections, "sections", "n", 10, "number of sections to stream")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for the section mix")
	cmd.Flags().IntVar(&steps, "steps", 24, "stream length in ticks")

	return cmd
}

// =============================================================================
// Model
// =============================================================================

const demoTick = 350 * time.Millisecond

// demoCellHeight is how many layout pixels one terminal row represents.
const demoCellHeight = 48.0

var demoBlockColors = []lipgloss.Color{
	lipgloss.Color("24"), lipgloss.Color("29"), lipgloss.Color("60"),
	lipgloss.Color("95"), lipgloss.Color("131"), lipgloss.Color("66"),
}

type demoTickMsg time.Time

type demoModel struct {
	sim      *stream.Simulator
	coord    *relayout.Coordinator
	cfg      grid.GridConfig
	strategy pack.Strategy

	sections []grid.Section
	layout   grid.LayoutResult
	info     relayout.Info
	quality  score.Quality

	paused bool
	done   bool
	err    error
	width  int
}

func newDemoModel(sections int, seed uint64, steps int) (demoModel, error) {
	rng := rand.New(rand.NewPCG(seed, seed))
	cfg := grid.Resolve(pipeline.DefaultContainerWidth, pipeline.DefaultGap,
		pipeline.DefaultMinColumnWidth, pipeline.DefaultMaxColumns)

	specs := stream.RandomSpecs(rng, sections)
	sim := stream.New(specs, sizing.DefaultTable(), steps, cfg.TotalColumns, seed)

	m := demoModel{
		sim:      sim,
		cfg:      cfg,
		strategy: pack.DefaultStrategy,
		width:    100,
	}
	if err := m.setStrategy(pack.DefaultStrategy); err != nil {
		return demoModel{}, err
	}
	return m, nil
}

// setStrategy swaps the coordinator for one wrapping the given strategy and
// repacks the current sections so the switch is visible immediately.
func (m *demoModel) setStrategy(s pack.Strategy) error {
	packer, err := pack.New(s)
	if err != nil {
		return err
	}
	m.strategy = s
	m.coord = relayout.New(packer)
	if len(m.sections) > 0 {
		m.repack()
	}
	return nil
}

func (m *demoModel) repack() {
	layout, info, err := m.coord.Pack(m.sections, m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.layout = layout
	m.info = info
	m.quality = score.Score(layout, m.cfg)
}

func demoTicker() tea.Cmd {
	return tea.Tick(demoTick, func(t time.Time) tea.Msg { return demoTickMsg(t) })
}

func (m demoModel) Init() tea.Cmd {
	return demoTicker()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "1":
			_ = m.setStrategy(pack.StrategyRowFirst)
		case "2":
			_ = m.setStrategy(pack.StrategySkyline)
		case "3":
			_ = m.setStrategy(pack.StrategyLegacy)
		case " ":
			m.paused = !m.paused
		case "r":
			m.sim.Reset()
			m.sections = nil
			m.layout = grid.LayoutResult{}
			m.done = false
			_ = m.setStrategy(m.strategy)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case demoTickMsg:
		if !m.paused && !m.done {
			m.sections, m.done = m.sim.Step()
			m.repack()
		}
		return m, demoTicker()
	}
	return m, nil
}

// =============================================================================
// View
// =============================================================================

func (m demoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("OSI Cards · live packing"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("1 row-first · 2 skyline · 3 legacy · space pause · r restart · q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("pack error: %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.qualityLine())
	b.WriteString("\n")
	return b.String()
}

func (m demoModel) statusLine() string {
	state := "streaming"
	switch {
	case m.paused:
		state = "paused"
	case m.done:
		state = "complete"
	}
	return fmt.Sprintf("%s %s  %s %s  %s %d",
		StyleDim.Render("strategy"), StyleHighlight.Render(string(m.strategy)),
		StyleDim.Render("state"), StyleValue.Render(state),
		StyleDim.Render("sections"), len(m.sections))
}

func (m demoModel) qualityLine() string {
	if len(m.layout.Positions) == 0 {
		return StyleDim.Render("waiting for sections...")
	}
	parts := []string{
		fmt.Sprintf("utilization %.1f%%", m.quality.UtilizationPercent),
		fmt.Sprintf("gaps %d", m.quality.GapCount),
		fmt.Sprintf("balance %.1f", m.quality.BalanceScore),
		fmt.Sprintf("height %.0fpx", m.layout.TotalHeight),
	}
	if m.info.CacheHit {
		parts = append(parts, styleCached.Render("cached"))
	} else if m.info.Preserved {
		parts = append(parts, styleCached.Render(fmt.Sprintf("preserved %d", len(m.info.Unchanged))))
	} else {
		parts = append(parts, styleComputed.Render("repacked"))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

// renderGrid draws the layout as a cell canvas: columns map to fixed-width
// runs of terminal cells and demoCellHeight pixels map to one row.
func (m demoModel) renderGrid() string {
	if len(m.layout.Positions) == 0 {
		return ""
	}

	colCells := max((m.width-2)/m.cfg.TotalColumns, 10)
	rows := int(math.Ceil(m.layout.TotalHeight / demoCellHeight))
	if rows < 1 {
		rows = 1
	}

	// occupancy[row][col] is the index into Positions, -1 for empty.
	occupancy := make([][]int, rows)
	for r := range occupancy {
		occupancy[r] = make([]int, m.cfg.TotalColumns)
		for c := range occupancy[r] {
			occupancy[r][c] = -1
		}
	}
	topRow := make([]int, len(m.layout.Positions))
	for i, p := range m.layout.Positions {
		start := int(p.Top / demoCellHeight)
		end := int(math.Ceil(p.Bottom() / demoCellHeight))
		if end <= start {
			end = start + 1
		}
		topRow[i] = start
		for r := start; r < end && r < rows; r++ {
			for c := p.Column; c < p.Column+p.ColSpan && c < m.cfg.TotalColumns; c++ {
				occupancy[r][c] = i
			}
		}
	}

	var b strings.Builder
	for r := range rows {
		c := 0
		for c < m.cfg.TotalColumns {
			idx := occupancy[r][c]
			span := 1
			for c+span < m.cfg.TotalColumns && occupancy[r][c+span] == idx {
				span++
			}
			width := span * colCells
			if idx < 0 {
				b.WriteString(strings.Repeat(" ", width))
			} else {
				text := strings.Repeat(" ", width)
				if r == topRow[idx] {
					label := " " + m.layout.Positions[idx].SectionID
					if len(label) > width {
						label = label[:width]
					}
					text = label + strings.Repeat(" ", width-len(label))
				}
				style := lipgloss.NewStyle().
					Background(demoBlockColors[idx%len(demoBlockColors)]).
					Foreground(colorWhite)
				b.WriteString(style.Render(text))
			}
			c += span
		}
		b.WriteString("\n")
	}
	return b.String()
}
