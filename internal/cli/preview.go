package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/controller"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/persist"
	"github.com/matzehuels/gridboard/pkg/widget"
)

// Terminal cells are mapped to pixels with a fixed factor so the grid sees
// a plausible container width.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 20.0

	// statusLines is the space reserved under the canvas.
	statusLines = 3
)

// Preview styles
var (
	previewBoxStyle      = lipgloss.NewStyle().Foreground(colorGray)
	previewSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	previewHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand opens the interactive grid preview.
func (c *CLI) previewCommand() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Interactively arrange the dashboard in the terminal",
		Long: `Interactively arrange the dashboard in the terminal.

The terminal width picks the breakpoint, as a browser window would. Every
widget shows the font size it would render with at its current size.

Keys:
  tab / shift+tab   select widget
  arrows            move
  shift+arrows      resize
  c                 collapse or expand
  r                 reset to the default layout
  q                 quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctrl, err := c.newController(cmd, layout.BreakpointLG, offline)
			if err != nil {
				return err
			}

			m := newPreviewModel(ctx, ctrl)
			defer m.board.Close()

			_, runErr := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err := c.closeLayout(ctx, ctrl); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("preview: %w", runErr)
			}
			printSuccess("Saved %s layout", ctrl.Breakpoint())
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "skip the layout store; use the local cache only")
	return cmd
}

// =============================================================================
// previewModel
// =============================================================================

// previewModel is the bubbletea model behind `gridboard preview`. All
// controller calls happen on the bubbletea update goroutine, except the
// background Fetch started when the breakpoint changes.
type previewModel struct {
	ctx        context.Context
	ctrl       *controller.Controller
	board      *widget.Board
	placements []widget.Placement
	selected   string
	width      int
	height     int
	status     string

	// loading is the breakpoint being fetched, or "" when none is.
	loading layout.Breakpoint
}

// layoutFetchedMsg carries a breakpoint's layout back to the update loop.
type layoutFetchedMsg struct {
	bp  layout.Breakpoint
	res persist.Resolution
	err error
}

func newPreviewModel(ctx context.Context, ctrl *controller.Controller) *previewModel {
	m := &previewModel{
		ctx:   ctx,
		ctrl:  ctrl,
		board: widget.NewBoard(layout.BreakpointLG.MinWidth()),
	}
	m.relayout()
	return m
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)
	case layoutFetchedMsg:
		m.adopt(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *previewModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "left":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.X = layout.Int(r.X - 1) })
	case "right":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) {
			p.X = layout.Int(min(r.X+1, max(m.ctrl.Breakpoint().Cols()-r.W, 0)))
		})
	case "up":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.Y = layout.Int(r.Y - 1) })
	case "down":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.Y = layout.Int(r.Y + 1) })
	case "shift+left":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.W = layout.Int(r.W - 1) })
	case "shift+right":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) {
			p.W = layout.Int(min(r.W+1, m.ctrl.Breakpoint().Cols()-r.X))
		})
	case "shift+up":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.H = layout.Int(r.H - 1) })
	case "shift+down":
		m.nudge(func(r layout.PlacementRecord, p *layout.Patch) { p.H = layout.Int(r.H + 1) })
	case "c":
		if m.selected != "" && m.ctrl.ToggleCollapse(m.ctx, m.selected) {
			m.relayout()
		}
	case "r":
		m.ctrl.Reset(m.ctx)
		m.status = "reset to default layout"
		m.relayout()
	}
	return nil
}

// nudge applies a one-step change to the selected widget.
func (m *previewModel) nudge(change func(layout.PlacementRecord, *layout.Patch)) {
	r, ok := m.ctrl.GetLayout().Find(m.selected)
	if !ok {
		return
	}
	p := layout.Patch{ID: r.ID}
	change(r, &p)
	m.ctrl.Apply(m.ctx, p)
	m.relayout()
}

func (m *previewModel) cycle(step int) {
	ids := m.ctrl.GetLayout().IDs()
	if len(ids) == 0 {
		return
	}
	i := 0
	for j, id := range ids {
		if id == m.selected {
			i = j
			break
		}
	}
	m.selected = ids[(i+step+len(ids))%len(ids)]
}

// resize re-lays the board for the new terminal width. When the width falls
// into another breakpoint, that breakpoint's layout is fetched in the
// background; the current layout stays editable until it arrives.
func (m *previewModel) resize(cols, rows int) tea.Cmd {
	m.width, m.height = cols, rows
	containerWidth := float64(cols) * cellWidthPx
	m.board.SetWidth(containerWidth)
	m.relayout()

	bp := layout.BreakpointFor(containerWidth)
	if bp == m.ctrl.Breakpoint() {
		m.loading = ""
		return nil
	}
	if bp == m.loading {
		return nil
	}
	m.loading = bp
	m.status = fmt.Sprintf("loading %s layout...", bp)

	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		res := ctrl.Fetch(ctx, bp)
		return layoutFetchedMsg{bp: bp, res: res, err: ctx.Err()}
	}
}

// adopt installs a fetched layout unless a later resize superseded it.
func (m *previewModel) adopt(msg layoutFetchedMsg) {
	if msg.bp != m.loading {
		return
	}
	m.loading = ""
	if msg.err != nil {
		m.status = msg.err.Error()
		return
	}
	m.ctrl.Adopt(msg.bp, msg.res)
	m.status = fmt.Sprintf("switched to %s (from %s)", m.ctrl.Breakpoint(), m.ctrl.Source())
	m.relayout()
}

func (m *previewModel) relayout() {
	l := m.ctrl.GetLayout()
	m.placements = m.board.Relayout(l)
	if _, ok := l.Find(m.selected); !ok {
		m.selected = ""
		if len(l) > 0 {
			m.selected = l[0].ID
		}
	}
}

// =============================================================================
// Rendering
// =============================================================================

func (m *previewModel) View() string {
	var b strings.Builder
	b.WriteString(m.canvas())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("tab select · arrows move · shift+arrows resize · c collapse · r reset · q quit"))
	return b.String()
}

func (m *previewModel) statusLine() string {
	bp := m.ctrl.Breakpoint()
	parts := []string{
		StyleTitle.Render(bp.String()),
		fmt.Sprintf("%d cols", bp.Cols()),
		sourceLabel(m.ctrl.Source()),
	}
	for _, p := range m.placements {
		if p.Record.ID != m.selected {
			continue
		}
		parts = append(parts, StyleHighlight.Render(p.Record.ID),
			fmt.Sprintf("%d,%d %d×%d", p.Record.X, p.Record.Y, p.Record.W, p.Record.RenderedHeight()),
			fmt.Sprintf("font %.1fpx · %d rows", p.Params.FontSize, p.Params.RowCount))
	}
	if m.status != "" {
		parts = append(parts, StyleWarning.Render(m.status))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// canvas draws every placement as a box of terminal cells.
func (m *previewModel) canvas() string {
	cols := max(m.width, 1)
	rows := int(math.Ceil(m.board.Height() / cellHeightPx))
	if m.height > 0 {
		rows = min(rows, max(m.height-statusLines, 1))
	}
	if rows <= 0 {
		return ""
	}

	c := newCanvas(cols, rows)
	for _, p := range m.placements {
		c.box(p, p.Record.ID == m.selected)
	}
	return c.render()
}

// canvas is a grid of runes with a per-cell highlight flag.
type canvas struct {
	cells [][]rune
	hot   [][]bool
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cells: make([][]rune, rows), hot: make([][]bool, rows)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", cols))
		c.hot[y] = make([]bool, cols)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, hot bool) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= len(c.cells[y]) {
		return
	}
	c.cells[y][x] = r
	c.hot[y][x] = hot
}

func (c *canvas) text(x, y, maxLen int, s string, hot bool) {
	for i, r := range []rune(s) {
		if i >= maxLen {
			return
		}
		c.set(x+i, y, r, hot)
	}
}

// box outlines one placement and writes its label inside.
func (c *canvas) box(p widget.Placement, selected bool) {
	x0 := int(p.Box.Left / cellWidthPx)
	y0 := int(p.Box.Top / cellHeightPx)
	x1 := max(int((p.Box.Left+p.Box.Width-1)/cellWidthPx), x0+1)
	y1 := max(int((p.Box.Top+p.Box.Height-1)/cellHeightPx), y0+1)

	h, v, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if selected {
		h, v, tl, tr, bl, br = '═', '║', '╔', '╗', '╚', '╝'
	}
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, h, selected)
		c.set(x, y1, h, selected)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, v, selected)
		c.set(x1, y, v, selected)
	}
	c.set(x0, y0, tl, selected)
	c.set(x1, y0, tr, selected)
	c.set(x0, y1, bl, selected)
	c.set(x1, y1, br, selected)

	inner := x1 - x0 - 1
	label := p.Record.ID
	if p.Record.Collapsed {
		label = "▸ " + label
	}
	c.text(x0+1, y0, inner, " "+label+" ", selected)
	if y1-y0 > 1 {
		c.text(x0+2, y0+1, inner-2, fmt.Sprintf("%.0fpx", p.Params.FontSize), selected)
	}
}

func (c *canvas) render() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.hot[y][x] == c.hot[y][start] {
				continue
			}
			style := previewBoxStyle
			if c.hot[y][start] {
				style = previewSelectedStyle
			}
			b.WriteString(style.Render(string(row[start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
