package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/controller"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/persist"
)

func newTestPreview(t *testing.T, cols int) *previewModel {
	t.Helper()
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	ctrl := controller.New(persist.NewChain(nil, nil, quiet), controller.WithLogger(quiet))
	if _, err := ctrl.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	m := newPreviewModel(context.Background(), ctrl)
	t.Cleanup(m.board.Close)
	resizeAndWait(m, cols)
	return m
}

// resizeAndWait delivers a window size and the fetched layout it triggers.
func resizeAndWait(m *previewModel, cols int) {
	_, cmd := m.Update(tea.WindowSizeMsg{Width: cols, Height: 60})
	if cmd != nil {
		m.Update(cmd())
	}
}

// gatedRemote blocks every Load until release is closed.
type gatedRemote struct {
	release chan struct{}
	layout  layout.Layout
}

func (r *gatedRemote) Load(ctx context.Context, bp layout.Breakpoint) (layout.Layout, error) {
	select {
	case <-r.release:
		return r.layout.Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *gatedRemote) Save(context.Context, layout.Breakpoint, layout.Layout) error { return nil }

func press(m *previewModel, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPreviewPicksBreakpointFromWidth(t *testing.T) {
	tests := []struct {
		cols int
		want layout.Breakpoint
	}{
		{160, layout.BreakpointLG}, // 1280px
		{130, layout.BreakpointMD}, // 1040px
		{100, layout.BreakpointSM}, // 800px
		{60, layout.BreakpointXS},  // 480px
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m := newTestPreview(t, tt.cols)
			if got := m.ctrl.Breakpoint(); got != tt.want {
				t.Errorf("breakpoint = %s, want %s", got, tt.want)
			}
			if got := m.board.Grid().Cols; got != tt.want.Cols() {
				t.Errorf("board cols = %d, want %d", got, tt.want.Cols())
			}
			if len(m.placements) != len(layout.KnownWidgets()) {
				t.Errorf("placements = %d", len(m.placements))
			}
		})
	}
}

func TestPreviewSelectAndMove(t *testing.T) {
	m := newTestPreview(t, 160)
	if m.selected != layout.WidgetKPISales {
		t.Fatalf("initial selection = %q", m.selected)
	}

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != layout.WidgetKPIOrders {
		t.Fatalf("after tab selection = %q", m.selected)
	}
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != layout.WidgetTableLowStock {
		t.Fatalf("after shift+tab wrap selection = %q", m.selected)
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	r, _ := m.ctrl.GetLayout().Find(layout.WidgetTableLowStock)
	if r.Y != 11 {
		t.Errorf("Y after two downs = %d, want 11", r.Y)
	}

	// Moving right stops at the grid edge.
	for range 20 {
		press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	r, _ = m.ctrl.GetLayout().Find(layout.WidgetTableLowStock)
	if r.X+r.W != layout.BreakpointLG.Cols() {
		t.Errorf("X+W = %d, want %d", r.X+r.W, layout.BreakpointLG.Cols())
	}
}

func TestPreviewResizeRespectsMinimums(t *testing.T) {
	m := newTestPreview(t, 160)

	for range 10 {
		press(m, tea.KeyMsg{Type: tea.KeyShiftLeft}, tea.KeyMsg{Type: tea.KeyShiftUp})
	}
	r, _ := m.ctrl.GetLayout().Find(layout.WidgetKPISales)
	if r.W != r.EffectiveMinW() || r.H != r.EffectiveMinH() {
		t.Errorf("shrunk to %dx%d, want %dx%d", r.W, r.H, r.EffectiveMinW(), r.EffectiveMinH())
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftDown})
	r, _ = m.ctrl.GetLayout().Find(layout.WidgetKPISales)
	if r.H != r.EffectiveMinH()+1 {
		t.Errorf("H after grow = %d", r.H)
	}
}

func TestPreviewCollapseAndReset(t *testing.T) {
	m := newTestPreview(t, 160)

	press(m, runeKey('c'))
	r, _ := m.ctrl.GetLayout().Find(layout.WidgetKPISales)
	if !r.Collapsed {
		t.Fatal("c did not collapse the selected widget")
	}
	if !strings.Contains(m.View(), "▸ "+layout.WidgetKPISales) {
		t.Error("collapsed widget not marked in the view")
	}

	press(m, runeKey('r'))
	if !layout.Equal(m.ctrl.GetLayout(), layout.Default(layout.BreakpointLG)) {
		t.Error("r did not reset the layout")
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t, 160)
	cmd := press(m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestPreviewViewShowsEveryWidget(t *testing.T) {
	m := newTestPreview(t, 160)
	view := m.View()
	for _, id := range []string{layout.WidgetKPISales, layout.WidgetChartSalesTrend} {
		if !strings.Contains(view, id) {
			t.Errorf("view is missing %s", id)
		}
	}
	if !strings.Contains(view, "lg") {
		t.Error("view does not show the breakpoint")
	}
}

func TestPreviewBreakpointSwitchDoesNotBlock(t *testing.T) {
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	remote := &gatedRemote{
		release: make(chan struct{}),
		layout:  layout.Layout{{ID: layout.WidgetKPISales, W: 10, H: 3}},
	}
	ctrl := controller.New(persist.NewChain(remote, nil, quiet), controller.WithLogger(quiet))
	m := newPreviewModel(context.Background(), ctrl)
	t.Cleanup(m.board.Close)

	done := make(chan tea.Cmd, 1)
	go func() {
		_, cmd := m.Update(tea.WindowSizeMsg{Width: 130, Height: 60}) // md
		done <- cmd
	}()

	var cmd tea.Cmd
	select {
	case cmd = <-done:
	case <-time.After(2 * time.Second):
		close(remote.release)
		t.Fatal("resize blocked on the layout store")
	}
	if cmd == nil {
		t.Fatal("resize across a breakpoint returned no command")
	}
	if got := m.ctrl.Breakpoint(); got != layout.BreakpointLG {
		t.Errorf("breakpoint switched before the layout arrived: %s", got)
	}
	if !strings.Contains(m.status, "loading md") {
		t.Errorf("status = %q, want a loading notice", m.status)
	}

	// The current layout stays editable while the fetch is pending.
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != layout.WidgetKPIOrders {
		t.Errorf("selection during fetch = %q", m.selected)
	}

	close(remote.release)
	m.Update(cmd())
	if got := m.ctrl.Breakpoint(); got != layout.BreakpointMD {
		t.Fatalf("breakpoint after fetch = %s, want md", got)
	}
	if m.ctrl.Source() != persist.SourceRemote {
		t.Errorf("source = %s, want remote", m.ctrl.Source())
	}
	if len(m.placements) != 1 {
		t.Errorf("placements = %d, want the fetched layout's 1", len(m.placements))
	}
}

func TestPreviewDropsSupersededFetch(t *testing.T) {
	m := newTestPreview(t, 160)

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60}) // sm
	if cmd == nil {
		t.Fatal("no fetch for sm")
	}
	// Back to lg before the sm layout arrives.
	if _, again := m.Update(tea.WindowSizeMsg{Width: 160, Height: 60}); again != nil {
		t.Error("returning to the current breakpoint started a fetch")
	}

	m.Update(cmd())
	if got := m.ctrl.Breakpoint(); got != layout.BreakpointLG {
		t.Errorf("stale fetch switched the breakpoint to %s", got)
	}
}
