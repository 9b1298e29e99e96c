// Package controller owns a dashboard's layout during a session.
//
// A [Controller] holds the in-memory layout for the current breakpoint,
// applies user interactions to it (drag and resize ticks, collapse toggles,
// resets), repairs the result, and hands every change to a [persist.Chain].
// The chain writes the local cache synchronously and the remote store
// after a debounce, so interactions never wait on the network.
//
//	ctrl := controller.New(chain, controller.WithBreakpoint(layout.BreakpointLG))
//	src, err := ctrl.Load(ctx)
//	...
//	ctrl.OnUserRearrange(ctx, ticks)   // every drag/resize tick
//	ctrl.ToggleCollapse(ctx, "kpi_sales")
//	defer ctrl.Close(ctx)               // sends the pending remote write
//
// A Controller is not safe for concurrent use. It is meant to be driven
// from one event loop; only Fetch may be called from elsewhere.
package controller

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/persist"
)

// Controller mediates between user interactions and the persistence chain.
type Controller struct {
	chain  *persist.Chain
	logger *log.Logger

	bp     layout.Breakpoint
	layout layout.Layout
	source persist.Source
}

// Option configures a Controller.
type Option func(*Controller)

// WithBreakpoint sets the initial breakpoint. The default is lg.
func WithBreakpoint(bp layout.Breakpoint) Option {
	return func(c *Controller) {
		if bp.Valid() {
			c.bp = bp
		}
	}
}

// WithLogger sets the logger. The default is the chain's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller over chain. Until Load is called it holds the
// default layout of its breakpoint.
func New(chain *persist.Chain, opts ...Option) *Controller {
	if chain == nil {
		chain = persist.NewChain(nil, nil, nil)
	}
	c := &Controller{
		chain:  chain,
		logger: chain.Logger,
		bp:     layout.BreakpointLG,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layout = layout.Default(c.bp)
	c.source = persist.SourceDefault
	return c
}

// Breakpoint returns the current breakpoint.
func (c *Controller) Breakpoint() layout.Breakpoint { return c.bp }

// Source returns where the current layout was loaded from.
func (c *Controller) Source() persist.Source { return c.source }

// GetLayout returns a copy of the current layout.
func (c *Controller) GetLayout() layout.Layout { return c.layout.Clone() }

// Load resolves the layout for the current breakpoint, normalizes and
// compacts it, and makes it current. Persistence failures only change which
// source wins; the returned error is non-nil only if ctx is done, in which
// case the current layout is kept.
func (c *Controller) Load(ctx context.Context) (persist.Source, error) {
	res := c.Fetch(ctx, c.bp)
	if err := ctx.Err(); err != nil {
		return c.source, err
	}
	c.Adopt(c.bp, res)
	return c.source, nil
}

// Fetch resolves the layout for bp without touching the controller's state.
// It is the one method that may run off the event loop, so hosts can load a
// breakpoint in the background and hand the result to Adopt.
func (c *Controller) Fetch(ctx context.Context, bp layout.Breakpoint) persist.Resolution {
	return c.chain.Resolve(ctx, bp)
}

// Adopt switches to bp and makes a fetched layout current after normalizing
// and compacting it. Invalid breakpoints are ignored.
func (c *Controller) Adopt(bp layout.Breakpoint, res persist.Resolution) {
	if !bp.Valid() {
		return
	}
	c.bp = bp
	c.layout = layout.Compact(layout.Normalize(res.Layout))
	c.source = res.Source
	c.logger.Debug("layout loaded", "breakpoint", c.bp, "source", c.source, "widgets", len(c.layout))
}

// OnUserRearrange applies one drag or resize tick. Geometry for unknown ids
// adds widgets. Overlaps are kept as the user placed them; the result is
// repaired but not compacted.
func (c *Controller) OnUserRearrange(ctx context.Context, geometry []layout.Geometry) {
	patches := make([]layout.Patch, len(geometry))
	for i, g := range geometry {
		patches[i] = g.Patch()
	}
	c.Apply(ctx, patches...)
}

// Apply merges partial updates, repairs the result, and persists it.
func (c *Controller) Apply(ctx context.Context, patches ...layout.Patch) {
	next := layout.ApplyChange(c.layout, patches...)
	if layout.Equal(next, c.layout) {
		return
	}
	c.commit(ctx, next)
}

// ToggleCollapse flips the collapsed state of id, reflows the grid, and
// persists the result. It returns false, without writing, if id is not in
// the layout.
func (c *Controller) ToggleCollapse(ctx context.Context, id string) bool {
	next, ok := layout.ToggleCollapse(c.layout, id)
	if !ok {
		c.logger.Debug("collapse of unknown widget ignored", "id", id)
		return false
	}
	c.commit(ctx, layout.Compact(next))
	return true
}

// SetBreakpoint switches to bp and loads its layout. Pending writes for the
// previous breakpoint still go out.
func (c *Controller) SetBreakpoint(ctx context.Context, bp layout.Breakpoint) (persist.Source, error) {
	if !bp.Valid() {
		_, err := layout.ParseBreakpoint(bp.String())
		return c.source, err
	}
	prev := c.bp
	c.bp = bp
	src, err := c.Load(ctx)
	if err != nil {
		c.bp = prev
	}
	return src, err
}

// Resize selects the breakpoint for a container width. It reports whether
// the breakpoint changed, in which case the new breakpoint's layout is loaded.
func (c *Controller) Resize(ctx context.Context, containerWidth float64) (bool, error) {
	bp := layout.BreakpointFor(containerWidth)
	if bp == c.bp {
		return false, nil
	}
	_, err := c.SetBreakpoint(ctx, bp)
	return err == nil, err
}

// Reset replaces the layout with the default for the current breakpoint and
// persists it.
func (c *Controller) Reset(ctx context.Context) {
	c.commit(ctx, layout.Default(c.bp))
}

// Replace makes l the current layout after repairing it, and persists it.
func (c *Controller) Replace(ctx context.Context, l layout.Layout) {
	c.commit(ctx, layout.Normalize(l))
}

// Flush sends any pending remote write now.
func (c *Controller) Flush(ctx context.Context) error {
	return c.chain.Flush(ctx)
}

// Close flushes pending writes and stops the chain.
func (c *Controller) Close(ctx context.Context) error {
	return c.chain.Close(ctx)
}

func (c *Controller) commit(ctx context.Context, next layout.Layout) {
	c.layout = next
	c.chain.Persist(ctx, c.bp, next)
}
