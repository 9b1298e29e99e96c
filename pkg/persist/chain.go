package persist

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/debounce"
	"github.com/matzehuels/gridboard/pkg/layout"
	"github.com/matzehuels/gridboard/pkg/observability"
)

// Source identifies where a resolved layout came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceLocal   Source = "local"
	SourceDefault Source = "default"
)

// DefaultRemoteTimeout bounds each remote load and each remote write.
const DefaultRemoteTimeout = 10 * time.Second

// Remote is the layout store shared across devices.
type Remote interface {
	Load(ctx context.Context, bp layout.Breakpoint) (layout.Layout, error)
	Save(ctx context.Context, bp layout.Breakpoint, l layout.Layout) error
}

// Local is the per-device layout store.
type Local interface {
	Load(ctx context.Context, bp layout.Breakpoint) (layout.Layout, error)
	Save(ctx context.Context, bp layout.Breakpoint, l layout.Layout) error
}

// Resolution is the outcome of [Chain.Resolve].
type Resolution struct {
	Layout layout.Layout
	Source Source
}

// Option configures a Chain.
type Option func(*Chain)

// WithRemoteTimeout bounds each remote call. Non-positive values keep the default.
func WithRemoteTimeout(d time.Duration) Option {
	return func(c *Chain) {
		if d > 0 {
			c.remoteTimeout = d
		}
	}
}

// WithDebounce sets the quiet period before a remote write.
func WithDebounce(d time.Duration) Option {
	return func(c *Chain) { c.debounceDelay = d }
}

// WithScheduler sets the timer source for debounced writes.
func WithScheduler(s debounce.Scheduler) Option {
	return func(c *Chain) { c.scheduler = s }
}

// Chain resolves layouts from Remote, then Local, then the defaults, and
// writes changes back to both stores.
//
// Resolve may run on a different goroutine than Persist when the Remote and
// Local stores are safe for concurrent use, as every store in this module
// is. The debounced remote writes run on timer goroutines and only see
// snapshots.
type Chain struct {
	Remote Remote
	Local  Local
	Logger *log.Logger

	remoteTimeout time.Duration
	debounceDelay time.Duration
	scheduler     debounce.Scheduler

	mu      sync.Mutex
	pending map[layout.Breakpoint]*debounce.Debouncer
	closed  bool
}

// NewChain creates a chain over the given stores. Either store may be nil,
// in which case that leg is skipped. If logger is nil, log.Default() is used.
func NewChain(remote Remote, local Local, logger *log.Logger, opts ...Option) *Chain {
	if logger == nil {
		logger = log.Default()
	}
	c := &Chain{
		Remote:        remote,
		Local:         local,
		Logger:        logger,
		remoteTimeout: DefaultRemoteTimeout,
		debounceDelay: debounce.DefaultDelay,
		pending:       make(map[layout.Breakpoint]*debounce.Debouncer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Resolve
// =============================================================================

// Resolve returns the layout for bp from the first source that has one.
// The returned layout is normalized but not compacted.
func (c *Chain) Resolve(ctx context.Context, bp layout.Breakpoint) Resolution {
	start := time.Now()
	res := c.resolve(ctx, bp)
	observability.Layout().OnResolve(ctx, bp.String(), string(res.Source), time.Since(start))
	c.Logger.Debug("resolved layout",
		"breakpoint", bp,
		"source", res.Source,
		"widgets", len(res.Layout),
		"duration", time.Since(start).Round(time.Millisecond))
	return res
}

func (c *Chain) resolve(ctx context.Context, bp layout.Breakpoint) Resolution {
	if c.Remote != nil {
		if l, ok := c.loadRemote(ctx, bp); ok {
			c.mirror(ctx, bp, l)
			return Resolution{Layout: l, Source: SourceRemote}
		}
	}
	if c.Local != nil {
		if l, ok := c.load(ctx, bp, SourceLocal, c.Local.Load); ok {
			return Resolution{Layout: l, Source: SourceLocal}
		}
	}
	return Resolution{Layout: layout.Default(bp), Source: SourceDefault}
}

func (c *Chain) loadRemote(ctx context.Context, bp layout.Breakpoint) (layout.Layout, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
	defer cancel()
	return c.load(ctx, bp, SourceRemote, c.Remote.Load)
}

// load reads one source. Errors and empty layouts both mean "try the next one".
func (c *Chain) load(ctx context.Context, bp layout.Breakpoint, src Source,
	fn func(context.Context, layout.Breakpoint) (layout.Layout, error)) (layout.Layout, bool) {
	l, err := fn(ctx, bp)
	if err != nil {
		observability.Layout().OnSourceError(ctx, bp.String(), string(src), err)
		c.Logger.Debug("layout source unavailable", "breakpoint", bp, "source", src, "error", err)
		return nil, false
	}
	l = layout.Normalize(l)
	if len(l) == 0 {
		c.Logger.Debug("layout source empty", "breakpoint", bp, "source", src)
		return nil, false
	}
	return l, true
}

// mirror copies a remote layout into the local store so the next offline
// load sees it.
func (c *Chain) mirror(ctx context.Context, bp layout.Breakpoint, l layout.Layout) {
	if c.Local == nil {
		return
	}
	if err := c.Local.Save(ctx, bp, l); err != nil {
		c.Logger.Debug("mirror to local failed", "breakpoint", bp, "error", err)
	}
}

// =============================================================================
// Persist
// =============================================================================

// Persist writes l to the local store now and schedules a debounced remote
// write. l is copied; the caller may keep mutating its own slice.
func (c *Chain) Persist(ctx context.Context, bp layout.Breakpoint, l layout.Layout) {
	snapshot := l.Clone()
	if snapshot == nil {
		snapshot = layout.Layout{}
	}

	if c.Local != nil {
		err := c.Local.Save(ctx, bp, snapshot)
		observability.Layout().OnLocalWrite(ctx, bp.String(), len(snapshot), err)
		if err != nil {
			c.Logger.Warn("local layout write failed", "breakpoint", bp, "error", err)
		}
	}

	if c.Remote == nil {
		return
	}
	d := c.debouncer(bp)
	if d == nil {
		return
	}
	writeCtx := context.WithoutCancel(ctx)
	d.Trigger(func() { c.saveRemote(writeCtx, bp, snapshot) })
}

func (c *Chain) debouncer(bp layout.Breakpoint) *debounce.Debouncer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	d, ok := c.pending[bp]
	if !ok {
		d = debounce.New(c.debounceDelay, debounce.WithScheduler(c.scheduler))
		c.pending[bp] = d
	}
	return d
}

func (c *Chain) saveRemote(ctx context.Context, bp layout.Breakpoint, l layout.Layout) {
	ctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
	defer cancel()

	start := time.Now()
	err := c.Remote.Save(ctx, bp, l)
	observability.Layout().OnRemoteWrite(ctx, bp.String(), len(l), time.Since(start), err)
	if err != nil {
		c.Logger.Debug("remote layout write failed", "breakpoint", bp, "error", err)
		return
	}
	c.Logger.Debug("saved layout remotely", "breakpoint", bp, "widgets", len(l))
}

// Pending reports whether any remote write is waiting for its debounce delay.
func (c *Chain) Pending() bool {
	for _, d := range c.debouncers() {
		if d.Pending() {
			return true
		}
	}
	return false
}

// Flush sends every pending remote write now and waits for them, or until
// ctx is done.
func (c *Chain) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, d := range c.debouncers() {
			d.Flush()
		}
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending writes and stops accepting new ones.
func (c *Chain) Close(ctx context.Context) error {
	err := c.Flush(ctx)

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	for _, d := range c.debouncers() {
		d.Stop()
	}
	return err
}

func (c *Chain) debouncers() []*debounce.Debouncer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*debounce.Debouncer, 0, len(c.pending))
	for _, d := range c.pending {
		out = append(out, d)
	}
	return out
}
