// Package pkg provides the core libraries for Gridboard dashboard layouts.
//
// # Overview
//
// Gridboard places dashboard widgets on a responsive column grid, remembers
// each user's arrangement per breakpoint, and scales every widget's content to
// the box it is given. The pkg directory is organized into four main areas:
//
//  1. [layout] - Domain logic (placement records, changes, compaction, grid geometry)
//  2. [autoscale], [observer], [widget] - Rendered widgets and their sizing
//  3. [persist], [controller] - Loading and saving layouts (store, cache, defaults)
//  4. [server], [store], [remote] - The layout store service and its client
//
// # Architecture
//
// The typical data flow for one dashboard:
//
//	Layout store (remote) / local cache / built-in default
//	         ↓
//	    [persist] Chain (resolve by precedence)
//	         ↓
//	    [controller] (normalize, compact, apply user changes)
//	         ↓
//	    [widget] Board (grid boxes → observers → autoscale params)
//	         ↓
//	    rendered widgets
//
// Changes flow back up: the controller hands every new layout to the chain,
// which writes the local cache at once and the layout store after a quiet
// period ([debounce]).
//
// # Quick Start
//
//	chain := persist.NewChain(client, persist.NewLocalCache(fc, nil, "alice"), logger)
//	ctrl := controller.New(chain, controller.WithBreakpoint(layout.BreakpointFor(1280)))
//	if _, err := ctrl.Load(ctx); err != nil {
//	    return err
//	}
//	defer ctrl.Close(ctx)
//
//	ctrl.ToggleCollapse(ctx, layout.WidgetKPISales)
//
//	board := widget.NewBoard(1280)
//	for _, p := range board.Relayout(ctrl.GetLayout()) {
//	    fmt.Println(p.Record.ID, p.Params.FontSize)
//	}
//
// # Main Packages
//
// ## Layout Model
//
// [layout] - Placement records, the per-breakpoint default layouts, partial
// changes ([layout.ApplyChange]), collapse and expand, vertical compaction,
// breakpoints and the pixel grid.
//
// ## Widgets
//
// [autoscale] - Pure mapping from a pixel box to presentation parameters.
//
// [observer] - Per-widget dimension observer with change notifications.
//
// [widget] - A widget wired to its observer, and a board that sizes every
// widget from the grid.
//
// ## Persistence
//
// [persist] - Remote → local → default resolution and debounced write-back.
//
// [controller] - The layout controller a dashboard talks to.
//
// [debounce] - Trailing-edge debouncer with an injectable clock.
//
// [cache] - Local file cache with a size quota.
//
// ## Service
//
// [server] - HTTP API of the layout store.
//
// [store] - Document stores: memory, file, Redis and MongoDB.
//
// [remote] - HTTP client for the layout store.
//
// ## Infrastructure
//
// [config] - TOML configuration.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for metrics and logging.
//
// [httputil] - Retry helpers for HTTP clients.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                                   # All tests
//	go test ./pkg/layout/...                            # Specific package
//	go test -run Example ./pkg/layout                   # Examples only
//	GRIDBOARD_TEST_REDIS=localhost:6379 go test ./pkg/store  # Include Redis
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/layout
// [autoscale]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/autoscale
// [observer]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/observer
// [widget]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/widget
// [persist]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/persist
// [controller]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/controller
// [debounce]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/debounce
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/server
// [store]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/store
// [remote]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/remote
// [config]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/httputil
// [layout.ApplyChange]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/layout#ApplyChange
package pkg
