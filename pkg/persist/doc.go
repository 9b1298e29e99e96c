// Package persist resolves and stores dashboard layouts across a remote
// layout store, a local cache, and the built-in defaults.
//
// # Resolution
//
// [Chain.Resolve] tries each source in order and returns the first usable
// layout:
//
//  1. Remote: a successful, non-empty response. It is mirrored into the
//     local cache so the next offline load sees it.
//  2. Local: a parseable, non-empty cache entry.
//  3. Default: [layout.Default] for the breakpoint.
//
// A failing source (network error, timeout, corrupt data) is treated as
// empty and the next one is tried. Resolve never fails.
//
// # Writes
//
// [Chain.Persist] writes the local cache synchronously and schedules a
// debounced remote write carrying a snapshot of the layout, one debouncer
// per breakpoint. A burst of changes produces one remote write with the
// final state. Write failures are logged and reported to the layout hooks,
// never returned. [Chain.Flush] sends pending remote writes immediately.
package persist
