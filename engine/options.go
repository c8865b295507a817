// SPDX-License-Identifier: MIT

// Package engine: functional configuration for storage engines.
// This file defines:
//   - Option / options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - No dead switches: each option changes behavior and is covered by tests.
//   - Safe by construction: panic only on programmer error (nil observer or
//     logger); reach values are validated by the constructor so that a
//     negative reach surfaces as ErrInvalidReach, not a panic.
package engine

import (
	"io"
	"log/slog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLayout is the buffer layout of newly created storage engines.
	DefaultLayout = RowMajor

	// DefaultReach marks "reach equals the logical size" for constructors
	// that take only logical dimensions.
	DefaultReach = -1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilObserver = "engine: WithObserver: observer must be non-nil"
	panicNilLogger   = "engine: WithLogger: logger must be non-nil"
	panicBadLayout   = "engine: WithLayout: layout must be RowMajor or ColMajor"
)

// Option mutates internal options. Safe to apply repeatedly; last writer wins.
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	layout   Layout
	rowReach int // DefaultReach ⇒ equal to rows
	colReach int // DefaultReach ⇒ equal to cols
	observer Observer
	logger   *slog.Logger
}

// discardLogger swallows every record; used when no logger is configured.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultOptions returns the documented defaults.
func defaultOptions() options {
	return options{
		layout:   DefaultLayout,
		rowReach: DefaultReach,
		colReach: DefaultReach,
		logger:   discardLogger,
	}
}

// gatherOptions applies opts over the defaults in order.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// WithLayout selects the buffer layout (RowMajor or ColMajor).
// Panics on LayoutNone or unknown values: storage always has a physical layout.
func WithLayout(l Layout) Option {
	if l != RowMajor && l != ColMajor {
		panic(panicBadLayout)
	}

	return func(o *options) { o.layout = l }
}

// WithReach sets the initial row and column reach for dynamic constructors.
// Reach below the logical size is raised to the size; negative reach is
// rejected by the constructor with ErrInvalidReach.
//
// AI-Hints:
//   - Reserve reach up front when an engine will grow in steps; reshapes that
//     stay within reach never reallocate.
func WithReach(rowReach, colReach int) Option {
	return func(o *options) {
		o.rowReach = rowReach
		o.colReach = colReach
	}
}

// WithObserver attaches a reshape observer (e.g. metrics.Collector).
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicNilObserver)
	}

	return func(o *options) { o.observer = obs }
}

// WithLogger attaches a structured logger; reallocations log at Debug level.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = l }
}

// ReshapeEvent describes one completed reshape of a storage engine.
type ReshapeEvent struct {
	Rows, Cols         int  // logical extent after the reshape
	RowReach, ColReach int  // reach after the reshape
	Reallocated        bool // true when a new buffer was allocated
	Moved              int  // cells moved into the new buffer (0 when in place)
	Filled             int  // cells zero-filled in place (0 when reallocated)
}

// Observer receives reshape notifications. Implementations must not call
// back into the engine that notifies them.
type Observer interface {
	OnReshape(ev ReshapeEvent)
}
