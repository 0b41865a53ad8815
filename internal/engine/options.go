package engine

import "github.com/dshills/sbp/internal/host"

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultViewportHeight = 24
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithViewportHeight sets the number of visible rows used by ShowAtCenter.
func WithViewportHeight(rows int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.viewportHeight = rows
		}
	}
}

// WithReadOnly creates a read-only engine.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger sets the logger used for failed mutations.
func WithLogger(l host.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
