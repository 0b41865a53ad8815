// Package host defines the capabilities the register and rectangle engines
// need from a text-editing surface. Any editor binding that implements these
// interfaces can drive the engines; the engines never depend on concrete
// host types.
package host

import "fmt"

// Region is a span between two offsets in either order.
type Region struct {
	A int64
	B int64
}

// NewRegion creates a region from a to b.
func NewRegion(a, b int64) Region {
	return Region{A: a, B: b}
}

// Point creates an empty region at offset.
func Point(offset int64) Region {
	return Region{A: offset, B: offset}
}

// Begin returns the lower offset.
func (r Region) Begin() int64 { return min(r.A, r.B) }

// End returns the upper offset.
func (r Region) End() int64 { return max(r.A, r.B) }

// Len returns the number of bytes spanned.
func (r Region) Len() int64 { return r.End() - r.Begin() }

// Empty reports whether the region spans nothing.
func (r Region) Empty() bool { return r.A == r.B }

func (r Region) String() string {
	return fmt.Sprintf("(%d, %d)", r.A, r.B)
}

// LineIndex converts between offsets and row/column positions.
type LineIndex interface {
	// RowCol returns the 0-indexed row and column of offset.
	RowCol(offset int64) (row, col int)

	// TextPoint returns the offset of (row, col). A column past the end of
	// the row is clipped to the row's length.
	TextPoint(row, col int) int64
}

// Surface is the editing surface of one view.
type Surface interface {
	LineIndex

	// Selections returns the current selections in order; the first is the
	// primary selection.
	Selections() []Region

	// SetSelections replaces the selections.
	SetSelections(regions ...Region)

	// Substr returns the text spanned by r.
	Substr(r Region) string

	// Replace replaces the span of r with text.
	Replace(r Region, text string)

	// Erase removes the span of r.
	Erase(r Region)

	// Insert inserts text at offset.
	Insert(offset int64, text string)

	// Edit runs fn as one logical edit; every mutation made inside it is
	// undone together.
	Edit(name string, fn func())

	// CancelMark clears the transient mark, collapsing the selection.
	CancelMark()
}

// EditReporter is implemented by surfaces that can refuse mutations, such as
// read-only buffers.
type EditReporter interface {
	// EditErr returns the error of the most recent mutation, or nil when it
	// was applied.
	EditErr() error
}

// Viewport is implemented by surfaces that can scroll.
type Viewport interface {
	// ShowAtCenter scrolls so that offset is vertically centered.
	ShowAtCenter(offset int64)
}

// PromptID identifies an open prompt.
type PromptID string

// PromptHandlers are the callbacks of a modal prompt. Any of them may be nil.
type PromptHandlers struct {
	// OnConfirm receives the final text when the user confirms.
	OnConfirm func(text string)

	// OnChange receives the text after every edit to the prompt.
	OnChange func(text string)

	// OnCancel is called when the user dismisses the prompt.
	OnCancel func()
}

// Prompter opens single-line modal prompts.
type Prompter interface {
	// OpenPrompt shows a prompt with label and initial text.
	OpenPrompt(label, initial string, handlers PromptHandlers) PromptID

	// ClosePrompt hides the prompt without invoking any handler.
	ClosePrompt(id PromptID)
}

// Logger is the logging surface the engines write to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
