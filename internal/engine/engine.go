package engine

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/dshills/sbp/internal/engine/buffer"
	"github.com/dshills/sbp/internal/engine/cursor"
	"github.com/dshills/sbp/internal/engine/history"
	"github.com/dshills/sbp/internal/host"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Selection represents a cursor selection.
	Selection = cursor.Selection
)

// Motion is a cursor movement.
type Motion uint8

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
	MoveBufferStart
	MoveBufferEnd
)

// Engine is an in-memory editing surface. It implements host.Surface and
// host.Viewport.
type Engine struct {
	mu sync.Mutex

	// Core components
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	history *history.History
	logger  host.Logger

	// Configuration
	maxUndoEntries int
	viewportHeight int
	readOnly       bool

	// State
	scrollTop int
	editDepth int
	modified  bool
	lastErr   error
	editErr   error

	// Initialization
	initContent string
}

var (
	_ host.Surface      = (*Engine)(nil)
	_ host.Viewport     = (*Engine)(nil)
	_ host.EditReporter = (*Engine)(nil)
)

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		viewportHeight: DefaultViewportHeight,
		logger:         host.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewBufferFromString(e.initContent)
	e.cursors = cursor.NewCursorSetAt(0)
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return New(append(opts, WithContent(string(data)))...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Len returns the byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(line int) string {
	return e.buf.LineText(line)
}

// Lines returns every line without newlines.
func (e *Engine) Lines() []string {
	return e.buf.Lines()
}

// Modified reports whether the buffer changed since creation or the last
// MarkSaved.
func (e *Engine) Modified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modified
}

// MarkSaved clears the modified flag.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modified = false
}

// LastError returns the most recent failed mutation, if any.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// EditErr returns the error of the most recent mutation, or nil when it was
// applied.
func (e *Engine) EditErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editErr
}

// ============================================================================
// host.LineIndex
// ============================================================================

// RowCol returns the row and column of offset.
func (e *Engine) RowCol(offset int64) (int, int) {
	p := e.buf.OffsetToPoint(offset)
	return p.Line, p.Column
}

// TextPoint returns the offset of (row, col), clipping col to the row.
func (e *Engine) TextPoint(row, col int) int64 {
	return e.buf.PointToOffset(Point{Line: row, Column: col})
}

// ============================================================================
// host.Surface
// ============================================================================

// Selections returns the selections as regions from anchor to head.
func (e *Engine) Selections() []host.Region {
	e.mu.Lock()
	defer e.mu.Unlock()

	sels := e.cursors.All()
	regions := make([]host.Region, len(sels))
	for i, s := range sels {
		regions[i] = host.NewRegion(s.Anchor, s.Head)
	}
	return regions
}

// SetSelections replaces the selections. Regions are clamped to the buffer.
func (e *Engine) SetSelections(regions ...host.Region) {
	size := e.buf.Len()

	e.mu.Lock()
	defer e.mu.Unlock()

	sels := make([]Selection, len(regions))
	for i, r := range regions {
		sels[i] = cursor.NewSelection(r.A, r.B).Clamp(size)
	}
	e.cursors.SetAll(sels)
}

// Substr returns the text spanned by r.
func (e *Engine) Substr(r host.Region) string {
	return e.buf.TextRange(r.Begin(), r.End())
}

// Replace replaces the span of r with text.
func (e *Engine) Replace(r host.Region, text string) {
	e.apply("replace", r.Begin(), r.End(), text)
}

// Erase removes the span of r.
func (e *Engine) Erase(r host.Region) {
	if r.Empty() {
		return
	}
	e.apply("erase", r.Begin(), r.End(), "")
}

// Insert inserts text at offset.
func (e *Engine) Insert(offset int64, text string) {
	if text == "" {
		return
	}
	e.apply("insert", offset, offset, text)
}

// Edit runs fn as one undo unit. Nested calls join the outermost edit.
func (e *Engine) Edit(name string, fn func()) {
	e.mu.Lock()
	outer := e.editDepth == 0
	e.editDepth++
	before := e.cursors.All()
	e.mu.Unlock()

	if outer {
		e.history.BeginGroup(name, before)
	}
	defer func() {
		e.mu.Lock()
		e.editDepth--
		e.mu.Unlock()
		if outer {
			e.history.EndGroup()
		}
	}()

	fn()
}

// CancelMark deactivates the mark and collapses selections onto their heads.
func (e *Engine) CancelMark() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.CancelMark()
}

// apply performs one buffer mutation, shifts the selections past it and
// records it for undo.
func (e *Engine) apply(name string, start, end ByteOffset, text string) bool {
	if e.readOnly {
		e.fail(fmt.Errorf("%s: %w", name, ErrReadOnly))
		return false
	}

	e.mu.Lock()
	before := e.cursors.All()
	change, err := e.buf.Replace(start, end, text)
	if err != nil {
		e.mu.Unlock()
		e.fail(fmt.Errorf("%s %s: %w", name, buffer.NewRange(start, end), err))
		return false
	}
	e.shiftSelectionsLocked(change)
	e.modified = true
	e.editErr = nil
	e.mu.Unlock()

	e.history.Record(name, change, before)
	return true
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.editErr = err
	e.mu.Unlock()
	e.logger.Warn("edit failed: %v", err)
}

func (e *Engine) shiftSelectionsLocked(c buffer.Change) {
	sels := e.cursors.All()
	for i, s := range sels {
		sels[i] = cursor.NewSelection(shift(s.Anchor, c), shift(s.Head, c))
	}
	e.cursors.SetAll(sels)
}

// shift maps an offset across a change. Offsets at an insertion point move
// past the inserted text; offsets inside a replaced span collapse to its
// start.
func shift(p ByteOffset, c buffer.Change) ByteOffset {
	switch {
	case p < c.Range.Start:
		return p
	case p >= c.Range.End:
		return p + c.NewRange.End - c.Range.End
	default:
		return c.Range.Start
	}
}

// ============================================================================
// Mark and cursor motion
// ============================================================================

// SetMark activates the mark at the cursor.
func (e *Engine) SetMark() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetMark()
}

// MarkActive reports whether the mark is set.
func (e *Engine) MarkActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.MarkActive()
}

// PrimaryCursor returns the head of the primary selection.
func (e *Engine) PrimaryCursor() ByteOffset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.Primary().Head
}

// MoveCursor moves every selection head. While the mark is active the
// selections extend instead of moving.
func (e *Engine) MoveCursor(m Motion) {
	text := e.buf.Text()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cursors.MapHeads(func(head ByteOffset) ByteOffset {
		switch m {
		case MoveLeft:
			if head == 0 {
				return 0
			}
			_, size := utf8.DecodeLastRuneInString(text[:head])
			return head - ByteOffset(size)
		case MoveRight:
			if head >= ByteOffset(len(text)) {
				return head
			}
			_, size := utf8.DecodeRuneInString(text[head:])
			return head + ByteOffset(size)
		case MoveUp, MoveDown:
			p := e.buf.OffsetToPoint(head)
			if m == MoveUp {
				if p.Line == 0 {
					return 0
				}
				p.Line--
			} else {
				if p.Line+1 >= e.buf.LineCount() {
					return ByteOffset(len(text))
				}
				p.Line++
			}
			return e.buf.PointToOffset(p)
		case MoveLineStart:
			return e.buf.LineStartOffset(e.buf.OffsetToPoint(head).Line)
		case MoveLineEnd:
			return e.buf.LineEndOffset(e.buf.OffsetToPoint(head).Line)
		case MoveBufferStart:
			return 0
		case MoveBufferEnd:
			return ByteOffset(len(text))
		}
		return head
	})
}

// TypeText replaces every selection with text and leaves a cursor after
// each insertion. Typing deactivates the mark.
func (e *Engine) TypeText(text string) {
	sels := e.Selections()
	e.Edit("type", func() {
		for i := len(sels) - 1; i >= 0; i-- {
			e.Replace(sels[i], text)
		}
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	after := e.cursors.All()
	for i, s := range after {
		after[i] = cursor.NewCursorSelection(s.End())
	}
	e.cursors.CancelMark()
	e.cursors.SetAll(after)
}

// DeleteBackward deletes each selection, or the rune before each cursor.
func (e *Engine) DeleteBackward() {
	text := e.buf.Text()
	sels := e.Selections()
	e.Edit("delete", func() {
		for i := len(sels) - 1; i >= 0; i-- {
			r := sels[i]
			if r.Empty() {
				if r.A == 0 {
					continue
				}
				_, size := utf8.DecodeLastRuneInString(text[:r.A])
				r = host.NewRegion(r.A-int64(size), r.A)
			}
			e.Erase(r)
		}
	})
	e.CancelMark()
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last edit.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.history.Undo(e.buf, e.cursors); err != nil {
		return err
	}
	e.modified = true
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.history.Redo(e.buf, e.cursors); err != nil {
		return err
	}
	e.modified = true
	return nil
}

// CanUndo returns true if there is something to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// ============================================================================
// host.Viewport
// ============================================================================

// ShowAtCenter scrolls so that the row of offset is vertically centered,
// as far as the buffer allows.
func (e *Engine) ShowAtCenter(offset int64) {
	row, _ := e.RowCol(offset)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrollTop = max(row-e.viewportHeight/2, 0)
}

// ScrollTop returns the first visible row.
func (e *Engine) ScrollTop() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollTop
}

// SetViewportHeight sets the number of visible rows.
func (e *Engine) SetViewportHeight(rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rows > 0 {
		e.viewportHeight = rows
	}
}

// EnsureCursorVisible scrolls the minimum amount that keeps the primary
// cursor on screen.
func (e *Engine) EnsureCursorVisible() {
	row, _ := e.RowCol(e.PrimaryCursor())

	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case row < e.scrollTop:
		e.scrollTop = row
	case row >= e.scrollTop+e.viewportHeight:
		e.scrollTop = row - e.viewportHeight + 1
	}
}
