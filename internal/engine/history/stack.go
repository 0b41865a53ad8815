package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/sbp/internal/engine/buffer"
	"github.com/dshills/sbp/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry is one undo unit.
type Entry struct {
	Name      string
	Changes   []buffer.Change
	Before    []cursor.Selection
	Timestamp time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	// Grouping state
	grouping bool
	group    *Entry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Record adds an applied change. Outside a group the change becomes its own
// entry; inside a group it joins the group.
func (h *History) Record(name string, change buffer.Change, before []cursor.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.group.Changes = append(h.group.Changes, change)
		return
	}

	h.pushLocked(&Entry{
		Name:      name,
		Changes:   []buffer.Change{change},
		Before:    before,
		Timestamp: time.Now(),
	})
}

func (h *History) pushLocked(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BeginGroup starts a group. Nested calls are ignored.
func (h *History) BeginGroup(name string, before []cursor.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.group = &Entry{Name: name, Before: before}
}

// EndGroup closes the current group. Empty groups are dropped.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	g := h.group
	h.group = nil

	if len(g.Changes) == 0 {
		return
	}
	g.Timestamp = time.Now()
	h.pushLocked(g)
}

// IsGrouping returns true while a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Transaction runs fn inside a group.
func (h *History) Transaction(name string, before []cursor.Selection, fn func()) {
	h.BeginGroup(name, before)
	defer h.EndGroup()
	fn()
}

// Undo reverts the most recent entry and restores its selections.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	for i := len(e.Changes) - 1; i >= 0; i-- {
		if err := buf.Apply(e.Changes[i].Invert()); err != nil {
			return fmt.Errorf("undo %s: %w", e.Name, err)
		}
	}
	if len(e.Before) > 0 {
		cursors.SetAll(e.Before)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return nil
}

// Redo re-applies the most recently undone entry. The cursor lands at the
// end of the last change.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	for _, c := range e.Changes {
		if err := buf.Apply(c); err != nil {
			return fmt.Errorf("redo %s: %w", e.Name, err)
		}
	}
	last := e.Changes[len(e.Changes)-1]
	cursors.SetAll([]cursor.Selection{cursor.NewCursorSelection(last.NewRange.End)})

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the name of the next undo entry.
func (h *History) PeekUndo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return "", false
	}
	return h.undoStack[len(h.undoStack)-1].Name, true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
}
