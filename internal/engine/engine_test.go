package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sbp/internal/engine/history"
	"github.com/dshills/sbp/internal/host"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("expected empty engine, got len %d", e.Len())
	}
	if e.Text() != "" {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	sels := e.Selections()
	if len(sels) != 1 || sels[0] != host.Point(0) {
		t.Errorf("expected a single cursor at 0, got %v", sels)
	}
}

func TestNewWithContent(t *testing.T) {
	content := "Hello, World!"
	e := New(WithContent(content))

	if e.Text() != content {
		t.Errorf("expected %q, got %q", content, e.Text())
	}
	if e.Len() != ByteOffset(len(content)) {
		t.Errorf("expected len %d, got %d", len(content), e.Len())
	}
	if e.Modified() {
		t.Error("new engine should not be modified")
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("one\ntwo\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", e.LineCount())
	}
	if e.LineText(1) != "two" {
		t.Errorf("expected %q, got %q", "two", e.LineText(1))
	}
}

// ============================================================================
// Line Index
// ============================================================================

func TestRowColAndTextPoint(t *testing.T) {
	e := New(WithContent("abcdef\nxy\nqrstuv"))

	row, col := e.RowCol(8)
	if row != 1 || col != 1 {
		t.Errorf("RowCol(8) = (%d, %d), want (1, 1)", row, col)
	}

	tests := []struct {
		row, col int
		want     int64
	}{
		{0, 4, 4},
		{1, 1, 8},
		{1, 4, 9}, // clipped to the end of "xy"
		{2, 4, 14},
	}
	for _, tt := range tests {
		if got := e.TextPoint(tt.row, tt.col); got != tt.want {
			t.Errorf("TextPoint(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

// ============================================================================
// Surface Mutations
// ============================================================================

func TestReplaceShiftsSelections(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetSelections(host.Point(8))

	e.Replace(host.NewRegion(0, 5), "hi")

	if e.Text() != "hi world" {
		t.Errorf("expected %q, got %q", "hi world", e.Text())
	}
	if got := e.Selections()[0]; got != host.Point(5) {
		t.Errorf("expected cursor shifted to 5, got %v", got)
	}
	if !e.Modified() {
		t.Error("engine should be modified after an edit")
	}
}

func TestInsertAtCursorPushesCursor(t *testing.T) {
	e := New(WithContent("ab"))
	e.SetSelections(host.Point(1))

	e.Insert(1, "XY")

	if e.Text() != "aXYb" {
		t.Errorf("expected %q, got %q", "aXYb", e.Text())
	}
	if got := e.Selections()[0]; got != host.Point(3) {
		t.Errorf("expected cursor at 3, got %v", got)
	}
}

func TestEraseCollapsesSelectionInside(t *testing.T) {
	e := New(WithContent("abcdef"))
	e.SetSelections(host.Point(3))

	e.Erase(host.NewRegion(1, 5))

	if e.Text() != "af" {
		t.Errorf("expected %q, got %q", "af", e.Text())
	}
	if got := e.Selections()[0]; got != host.Point(1) {
		t.Errorf("expected cursor at 1, got %v", got)
	}
}

func TestSubstrAcceptsReversedRegion(t *testing.T) {
	e := New(WithContent("hello world"))
	if got := e.Substr(host.NewRegion(11, 6)); got != "world" {
		t.Errorf("expected %q, got %q", "world", got)
	}
}

func TestOutOfRangeEditRecordsError(t *testing.T) {
	e := New(WithContent("abc"))

	e.Insert(10, "x")

	if e.Text() != "abc" {
		t.Errorf("failed edit changed text: %q", e.Text())
	}
	if e.LastError() == nil {
		t.Error("expected LastError after an out of range edit")
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())

	e.Replace(host.NewRegion(0, 1), "X")

	if e.Text() != "abc" {
		t.Errorf("read-only engine was modified: %q", e.Text())
	}
	if !errors.Is(e.LastError(), ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", e.LastError())
	}
	if !errors.Is(e.EditErr(), ErrReadOnly) {
		t.Errorf("expected EditErr ErrReadOnly, got %v", e.EditErr())
	}
}

func TestEditErrClearsOnSuccess(t *testing.T) {
	e := New(WithContent("abc"))

	e.Replace(host.NewRegion(0, 99), "X")
	if e.EditErr() == nil {
		t.Fatal("expected EditErr after an out of range edit")
	}

	e.Replace(host.NewRegion(0, 1), "X")
	if err := e.EditErr(); err != nil {
		t.Errorf("EditErr = %v after a successful edit", err)
	}
	if e.LastError() == nil {
		t.Error("LastError should keep the earlier failure")
	}
}

// ============================================================================
// Edit Groups and Undo
// ============================================================================

func TestEditGroupsUndo(t *testing.T) {
	e := New(WithContent("abcdef\nxy\nqrstuv"))
	e.SetSelections(host.NewRegion(1, 14))

	e.Edit("rectangle delete", func() {
		e.Erase(host.NewRegion(11, 14))
		e.Erase(host.NewRegion(8, 9))
		e.Erase(host.NewRegion(1, 4))
	})

	if e.Text() != "aef\nx\nquv" {
		t.Fatalf("unexpected text %q", e.Text())
	}
	if e.UndoCount() != 1 {
		t.Errorf("expected one undo entry, got %d", e.UndoCount())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if e.Text() != "abcdef\nxy\nqrstuv" {
		t.Errorf("undo did not restore text: %q", e.Text())
	}
	if got := e.Selections()[0]; got != host.NewRegion(1, 14) {
		t.Errorf("undo did not restore selection, got %v", got)
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if e.Text() != "aef\nx\nquv" {
		t.Errorf("redo produced %q", e.Text())
	}
}

func TestNestedEditJoinsOuter(t *testing.T) {
	e := New(WithContent("abc"))

	e.Edit("outer", func() {
		e.Insert(0, "1")
		e.Edit("inner", func() {
			e.Insert(0, "2")
		})
		e.Insert(0, "3")
	})

	if e.UndoCount() != 1 {
		t.Errorf("expected one undo entry, got %d", e.UndoCount())
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abc" {
		t.Errorf("expected %q, got %q", "abc", e.Text())
	}
}

func TestUndoEmpty(t *testing.T) {
	e := New()
	if err := e.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if e.CanUndo() {
		t.Error("CanUndo should be false")
	}
}

// ============================================================================
// Mark and Motion
// ============================================================================

func TestMarkExtendsSelection(t *testing.T) {
	e := New(WithContent("abcdef\nxy\nqrstuv"))
	e.SetSelections(host.Point(1))
	e.SetMark()

	e.MoveCursor(MoveDown)
	e.MoveCursor(MoveDown)
	e.MoveCursor(MoveRight)
	e.MoveCursor(MoveRight)
	e.MoveCursor(MoveRight)

	if got := e.Selections()[0]; got != host.NewRegion(1, 14) {
		t.Errorf("expected selection (1, 14), got %v", got)
	}

	e.CancelMark()
	if e.MarkActive() {
		t.Error("mark should be inactive")
	}
	if got := e.Selections()[0]; got != host.Point(14) {
		t.Errorf("expected cursor at 14, got %v", got)
	}
}

func TestMoveCursor(t *testing.T) {
	e := New(WithContent("héllo\nab"))

	tests := []struct {
		name  string
		start int64
		m     Motion
		want  int64
	}{
		{"right over multibyte", 1, MoveRight, 3},
		{"left over multibyte", 3, MoveLeft, 1},
		{"left at start", 0, MoveLeft, 0},
		{"down clips column", 5, MoveDown, 9},
		{"up", 8, MoveUp, 1},
		{"up at top", 2, MoveUp, 0},
		{"down at bottom", 8, MoveDown, 9},
		{"line start", 4, MoveLineStart, 0},
		{"line end", 1, MoveLineEnd, 6},
		{"buffer end", 0, MoveBufferEnd, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.SetSelections(host.Point(tt.start))
			e.MoveCursor(tt.m)
			if got := e.PrimaryCursor(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTypeTextReplacesSelection(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetSelections(host.NewRegion(0, 5))

	e.TypeText("bye")

	if e.Text() != "bye world" {
		t.Errorf("expected %q, got %q", "bye world", e.Text())
	}
	if got := e.Selections()[0]; got != host.Point(3) {
		t.Errorf("expected cursor at 3, got %v", got)
	}
}

func TestDeleteBackward(t *testing.T) {
	e := New(WithContent("héllo"))
	e.SetSelections(host.Point(3))

	e.DeleteBackward()

	if e.Text() != "hllo" {
		t.Errorf("expected %q, got %q", "hllo", e.Text())
	}

	e.SetSelections(host.Point(0))
	e.DeleteBackward()
	if e.Text() != "hllo" {
		t.Errorf("delete at start should do nothing, got %q", e.Text())
	}
}

// ============================================================================
// Viewport
// ============================================================================

func TestShowAtCenter(t *testing.T) {
	e := New(WithContent(strings.Repeat("line\n", 100)), WithViewportHeight(10))

	e.ShowAtCenter(e.TextPoint(50, 0))
	if got := e.ScrollTop(); got != 45 {
		t.Errorf("expected scroll top 45, got %d", got)
	}

	e.ShowAtCenter(e.TextPoint(2, 0))
	if got := e.ScrollTop(); got != 0 {
		t.Errorf("expected scroll top clamped to 0, got %d", got)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	e := New(WithContent(strings.Repeat("line\n", 100)), WithViewportHeight(10))

	e.SetSelections(host.Point(e.TextPoint(30, 0)))
	e.EnsureCursorVisible()
	if got := e.ScrollTop(); got != 21 {
		t.Errorf("expected scroll top 21, got %d", got)
	}

	e.SetSelections(host.Point(e.TextPoint(5, 0)))
	e.EnsureCursorVisible()
	if got := e.ScrollTop(); got != 5 {
		t.Errorf("expected scroll top 5, got %d", got)
	}
}
