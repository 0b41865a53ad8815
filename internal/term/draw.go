package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Draw renders the text area, the status line and the prompt line.
//
//	rows 0..h-3  document text from the engine's scroll top
//	row  h-2     status line
//	row  h-1     prompt or message line
func (t *Terminal) Draw() {
	t.screen.Clear()
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	cursorX, cursorY := t.drawText(w, max(h-2, 0))
	if h >= 2 {
		t.drawStatus(w, h-2)
	}

	panel := t.app.Panel()
	if panel.Active() {
		x := t.drawString(0, h-1, w, panel.Label()+" ", t.styles.prompt)
		x = t.drawString(x, h-1, w, panel.Text(), t.styles.text)
		t.screen.ShowCursor(min(x, w-1), h-1)
	} else {
		t.drawString(0, h-1, w, t.lastLine(), t.styles.text)
		if cursorY >= 0 {
			t.screen.ShowCursor(cursorX, cursorY)
		} else {
			t.screen.HideCursor()
		}
	}
	t.screen.Show()
}

// drawText draws the visible rows and returns the screen position of the
// primary cursor, or y < 0 when it is off screen.
func (t *Terminal) drawText(w, rows int) (cursorX, cursorY int) {
	e := t.engine()
	cursor := e.PrimaryCursor()
	var selBegin, selEnd int64
	if sels := e.Selections(); len(sels) > 0 {
		selBegin, selEnd = sels[0].Begin(), sels[0].End()
	}

	cursorY = -1
	top := e.ScrollTop()
	for y := 0; y < rows; y++ {
		row := top + y
		if row >= e.LineCount() {
			break
		}
		start := e.TextPoint(row, 0)
		x := 0
		for i, r := range e.LineText(row) {
			offset := start + int64(i)
			if offset == cursor {
				cursorX, cursorY = min(x, w-1), y
			}
			if x < w {
				style := t.styles.text
				if offset >= selBegin && offset < selEnd {
					style = t.styles.selection
				}
				if r == '\t' {
					r = ' '
				}
				t.screen.SetContent(x, y, r, nil, style)
			}
			x++
		}
		if cursorY < 0 && cursor == start+int64(len(e.LineText(row))) {
			cursorX, cursorY = min(x, w-1), y
		}
	}
	return cursorX, cursorY
}

func (t *Terminal) drawStatus(w, y int) {
	doc := t.app.Document()
	e := t.engine()
	row, col := e.RowCol(e.PrimaryCursor())

	flag := "  "
	switch {
	case doc.ReadOnly:
		flag = "%%"
	case doc.IsModified():
		flag = "**"
	}
	status := fmt.Sprintf(" %s %s  L%d C%d", flag, doc.Name, row+1, col)
	if e.MarkActive() {
		status += "  Mark"
	}

	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, t.styles.status)
	}
	t.drawString(0, y, w, status, t.styles.status)
}

func (t *Terminal) lastLine() string {
	if len(t.pending) > 0 {
		return t.Pending() + "-"
	}
	return t.message
}

// drawString draws s from x and returns the column after it.
func (t *Terminal) drawString(x, y, w int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= w {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
