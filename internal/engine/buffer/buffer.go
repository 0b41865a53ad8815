package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer holds text together with an index of line start offsets.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []ByteOffset
	revision   uint64
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return NewBufferFromString("")
}

// NewBufferFromString creates a buffer with initial content.
// CRLF and CR line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{}
	b.setText(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// setText replaces the content and rebuilds the line index. Caller holds mu.
func (b *Buffer) setText(s string) {
	b.text = s
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i+1))
		}
	}
	b.revision++
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Revision increments on every modification.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.lineStarts[line]:b.lineEndLocked(line)]
}

// Lines returns every line without newlines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Split(b.text, "\n")
}

// LineLen returns the byte length of a line without its newline.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) {
		return 0
	}
	return int(b.lineEndLocked(line) - b.lineStarts[line])
}

// LineStartOffset returns the offset of the first byte of a line.
func (b *Buffer) LineStartOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStarts[b.clampLine(line)]
}

// LineEndOffset returns the offset just before a line's newline.
func (b *Buffer) LineEndOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEndLocked(b.clampLine(line))
}

func (b *Buffer) lineEndLocked(line int) ByteOffset {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return ByteOffset(len(b.text))
}

func (b *Buffer) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.lineStarts) - 1
	}
	return line
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > ByteOffset(len(b.text)) {
		return ByteOffset(len(b.text))
	}
	return offset
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
// Offsets outside the buffer are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: line, Column: int(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to a byte offset. The line is clamped
// to the buffer and the column is clipped to the line's length, so a point
// past the end of a short line lands on that line's end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := b.clampLine(p.Line)
	start := b.lineStarts[line]
	end := b.lineEndLocked(line)
	col := ByteOffset(p.Column)
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// Write Operations

// Insert inserts text at offset and returns the resulting change.
func (b *Buffer) Insert(offset ByteOffset, text string) (Change, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes [start, end) and returns the resulting change.
func (b *Buffer) Delete(start, end ByteOffset) (Change, error) {
	return b.Replace(start, end, "")
}

// Replace replaces [start, end) with text and returns the resulting change.
func (b *Buffer) Replace(start, end ByteOffset, text string) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := ByteOffset(len(b.text))
	if start < 0 || start > size || end > size {
		return Change{}, ErrOffsetOutOfRange
	}
	if start > end {
		return Change{}, ErrRangeInvalid
	}

	text = normalizeLineEndings(text)
	old := b.text[start:end]
	b.setText(b.text[:start] + text + b.text[end:])

	r := Range{Start: start, End: end}
	return Change{
		Type:     classify(r, text),
		Range:    r,
		NewRange: Range{Start: start, End: start + ByteOffset(len(text))},
		OldText:  old,
		NewText:  text,
	}, nil
}

// Apply applies a previously recorded change.
func (b *Buffer) Apply(c Change) error {
	_, err := b.Replace(c.Range.Start, c.Range.End, c.NewText)
	return err
}
