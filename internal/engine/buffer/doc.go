// Package buffer provides the line-indexed text buffer backing the in-memory
// host view.
//
// Offsets are byte offsets into the text. Points are 0-indexed line/column
// pairs where the column is a byte offset within the line. Conversions from
// points to offsets clip the column to the line's length, which is what the
// rectangle engine relies on for rows shorter than the rectangle.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("abcdef\nxy\nqrstuv")
//	off := buf.PointToOffset(buffer.Point{Line: 1, Column: 4}) // clipped to 9
//	buf.Delete(off-1, off)                                    // "abcdef\nx\nqrstuv"
//
// All Buffer methods are safe for concurrent use.
package buffer
