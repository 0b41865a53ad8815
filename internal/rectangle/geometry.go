package rectangle

import (
	"fmt"

	"github.com/dshills/sbp/internal/host"
)

// Point is a row/column position.
type Point struct {
	Row int
	Col int
}

// Rect is a normalized rectangle: Top <= Bottom and Left <= Right.
// Rows are inclusive; columns are the half-open range [Left, Right).
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// FromPoints builds the rectangle spanned by a and b, given in any order.
func FromPoints(a, b Point) Rect {
	return Rect{
		Top:    min(a.Row, b.Row),
		Left:   min(a.Col, b.Col),
		Bottom: max(a.Row, b.Row),
		Right:  max(a.Col, b.Col),
	}
}

// FromOffsets converts two offsets to row/column through idx and builds
// the rectangle between them.
func FromOffsets(idx host.LineIndex, a, b int64) Rect {
	aRow, aCol := idx.RowCol(a)
	bRow, bCol := idx.RowCol(b)
	return FromPoints(Point{Row: aRow, Col: aCol}, Point{Row: bRow, Col: bCol})
}

// FromRegion builds the rectangle spanned by a region.
func FromRegion(idx host.LineIndex, r host.Region) Rect {
	return FromOffsets(idx, r.A, r.B)
}

// Rows returns the number of rows covered.
func (r Rect) Rows() int {
	return r.Bottom - r.Top + 1
}

// Width returns the number of columns covered.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// IsEmpty reports whether the rectangle covers no columns.
func (r Rect) IsEmpty() bool {
	return r.Left == r.Right
}

// Span returns the rectangle's column range on row, clipped by idx to the
// row's length. Rows shorter than Left yield an empty region.
func (r Rect) Span(idx host.LineIndex, row int) host.Region {
	return host.NewRegion(idx.TextPoint(row, r.Left), idx.TextPoint(row, r.Right))
}

func (r Rect) String() string {
	return fmt.Sprintf("rows %d-%d cols %d-%d", r.Top, r.Bottom, r.Left, r.Right)
}
