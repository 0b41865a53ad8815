package rectangle

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/sbp/internal/engine"
	"github.com/dshills/sbp/internal/host"
)

func TestFromOffsets(t *testing.T) {
	e := engine.New(engine.WithContent("abcdef\nxy\nqrstuv"))

	tests := []struct {
		name string
		a, b int64
		want Rect
	}{
		{"top-left to bottom-right", 1, 14, Rect{Top: 0, Left: 1, Bottom: 2, Right: 4}},
		{"reversed", 14, 1, Rect{Top: 0, Left: 1, Bottom: 2, Right: 4}},
		{"bottom-left to top-right", 11, 4, Rect{Top: 0, Left: 1, Bottom: 2, Right: 4}},
		{"single row", 2, 5, Rect{Top: 0, Left: 2, Bottom: 0, Right: 5}},
		{"empty", 8, 8, Rect{Top: 1, Left: 1, Bottom: 1, Right: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromOffsets(e, tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanClipsToRow(t *testing.T) {
	e := engine.New(engine.WithContent("abcdef\nxy\n\nqrstuv"))
	r := Rect{Top: 0, Left: 1, Bottom: 3, Right: 4}

	tests := []struct {
		row  int
		want host.Region
	}{
		{0, host.NewRegion(1, 4)},
		{1, host.NewRegion(8, 9)},
		{2, host.NewRegion(10, 10)},
		{3, host.NewRegion(12, 15)},
	}
	for _, tt := range tests {
		if got := r.Span(e, tt.row); got != tt.want {
			t.Errorf("Span(row %d) = %v, want %v", tt.row, got, tt.want)
		}
	}
}

func TestRectMetrics(t *testing.T) {
	r := Rect{Top: 2, Left: 3, Bottom: 5, Right: 7}
	if r.Rows() != 4 {
		t.Errorf("expected 4 rows, got %d", r.Rows())
	}
	if r.Width() != 4 {
		t.Errorf("expected width 4, got %d", r.Width())
	}
	if r.IsEmpty() {
		t.Error("rect should not be empty")
	}
	if r.String() != "rows 2-5 cols 3-7" {
		t.Errorf("unexpected String %q", r.String())
	}
}

func pointGen() *rapid.Generator[Point] {
	return rapid.Custom(func(t *rapid.T) Point {
		return Point{
			Row: rapid.IntRange(0, 200).Draw(t, "row"),
			Col: rapid.IntRange(0, 200).Draw(t, "col"),
		}
	})
}

func TestFromPointsOrderInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := pointGen().Draw(rt, "a")
		b := pointGen().Draw(rt, "b")

		r := FromPoints(a, b)
		if r != FromPoints(b, a) {
			rt.Fatalf("FromPoints(%v, %v) depends on argument order", a, b)
		}
		if r.Top > r.Bottom || r.Left > r.Right {
			rt.Fatalf("rect %v is not normalized", r)
		}
	})
}

func TestFromPointsZeroArea(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := pointGen().Draw(rt, "a")

		r := FromPoints(a, a)
		if !r.IsEmpty() || r.Rows() != 1 || r.Top != a.Row || r.Left != a.Col {
			rt.Fatalf("FromPoints(%v, %v) = %v, want zero-area rect", a, a, r)
		}
	})
}
