package cursor

import "testing"

func TestSelectionBounds(t *testing.T) {
	s := NewSelection(9, 5)

	if s.Start() != 5 || s.End() != 9 {
		t.Errorf("expected [5,9], got [%d,%d]", s.Start(), s.End())
	}
	if r := s.Range(); r.Start != 5 || r.End != 9 {
		t.Errorf("range should be normalized, got %v", r)
	}
	if s.IsEmpty() {
		t.Error("selection should not be empty")
	}
	if !s.Collapse().IsEmpty() || s.Collapse().Head != 5 {
		t.Errorf("collapse should land on head, got %v", s.Collapse())
	}
}

func TestSelectionClamp(t *testing.T) {
	s := NewSelection(-2, 40).Clamp(10)
	if s.Anchor != 0 || s.Head != 10 {
		t.Errorf("expected 0->10, got %v", s)
	}
}

func TestCursorSetMergesOverlaps(t *testing.T) {
	cs := NewCursorSetAt(0)
	cs.SetAll([]Selection{
		NewSelection(10, 14),
		NewSelection(0, 3),
		NewSelection(12, 20),
	})

	if cs.Count() != 2 {
		t.Fatalf("expected 2 selections, got %d: %v", cs.Count(), cs.All())
	}
	if cs.Primary() != NewSelection(0, 3) {
		t.Errorf("primary should be the first by position, got %v", cs.Primary())
	}
	if got := cs.All()[1]; got.Start() != 10 || got.End() != 20 {
		t.Errorf("expected merged [10,20], got %v", got)
	}
}

func TestCursorSetMark(t *testing.T) {
	cs := NewCursorSetAt(4)
	cs.SetMark()

	if !cs.MarkActive() {
		t.Fatal("mark should be active")
	}

	cs.MapHeads(func(o ByteOffset) ByteOffset { return o + 3 })
	if cs.Primary() != NewSelection(4, 7) {
		t.Errorf("head motion should extend from the mark, got %v", cs.Primary())
	}

	cs.CancelMark()
	if cs.MarkActive() {
		t.Error("mark should be inactive")
	}
	if cs.Primary() != NewCursorSelection(7) {
		t.Errorf("cancel should collapse onto the head, got %v", cs.Primary())
	}

	cs.MapHeads(func(o ByteOffset) ByteOffset { return o - 1 })
	if cs.Primary() != NewCursorSelection(6) {
		t.Errorf("without a mark motion moves the cursor, got %v", cs.Primary())
	}
}

func TestCursorSetClear(t *testing.T) {
	cs := NewCursorSetAt(1)
	cs.Clear()
	if cs.Count() != 0 {
		t.Errorf("expected no selections, got %d", cs.Count())
	}
	if cs.Primary() != (Selection{}) {
		t.Error("primary of an empty set should be the zero selection")
	}
	cs.Add(NewCursorSelection(3))
	if cs.Count() != 1 {
		t.Errorf("expected 1 selection, got %d", cs.Count())
	}
}
