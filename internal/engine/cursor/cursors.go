package cursor

import "sort"

// CursorSet manages the selections of a view.
// Selections are kept sorted by position and non-overlapping.
type CursorSet struct {
	selections []Selection
	markActive bool
}

// NewCursorSetAt creates a set with a single cursor at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return &CursorSet{
		selections: []Selection{NewCursorSelection(offset)},
	}
}

// Primary returns the first selection.
func (cs *CursorSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// All returns a copy of all selections.
func (cs *CursorSet) All() []Selection {
	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// Clear removes every selection.
func (cs *CursorSet) Clear() {
	cs.selections = cs.selections[:0]
}

// Add adds a selection, merging it with any it overlaps.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// SetAll replaces the selections.
func (cs *CursorSet) SetAll(sels []Selection) {
	cs.selections = append(cs.selections[:0], sels...)
	cs.normalize()
}

// MapHeads moves the head of every selection through fn. While the mark
// is active the anchors stay put; otherwise selections collapse onto the
// new head.
func (cs *CursorSet) MapHeads(fn func(ByteOffset) ByteOffset) {
	for i, sel := range cs.selections {
		head := fn(sel.Head)
		if cs.markActive {
			cs.selections[i] = sel.Extend(head)
		} else {
			cs.selections[i] = sel.MoveTo(head)
		}
	}
	cs.normalize()
}

// SetMark activates the mark at every selection's head.
func (cs *CursorSet) SetMark() {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Collapse()
	}
	cs.markActive = true
}

// MarkActive reports whether the mark is set.
func (cs *CursorSet) MarkActive() bool {
	return cs.markActive
}

// CancelMark deactivates the mark and collapses selections onto their heads.
func (cs *CursorSet) CancelMark() {
	cs.markActive = false
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Collapse()
	}
	cs.normalize()
}

// Clamp keeps every selection inside a buffer of the given size.
func (cs *CursorSet) Clamp(size ByteOffset) {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(size)
	}
	cs.normalize()
}

// normalize sorts selections and merges overlapping or duplicate ones.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	sort.SliceStable(cs.selections, func(i, j int) bool {
		return cs.selections[i].Start() < cs.selections[j].Start()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Overlaps(*last) || sel.Start() == last.Start() {
			start := min(last.Start(), sel.Start())
			end := max(last.End(), sel.End())
			if last.Head < last.Anchor {
				*last = NewSelection(end, start)
			} else {
				*last = NewSelection(start, end)
			}
			continue
		}
		merged = append(merged, sel)
	}
	cs.selections = merged
}
