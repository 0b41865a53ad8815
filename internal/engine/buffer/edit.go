package buffer

import "fmt"

// ChangeType categorizes a buffer change.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change records a single applied edit so it can be undone.
// Range is the span that was replaced; NewRange is the span the new text
// occupies afterwards.
type Change struct {
	Type     ChangeType
	Range    Range
	NewRange Range
	OldText  string
	NewText  string
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%d, %q)", c.Range.Start, c.NewText)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", c.Range, c.NewText)
	}
}

// Invert returns the change that reverses c.
func (c Change) Invert() Change {
	inv := Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	default:
		inv.Type = ChangeReplace
	}
	return inv
}

func classify(r Range, text string) ChangeType {
	switch {
	case r.IsEmpty():
		return ChangeInsert
	case text == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}
