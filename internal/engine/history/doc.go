// Package history provides undo/redo for the in-memory host view.
//
// Every buffer change is recorded together with the selections that were
// active before it. Changes recorded between BeginGroup and EndGroup form a
// single entry, so a multi-row rectangle edit undoes with one step:
//
//	h := history.NewHistory(1000)
//	h.BeginGroup("rectangle delete", cursors.All())
//	// ... record one change per row ...
//	h.EndGroup()
//
//	h.Undo(buf, cursors)
package history
