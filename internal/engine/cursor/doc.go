// Package cursor provides selections and the selection set of a view.
//
// Selections use an anchor/head model: Anchor is where the selection
// started and Head is where typing occurs. When Anchor == Head the
// selection is a plain cursor.
//
// A CursorSet keeps its selections sorted and non-overlapping; the first
// one is the primary selection. The set also tracks the Emacs-style mark:
// while the mark is active, cursor motion moves only the head so the
// selection grows from the anchor. Cancelling the mark collapses every
// selection onto its head.
package cursor
