// Package rectangle implements Emacs-style rectangle editing.
//
// A rectangle is the column range between two buffer positions applied to
// every row between them, regardless of how long each row actually is.
// Geometry is computed from the primary selection; the Editor then deletes
// or replaces the column span on each row inside one host edit so a single
// undo reverts the whole operation.
package rectangle
