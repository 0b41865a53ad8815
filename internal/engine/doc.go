// Package engine provides the in-memory editing surface used by the sbp
// tools and tests.
//
// An Engine combines a buffer, the selection set with its mark, and grouped
// undo history, and implements host.Surface and host.Viewport so the
// register and rectangle engines can run against it exactly as they would
// against a real editor binding.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("abcdef\nxy\nqrstuv"))
//	e.SetSelections(host.NewRegion(1, 14))
//
//	e.Edit("rectangle delete", func() {
//	    e.Erase(host.NewRegion(11, 14))
//	    e.Erase(host.NewRegion(1, 4))
//	})
//
//	e.Undo() // both erasures revert together
//
// # Errors
//
// The surface methods never return errors; the engines treat every
// failure as a silent no-op. Failed mutations are logged and the most
// recent one is available from LastError.
//
// # Thread Safety
//
// Engine methods are safe to call from multiple goroutines, but Edit
// groups assume a single writer for the duration of the callback.
package engine
