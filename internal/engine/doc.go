// Package engine provides the document model sentence commands run against.
//
// The engine package is a facade combining a line buffer, a single
// selection and undo/redo into one thread-safe type. It satisfies the
// accessor interface of package sentence, so every sentence command can be
// run directly against an Engine.
//
// # Architecture
//
//   - buffer: line storage with rune columns and immutable snapshots
//   - cursor: the Selection value type
//   - history: undo/redo of whole-line replacements
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock and
// writes an exclusive one. Snapshot returns an immutable view that stays
// valid while the engine keeps changing.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("First. Second."))
//	e.SetCursor(engine.Point{Line: 0, Column: 8})
//	e.ReplaceLine(0, "First.")
//	e.Undo()
package engine
