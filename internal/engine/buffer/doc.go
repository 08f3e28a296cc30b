// Package buffer provides a thread-safe, line-oriented text buffer for
// markdown documents.
//
// The buffer stores a document as a slice of lines (one paragraph per line
// in the markdown model) and addresses text with Points whose Column is a
// count of Unicode code points, not bytes. This matches how the sentence
// engine and the host editor index characters.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Whole-line replacement, the only mutation sentence commands need
//   - Line ending detection and normalization
//   - Revision tracking for change management
//   - Read-only snapshots that do not change when the buffer is edited
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("First line.\n\nSecond paragraph.")
//
//	// Replace the text of one line
//	res, err := buf.ReplaceLine(2, "Second paragraph, edited.")
//
//	// Read a consistent view
//	snap := buf.Snapshot()
//	text := snap.LineText(0)
package buffer
