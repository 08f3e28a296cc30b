// Package editor provides handlers for plain text editing around the
// sentence commands.
//
// # History
//
//   - editor.undo: revert the last line replacement
//   - editor.redo: re-apply the last undone replacement
//
// # Clipboard
//
//   - editor.copySelection: copy the selected text to the clipboard
//
// # Typing
//
//   - editor.insertText: insert Args.Text at the cursor, replacing a
//     selection that lies on one line
//   - editor.deleteBackward: delete the selection or the rune before the cursor
//   - editor.deleteForward: delete the selection or the rune after the cursor
//
// Edits never cross line boundaries: line breaks cannot be typed and
// deleting at the edge of a line does nothing.
//
// Usage:
//
//	d.RegisterNamespace("editor", editor.NewHandler())
//	d.SetClipboard(editor.SystemClipboard{})
package editor
