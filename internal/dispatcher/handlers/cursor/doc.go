// Package cursor provides handlers for plain cursor movement.
//
// Columns are counted in runes. Every movement collapses the selection.
// Vertical moves keep the column when the target line is long enough and
// clamp it otherwise.
package cursor
