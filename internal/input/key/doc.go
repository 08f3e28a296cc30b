// Package key provides key event types, key specification parsing and
// conversion from terminal events.
//
// Key specifications use the "Ctrl+Shift+Backspace" form. Modifier names are
// case-insensitive; Cmd and Win are aliases of Meta, Option of Alt.
package key
