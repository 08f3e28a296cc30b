// Package input turns key presses into actions.
//
// A Handler resolves each key.Event against a keymap.Keymap and delivers
// the resulting Action on a channel. Actions are plain values naming a
// command ("sentence.select", "editor.undo") plus optional arguments; the
// dispatcher routes them to handlers by namespace.
package input
