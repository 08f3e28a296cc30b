// Package keymap provides key binding management.
//
// A Keymap maps single key presses to action names. The default keymap
// binds the sentence commands and the basic editor commands; user
// configuration can rebind or unbind any action.
//
// # Key Specifications
//
//	"Alt+S"                - Alt and a character
//	"Ctrl+Shift+Backspace" - modifiers and a special key
//	"Mod+Z"                - Mod is an alias of Ctrl
//
// # Usage
//
//	km := keymap.Default()
//	if err := km.ApplyOverrides(map[string]string{"sentence.select": "Ctrl+L"}); err != nil {
//	    return err
//	}
//	if b, ok := km.Lookup(ev); ok {
//	    // dispatch b.Action
//	}
package keymap
