package keymap

// Categories used by the default bindings.
const (
	CategorySentence = "Sentence"
	CategoryEditing  = "Editing"
	CategoryMovement = "Movement"
	CategoryFile     = "File"
)

// DefaultBindings returns the built-in bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Sentences
		{Keys: "Ctrl+Shift+Backspace", Action: "sentence.deleteToStart", Description: "Delete to start of sentence", Category: CategorySentence},
		{Keys: "Ctrl+Shift+Delete", Action: "sentence.deleteToEnd", Description: "Delete to end of sentence", Category: CategorySentence},
		{Keys: "Alt+Shift+Left", Action: "sentence.selectToStart", Description: "Select to start of sentence", Category: CategorySentence},
		{Keys: "Alt+Shift+Right", Action: "sentence.selectToEnd", Description: "Select to end of sentence", Category: CategorySentence},
		{Keys: "Alt+Left", Action: "sentence.moveToStart", Description: "Move to start of current sentence", Category: CategorySentence},
		{Keys: "Alt+Right", Action: "sentence.moveToNextStart", Description: "Move to start of next sentence", Category: CategorySentence},
		{Keys: "Alt+S", Action: "sentence.select", Description: "Select sentence", Category: CategorySentence},

		// Editing
		{Keys: "Ctrl+Z", Action: "editor.undo", Description: "Undo", Category: CategoryEditing},
		{Keys: "Ctrl+Y", Action: "editor.redo", Description: "Redo", Category: CategoryEditing},
		{Keys: "Ctrl+C", Action: "editor.copySelection", Description: "Copy selection", Category: CategoryEditing},
		{Keys: "Backspace", Action: "editor.deleteBackward", Description: "Delete character before cursor", Category: CategoryEditing},
		{Keys: "Delete", Action: "editor.deleteForward", Description: "Delete character after cursor", Category: CategoryEditing},

		// Movement
		{Keys: "Left", Action: "cursor.moveLeft", Description: "Move left", Category: CategoryMovement},
		{Keys: "Right", Action: "cursor.moveRight", Description: "Move right", Category: CategoryMovement},
		{Keys: "Up", Action: "cursor.moveUp", Description: "Move up", Category: CategoryMovement},
		{Keys: "Down", Action: "cursor.moveDown", Description: "Move down", Category: CategoryMovement},
		{Keys: "Home", Action: "cursor.moveLineStart", Description: "Move to line start", Category: CategoryMovement},
		{Keys: "End", Action: "cursor.moveLineEnd", Description: "Move to line end", Category: CategoryMovement},
		{Keys: "Ctrl+Home", Action: "cursor.moveFirstLine", Description: "Move to first line", Category: CategoryMovement},
		{Keys: "Ctrl+End", Action: "cursor.moveLastLine", Description: "Move to last line", Category: CategoryMovement},

		// File
		{Keys: "Ctrl+S", Action: "file.save", Description: "Save", Category: CategoryFile},
		{Keys: "Ctrl+Q", Action: "app.quit", Description: "Quit", Category: CategoryFile},
	}
}

// Default returns a keymap holding DefaultBindings.
func Default() *Keymap {
	km := NewKeymap("default")
	km.Source = "default"
	for _, b := range DefaultBindings() {
		if err := km.Add(b); err != nil {
			panic("keymap: bad default binding: " + err.Error())
		}
	}
	return km
}
