package keymap

import "github.com/dshills/sentencenav/internal/input/key"

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Examples: "Alt+S", "Ctrl+Shift+Backspace"
	Keys string `json:"keys"`

	// Action is the command to execute.
	// Examples: "sentence.select", "editor.undo"
	Action string `json:"action"`

	// Description provides documentation for the binding.
	Description string `json:"description,omitempty"`

	// Category groups bindings for display purposes.
	Category string `json:"category,omitempty"`

	event key.Event
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// Event returns the parsed key event. It is the zero Event until the
// binding has been added to a keymap.
func (b Binding) Event() key.Event {
	return b.event
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category, keeping first-seen
// order.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{Name: name, Bindings: categoryMap[name]})
	}
	return result
}
