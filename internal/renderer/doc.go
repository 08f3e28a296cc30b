// Package renderer draws a document, its selection and a status line on a
// terminal backend.
//
// Text is laid out by grapheme cluster with display widths from uniseg, so
// wide and combining characters take the cells a terminal gives them. Tabs
// expand to the configured tab stop. The view scrolls vertically and
// horizontally to keep the cursor on screen.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	_ = term.Init()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(engine, renderer.Status{Name: "notes.md"})
package renderer
