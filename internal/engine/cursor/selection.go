// Package cursor provides the cursor and selection value types used by the
// engine and by sentence commands.
//
// A Selection has an Anchor (where the selection started) and a Head (where
// the cursor is drawn and where typing occurs). When Anchor == Head the
// selection is a plain cursor. The anchor may come after the head; that is
// a backward selection.
package cursor

import (
	"fmt"

	"github.com/dshills/sentencenav/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point // Where selection started
	Head   Point // Current cursor position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection as an ordered range.
func (s Selection) Range() buffer.PointRange {
	return buffer.NewPointRange(s.Anchor, s.Head)
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Head.Before(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Head.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

// Cursor returns the head position.
func (s Selection) Cursor() Point {
	return s.Head
}

// IsBackward returns true if the head comes before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Extend returns a selection with the anchor kept and the head moved to p.
func (s Selection) Extend(p Point) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// MoveTo returns a collapsed selection at p.
func (s Selection) MoveTo(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// Flip returns a selection with anchor and head swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Normalize returns a forward selection (anchor <= head).
func (s Selection) Normalize() Selection {
	return Selection{Anchor: s.Start(), Head: s.End()}
}

// Clamp returns the selection with both ends clamped by clamp.
func (s Selection) Clamp(clamp func(Point) Point) Selection {
	return Selection{Anchor: clamp(s.Anchor), Head: clamp(s.Head)}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection(%s->%s)", s.Anchor, s.Head)
}
