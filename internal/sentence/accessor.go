package sentence

import (
	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
)

// Accessor is the editor surface operations are run against.
type Accessor interface {
	Lines

	// Cursor returns the selection head.
	Cursor() buffer.Point
	// SetCursor collapses the selection onto p.
	SetCursor(p buffer.Point)
	// Selection returns the current selection.
	Selection() cursor.Selection
	// SetSelection selects from anchor to head.
	SetSelection(anchor, head buffer.Point)
	// SelectedText returns the text under the selection.
	SelectedText() string
	// ReplaceLine replaces the whole text of line i.
	ReplaceLine(i int, text string) error
}

// snapshotter is implemented by accessors that can hand out an immutable
// view of their lines.
type snapshotter interface {
	Snapshot() *buffer.Snapshot
}

// selectingReplacer is implemented by accessors that can replace a line and
// set the resulting selection as one undoable edit.
type selectingReplacer interface {
	ReplaceLineAndSelect(i int, text string, sel cursor.Selection) error
}

// Capture builds a Snapshot from the accessor's current state.
func Capture(acc Accessor) Snapshot {
	var doc Lines = acc
	if sn, ok := acc.(snapshotter); ok {
		doc = sn.Snapshot()
	}
	return Snapshot{Lines: doc, Selection: acc.Selection()}
}

// Apply writes an outcome back through the accessor. An unchanged outcome
// is not written at all.
func Apply(acc Accessor, out Outcome) error {
	if !out.Changed {
		return nil
	}
	if out.Edit != nil {
		if sr, ok := acc.(selectingReplacer); ok {
			return sr.ReplaceLineAndSelect(out.Edit.Line, out.Edit.NewText, out.Selection)
		}
		if err := acc.ReplaceLine(out.Edit.Line, out.Edit.NewText); err != nil {
			return err
		}
	}
	if out.Selection.IsEmpty() {
		acc.SetCursor(out.Selection.Head)
	} else {
		acc.SetSelection(out.Selection.Anchor, out.Selection.Head)
	}
	return nil
}

// Run captures the accessor's state, runs op with the active pattern of cfg
// and applies the outcome. A nil cfg uses the default pattern.
func Run(acc Accessor, cfg *Config, op Operation) (Outcome, error) {
	p := Default()
	if cfg != nil {
		p = cfg.Pattern()
	}
	out := op(Capture(acc), p)
	if err := Apply(acc, out); err != nil {
		return Outcome{Selection: acc.Selection()}, err
	}
	return out, nil
}
