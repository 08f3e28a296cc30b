package engine

import (
	"io"
	"sync"

	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
	"github.com/dshills/sentencenav/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// LineEdit replaces the text of one line.
	LineEdit = buffer.LineEdit

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Snapshot is an immutable view of the document lines.
	Snapshot = buffer.Snapshot
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the main facade for the document model.
// It combines the line buffer, the selection and undo/redo into a unified,
// thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	sel     cursor.Selection
	history *history.History

	// Configuration
	lineEnding     buffer.LineEnding
	lineEndingSet  bool
	maxUndoEntries int
	readOnly       bool

	// Revision at the last MarkSaved
	savedRevision buffer.RevisionID

	// Initialization
	initContent string
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	if !e.lineEndingSet {
		return nil
	}
	return []buffer.Option{buffer.WithLineEnding(e.lineEnding)}
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	if e.initContent != "" {
		e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	} else {
		e.buf = buffer.NewBuffer(e.bufferOptions()...)
	}
	e.savedRevision = e.buf.RevisionID()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	var err error
	e.buf, err = buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.savedRevision = e.buf.RevisionID()
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document joined with its line ending.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// WriteTo writes the document to w.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.WriteTo(w)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// Line returns the text of a line, or "" if out of range.
func (e *Engine) Line(i int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(i)
}

// LineLen returns the length of a line in runes.
func (e *Engine) LineLen(i int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineLen(i)
}

// IsEmpty returns true if the document has no text.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// LineEnding returns the line ending used when writing.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// RevisionID returns the current revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// Snapshot returns an immutable view of the current lines.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// ClampPoint returns p moved onto the nearest valid position.
func (e *Engine) ClampPoint(p Point) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ClampPoint(p)
}

// ============================================================================
// Cursor and Selection
// ============================================================================

// Cursor returns the selection head.
func (e *Engine) Cursor() Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Head
}

// SetCursor collapses the selection onto p, clamped to the document.
func (e *Engine) SetCursor(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = cursor.NewCursorSelection(e.buf.ClampPoint(p))
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SetSelection selects from anchor to head, both clamped to the document.
func (e *Engine) SetSelection(anchor, head Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = cursor.NewSelection(anchor, head).Clamp(e.buf.ClampPoint)
}

// SelectedText returns the text under the selection, "" for a cursor.
func (e *Engine) SelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.sel.IsEmpty() {
		return ""
	}
	return e.buf.TextRange(e.sel.Range())
}

// ============================================================================
// Write Operations
// ============================================================================

// ReplaceLine replaces the text of line i and records the change for undo.
// The selection is clamped to the new text.
func (e *Engine) ReplaceLine(i int, text string) error {
	return e.replaceLine(i, text, nil)
}

// ReplaceLineAndSelect replaces line i and moves the selection to sel as a
// single undoable step. Redo restores sel rather than the old selection.
func (e *Engine) ReplaceLineAndSelect(i int, text string, sel Selection) error {
	return e.replaceLine(i, text, &sel)
}

func (e *Engine) replaceLine(i int, text string, after *Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	before := e.sel
	res, err := e.buf.ReplaceLine(i, text)
	if err != nil {
		return err
	}
	if after != nil {
		e.sel = *after
	}
	e.sel = e.sel.Clamp(e.buf.ClampPoint)

	if res.OldText != res.NewText {
		e.history.Push(history.Entry{
			Description:     "Replace line",
			Line:            i,
			OldText:         res.OldText,
			NewText:         res.NewText,
			SelectionBefore: before,
			SelectionAfter:  e.sel,
		})
	}
	return nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the last line replacement and restores the selection from
// before it.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	sel, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.ClampPoint)
	return nil
}

// Redo re-applies the last undone replacement and restores the selection
// from after it.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	sel, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	e.sel = sel.Clamp(e.buf.ClampPoint)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// ClearHistory drops all undo and redo entries.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// State
// ============================================================================

// IsReadOnly returns true if the engine rejects writes.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Modified reports whether the document changed since creation or the last
// MarkSaved.
func (e *Engine) Modified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID() != e.savedRevision
}

// MarkSaved records the current revision as saved.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.savedRevision = e.buf.RevisionID()
}
