// Package history provides undo/redo for line replacements.
//
// Every mutation a sentence command performs is a whole-line replacement, so
// an undo entry only needs the line, its text before and after, and the
// selection on either side of the edit.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Entry records one applied line replacement.
type Entry struct {
	Description     string
	Line            int
	OldText         string
	NewText         string
	SelectionBefore cursor.Selection
	SelectionAfter  cursor.Selection
	Timestamp       time.Time
}

// undoEdit returns the edit that reverts the entry.
func (e *Entry) undoEdit() buffer.LineEdit {
	return buffer.LineEdit{Line: e.Line, NewText: e.OldText}
}

// redoEdit returns the edit that re-applies the entry.
func (e *Entry) redoEdit() buffer.LineEdit {
	return buffer.LineEdit{Line: e.Line, NewText: e.NewText}
}

// Target is what undo and redo write through.
type Target interface {
	Apply(e buffer.LineEdit) (buffer.EditResult, error)
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Push records an applied edit and clears the redo stack.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.undoStack = append(h.undoStack, &e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent entry through target and returns the
// selection to restore.
func (h *History) Undo(target Target) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return cursor.Selection{}, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	if _, err := target.Apply(entry.undoEdit()); err != nil {
		return cursor.Selection{}, err
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	return entry.SelectionBefore, nil
}

// Redo re-applies the most recently undone entry through target and returns
// the selection to restore.
func (h *History) Redo(target Target) (cursor.Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return cursor.Selection{}, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	if _, err := target.Apply(entry.redoEdit()); err != nil {
		return cursor.Selection{}, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	return entry.SelectionAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
