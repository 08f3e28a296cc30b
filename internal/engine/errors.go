package engine

import (
	"errors"

	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = buffer.ErrLineOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
