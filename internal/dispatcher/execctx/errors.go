package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates the engine is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")

	// ErrMissingClipboard indicates the clipboard is required but not set.
	ErrMissingClipboard = errors.New("execution context: clipboard is required")

	// ErrMissingDocument indicates the action needs a file-backed buffer.
	ErrMissingDocument = errors.New("execution context: no file is open")
)
