package sentence

import (
	"errors"
	"fmt"
)

// ErrEmptyPattern is returned when a pattern source is blank.
var ErrEmptyPattern = errors.New("sentence: pattern is empty")

// PatternError reports a pattern source that failed to compile.
type PatternError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("sentence: invalid pattern %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}
