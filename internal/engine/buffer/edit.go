package buffer

import (
	"fmt"
	"strings"
)

// LineEdit replaces the full contents of one line.
type LineEdit struct {
	Line    int    // Line to replace
	NewText string // Replacement text, without line endings
}

// String returns a human-readable representation of the edit.
func (e LineEdit) String() string {
	return fmt.Sprintf("ReplaceLine(%d, %q)", e.Line, e.NewText)
}

// EditResult contains information about an applied edit.
type EditResult struct {
	Line        int        // The line that was modified
	OldText     string     // The text that was replaced
	NewText     string     // The text now on the line
	OldRevision RevisionID // Revision before the edit
	NewRevision RevisionID // Revision after the edit
}

// Inverse returns the edit that restores the line to its previous text.
func (r EditResult) Inverse() LineEdit {
	return LineEdit{Line: r.Line, NewText: r.OldText}
}

// ReplaceLine atomically replaces the text of line with text.
// The replacement must not contain line breaks.
func (b *Buffer) ReplaceLine(line int, text string) (EditResult, error) {
	if strings.ContainsAny(text, "\r\n") {
		return EditResult{}, ErrMultiline
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if line < 0 || line >= len(b.lines) {
		return EditResult{}, fmt.Errorf("replace line %d: %w", line, ErrLineOutOfRange)
	}

	old := b.lines[line]
	oldRev := b.revisionID

	// Copy on write so snapshots keep seeing the old lines.
	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	lines[line] = text
	b.lines = lines
	b.revisionID = NewRevisionID()

	return EditResult{
		Line:        line,
		OldText:     old,
		NewText:     text,
		OldRevision: oldRev,
		NewRevision: b.revisionID,
	}, nil
}

// Apply applies a LineEdit.
func (b *Buffer) Apply(e LineEdit) (EditResult, error) {
	return b.ReplaceLine(e.Line, e.NewText)
}
