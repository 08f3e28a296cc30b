package buffer

import "unicode/utf8"

// Snapshot provides a read-only view of a buffer at a specific revision.
// It does not change when the original buffer is modified.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
}

// Snapshot returns a read-only view of the current buffer contents.
// ReplaceLine never mutates a line slice in place, so the view can share it.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{lines: b.lines, revisionID: b.revisionID}
}

// SnapshotOf builds a snapshot directly from lines. The slice is copied.
func SnapshotOf(lines ...string) *Snapshot {
	if len(lines) == 0 {
		lines = []string{""}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Snapshot{lines: cp}
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a line, or "" outside the snapshot.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// Line is an alias of LineText so a Snapshot satisfies line-reader
// interfaces that use the shorter name.
func (s *Snapshot) Line(line int) string {
	return s.LineText(line)
}

// LineLen returns the length of a line in runes.
func (s *Snapshot) LineLen(line int) int {
	return utf8.RuneCountInString(s.LineText(line))
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// ClampPoint clamps p into the snapshot.
func (s *Snapshot) ClampPoint(p Point) Point {
	return clampPoint(s.lines, p)
}

// TextRange returns the text covered by r.
func (s *Snapshot) TextRange(r PointRange) string {
	return textRange(s.lines, r)
}
