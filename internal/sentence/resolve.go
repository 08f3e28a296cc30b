package sentence

import (
	"iter"
	"unicode/utf8"

	"github.com/dshills/sentencenav/internal/engine/buffer"
)

// Lines is read access to a document, one line at a time.
// Line returns "" for an index out of range.
type Lines interface {
	LineCount() int
	Line(i int) string
}

// Locate returns the first span that contains col, counting both edges.
func Locate(spans iter.Seq[Span], col int) (Span, bool) {
	for s := range spans {
		if s.Contains(col) {
			return s, true
		}
		if s.Start > col {
			break
		}
	}
	return Span{}, false
}

// isBlank reports whether r is skipped when stepping between sentences.
func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// SkipBlanksBackward returns the smallest column c <= col such that every
// rune in runes[c:col] is a space or tab.
func SkipBlanksBackward(runes []rune, col int) int {
	col = clampColumn(runes, col)
	for col > 0 && isBlank(runes[col-1]) {
		col--
	}
	return col
}

// SkipBlanksForward returns the largest column c >= col such that every rune
// in runes[col:c] is a space or tab.
func SkipBlanksForward(runes []rune, col int) int {
	col = clampColumn(runes, col)
	for col < len(runes) && isBlank(runes[col]) {
		col++
	}
	return col
}

// touchesBlank reports whether a space or tab sits directly on either side
// of col.
func touchesBlank(runes []rune, col int) bool {
	if col < len(runes) && isBlank(runes[col]) {
		return true
	}
	return col > 0 && col <= len(runes) && isBlank(runes[col-1])
}

// PrevNonEmptyLine returns the nearest line above line that is not empty.
func PrevNonEmptyLine(doc Lines, line int) (int, bool) {
	for i := min(line, doc.LineCount()) - 1; i >= 0; i-- {
		if doc.Line(i) != "" {
			return i, true
		}
	}
	return 0, false
}

// NextNonEmptyLine returns the nearest line below line that is not empty.
func NextNonEmptyLine(doc Lines, line int) (int, bool) {
	for i := max(line+1, 0); i < doc.LineCount(); i++ {
		if doc.Line(i) != "" {
			return i, true
		}
	}
	return 0, false
}

// lineEnd returns the position just past the last rune of line.
func lineEnd(doc Lines, line int) buffer.Point {
	return buffer.Point{Line: line, Column: utf8.RuneCountInString(doc.Line(line))}
}

// documentEnd returns the position just past the last rune of the document.
func documentEnd(doc Lines) buffer.Point {
	return lineEnd(doc, max(doc.LineCount()-1, 0))
}

func clampColumn(runes []rune, col int) int {
	return max(0, min(col, len(runes)))
}
