package sentence

import (
	"fmt"
	"strings"

	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
)

// Boundary names one edge of a sentence.
type Boundary int

const (
	// BoundaryStart is the first rune of a sentence.
	BoundaryStart Boundary = iota
	// BoundaryEnd is the position just past the last rune of a sentence.
	BoundaryEnd
)

// String implements fmt.Stringer.
func (b Boundary) String() string {
	switch b {
	case BoundaryStart:
		return "start"
	case BoundaryEnd:
		return "end"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary parses "start" or "end".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return BoundaryStart, nil
	case "end":
		return BoundaryEnd, nil
	default:
		return 0, fmt.Errorf("sentence: unknown boundary %q", s)
	}
}

// Snapshot is the input to an operation: the document and the selection at
// the moment the command runs.
type Snapshot struct {
	Lines     Lines
	Selection cursor.Selection
}

// NewSnapshot returns a Snapshot over doc with a collapsed cursor at p.
func NewSnapshot(doc Lines, p buffer.Point) Snapshot {
	return Snapshot{Lines: doc, Selection: cursor.NewCursorSelection(p)}
}

// Cursor returns the selection head.
func (s Snapshot) Cursor() buffer.Point {
	return s.Selection.Head
}

// Outcome is the result of an operation. When Changed is false the caller
// must leave the editor untouched.
type Outcome struct {
	// Selection is the selection after the operation. A collapsed selection
	// is a plain cursor.
	Selection cursor.Selection
	// Edit, when set, replaces one whole line.
	Edit *buffer.LineEdit
	// Removed is the text an edit deleted.
	Removed string
	Changed bool
}

// Cursor returns the head of the resulting selection.
func (o Outcome) Cursor() buffer.Point {
	return o.Selection.Head
}

func unchanged(s Snapshot) Outcome {
	return Outcome{Selection: s.Selection}
}

// moveOutcome collapses the selection onto at.
func moveOutcome(s Snapshot, at buffer.Point) Outcome {
	if s.Selection.IsEmpty() && s.Cursor() == at {
		return unchanged(s)
	}
	return Outcome{Selection: cursor.NewCursorSelection(at), Changed: true}
}

// Operation computes an Outcome from a Snapshot using pattern p.
type Operation func(s Snapshot, p *Pattern) Outcome

// step moves a cursor position one stage of a motion. Returning false ends
// the motion at the returned position.
type step func(doc Lines, p *Pattern, at buffer.Point) (buffer.Point, bool)

// fold runs steps in order, threading the position through.
func fold(doc Lines, p *Pattern, at buffer.Point, steps ...step) buffer.Point {
	for _, st := range steps {
		next, more := st(doc, p, at)
		at = next
		if !more {
			break
		}
	}
	return at
}

// DeleteTo returns the operation that deletes toward b.
func DeleteTo(b Boundary) Operation {
	return func(s Snapshot, p *Pattern) Outcome {
		return DeleteToBoundary(s, p, b)
	}
}

// SelectTo returns the operation that extends the selection toward b.
func SelectTo(b Boundary) Operation {
	return func(s Snapshot, p *Pattern) Outcome {
		return SelectToBoundary(s, p, b)
	}
}

// DeleteToBoundary deletes the text between the cursor and boundary b of
// the sentence under the cursor, within the cursor's line.
//
// When the cursor touches a space or tab, blanks in the direction of b are
// skipped before the sentence is located, so deleting from a gap removes
// the gap and the neighbouring sentence. Deleting toward the start moves the
// cursor left by the removed length; deleting toward the end keeps it, or
// moves it past a list marker it sat in. Without a sentence at the cursor
// nothing happens.
func DeleteToBoundary(s Snapshot, p *Pattern, b Boundary) Outcome {
	at := s.Cursor()
	line := s.Lines.Line(at.Line)
	runes := []rune(line)
	orig := clampColumn(runes, at.Column)

	col := orig
	if touchesBlank(runes, col) {
		if b == BoundaryStart {
			col = SkipBlanksBackward(runes, col)
		} else {
			col = SkipBlanksForward(runes, col)
		}
	}

	span, ok := Locate(p.Spans(line), col)
	if !ok {
		return unchanged(s)
	}

	from, to := span.Start, orig
	if b == BoundaryEnd {
		// A list marker is never deleted, even from a cursor inside it.
		from, to = max(orig, ListPrefixLen(line)), span.End
	}
	if from >= to {
		return unchanged(s)
	}

	newText := string(runes[:from]) + string(runes[to:])
	return Outcome{
		Selection: cursor.NewCursorSelection(buffer.Point{Line: at.Line, Column: from}),
		Edit:      &buffer.LineEdit{Line: at.Line, NewText: newText},
		Removed:   string(runes[from:to]),
		Changed:   true,
	}
}

// SelectToBoundary makes a selection from the cursor to boundary b of the
// sentence under the cursor. The selection is anchored at the cursor and
// its head lands on the boundary.
//
// A non-empty selection whose head already sits on the target boundary is
// left alone, so repeating the command does not collapse it. Without a
// sentence at the cursor nothing happens.
func SelectToBoundary(s Snapshot, p *Pattern, b Boundary) Outcome {
	head := s.Selection.Head
	span, ok := Locate(p.Spans(s.Lines.Line(head.Line)), head.Column)
	if !ok {
		return unchanged(s)
	}

	target := span.Start
	if b == BoundaryEnd {
		target = span.End
	}
	if !s.Selection.IsEmpty() && head.Column == target {
		return unchanged(s)
	}

	sel := cursor.NewSelection(head, head.WithColumn(target))
	if sel == s.Selection {
		return unchanged(s)
	}
	return Outcome{Selection: sel, Changed: true}
}

// MoveToStartOfCurrentSentence moves the cursor to the start of the sentence
// it is in. From the start of a sentence, from the start of a line, or from
// just after a list marker, it moves to the start of the last sentence of
// the previous non-empty line. It does nothing at the start of the
// document.
func MoveToStartOfCurrentSentence(s Snapshot, p *Pattern) Outcome {
	at := fold(s.Lines, p, s.Cursor(), leaveLineStart, skipBlanksBack, jumpToSentenceStart)
	return moveOutcome(s, at)
}

// MoveToStartOfNextSentence moves the cursor to the start of the next
// sentence. From the end of a line, or from the last sentence of a line, it
// moves to the start of the next non-empty line. With no such line it moves
// to the end of the document.
func MoveToStartOfNextSentence(s Snapshot, p *Pattern) Outcome {
	at := fold(s.Lines, p, s.Cursor(), leaveLineEnd, skipBlanksAhead, jumpPastSentence)
	return moveOutcome(s, at)
}

// SelectSentence selects the sentence under the cursor, ignoring any list
// marker at the start of the line. The anchor lands on the sentence start
// and the head on its end. On a line without sentences the selection
// collapses to the cursor.
func SelectSentence(s Snapshot, p *Pattern) Outcome {
	head := s.Selection.Head
	for span := range p.Spans(s.Lines.Line(head.Line)) {
		if head.Column > span.End {
			continue
		}
		sel := cursor.NewSelection(head.WithColumn(span.Start), head.WithColumn(span.End))
		if sel == s.Selection {
			return unchanged(s)
		}
		return Outcome{Selection: sel, Changed: true}
	}
	return moveOutcome(s, head)
}

// leaveLineStart moves to the end of the previous non-empty line when at
// sits at column 0 or just after a list marker.
func leaveLineStart(doc Lines, _ *Pattern, at buffer.Point) (buffer.Point, bool) {
	runes := []rune(doc.Line(at.Line))
	col := clampColumn(runes, at.Column)
	if col > 0 && !IsListPrefix(string(runes[:col])) {
		return at.WithColumn(col), true
	}
	if at.Line <= 0 {
		return at, false
	}
	prev, ok := PrevNonEmptyLine(doc, at.Line)
	if !ok {
		return buffer.Point{}, false
	}
	return lineEnd(doc, prev), true
}

func skipBlanksBack(doc Lines, _ *Pattern, at buffer.Point) (buffer.Point, bool) {
	return at.WithColumn(SkipBlanksBackward([]rune(doc.Line(at.Line)), at.Column)), true
}

func skipBlanksAhead(doc Lines, _ *Pattern, at buffer.Point) (buffer.Point, bool) {
	return at.WithColumn(SkipBlanksForward([]rune(doc.Line(at.Line)), at.Column)), true
}

// jumpToSentenceStart moves to the start of the sentence that ends at or
// after at. Between sentences it falls back to the closest start before at,
// then to column 0, so the motion always makes progress.
func jumpToSentenceStart(doc Lines, p *Pattern, at buffer.Point) (buffer.Point, bool) {
	col := at.Column
	last := -1
	for span := range p.Spans(doc.Line(at.Line)) {
		if span.Start >= col {
			break
		}
		if col <= span.End {
			return at.WithColumn(span.Start), false
		}
		last = span.Start
	}
	if last >= 0 {
		return at.WithColumn(last), false
	}
	return at.WithColumn(0), false
}

// leaveLineEnd moves to the next paragraph when at sits at the end of its
// line.
func leaveLineEnd(doc Lines, _ *Pattern, at buffer.Point) (buffer.Point, bool) {
	n := len([]rune(doc.Line(at.Line)))
	if at.Column < n {
		return at, true
	}
	return nextParagraphStart(doc, at.Line), false
}

// jumpPastSentence moves to the first non-blank after the sentence under at,
// or to the next paragraph when that sentence closes the line.
func jumpPastSentence(doc Lines, p *Pattern, at buffer.Point) (buffer.Point, bool) {
	line := doc.Line(at.Line)
	runes := []rune(line)

	if span, ok := Locate(p.Spans(line), at.Column); ok {
		next := SkipBlanksForward(runes, span.End)
		if next >= len(runes) {
			return nextParagraphStart(doc, at.Line), false
		}
		return at.WithColumn(next), false
	}

	for span := range p.Spans(line) {
		if span.Start > at.Column {
			return at.WithColumn(span.Start), false
		}
	}
	return nextParagraphStart(doc, at.Line), false
}

// nextParagraphStart is column 0 of the next non-empty line, or the end of
// the document when there is none.
func nextParagraphStart(doc Lines, line int) buffer.Point {
	if next, ok := NextNonEmptyLine(doc, line); ok {
		return buffer.Point{Line: next}
	}
	return documentEnd(doc)
}
