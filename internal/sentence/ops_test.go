package sentence

import (
	"strings"
	"testing"

	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
)

const (
	testLine      = "This is a sentence. Here's another one!  This is a different and longer sentence with several other words in it?"
	testParagraph = "Continuing on a **SEPARATE** paragraph now"
)

func testDoc() *buffer.Snapshot {
	return buffer.SnapshotOf(testLine, "", testParagraph)
}

func pt(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

// selected returns the text an outcome selects on its line.
func selected(doc Lines, out Outcome) string {
	r := out.Selection.Range()
	runes := []rune(doc.Line(r.Start.Line))
	return string(runes[r.Start.Column:r.End.Column])
}

func TestDeleteToBoundary(t *testing.T) {
	tests := []struct {
		name     string
		boundary Boundary
		at       buffer.Point
		wantLine string
		wantAt   buffer.Point
	}{
		{"start in first sentence", BoundaryStart, pt(0, 10),
			"sentence. Here's another one!  This is a different and longer sentence with several other words in it?", pt(0, 0)},
		{"start in middle sentence", BoundaryStart, pt(0, 29),
			"This is a sentence. other one!  This is a different and longer sentence with several other words in it?", pt(0, 20)},
		{"start in last sentence", BoundaryStart, pt(0, 86),
			"This is a sentence. Here's another one!  several other words in it?", pt(0, 41)},
		{"start between sentences", BoundaryStart, pt(0, 40),
			"This is a sentence.  This is a different and longer sentence with several other words in it?", pt(0, 20)},
		{"start in another paragraph", BoundaryStart, pt(2, 29), "paragraph now", pt(2, 0)},

		{"end in first sentence", BoundaryEnd, pt(0, 10),
			"This is a  Here's another one!  This is a different and longer sentence with several other words in it?", pt(0, 10)},
		{"end in middle sentence", BoundaryEnd, pt(0, 29),
			"This is a sentence. Here's an  This is a different and longer sentence with several other words in it?", pt(0, 29)},
		{"end in last sentence", BoundaryEnd, pt(0, 86),
			"This is a sentence. Here's another one!  This is a different and longer sentence with ", pt(0, 86)},
		{"end between sentences", BoundaryEnd, pt(0, 40), "This is a sentence. Here's another one! ", pt(0, 40)},
		{"end in another paragraph", BoundaryEnd, pt(2, 29), "Continuing on a **SEPARATE** ", pt(2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DeleteToBoundary(NewSnapshot(testDoc(), tt.at), Default(), tt.boundary)
			if !out.Changed || out.Edit == nil {
				t.Fatalf("expected an edit, got %+v", out)
			}
			if out.Edit.Line != tt.at.Line {
				t.Errorf("edit line = %d, want %d", out.Edit.Line, tt.at.Line)
			}
			if out.Edit.NewText != tt.wantLine {
				t.Errorf("NewText = %q, want %q", out.Edit.NewText, tt.wantLine)
			}
			if out.Cursor() != tt.wantAt {
				t.Errorf("cursor = %v, want %v", out.Cursor(), tt.wantAt)
			}
			if !out.Selection.IsEmpty() {
				t.Errorf("delete should leave a plain cursor, got %v", out.Selection)
			}
		})
	}
}

func TestDeleteToBoundaryNoSentence(t *testing.T) {
	for _, b := range []Boundary{BoundaryStart, BoundaryEnd} {
		out := DeleteToBoundary(NewSnapshot(testDoc(), pt(1, 0)), Default(), b)
		if out.Changed || out.Edit != nil {
			t.Errorf("%v on blank line changed: %+v", b, out)
		}
	}

	// Already at the boundary: nothing to remove.
	out := DeleteToBoundary(NewSnapshot(testDoc(), pt(0, 0)), Default(), BoundaryStart)
	if out.Changed {
		t.Errorf("delete to start at line start changed: %+v", out)
	}
}

func TestDeleteToBoundaryRemoved(t *testing.T) {
	out := DeleteToBoundary(NewSnapshot(testDoc(), pt(0, 29)), Default(), BoundaryStart)
	if out.Removed != "Here's an" {
		t.Errorf("Removed = %q", out.Removed)
	}
}

// Putting the removed text back at the resulting cursor restores the line.
func TestDeleteToBoundaryRoundTrip(t *testing.T) {
	doc := buffer.SnapshotOf(testLine, "", testParagraph, "- [ ] task one. two", "1. lorem ipsum")
	p := Default()

	for line := range doc.LineCount() {
		orig := doc.Line(line)
		for col := 0; col <= len([]rune(orig)); col++ {
			for _, b := range []Boundary{BoundaryStart, BoundaryEnd} {
				out := DeleteToBoundary(NewSnapshot(doc, pt(line, col)), p, b)
				if !out.Changed {
					continue
				}
				runes := []rune(out.Edit.NewText)
				at := out.Cursor().Column
				restored := string(runes[:at]) + out.Removed + string(runes[at:])
				if restored != orig {
					t.Errorf("%v at %d:%d: restored %q, want %q", b, line, col, restored, orig)
				}
				marker := string([]rune(orig)[:ListPrefixLen(orig)])
				if !strings.HasPrefix(out.Edit.NewText, marker) {
					t.Errorf("%v at %d:%d removed the list marker: %q", b, line, col, out.Edit.NewText)
				}
			}
		}
	}
}

func TestListMarkerLines(t *testing.T) {
	doc := buffer.SnapshotOf("Intro.", "1. ", "- [ ] ", "- [ ] task one. two")
	at := cursor.NewCursorSelection
	sel := cursor.NewSelection

	tests := []struct {
		name     string
		op       Operation
		from     buffer.Point
		want     cursor.Selection
		wantLine string
	}{
		{"delete to start on a number", DeleteTo(BoundaryStart), pt(1, 3), at(pt(1, 3)), "1. "},
		{"delete to start on a checkbox", DeleteTo(BoundaryStart), pt(2, 6), at(pt(2, 6)), "- [ ] "},
		{"delete to start in an item", DeleteTo(BoundaryStart), pt(3, 10), at(pt(3, 6)), "- [ ]  one. two"},
		{"delete to start after the checkbox", DeleteTo(BoundaryStart), pt(3, 6), at(pt(3, 6)), "- [ ] task one. two"},
		{"delete to end on a number", DeleteTo(BoundaryEnd), pt(1, 0), at(pt(1, 0)), "1. "},
		{"delete to end on a checkbox", DeleteTo(BoundaryEnd), pt(2, 2), at(pt(2, 2)), "- [ ] "},
		{"delete to end in an item", DeleteTo(BoundaryEnd), pt(3, 10), at(pt(3, 10)), "- [ ] task two"},
		{"delete to end inside the marker", DeleteTo(BoundaryEnd), pt(3, 5), at(pt(3, 6)), "- [ ]  two"},
		{"select to start in an item", SelectTo(BoundaryStart), pt(3, 10), sel(pt(3, 10), pt(3, 6)), "- [ ] task one. two"},
		{"select to start on a checkbox", SelectTo(BoundaryStart), pt(2, 4), at(pt(2, 4)), "- [ ] "},
		{"select to end on a number", SelectTo(BoundaryEnd), pt(1, 0), at(pt(1, 0)), "1. "},
		{"select to end in an item", SelectTo(BoundaryEnd), pt(3, 7), sel(pt(3, 7), pt(3, 15)), "- [ ] task one. two"},
		{"move to start from a number", MoveToStartOfCurrentSentence, pt(1, 3), at(pt(0, 0)), "1. "},
		{"move to start after the checkbox", MoveToStartOfCurrentSentence, pt(3, 6), at(pt(2, 0)), "- [ ] task one. two"},
		{"move to start in an item", MoveToStartOfCurrentSentence, pt(3, 12), at(pt(3, 6)), "- [ ] task one. two"},
		{"move to next from a number", MoveToStartOfNextSentence, pt(1, 0), at(pt(2, 0)), "1. "},
		{"move to next from a checkbox", MoveToStartOfNextSentence, pt(2, 6), at(pt(3, 0)), "- [ ] "},
		{"move to next from an item marker", MoveToStartOfNextSentence, pt(3, 0), at(pt(3, 6)), "- [ ] task one. two"},
		{"select on a checkbox", SelectSentence, pt(2, 0), at(pt(2, 0)), "- [ ] "},
		{"select on a number", SelectSentence, pt(1, 3), at(pt(1, 3)), "1. "},
		{"select in an item", SelectSentence, pt(3, 0), sel(pt(3, 6), pt(3, 15)), "- [ ] task one. two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.op(NewSnapshot(doc, tt.from), Default())
			if out.Selection != tt.want {
				t.Errorf("selection = %v, want %v", out.Selection, tt.want)
			}
			line := doc.Line(tt.from.Line)
			if out.Edit != nil {
				line = out.Edit.NewText
			}
			if line != tt.wantLine {
				t.Errorf("line = %q, want %q", line, tt.wantLine)
			}
		})
	}
}

func TestSelectToBoundary(t *testing.T) {
	tests := []struct {
		name     string
		boundary Boundary
		sel      cursor.Selection
		want     string
	}{
		{"start in first sentence", BoundaryStart, cursor.NewCursorSelection(pt(0, 10)), "This is a "},
		{"start in middle sentence", BoundaryStart, cursor.NewCursorSelection(pt(0, 29)), "Here's an"},
		{"start in last sentence", BoundaryStart, cursor.NewCursorSelection(pt(0, 86)), "This is a different and longer sentence with "},
		{"start between sentences", BoundaryStart, cursor.NewCursorSelection(pt(0, 40)), ""},
		{"start in another paragraph", BoundaryStart, cursor.NewCursorSelection(pt(2, 29)), "Continuing on a **SEPARATE** "},
		{"start on blank line", BoundaryStart, cursor.NewCursorSelection(pt(1, 0)), ""},
		{"start with head on start", BoundaryStart, cursor.NewSelection(pt(0, 26), pt(0, 20)), "Here's"},

		{"end in first sentence", BoundaryEnd, cursor.NewCursorSelection(pt(0, 10)), "sentence."},
		{"end in middle sentence", BoundaryEnd, cursor.NewCursorSelection(pt(0, 29)), "other one!"},
		{"end in last sentence", BoundaryEnd, cursor.NewCursorSelection(pt(0, 86)), "several other words in it?"},
		{"end between sentences", BoundaryEnd, cursor.NewCursorSelection(pt(0, 40)), ""},
		{"end in another paragraph", BoundaryEnd, cursor.NewCursorSelection(pt(2, 29)), "paragraph now"},
		{"end on blank line", BoundaryEnd, cursor.NewCursorSelection(pt(1, 0)), ""},
		{"end with head on end", BoundaryEnd, cursor.NewSelection(pt(0, 27), pt(0, 39)), "another one!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc()
			out := SelectToBoundary(Snapshot{Lines: doc, Selection: tt.sel}, Default(), tt.boundary)
			if out.Edit != nil {
				t.Fatal("select must not edit")
			}
			if got := selected(doc, out); got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
			if out.Changed && out.Selection.Anchor != tt.sel.Head {
				t.Errorf("anchor = %v, want old head %v", out.Selection.Anchor, tt.sel.Head)
			}
		})
	}
}

func TestSelectToBoundaryRepeatIsStable(t *testing.T) {
	doc := testDoc()
	snap := NewSnapshot(doc, pt(0, 29))
	first := SelectToBoundary(snap, Default(), BoundaryEnd)
	second := SelectToBoundary(Snapshot{Lines: doc, Selection: first.Selection}, Default(), BoundaryEnd)

	if second.Changed {
		t.Errorf("repeat changed selection to %v", second.Selection)
	}
	if second.Selection != first.Selection {
		t.Errorf("repeat selection = %v, want %v", second.Selection, first.Selection)
	}
}

func TestMoveToStartOfCurrentSentence(t *testing.T) {
	tests := []struct {
		name string
		at   buffer.Point
		want buffer.Point
	}{
		{"middle of a sentence", pt(0, 86), pt(0, 41)},
		{"between two sentences", pt(0, 40), pt(0, 20)},
		{"already at a sentence start", pt(0, 20), pt(0, 0)},
		{"start of a paragraph", pt(2, 0), pt(0, 41)},
		{"blank line between paragraphs", pt(1, 0), pt(0, 41)},
		{"end of a line", pt(2, 42), pt(2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := MoveToStartOfCurrentSentence(NewSnapshot(testDoc(), tt.at), Default())
			if out.Cursor() != tt.want {
				t.Errorf("cursor = %v, want %v", out.Cursor(), tt.want)
			}
			if out.Edit != nil || !out.Selection.IsEmpty() {
				t.Errorf("move produced %+v", out)
			}
		})
	}
}

func TestMoveToStartOfCurrentSentenceLists(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		at     buffer.Point
		want   buffer.Point
	}{
		{"bullet list", "- ", pt(1, 6), pt(0, 7)},
		{"numbered list", "1. ", pt(1, 7), pt(0, 8)},
		{"checklist", "- [ ] ", pt(1, 10), pt(0, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.SnapshotOf(tt.prefix+"AAA. BBB.", tt.prefix+"CCC.")
			p := Default()

			out := MoveToStartOfCurrentSentence(NewSnapshot(doc, tt.at), p)
			out = MoveToStartOfCurrentSentence(NewSnapshot(doc, out.Cursor()), p)
			if out.Cursor() != tt.want {
				t.Errorf("cursor = %v, want %v", out.Cursor(), tt.want)
			}
		})
	}
}

func TestMoveToStartAtDocumentStart(t *testing.T) {
	for _, at := range []buffer.Point{pt(0, 0), pt(0, 2)} {
		doc := buffer.SnapshotOf("- item.", "next")
		out := MoveToStartOfCurrentSentence(NewSnapshot(doc, at), Default())
		if out.Changed {
			t.Errorf("move from %v changed to %v", at, out.Cursor())
		}
	}
}

func TestMoveToStartAlwaysProgresses(t *testing.T) {
	doc := buffer.SnapshotOf(testLine, "", "  odd ... text !  here", testParagraph)
	p := Default()

	at := pt(3, 42)
	for i := 0; i < 50; i++ {
		out := MoveToStartOfCurrentSentence(NewSnapshot(doc, at), p)
		if !out.Changed {
			break
		}
		if !out.Cursor().Before(at) {
			t.Fatalf("move from %v went to %v", at, out.Cursor())
		}
		at = out.Cursor()
	}
	if at != pt(0, 0) {
		t.Errorf("repeated moves ended at %v, want document start", at)
	}
}

func TestMoveToStartOfNextSentence(t *testing.T) {
	tests := []struct {
		name string
		at   buffer.Point
		want buffer.Point
	}{
		{"middle of a sentence", pt(0, 27), pt(0, 41)},
		{"between two sentences", pt(0, 40), pt(2, 0)},
		{"last sentence of a paragraph", pt(0, 86), pt(2, 0)},
		{"blank line between paragraphs", pt(1, 0), pt(2, 0)},
		{"start of the line", pt(0, 0), pt(0, 20)},
		{"last paragraph", pt(2, 3), pt(2, 42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := MoveToStartOfNextSentence(NewSnapshot(testDoc(), tt.at), Default())
			if out.Cursor() != tt.want {
				t.Errorf("cursor = %v, want %v", out.Cursor(), tt.want)
			}
		})
	}
}

func TestMoveToNextAtDocumentEnd(t *testing.T) {
	out := MoveToStartOfNextSentence(NewSnapshot(testDoc(), pt(2, 42)), Default())
	if out.Changed {
		t.Errorf("move at document end changed to %v", out.Cursor())
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	snap := Snapshot{Lines: testDoc(), Selection: cursor.NewSelection(pt(0, 0), pt(0, 86))}
	out := MoveToStartOfCurrentSentence(snap, Default())
	if !out.Changed || !out.Selection.IsEmpty() || out.Cursor() != pt(0, 41) {
		t.Errorf("got %+v", out)
	}
}

func TestSelectSentence(t *testing.T) {
	tests := []struct {
		name string
		doc  *buffer.Snapshot
		at   buffer.Point
		want string
	}{
		{"middle of a sentence", testDoc(), pt(0, 29), "Here's another one!"},
		{"between two sentences", testDoc(), pt(0, 40), "This is a different and longer sentence with several other words in it?"},
		{"blank line", testDoc(), pt(1, 0), ""},
		{"no punctuation", testDoc(), pt(2, 29), testParagraph},
		{"bullet list", buffer.SnapshotOf("- lorem ipsum"), pt(0, 0), "lorem ipsum"},
		{"numbered list", buffer.SnapshotOf("1. lorem ipsum"), pt(0, 0), "lorem ipsum"},
		{"checklist", buffer.SnapshotOf("- [x] done it. next"), pt(0, 8), "done it."},
		{"highlight", buffer.SnapshotOf("==marked== rest."), pt(0, 3), "==marked=="},
		{"end of line", buffer.SnapshotOf("One. Two."), pt(0, 9), "Two."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SelectSentence(NewSnapshot(tt.doc, tt.at), Default())
			if got := selected(tt.doc, out); got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
			if out.Selection.IsBackward() {
				t.Errorf("selection should run forward, got %v", out.Selection)
			}
		})
	}
}

func TestSelectSentenceRepeatIsStable(t *testing.T) {
	doc := testDoc()
	first := SelectSentence(NewSnapshot(doc, pt(0, 29)), Default())
	second := SelectSentence(Snapshot{Lines: doc, Selection: first.Selection}, Default())
	if second.Changed {
		t.Errorf("repeat changed selection to %v", second.Selection)
	}
}

func TestOperationsDoNotTouchOtherLines(t *testing.T) {
	ops := map[string]Operation{
		"deleteToStart": DeleteTo(BoundaryStart),
		"deleteToEnd":   DeleteTo(BoundaryEnd),
	}
	for name, op := range ops {
		for _, at := range []buffer.Point{pt(0, 29), pt(2, 10)} {
			out := op(NewSnapshot(testDoc(), at), Default())
			if out.Edit != nil && out.Edit.Line != at.Line {
				t.Errorf("%s at %v edited line %d", name, at, out.Edit.Line)
			}
		}
	}
}

func TestParseBoundary(t *testing.T) {
	for in, want := range map[string]Boundary{"start": BoundaryStart, " End ": BoundaryEnd} {
		got, err := ParseBoundary(in)
		if err != nil || got != want {
			t.Errorf("ParseBoundary(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBoundary("middle"); err == nil {
		t.Error("expected error for unknown boundary")
	}
	if BoundaryEnd.String() != "end" {
		t.Errorf("String() = %q", BoundaryEnd.String())
	}
}

func TestLineSearch(t *testing.T) {
	doc := buffer.SnapshotOf(testLine, "", "", testParagraph)

	if got, ok := PrevNonEmptyLine(doc, 2); !ok || got != 0 {
		t.Errorf("PrevNonEmptyLine = %d, %v", got, ok)
	}
	if got, ok := NextNonEmptyLine(doc, 1); !ok || got != 3 {
		t.Errorf("NextNonEmptyLine = %d, %v", got, ok)
	}
	if _, ok := PrevNonEmptyLine(doc, 0); ok {
		t.Error("nothing above line 0")
	}
	if _, ok := NextNonEmptyLine(doc, 3); ok {
		t.Error("nothing below the last line")
	}
}

func TestSkipBlanks(t *testing.T) {
	runes := []rune(testLine)
	if got := SkipBlanksForward(runes, 40); got != 41 {
		t.Errorf("SkipBlanksForward = %d, want 41", got)
	}
	if got := SkipBlanksBackward(runes, 40); got != 39 {
		t.Errorf("SkipBlanksBackward = %d, want 39", got)
	}
	if got := SkipBlanksForward([]rune("a\t b"), 1); got != 3 {
		t.Errorf("tabs should be skipped, got %d", got)
	}
}
