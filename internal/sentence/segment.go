package sentence

import (
	"iter"
	"slices"
)

// Span is one match of a pattern on a line. Start and End are rune offsets;
// Start is inclusive and End exclusive.
type Span struct {
	Start int
	End   int
	Text  string
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether col lies on the span, counting both edges.
func (s Span) Contains(col int) bool {
	return s.Start <= col && col <= s.End
}

// Spans returns an iterator over the non-overlapping matches of p in line,
// in increasing order. A list marker at the start of the line is never part
// of a span: matching starts after it and offsets count from the line start.
// Zero-length matches are skipped. A match attempt that exceeds the match
// timeout ends the sequence.
//
// The iterator is lazy: a caller that stops early does not pay for the rest
// of the line.
func (p *Pattern) Spans(line string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		off := ListPrefixLen(line)
		runes := []rune(line)[off:]
		if len(runes) == 0 {
			return
		}
		m, err := p.re.FindRunesMatch(runes)
		for err == nil && m != nil {
			if m.Length > 0 {
				start := off + m.Index
				s := Span{Start: start, End: start + m.Length, Text: m.String()}
				if !yield(s) {
					return
				}
			}
			m, err = p.re.FindNextMatch(m)
		}
	}
}

// Segment returns all spans of line.
func (p *Pattern) Segment(line string) []Span {
	return slices.Collect(p.Spans(line))
}
