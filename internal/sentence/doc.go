// Package sentence finds sentences in a line of markdown prose and computes
// sentence-level cursor motions, selections and deletions.
//
// # Segmentation
//
// A Pattern is a compiled sentence-matching expression. Spans iterates the
// non-overlapping matches of a pattern over one line, in order, as Spans of
// rune offsets. The default pattern treats ==highlighted== runs as whole
// sentences, skips markdown list bullets, crosses terminal punctuation that
// is glued to more text (abbreviations, decimals) and ends a sentence at
// punctuation followed by whitespace or end of line, keeping one closing
// quote.
//
// Patterns use ECMAScript regular expression syntax so that lookahead is
// available; they are compiled with github.com/dlclark/regexp2.
//
// # Operations
//
// Every operation is a pure function from a Snapshot (document lines plus
// the current selection) to an Outcome (new selection plus an optional
// whole-line replacement):
//
//   - DeleteToBoundary removes text between the cursor and a sentence edge
//   - SelectToBoundary extends a selection from the cursor to a sentence edge
//   - MoveToStartOfCurrentSentence moves back, Emacs style, to the sentence start
//   - MoveToStartOfNextSentence moves forward to the next sentence start
//   - SelectSentence selects the sentence under the cursor
//
// Nothing here crosses a line boundary except by moving to the start or end
// of another line. Degenerate input (blank lines, document edges) yields an
// unchanged Outcome rather than an error.
//
// Run ties the pieces to an editor through the Accessor interface:
//
//	cfg := sentence.NewConfig()
//	out, err := sentence.Run(editor, cfg, sentence.SelectSentence)
package sentence
