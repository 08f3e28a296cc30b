// Package sentence provides the dispatcher handlers for sentence commands.
//
// Commands:
//   - sentence.deleteToStart: delete back to the start of the sentence
//   - sentence.deleteToEnd: delete forward to the end of the sentence
//   - sentence.selectToStart: extend the selection to the sentence start
//   - sentence.selectToEnd: extend the selection to the sentence end
//   - sentence.moveToStart: move to the start of the current sentence
//   - sentence.moveToNextStart: move to the start of the next sentence
//   - sentence.select: select the sentence under the cursor
//   - sentence.setPattern: replace the sentence pattern (Args.Text)
//   - sentence.resetPattern: restore the default pattern
//   - sentence.spans: report the sentences of the cursor line
//
// Motion and delete commands honour the action count. A dry run computes
// the first step without touching the engine.
package sentence
