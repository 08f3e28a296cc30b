package lua

import (
	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/sentence"
	lua "github.com/yuin/gopher-lua"
)

// SentenceModule is the name scripts require.
const SentenceModule = "sentence"

// SentenceEnv is what the sentence module operates on.
type SentenceEnv struct {
	// Editor returns the document and cursor to act on. It is called on
	// every use, so a host can attach the editor of the running command.
	// A nil func or nil result raises ErrNoEditor in Lua.
	Editor func() sentence.Accessor

	// Sentences holds the active pattern. Nil means the default pattern and
	// makes set_pattern fail.
	Sentences *sentence.Config

	// SavePattern, if set, persists a pattern accepted by set_pattern.
	// An empty source means reset.
	SavePattern func(source string) error
}

// OpenSentence registers the sentence module in s.
func OpenSentence(s *State, env SentenceEnv) {
	m := &sentenceModule{env: env}
	s.RegisterModule(SentenceModule, map[string]lua.LGFunction{
		"spans":           m.spans,
		"list_prefix_len": m.listPrefixLen,

		"line":          m.line,
		"line_count":    m.lineCount,
		"cursor":        m.cursor,
		"set_cursor":    m.setCursor,
		"selection":     m.selection,
		"set_selection": m.setSelection,
		"selected_text": m.selectedText,

		"delete_to_start":    m.op(sentence.DeleteTo(sentence.BoundaryStart)),
		"delete_to_end":      m.op(sentence.DeleteTo(sentence.BoundaryEnd)),
		"select_to_start":    m.op(sentence.SelectTo(sentence.BoundaryStart)),
		"select_to_end":      m.op(sentence.SelectTo(sentence.BoundaryEnd)),
		"move_to_start":      m.op(sentence.MoveToStartOfCurrentSentence),
		"move_to_next_start": m.op(sentence.MoveToStartOfNextSentence),
		"select":             m.op(sentence.SelectSentence),

		"pattern":       m.pattern,
		"set_pattern":   m.setPattern,
		"reset_pattern": m.resetPattern,
		"is_default":    m.isDefault,
	})
}

type sentenceModule struct {
	env SentenceEnv
}

func (m *sentenceModule) editor(L *lua.LState) sentence.Accessor {
	if m.env.Editor != nil {
		if acc := m.env.Editor(); acc != nil {
			return acc
		}
	}
	L.RaiseError("%s", ErrNoEditor.Error())
	return nil
}

func (m *sentenceModule) activePattern() *sentence.Pattern {
	if m.env.Sentences == nil {
		return sentence.Default()
	}
	return m.env.Sentences.Pattern()
}

func pushPoint(L *lua.LState, p buffer.Point) {
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
}

func checkPoint(L *lua.LState, n int) buffer.Point {
	return buffer.Point{Line: L.CheckInt(n), Column: L.CheckInt(n + 1)}
}

// spans(text) returns {start=, end=, text=} tables. Without text it
// segments the cursor's line.
func (m *sentenceModule) spans(L *lua.LState) int {
	var text string
	if L.GetTop() >= 1 {
		text = L.CheckString(1)
	} else {
		acc := m.editor(L)
		text = acc.Line(acc.Cursor().Line)
	}

	tbl := L.NewTable()
	for span := range m.activePattern().Spans(text) {
		st := L.NewTable()
		st.RawSetString("start", lua.LNumber(span.Start))
		st.RawSetString("end", lua.LNumber(span.End))
		st.RawSetString("text", lua.LString(span.Text))
		tbl.Append(st)
	}
	L.Push(tbl)
	return 1
}

func (m *sentenceModule) listPrefixLen(L *lua.LState) int {
	L.Push(lua.LNumber(sentence.ListPrefixLen(L.CheckString(1))))
	return 1
}

func (m *sentenceModule) line(L *lua.LState) int {
	acc := m.editor(L)
	i := L.CheckInt(1)
	if i < 0 || i >= acc.LineCount() {
		L.ArgError(1, "line out of range")
	}
	L.Push(lua.LString(acc.Line(i)))
	return 1
}

func (m *sentenceModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.editor(L).LineCount()))
	return 1
}

func (m *sentenceModule) cursor(L *lua.LState) int {
	pushPoint(L, m.editor(L).Cursor())
	return 2
}

func (m *sentenceModule) setCursor(L *lua.LState) int {
	m.editor(L).SetCursor(checkPoint(L, 1))
	return 0
}

func (m *sentenceModule) selection(L *lua.LState) int {
	sel := m.editor(L).Selection()
	pushPoint(L, sel.Anchor)
	pushPoint(L, sel.Head)
	return 4
}

func (m *sentenceModule) setSelection(L *lua.LState) int {
	m.editor(L).SetSelection(checkPoint(L, 1), checkPoint(L, 3))
	return 0
}

func (m *sentenceModule) selectedText(L *lua.LState) int {
	L.Push(lua.LString(m.editor(L).SelectedText()))
	return 1
}

// op wraps an operation. The Lua function returns whether anything changed
// and, for deletions, the removed text.
func (m *sentenceModule) op(op sentence.Operation) lua.LGFunction {
	return func(L *lua.LState) int {
		out, err := sentence.Run(m.editor(L), m.env.Sentences, op)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LBool(out.Changed))
		if out.Removed == "" {
			return 1
		}
		L.Push(lua.LString(out.Removed))
		return 2
	}
}

func (m *sentenceModule) pattern(L *lua.LState) int {
	L.Push(lua.LString(m.activePattern().Source()))
	return 1
}

// set_pattern(src) returns true, or nil and an error message. A rejected
// or unsaved pattern leaves the active one in place.
func (m *sentenceModule) setPattern(L *lua.LState) int {
	src := L.CheckString(1)
	if m.env.Sentences == nil {
		return pushFailure(L, "no sentence configuration")
	}
	if err := sentence.Validate(src); err != nil {
		return pushFailure(L, err.Error())
	}
	if m.env.SavePattern != nil {
		if err := m.env.SavePattern(src); err != nil {
			return pushFailure(L, err.Error())
		}
	}
	if err := m.env.Sentences.SetSource(src); err != nil {
		return pushFailure(L, err.Error())
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *sentenceModule) resetPattern(L *lua.LState) int {
	if m.env.Sentences == nil {
		return pushFailure(L, "no sentence configuration")
	}
	m.env.Sentences.Reset()
	if m.env.SavePattern != nil {
		if err := m.env.SavePattern(""); err != nil {
			return pushFailure(L, err.Error())
		}
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *sentenceModule) isDefault(L *lua.LState) int {
	L.Push(lua.LBool(m.activePattern().IsDefault()))
	return 1
}

func pushFailure(L *lua.LState, msg string) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(msg))
	return 2
}
