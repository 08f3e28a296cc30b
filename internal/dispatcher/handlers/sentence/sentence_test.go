package sentence

import (
	"errors"
	"testing"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/sentence"
)

const (
	testLine = "This is a sentence. Here's another one!  This is a different and longer sentence with several other words in it?"
	testDoc  = testLine + "\n\nContinuing on a **SEPARATE** paragraph now"
)

func newContext(t *testing.T, at engine.Point, opts ...engine.Option) (*execctx.ExecutionContext, *engine.Engine) {
	t.Helper()
	eng := engine.New(append([]engine.Option{engine.WithContent(testDoc)}, opts...)...)
	eng.SetCursor(at)
	return execctx.New().WithEngine(eng).WithSentences(sentence.NewConfig()), eng
}

func TestCanHandle(t *testing.T) {
	h := NewHandler()
	for _, name := range []string{
		ActionDeleteToStart, ActionDeleteToEnd, ActionSelectToStart, ActionSelectToEnd,
		ActionMoveToStart, ActionMoveToNextStart, ActionSelect,
		ActionSetPattern, ActionResetPattern, ActionSpans,
	} {
		if !h.CanHandle(name) {
			t.Errorf("CanHandle(%q) = false", name)
		}
	}
	if h.CanHandle("sentence.nope") {
		t.Error("unknown action accepted")
	}
	if !IsMutating(ActionDeleteToEnd) || IsMutating(ActionSelect) {
		t.Error("IsMutating mismatch")
	}
}

func TestDeleteToStart(t *testing.T) {
	ctx, eng := newContext(t, engine.Point{Line: 0, Column: 40})

	res := NewHandler().HandleAction(input.Action{Name: ActionDeleteToStart}, ctx)
	if !res.IsOK() {
		t.Fatalf("status = %v, err = %v", res.Status, res.Error)
	}
	if got := res.GetDataString(DataRemoved); got != "Here's another one! " {
		t.Errorf("removed = %q", got)
	}
	if len(res.Edits) != 1 || res.Edits[0].OldText != testLine {
		t.Errorf("Edits = %+v", res.Edits)
	}
	if eng.Cursor() != (engine.Point{Line: 0, Column: 20}) {
		t.Errorf("Cursor() = %v", eng.Cursor())
	}
	if !res.Redraw {
		t.Error("edits should request a redraw")
	}
}

func TestDryRunLeavesEngine(t *testing.T) {
	ctx, eng := newContext(t, engine.Point{Line: 0, Column: 40})
	ctx.DryRun = true

	res := NewHandler().HandleAction(input.Action{Name: ActionDeleteToStart}, ctx)
	if !res.IsOK() || len(res.Edits) != 1 {
		t.Fatalf("dry run should report the edit: %+v", res)
	}
	if eng.Text() != testDoc || eng.CanUndo() {
		t.Error("dry run must not touch the engine")
	}
	if res.Cursor == nil || res.Cursor.Column != 20 {
		t.Errorf("Cursor = %v", res.Cursor)
	}
}

func TestMoveWithCount(t *testing.T) {
	ctx, eng := newContext(t, engine.Point{})
	ctx.Count = 2

	res := NewHandler().HandleAction(input.Action{Name: ActionMoveToNextStart}, ctx)
	if !res.IsOK() {
		t.Fatalf("status = %v", res.Status)
	}
	if eng.Cursor() != (engine.Point{Line: 0, Column: 41}) {
		t.Errorf("Cursor() = %v, want (0:41)", eng.Cursor())
	}
}

func TestSelectReportsText(t *testing.T) {
	ctx, eng := newContext(t, engine.Point{Line: 2, Column: 29})

	res := NewHandler().HandleAction(input.Action{Name: ActionSelect}, ctx)
	want := "Continuing on a **SEPARATE** paragraph now"
	if got := res.GetDataString(DataSelected); got != want {
		t.Errorf("selected = %q, want %q", got, want)
	}
	if eng.SelectedText() != want {
		t.Errorf("SelectedText() = %q", eng.SelectedText())
	}
}

func TestNoOpAtDocumentStart(t *testing.T) {
	ctx, _ := newContext(t, engine.Point{})

	res := NewHandler().HandleAction(input.Action{Name: ActionMoveToStart}, ctx)
	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", res.Status)
	}
}

func TestReadOnlyDelete(t *testing.T) {
	ctx, eng := newContext(t, engine.Point{Column: 40}, engine.WithReadOnly())

	res := NewHandler().HandleAction(input.Action{Name: ActionDeleteToEnd}, ctx)
	if !errors.Is(res.Error, execctx.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", res.Error)
	}
	if eng.Text() != testDoc {
		t.Error("read-only engine changed")
	}

	res = NewHandler().HandleAction(input.Action{Name: ActionSelect}, ctx)
	if !res.IsOK() {
		t.Errorf("select should work read-only: %v", res.Error)
	}
}

func TestMissingEngine(t *testing.T) {
	res := NewHandler().HandleAction(input.Action{Name: ActionSelect}, execctx.New())
	if !errors.Is(res.Error, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", res.Error)
	}
}

func TestSetAndResetPattern(t *testing.T) {
	ctx, _ := newContext(t, engine.Point{})
	h := NewHandler()

	res := h.HandleAction(input.NewAction(ActionSetPattern, input.SourceCLI).WithText("[unclosed"), ctx)
	var perr *sentence.PatternError
	if !errors.As(res.Error, &perr) {
		t.Fatalf("expected PatternError, got %v", res.Error)
	}
	if !ctx.Sentences.IsDefault() {
		t.Error("bad pattern must keep the previous one")
	}

	res = h.HandleAction(input.NewAction(ActionSetPattern, input.SourceCLI).WithText(`[^!?.]+[!?.]`), ctx)
	if !res.IsOK() || res.GetDataString(DataPattern) != `[^!?.]+[!?.]` {
		t.Fatalf("setPattern = %+v", res)
	}

	res = h.HandleAction(input.Action{Name: ActionResetPattern}, ctx)
	if !res.IsOK() || !ctx.Sentences.IsDefault() {
		t.Errorf("resetPattern = %+v", res)
	}
	res = h.HandleAction(input.Action{Name: ActionResetPattern}, ctx)
	if res.Status != handler.StatusNoOp {
		t.Errorf("second reset = %v, want no-op", res.Status)
	}
}

func TestSpans(t *testing.T) {
	ctx, _ := newContext(t, engine.Point{})

	res := NewHandler().HandleAction(input.Action{Name: ActionSpans}, ctx)
	v, ok := res.GetData(DataSpans)
	if !ok {
		t.Fatal("no spans in result")
	}
	spans := v.([]sentence.Span)
	starts := []int{0, 20, 41}
	if len(spans) != len(starts) {
		t.Fatalf("got %d spans", len(spans))
	}
	for i, s := range spans {
		if s.Start != starts[i] {
			t.Errorf("span %d starts at %d, want %d", i, s.Start, starts[i])
		}
	}
}
