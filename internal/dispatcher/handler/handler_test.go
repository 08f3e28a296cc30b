package handler_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFuncWithPriority(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	}, 50)

	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if fn.Priority() != 50 {
		t.Errorf("expected priority 50, got %d", fn.Priority())
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("sentence")

	called := false
	bnh.Register("select", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})
	bnh.Register("sentence.moveToStart", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	if !bnh.CanHandle("sentence.select") {
		t.Error("short name should be qualified with the namespace")
	}
	if bnh.CanHandle("sentence.other") {
		t.Error("expected CanHandle('sentence.other') to return false")
	}
	if got := bnh.Actions(); !slices.Equal(got, []string{"sentence.moveToStart", "sentence.select"}) {
		t.Errorf("Actions() = %v", got)
	}

	result := bnh.HandleAction(input.Action{Name: "sentence.select"}, execctx.New())
	if !called || result.Status != handler.StatusOK {
		t.Errorf("handler not run: called=%v status=%v", called, result.Status)
	}

	result = bnh.HandleAction(input.Action{Name: "sentence.unknown"}, execctx.New())
	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for unknown action, got %v", result.Status)
	}
}

func TestNamespaceAdapter(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("test")
	bnh.Register("test.action", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("handled")
	})

	adapter := handler.NewNamespaceAdapter(bnh)
	if !adapter.CanHandle("test.action") {
		t.Error("expected adapter.CanHandle('test.action') to return true")
	}
	if adapter.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", adapter.Priority())
	}

	result := adapter.Handle(input.Action{Name: "test.action"}, execctx.New())
	if result.Message != "handled" {
		t.Errorf("expected message 'handled', got '%s'", result.Message)
	}
}

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status handler.ResultStatus
		want   string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.ResultStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultBuilders(t *testing.T) {
	r := handler.Success().
		WithMessage("deleted").
		WithEdit(handler.Edit{Line: 0, OldText: "a. b.", NewText: "b."}).
		WithCursor(buffer.Point{Line: 0, Column: 0}).
		WithRedraw().
		WithData("removed", "a. ")

	if !r.IsOK() || r.IsError() {
		t.Errorf("unexpected status %v", r.Status)
	}
	if len(r.Edits) != 1 || r.Edits[0].NewText != "b." {
		t.Errorf("Edits = %+v", r.Edits)
	}
	if r.Cursor == nil || !r.Cursor.IsZero() {
		t.Errorf("Cursor = %v", r.Cursor)
	}
	if !r.Redraw {
		t.Error("expected Redraw")
	}
	if r.GetDataString("removed") != "a. " {
		t.Errorf("GetDataString = %q", r.GetDataString("removed"))
	}
	if r.Text() != "deleted" {
		t.Errorf("Text() = %q", r.Text())
	}
	if !handler.Success().WithQuit().Quit {
		t.Error("expected Quit")
	}
}

func TestResultData(t *testing.T) {
	r := handler.SuccessWithData("count", 3).WithData("ok", true).WithData("f", 2.0)

	if r.GetDataInt("count") != 3 || r.GetDataInt("f") != 2 {
		t.Errorf("GetDataInt = %d/%d", r.GetDataInt("count"), r.GetDataInt("f"))
	}
	if !r.GetDataBool("ok") || r.GetDataBool("count") {
		t.Error("GetDataBool mismatch")
	}
	if _, ok := handler.Success().GetData("x"); ok {
		t.Error("nil data should miss")
	}
}

func TestResultErrors(t *testing.T) {
	err := errors.New("boom")
	r := handler.Error(err)
	if !r.IsError() || !errors.Is(r.Error, err) {
		t.Errorf("Error() = %+v", r)
	}
	if r.Text() != "error: boom" {
		t.Errorf("Text() = %q", r.Text())
	}

	r = handler.Errorf("bad %s", "pattern")
	if r.Error == nil || r.Error.Error() != "bad pattern" {
		t.Errorf("Errorf() = %v", r.Error)
	}

	if r := handler.NoOpWithMessage("nothing"); r.Status != handler.StatusNoOp || r.Text() != "nothing" {
		t.Errorf("NoOpWithMessage() = %+v", r)
	}
	if r := handler.CancelledWithMessage("hook"); r.Status != handler.StatusCancelled {
		t.Errorf("CancelledWithMessage() = %+v", r)
	}
}
