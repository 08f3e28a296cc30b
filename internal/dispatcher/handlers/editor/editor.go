package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/engine/cursor"
	"github.com/dshills/sentencenav/internal/input"
)

// Action names for editor operations.
const (
	ActionUndo           = "editor.undo"
	ActionRedo           = "editor.redo"
	ActionCopySelection  = "editor.copySelection"
	ActionInsertText     = "editor.insertText"
	ActionDeleteBackward = "editor.deleteBackward"
	ActionDeleteForward  = "editor.deleteForward"
)

// ErrLineBreak is returned when inserted text contains a line break.
var ErrLineBreak = errors.New("editor: line breaks cannot be inserted")

// Handler handles the editor namespace.
type Handler struct{}

// NewHandler creates a new editor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the editor namespace.
func (h *Handler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionUndo, ActionRedo, ActionCopySelection,
		ActionInsertText, ActionDeleteBackward, ActionDeleteForward:
		return true
	}
	return false
}

// IsMutating reports whether the action edits the buffer.
func IsMutating(actionName string) bool {
	switch actionName {
	case ActionUndo, ActionRedo, ActionInsertText, ActionDeleteBackward, ActionDeleteForward:
		return true
	}
	return false
}

// HandleAction processes an editor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name == ActionCopySelection {
		return h.copySelection(ctx)
	}
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionUndo:
		return h.history(ctx, ctx.Engine.Undo, engine.ErrNothingToUndo)
	case ActionRedo:
		return h.history(ctx, ctx.Engine.Redo, engine.ErrNothingToRedo)
	case ActionInsertText:
		return h.insertText(ctx, action.Args.Text)
	case ActionDeleteBackward:
		return h.deleteRune(ctx, -1)
	case ActionDeleteForward:
		return h.deleteRune(ctx, 1)
	default:
		return handler.Errorf("unknown editor action: %s", action.Name)
	}
}

func (h *Handler) history(ctx *execctx.ExecutionContext, step func() error, empty error) handler.Result {
	count := ctx.GetCount()
	done := 0
	for range count {
		if err := step(); err != nil {
			if errors.Is(err, empty) {
				break
			}
			return handler.Error(err)
		}
		done++
	}
	if done == 0 {
		return handler.NoOpWithMessage(empty.Error())
	}
	return handler.Success().WithCursor(ctx.Engine.Cursor()).WithRedraw()
}

func (h *Handler) copySelection(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if ctx.Clipboard == nil {
		return handler.Error(execctx.ErrMissingClipboard)
	}
	text := ctx.Engine.SelectedText()
	if text == "" {
		return handler.NoOpWithMessage("nothing selected")
	}
	if err := ctx.Clipboard.WriteAll(text); err != nil {
		return handler.Error(fmt.Errorf("copy selection: %w", err))
	}
	return handler.SuccessWithMessage(fmt.Sprintf("copied %d characters", len([]rune(text)))).
		WithData("copied", text)
}

// lineSelection returns the selection bounds when the selection is
// non-empty and within one line.
func lineSelection(ctx *execctx.ExecutionContext) (start, end buffer.Point, ok bool) {
	sel := ctx.Engine.Selection()
	if sel.IsEmpty() || sel.Anchor.Line != sel.Head.Line {
		return buffer.Point{}, buffer.Point{}, false
	}
	return sel.Start(), sel.End(), true
}

func (h *Handler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}
	if strings.ContainsAny(text, "\r\n") {
		return handler.Error(ErrLineBreak)
	}

	start, end, ok := lineSelection(ctx)
	if !ok {
		start = ctx.Engine.Cursor()
		end = start
	}
	return h.replace(ctx, start, end, text)
}

// deleteRune deletes the selection, or one rune in direction dir.
func (h *Handler) deleteRune(ctx *execctx.ExecutionContext, dir int) handler.Result {
	start, end, ok := lineSelection(ctx)
	if !ok {
		at := ctx.Engine.Cursor()
		start, end = at, at
		if dir < 0 {
			start.Column--
		} else {
			end.Column++
		}
		if start.Column < 0 || end.Column > ctx.Engine.LineLen(at.Line) {
			return handler.NoOp()
		}
	}
	return h.replace(ctx, start, end, "")
}

// replace swaps the runes between start and end, which share a line, for
// text and leaves the cursor after the inserted text.
func (h *Handler) replace(ctx *execctx.ExecutionContext, start, end buffer.Point, text string) handler.Result {
	old := ctx.Engine.Line(start.Line)
	runes := []rune(old)
	newText := string(runes[:start.Column]) + text + string(runes[end.Column:])

	at := start.WithColumn(start.Column + len([]rune(text)))
	if err := ctx.Engine.ReplaceLineAndSelect(start.Line, newText, cursor.NewCursorSelection(at)); err != nil {
		return handler.Error(err)
	}

	return handler.Success().
		WithEdit(handler.Edit{Line: start.Line, OldText: old, NewText: newText}).
		WithCursor(at)
}
