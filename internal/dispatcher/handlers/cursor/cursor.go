package cursor

import (
	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine/buffer"
	"github.com/dshills/sentencenav/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionMoveFirstLine = "cursor.moveFirstLine"
	ActionMoveLastLine  = "cursor.moveLastLine"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveFirstLine, ActionMoveLastLine:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	eng := ctx.Engine
	count := ctx.GetCount()
	from := eng.Cursor()
	to := from

	switch action.Name {
	case ActionMoveLeft:
		for range count {
			to = left(eng, to)
		}
	case ActionMoveRight:
		for range count {
			to = right(eng, to)
		}
	case ActionMoveUp:
		to.Line = max(0, to.Line-count)
	case ActionMoveDown:
		to.Line = min(eng.LineCount()-1, to.Line+count)
	case ActionMoveLineStart:
		to.Column = 0
	case ActionMoveLineEnd:
		to.Column = eng.LineLen(to.Line)
	case ActionMoveFirstLine:
		to = buffer.Point{}
	case ActionMoveLastLine:
		last := eng.LineCount() - 1
		to = buffer.Point{Line: last, Column: eng.LineLen(last)}
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	to.Column = min(to.Column, eng.LineLen(to.Line))
	if to == from && eng.Selection().IsEmpty() {
		return handler.NoOp()
	}
	eng.SetCursor(to)
	return handler.Success().WithCursor(to)
}

// left steps one rune back, wrapping to the end of the previous line.
func left(eng execctx.EngineInterface, p buffer.Point) buffer.Point {
	switch {
	case p.Column > 0:
		p.Column--
	case p.Line > 0:
		p.Line--
		p.Column = eng.LineLen(p.Line)
	}
	return p
}

// right steps one rune forward, wrapping to the start of the next line.
func right(eng execctx.EngineInterface, p buffer.Point) buffer.Point {
	switch {
	case p.Column < eng.LineLen(p.Line):
		p.Column++
	case p.Line < eng.LineCount()-1:
		p.Line++
		p.Column = 0
	}
	return p
}
