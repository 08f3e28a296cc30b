package sentence

import (
	"fmt"
	"strings"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/sentence"
)

// Action names for sentence commands.
const (
	ActionDeleteToStart   = "sentence.deleteToStart"
	ActionDeleteToEnd     = "sentence.deleteToEnd"
	ActionSelectToStart   = "sentence.selectToStart"
	ActionSelectToEnd     = "sentence.selectToEnd"
	ActionMoveToStart     = "sentence.moveToStart"
	ActionMoveToNextStart = "sentence.moveToNextStart"
	ActionSelect          = "sentence.select"
	ActionSetPattern      = "sentence.setPattern"
	ActionResetPattern    = "sentence.resetPattern"
	ActionSpans           = "sentence.spans"
)

// Result data keys.
const (
	DataRemoved   = "removed"
	DataSelection = "selection"
	DataSelected  = "selected"
	DataSpans     = "spans"
	DataPattern   = "pattern"
)

type command struct {
	op       sentence.Operation
	mutating bool
	repeat   bool
}

var commands = map[string]command{
	ActionDeleteToStart:   {op: sentence.DeleteTo(sentence.BoundaryStart), mutating: true, repeat: true},
	ActionDeleteToEnd:     {op: sentence.DeleteTo(sentence.BoundaryEnd), mutating: true, repeat: true},
	ActionSelectToStart:   {op: sentence.SelectTo(sentence.BoundaryStart)},
	ActionSelectToEnd:     {op: sentence.SelectTo(sentence.BoundaryEnd)},
	ActionMoveToStart:     {op: sentence.MoveToStartOfCurrentSentence, repeat: true},
	ActionMoveToNextStart: {op: sentence.MoveToStartOfNextSentence, repeat: true},
	ActionSelect:          {op: sentence.SelectSentence},
}

// IsMutating reports whether the action edits the buffer.
func IsMutating(actionName string) bool {
	return commands[actionName].mutating
}

// Handler handles the sentence namespace.
type Handler struct{}

// NewHandler creates a new sentence handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the sentence namespace.
func (h *Handler) Namespace() string {
	return "sentence"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	if _, ok := commands[actionName]; ok {
		return true
	}
	switch actionName {
	case ActionSetPattern, ActionResetPattern, ActionSpans:
		return true
	}
	return false
}

// HandleAction processes a sentence action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionSetPattern:
		return h.setPattern(ctx, action.Args.Text)
	case ActionResetPattern:
		return h.resetPattern(ctx)
	case ActionSpans:
		return h.spans(ctx)
	}

	cmd, ok := commands[action.Name]
	if !ok {
		return handler.Errorf("unknown sentence action: %s", action.Name)
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if cmd.mutating {
		if err := ctx.ValidateForEdit(); err != nil {
			return handler.Error(err)
		}
	}

	count := 1
	if cmd.repeat {
		count = ctx.GetCount()
	}
	return h.run(ctx, cmd.op, count)
}

// run applies op up to count times, stopping at the first step that leaves
// the editor unchanged.
func (h *Handler) run(ctx *execctx.ExecutionContext, op sentence.Operation, count int) handler.Result {
	p := ctx.Pattern()
	result := handler.NoOp()
	var removed strings.Builder

	for range count {
		snap := sentence.Capture(ctx.Engine)
		out := op(snap, p)
		if !out.Changed {
			break
		}

		if out.Edit != nil {
			result = result.WithEdit(handler.Edit{
				Line:    out.Edit.Line,
				OldText: snap.Lines.Line(out.Edit.Line),
				NewText: out.Edit.NewText,
			}).WithRedraw()
			removed.WriteString(out.Removed)
		}
		result.Status = handler.StatusOK
		result = result.WithCursor(out.Cursor()).WithData(DataSelection, out.Selection)

		if ctx.DryRun {
			break
		}
		if err := sentence.Apply(ctx.Engine, out); err != nil {
			return handler.Error(err)
		}
	}

	if result.Status == handler.StatusNoOp {
		return result
	}
	if removed.Len() > 0 {
		result = result.WithData(DataRemoved, removed.String()).
			WithMessage(fmt.Sprintf("deleted %q", removed.String()))
	}
	if !ctx.DryRun && ctx.HasSelection() {
		result = result.WithData(DataSelected, ctx.Engine.SelectedText())
	}
	return result
}

func (h *Handler) setPattern(ctx *execctx.ExecutionContext, source string) handler.Result {
	if ctx.Sentences == nil {
		return handler.Errorf("sentence pattern is not configurable here")
	}
	if ctx.DryRun {
		if err := sentence.Validate(source); err != nil {
			return handler.Error(err)
		}
		return handler.SuccessWithMessage("sentence pattern is valid").WithData(DataPattern, source)
	}
	if err := ctx.Sentences.SetSource(source); err != nil {
		return handler.Error(err)
	}
	ctx.Debugf("sentence pattern set to %s", source)
	return handler.SuccessWithMessage("sentence pattern updated").
		WithData(DataPattern, ctx.Sentences.Source()).
		WithRedraw()
}

func (h *Handler) resetPattern(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Sentences == nil {
		return handler.Errorf("sentence pattern is not configurable here")
	}
	if ctx.Sentences.IsDefault() {
		return handler.NoOpWithMessage("sentence pattern is already the default").
			WithData(DataPattern, ctx.Sentences.Source())
	}
	if ctx.DryRun {
		return handler.SuccessWithMessage("sentence pattern would be reset").
			WithData(DataPattern, sentence.DefaultPatternSource)
	}
	ctx.Sentences.Reset()
	return handler.SuccessWithMessage("sentence pattern reset").
		WithData(DataPattern, ctx.Sentences.Source()).
		WithRedraw()
}

func (h *Handler) spans(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	line := ctx.Engine.Line(ctx.Engine.Cursor().Line)
	spans := ctx.Pattern().Segment(line)
	return handler.SuccessWithMessage(fmt.Sprintf("%d sentences", len(spans))).
		WithData(DataSpans, spans)
}
