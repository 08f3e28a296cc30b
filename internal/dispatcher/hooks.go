package dispatcher

import (
	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/input"
)

// PreDispatchHook is called before an action is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	// PreDispatch may modify the action or context.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	// PostDispatch may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f(action, ctx)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(action, ctx, result)
}

// AuditHook logs every dispatched action at debug level.
type AuditHook struct {
	logger execctx.Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger execctx.Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// PreDispatch logs the action being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch %s (source=%s, count=%d)", action.Name, action.Source, ctx.GetCount())
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.logger == nil {
		return
	}
	if result.IsError() {
		h.logger.Error("dispatch %s failed: %v", action.Name, result.Error)
		return
	}
	h.logger.Debug("dispatch %s -> %s %s", action.Name, result.Status, result.Message)
}

// ReadOnlyGuard cancels mutating actions while the engine is read-only.
type ReadOnlyGuard struct {
	// Mutating reports whether an action edits the buffer.
	Mutating func(actionName string) bool
}

// PreDispatch implements PreDispatchHook.
func (g ReadOnlyGuard) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if g.Mutating == nil || !ctx.IsReadOnly() {
		return true
	}
	return !g.Mutating(action.Name)
}
