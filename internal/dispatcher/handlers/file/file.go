package file

import (
	"path/filepath"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/input"
)

// Action names for file operations.
const (
	ActionSave   = "file.save"
	ActionSaveAs = "file.saveAs"
)

// Handler implements namespace-based file handling.
type Handler struct{}

// NewHandler creates a new file handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the file namespace.
func (h *Handler) Namespace() string {
	return "file"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionSave, ActionSaveAs:
		return true
	}
	return false
}

// HandleAction processes a file action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	if ctx.Document == nil {
		return handler.Error(execctx.ErrMissingDocument)
	}

	switch action.Name {
	case ActionSave:
		return h.save(ctx)
	case ActionSaveAs:
		return h.saveAs(action, ctx)
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

func (h *Handler) save(ctx *execctx.ExecutionContext) handler.Result {
	path := ctx.Document.Path()
	if path == "" {
		return handler.Errorf("file.save: no file path set")
	}
	if !ctx.IsModified() {
		return handler.NoOpWithMessage("No changes: " + filepath.Base(path))
	}
	if err := ctx.Document.Save(); err != nil {
		return handler.Error(err)
	}
	ctx.Debugf("saved %s", path)
	return handler.SuccessWithMessage("Saved: " + filepath.Base(path))
}

func (h *Handler) saveAs(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := action.Args.Text
	if path == "" {
		path = action.Args.GetString("path")
	}
	if path == "" {
		return handler.Errorf("file.saveAs: path required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return handler.Error(err)
	}
	if err := ctx.Document.SaveAs(abs); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved: "+filepath.Base(abs)).WithData("path", abs)
}
