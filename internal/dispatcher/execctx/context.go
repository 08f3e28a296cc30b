// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/sentencenav/internal/engine/cursor"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/sentence"
)

// EngineInterface abstracts the text engine for handlers. Sentence
// commands only need the accessor surface; the rest serves the editor
// and cursor namespaces.
type EngineInterface interface {
	sentence.Accessor

	LineLen(i int) int
	// ReplaceLineAndSelect replaces line i and sets sel in one undoable edit.
	ReplaceLineAndSelect(i int, text string, sel cursor.Selection) error

	// Undo/redo
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool

	// State
	IsReadOnly() bool
	Modified() bool
}

// ClipboardInterface abstracts the system clipboard.
type ClipboardInterface interface {
	WriteAll(text string) error
}

// DocumentInterface is the file backing the engine.
type DocumentInterface interface {
	// Path returns the file path, or "" for a scratch buffer.
	Path() string
	// Save writes the engine content to Path.
	Save() error
	// SaveAs writes the engine content to path and makes it the new Path.
	SaveAs(path string) error
}

// Logger is the logging surface handlers may use. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ExecutionContext provides context for action execution.
// It contains references to all editor subsystems needed by handlers.
type ExecutionContext struct {
	// Engine provides access to lines, selection and history.
	Engine EngineInterface

	// Sentences holds the active sentence pattern. Nil means the default.
	Sentences *sentence.Config

	// Clipboard receives copied text.
	Clipboard ClipboardInterface

	// Document is the file being edited. Nil for scratch buffers.
	Document DocumentInterface

	// Logger receives handler diagnostics. Nil disables logging.
	Logger Logger

	// Source is where the action came from.
	Source input.ActionSource

	// Execution options
	Count  int  // Repeat count (1 if not specified)
	DryRun bool // If true, compute the outcome but don't apply it

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]any),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithSentences returns the context with the sentence config set.
func (ctx *ExecutionContext) WithSentences(cfg *sentence.Config) *ExecutionContext {
	ctx.Sentences = cfg
	return ctx
}

// WithClipboard returns the context with the clipboard set.
func (ctx *ExecutionContext) WithClipboard(cb ClipboardInterface) *ExecutionContext {
	ctx.Clipboard = cb
	return ctx
}

// WithDocument returns the context with the document set.
func (ctx *ExecutionContext) WithDocument(doc DocumentInterface) *ExecutionContext {
	ctx.Document = doc
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(l Logger) *ExecutionContext {
	ctx.Logger = l
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// WithDryRun returns the context with dry run mode enabled.
func (ctx *ExecutionContext) WithDryRun(dryRun bool) *ExecutionContext {
	ctx.DryRun = dryRun
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Pattern returns the active sentence pattern.
func (ctx *ExecutionContext) Pattern() *sentence.Pattern {
	if ctx.Sentences == nil {
		return sentence.Default()
	}
	return ctx.Sentences.Pattern()
}

// HasSelection returns true if there is a non-empty selection.
func (ctx *ExecutionContext) HasSelection() bool {
	return ctx.Engine != nil && !ctx.Engine.Selection().IsEmpty()
}

// IsReadOnly returns true if the buffer is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Engine != nil && ctx.Engine.IsReadOnly()
}

// IsModified returns true if the buffer has unsaved changes.
func (ctx *ExecutionContext) IsModified() bool {
	return ctx.Engine != nil && ctx.Engine.Modified()
}

// Debugf logs through the context logger if one is set.
func (ctx *ExecutionContext) Debugf(msg string, args ...any) {
	if ctx.Logger != nil {
		ctx.Logger.Debug(msg, args...)
	}
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
