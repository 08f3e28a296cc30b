package plugin

import (
	"context"

	"github.com/dshills/sentencenav/internal/config"
	"github.com/dshills/sentencenav/internal/dispatcher"
	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/input/keymap"
	"github.com/dshills/sentencenav/internal/sentence"
)

// Plugin is a unit of editor functionality that registers commands and
// key bindings when loaded and removes them when unloaded.
type Plugin interface {
	Name() string
	Load(ctx context.Context, env Env) error
	Unload(ctx context.Context) error
}

// Registrar is the part of the dispatcher a plugin registers commands
// with. *dispatcher.Dispatcher satisfies it.
type Registrar interface {
	RegisterNamespace(namespace string, h handler.NamespaceHandler)
	UnregisterNamespace(namespace string)
	RegisterHandlerFunc(actionName string, fn handler.ActionFunc)
	UnregisterHandler(actionName string)
	CanDispatch(actionName string) bool
	RegisterPostHook(hook dispatcher.PostDispatchHook)
}

// Env is what a plugin is loaded into. Only Dispatcher is required.
type Env struct {
	Dispatcher Registrar

	// Keymap receives the plugin's key bindings.
	Keymap *keymap.Keymap

	// Config supplies settings and the data file the sentence pattern is
	// saved to.
	Config *config.Config

	// Sentences is the active sentence pattern shared with the dispatcher.
	Sentences *sentence.Config

	// Editor returns the engine scripts act on outside of a command.
	Editor func() sentence.Accessor

	Logger execctx.Logger
}

func (e Env) debugf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Debug(format, args...)
	}
}

func (e Env) warnf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warn(format, args...)
	}
}

// savePattern persists source as the sentence pattern. An empty source
// clears the saved pattern.
func (e Env) savePattern(source string) error {
	if e.Config == nil {
		return nil
	}
	store := e.Config.DataStore()
	if source == "" || source == sentence.DefaultPatternSource {
		return store.ResetPatternSource()
	}
	return store.SetPatternSource(source)
}
