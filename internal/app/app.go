// Package app wires the editor together: configuration, the open document,
// the dispatcher and its handlers, key bindings, plugins and the terminal
// renderer.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/sentencenav/internal/config"
	"github.com/dshills/sentencenav/internal/config/notify"
	"github.com/dshills/sentencenav/internal/dispatcher"
	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/dispatcher/handlers/cursor"
	"github.com/dshills/sentencenav/internal/dispatcher/handlers/editor"
	"github.com/dshills/sentencenav/internal/dispatcher/handlers/file"
	sentencecmd "github.com/dshills/sentencenav/internal/dispatcher/handlers/sentence"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/input/key"
	"github.com/dshills/sentencenav/internal/input/keymap"
	"github.com/dshills/sentencenav/internal/plugin"
	"github.com/dshills/sentencenav/internal/renderer"
	"github.com/dshills/sentencenav/internal/renderer/backend"
	"github.com/dshills/sentencenav/internal/sentence"
)

// ActionQuit ends the event loop.
const ActionQuit = "app.quit"

// Options configures the application.
type Options struct {
	// ConfigPath is the config file. Empty means config.DefaultPath().
	ConfigPath string

	// File is the document to edit. Empty opens a scratch buffer.
	File string

	// ReadOnly rejects edits to the document.
	ReadOnly bool

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogOutput receives log lines. Nil means os.Stderr.
	LogOutput io.Writer

	// KeymapFile replaces the built-in bindings with a JSON keymap.
	KeymapFile string

	// DisablePlugins skips Lua plugin discovery. The sentence navigator is
	// always loaded.
	DisablePlugins bool

	// DisableEnv ignores SENTENCENAV_* environment overrides.
	DisableEnv bool

	// Metrics records per-action dispatch statistics, available through
	// Dispatcher().Metrics().
	Metrics bool

	// Backend is the terminal Run draws on. Nil means the controlling
	// terminal.
	Backend backend.Backend
}

// Application is the central coordinator for all components.
type Application struct {
	mu sync.Mutex

	opts   Options
	logger *Logger

	config     *config.Config
	sentences  *sentence.Config
	doc        *Document
	dispatcher *dispatcher.Dispatcher
	keymap     *keymap.Keymap
	input      *input.Handler
	plugins    *plugin.Manager
	configSub  *notify.Subscription

	backend  backend.Backend
	renderer *renderer.Renderer
	status   renderer.Status

	running atomic.Bool
	closed  atomic.Bool
}

// New creates an Application and loads its document, settings and
// plugins. Problems with the config file or plugins are logged and do not
// fail startup; a document that cannot be read does.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap(ctx context.Context) error {
	cfg := DefaultLoggerConfig()
	cfg.Output = app.opts.LogOutput
	app.logger = NewLogger(cfg)

	app.initConfig(ctx)

	doc, err := OpenDocument(app.opts.File, app.opts.ReadOnly)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	app.doc = doc
	app.sentences = sentence.NewConfig()

	app.initDispatcher()

	if err := app.initKeymap(); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	app.initPlugins(ctx)

	if err := app.keymap.ApplyOverrides(app.config.Keymap()); err != nil {
		app.logger.WithComponent("keymap").Warn("%v", err)
	}

	app.input = input.NewHandler(app.keymap)
	app.input.OnUnbound(app.insertUnbound)

	app.logger.Info("editing %s", app.doc)
	return nil
}

func (app *Application) initConfig(ctx context.Context) {
	log := app.logger.WithComponent("config")

	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	app.config = config.New(
		config.WithPath(path),
		config.WithEnv(!app.opts.DisableEnv),
		config.WithErrorHandler(func(err error) {
			log.Warn("%v", err)
		}),
	)
	if err := app.config.Load(ctx); err != nil {
		log.Warn("loading %s: %v; using defaults", path, err)
	}
	if err := app.config.Validate(); err != nil {
		log.Warn("%v", err)
	}

	level := app.opts.LogLevel
	if level == "" {
		level = app.config.Logging().Level
	}
	app.logger.SetLevel(ParseLogLevel(level))
}

func (app *Application) initDispatcher() {
	cfg := dispatcher.DefaultConfig().WithPanicRecovery(true)
	if app.opts.Metrics {
		cfg = cfg.WithMetrics()
	}
	d := dispatcher.New(cfg)
	d.SetEngine(app.doc.Engine)
	d.SetSentences(app.sentences)
	d.SetDocument(app.doc)
	d.SetClipboard(editor.SystemClipboard{})
	d.SetLogger(app.logger.WithComponent("dispatcher"))

	d.RegisterNamespace("editor", editor.NewHandler())
	d.RegisterNamespace("cursor", cursor.NewHandler())
	d.RegisterNamespace("file", file.NewHandler())
	d.RegisterHandlerFunc(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithQuit()
	})

	d.RegisterPreHook(dispatcher.ReadOnlyGuard{Mutating: func(name string) bool {
		return sentencecmd.IsMutating(name) || editor.IsMutating(name)
	}})
	audit := dispatcher.NewAuditHook(app.logger.WithComponent("audit"))
	d.RegisterPreHook(audit)
	d.RegisterPostHook(audit)

	app.dispatcher = d
}

// initKeymap starts from a keymap file or from the built-in bindings
// outside the sentence category. Sentence bindings come from the
// navigator plugin.
func (app *Application) initKeymap() error {
	if app.opts.KeymapFile != "" {
		km, err := keymap.LoadFile(app.opts.KeymapFile)
		if err != nil {
			return err
		}
		app.keymap = km
		return nil
	}

	km := keymap.NewKeymap("default")
	km.Source = "default"
	for _, b := range keymap.DefaultBindings() {
		if b.Category == keymap.CategorySentence {
			continue
		}
		if err := km.Add(b); err != nil {
			return err
		}
	}
	app.keymap = km
	return nil
}

func (app *Application) initPlugins(ctx context.Context) {
	log := app.logger.WithComponent("plugin")

	env := plugin.Env{
		Dispatcher: app.dispatcher,
		Keymap:     app.keymap,
		Config:     app.config,
		Sentences:  app.sentences,
		Editor:     func() sentence.Accessor { return app.doc.Engine },
		Logger:     log,
	}

	var opts []plugin.ManagerOption
	pc := app.config.Plugins()
	if pc.Enabled && !app.opts.DisablePlugins {
		opts = append(opts, plugin.WithLoader(plugin.NewLoader(pc.Dir)))
	}
	app.plugins = plugin.NewManager(env, opts...)
	app.plugins.Subscribe(func(ev plugin.ManagerEvent) {
		if ev.Error != nil {
			log.Warn("%s %s: %v", ev.Plugin, ev.Type, ev.Error)
			return
		}
		log.Debug("%s %s", ev.Plugin, ev.Type)
	})

	if err := app.plugins.Register(plugin.NewNavigator()); err != nil {
		log.Error("%v", err)
	}
	if len(opts) > 0 {
		n, err := app.plugins.Discover()
		if err != nil {
			log.Warn("discovering plugins in %s: %v", pc.Dir, err)
		}
		log.Debug("found %d plugins in %s", n, pc.Dir)
	}
	if err := app.plugins.LoadAll(ctx); err != nil {
		log.Warn("%v", err)
	}
}

// insertUnbound types printable keys that have no binding.
func (app *Application) insertUnbound(ev key.Event) {
	if !ev.IsChar() {
		return
	}
	app.Dispatch(input.NewAction(editor.ActionInsertText, input.SourceKeyboard).WithText(string(ev.Rune)))
}

// Dispatch runs action and records its outcome for the status line.
func (app *Application) Dispatch(action input.Action) handler.Result {
	result := app.dispatcher.Dispatch(action)

	app.mu.Lock()
	defer app.mu.Unlock()
	app.status.Message = result.Text()
	app.status.IsError = result.IsError()
	return result
}

// DryRun reports what action would do without changing anything.
func (app *Application) DryRun(action input.Action) handler.Result {
	return app.dispatcher.DryRun(action)
}

// Status returns the status line for the current state.
func (app *Application) Status() renderer.Status {
	app.mu.Lock()
	s := app.status
	app.mu.Unlock()

	s.Name = app.doc.Name()
	s.Modified = app.doc.Engine.Modified()
	s.ReadOnly = app.doc.Engine.IsReadOnly()
	return s
}

// Close unloads plugins and stops configuration watching. It is safe to
// call more than once.
func (app *Application) Close() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	if app.plugins != nil {
		if err := app.plugins.UnloadAll(context.Background()); err != nil {
			app.logger.WithComponent("plugin").Warn("%v", err)
		}
	}
	if app.configSub != nil {
		app.configSub.Unsubscribe()
	}
	if app.config != nil {
		app.config.Close()
	}
}

// Config returns the configuration.
func (app *Application) Config() *config.Config { return app.config }

// Dispatcher returns the dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher { return app.dispatcher }

// Document returns the open document.
func (app *Application) Document() *Document { return app.doc }

// Keymap returns the active keymap.
func (app *Application) Keymap() *keymap.Keymap { return app.keymap }

// Plugins returns the plugin manager.
func (app *Application) Plugins() *plugin.Manager { return app.plugins }

// Sentences returns the active sentence pattern.
func (app *Application) Sentences() *sentence.Config { return app.sentences }

// Logger returns the application logger.
func (app *Application) Logger() *Logger { return app.logger }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }

func describeChange(c notify.Change) string {
	if c.Path == "" {
		return "settings reloaded"
	}
	return fmt.Sprintf("%s changed", c.Path)
}
