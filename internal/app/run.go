package app

import (
	"context"
	"strings"

	"github.com/dshills/sentencenav/internal/config/notify"
	"github.com/dshills/sentencenav/internal/renderer"
	"github.com/dshills/sentencenav/internal/renderer/backend"
)

// stopLoop is posted to the backend when the Run context ends.
type stopLoop struct{}

// Run draws the document and handles terminal input until app.quit runs or
// ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	b := app.opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		b = term
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer b.Shutdown()

	app.backend = b
	app.renderer = renderer.New(b, app.rendererOptions())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := app.config.Watch(ctx); err != nil {
		app.logger.WithComponent("config").Warn("live reload disabled: %v", err)
	}
	app.configSub = app.config.Subscribe(func(c notify.Change) {
		b.Interrupt(c)
	})
	go func() {
		<-ctx.Done()
		b.Interrupt(stopLoop{})
	}()

	for {
		app.renderer.Render(app.doc.Engine, app.Status())

		ev := b.PollEvent()
		switch ev.Type {
		case backend.EventNone:
			return nil
		case backend.EventKey:
			if app.handleKey(ev) {
				return nil
			}
		case backend.EventInterrupt:
			switch data := ev.Data.(type) {
			case stopLoop:
				return nil
			case notify.Change:
				app.applyChange(data)
			}
		}
	}
}

// handleKey resolves one key press and runs the actions it produced. It
// reports whether the loop should stop.
func (app *Application) handleKey(ev backend.Event) bool {
	app.mu.Lock()
	app.status.Message = ""
	app.status.IsError = false
	app.mu.Unlock()

	app.input.HandleKey(ev.Key)
	for {
		select {
		case action := <-app.input.Actions():
			if app.Dispatch(action).Quit {
				return true
			}
		default:
			return false
		}
	}
}

// applyChange reacts to a settings change on the event loop goroutine.
func (app *Application) applyChange(c notify.Change) {
	switch {
	case c.Path == "" || strings.HasPrefix(c.Path, "ui."):
		app.renderer.SetOptions(app.rendererOptions())
	case strings.HasPrefix(c.Path, "keymap."):
		if err := app.keymap.ApplyOverrides(app.config.Keymap()); err != nil {
			app.logger.WithComponent("keymap").Warn("%v", err)
		}
	case c.Path == "logging.level" && app.opts.LogLevel == "":
		app.logger.SetLevel(ParseLogLevel(app.config.Logging().Level))
	}

	app.mu.Lock()
	app.status.Message = describeChange(c)
	app.status.IsError = false
	app.mu.Unlock()
}

func (app *Application) rendererOptions() renderer.Options {
	ui := app.config.UI()
	theme, err := renderer.ThemeFromConfig(ui)
	if err != nil {
		app.logger.WithComponent("renderer").Warn("%v", err)
	}
	return renderer.Options{TabSize: ui.TabSize, Theme: theme}
}
