package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/input"
	plua "github.com/dshills/sentencenav/internal/plugin/lua"
	"github.com/dshills/sentencenav/internal/sentence"
	lua "github.com/yuin/gopher-lua"
)

// APIModule is the Lua module through which scripts register commands.
const APIModule = "sentencenav"

// Host runs one Lua plugin.
//
// The script's main file runs on Load. It registers commands with
//
//	local nav = require("sentencenav")
//	nav.command("upper", function(args) ... end)
//
// and may define activate() and deactivate(), which run after the main
// file and before unloading. While a command runs, the sentence module
// acts on the engine the command was dispatched against.
type Host struct {
	mu          sync.Mutex
	manifest    *Manifest
	pluginState State
	err         error
	timeout     time.Duration
	env         Env

	// callMu serializes command invocations.
	callMu sync.Mutex

	// trackMu guards the fields below, which Lua callbacks touch while
	// Load holds mu.
	trackMu  sync.Mutex
	state    *plua.State
	current  sentence.Accessor
	commands []string
	keys     []string
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostExecutionTimeout sets the deadline for each call into the script.
func WithHostExecutionTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.timeout = d
	}
}

// NewHost creates a host for the plugin described by manifest.
func NewHost(manifest *Manifest, opts ...HostOption) (*Host, error) {
	if manifest == nil {
		return nil, ErrNilManifest
	}
	h := &Host{
		manifest: manifest,
		timeout:  plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Name implements Plugin.
func (h *Host) Name() string {
	return h.manifest.Name
}

// Manifest returns the plugin manifest.
func (h *Host) Manifest() *Manifest {
	return h.manifest
}

// State returns the current plugin state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pluginState
}

// Error returns the error that put the plugin in StateError.
func (h *Host) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Commands returns the action names the plugin registered.
func (h *Host) Commands() []string {
	h.trackMu.Lock()
	defer h.trackMu.Unlock()
	return append([]string(nil), h.commands...)
}

// Load implements Plugin. A failing script leaves nothing registered.
func (h *Host) Load(ctx context.Context, env Env) error {
	if env.Dispatcher == nil {
		return ErrNoDispatcher
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState == StateActive {
		return fmt.Errorf("%s: %w", h.Name(), ErrAlreadyLoaded)
	}

	st := plua.NewState(plua.WithExecutionTimeout(h.timeout))
	plua.OpenSentence(st, plua.SentenceEnv{
		Editor:      h.editor,
		Sentences:   env.Sentences,
		SavePattern: env.savePattern,
	})
	st.RegisterModule(APIModule, map[string]lua.LGFunction{
		"command": h.luaCommand,
		"bind":    h.luaBind,
		"log":     h.luaLog,
		"name":    h.luaName,
	})

	h.env = env
	h.trackMu.Lock()
	h.state = st
	h.trackMu.Unlock()

	if err := h.start(ctx); err != nil {
		h.teardown()
		h.pluginState = StateError
		h.err = fmt.Errorf("loading plugin %s: %w", h.Name(), err)
		return h.err
	}

	h.pluginState = StateActive
	h.err = nil
	env.debugf("plugin %s loaded with %d commands", h.Name(), len(h.Commands()))
	return nil
}

func (h *Host) start(ctx context.Context) error {
	st := h.luaState()
	if err := st.DoFile(ctx, h.manifest.MainPath()); err != nil {
		return err
	}

	registered := make(map[string]bool)
	for _, id := range h.Commands() {
		registered[id] = true
	}
	for _, c := range h.manifest.Commands {
		id := h.manifest.QualifyCommand(c.ID)
		if c.Keys == "" {
			continue
		}
		if !registered[id] {
			h.env.warnf("plugin %s: command %s declared but not registered", h.Name(), id)
			continue
		}
		if err := h.bind(c.Keys, id); err != nil {
			h.env.warnf("plugin %s: %v", h.Name(), err)
		}
	}

	if _, _, err := st.CallGlobal(ctx, "activate"); err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	return nil
}

// Unload implements Plugin.
func (h *Host) Unload(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pluginState != StateActive {
		return nil
	}
	if _, _, err := h.luaState().CallGlobal(ctx, "deactivate"); err != nil {
		h.env.warnf("plugin %s: deactivate: %v", h.Name(), err)
	}
	h.teardown()
	h.pluginState = StateUnloaded
	h.err = nil
	return nil
}

// teardown removes everything the script registered and closes the state.
func (h *Host) teardown() {
	h.trackMu.Lock()
	commands, keys, st := h.commands, h.keys, h.state
	h.commands, h.keys, h.state = nil, nil, nil
	h.trackMu.Unlock()

	for _, id := range commands {
		h.env.Dispatcher.UnregisterHandler(id)
	}
	if h.env.Keymap != nil {
		for _, action := range keys {
			h.env.Keymap.Unbind(action)
		}
	}
	if st != nil {
		st.Close()
	}
}

func (h *Host) luaState() *plua.State {
	h.trackMu.Lock()
	defer h.trackMu.Unlock()
	return h.state
}

// editor is the accessor the sentence module acts on.
func (h *Host) editor() sentence.Accessor {
	h.trackMu.Lock()
	cur := h.current
	h.trackMu.Unlock()
	if cur != nil {
		return cur
	}
	if h.env.Editor != nil {
		return h.env.Editor()
	}
	return nil
}

func (h *Host) setCurrent(acc sentence.Accessor) {
	h.trackMu.Lock()
	h.current = acc
	h.trackMu.Unlock()
}

func (h *Host) bind(keys, action string) error {
	if h.env.Keymap == nil {
		return fmt.Errorf("no keymap to bind %s to", keys)
	}
	if err := h.env.Keymap.Bind(action, keys); err != nil {
		return err
	}
	h.trackMu.Lock()
	h.keys = append(h.keys, action)
	h.trackMu.Unlock()
	return nil
}

// luaCommand implements command(id, fn). It returns the qualified action
// name.
func (h *Host) luaCommand(L *lua.LState) int {
	id := h.manifest.QualifyCommand(L.CheckString(1))
	fn := L.CheckFunction(2)

	h.trackMu.Lock()
	for _, c := range h.commands {
		if c == id {
			h.trackMu.Unlock()
			L.RaiseError("%v: %s registered twice", ErrInvalidCommand, id)
			return 0
		}
	}
	h.trackMu.Unlock()

	if h.env.Dispatcher.CanDispatch(id) {
		L.RaiseError("%v: %s is already handled", ErrInvalidCommand, id)
		return 0
	}
	h.env.Dispatcher.RegisterHandlerFunc(id, h.commandFunc(id, fn))

	h.trackMu.Lock()
	h.commands = append(h.commands, id)
	h.trackMu.Unlock()

	L.Push(lua.LString(id))
	return 1
}

// luaBind implements bind(keys, action). It returns true, or nil and a
// message.
func (h *Host) luaBind(L *lua.LState) int {
	keys := L.CheckString(1)
	action := h.manifest.QualifyCommand(L.CheckString(2))
	if err := h.bind(keys, action); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *Host) luaLog(L *lua.LState) int {
	if h.env.Logger != nil {
		h.env.Logger.Info("plugin %s: %s", h.Name(), L.CheckString(1))
	}
	return 0
}

func (h *Host) luaName(L *lua.LState) int {
	L.Push(lua.LString(h.Name()))
	return 1
}

// commandFunc adapts a Lua command to the dispatcher. The function gets a
// table with name, text, count, source and extra. Returning a string sets
// the status message; returning false reports that nothing happened.
func (h *Host) commandFunc(id string, fn *lua.LFunction) handler.ActionFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if ctx.DryRun {
			return handler.NoOpWithMessage(id + " does not support dry run")
		}
		st := h.luaState()
		if st == nil {
			return handler.Error(fmt.Errorf("%s: %w", id, ErrNotLoaded))
		}

		h.callMu.Lock()
		defer h.callMu.Unlock()
		if ctx.Engine != nil {
			h.setCurrent(ctx.Engine)
			defer h.setCurrent(nil)
		}

		args := map[string]any{
			"name":   action.Name,
			"text":   action.Args.Text,
			"count":  ctx.GetCount(),
			"source": action.Source.String(),
		}
		if action.Args.Extra != nil {
			args["extra"] = action.Args.Extra
		}

		res, err := st.Invoke(context.Background(), fn, args)
		if err != nil {
			return handler.Error(fmt.Errorf("%s: %w", id, err))
		}
		return commandResult(res)
	}
}

func commandResult(res []any) handler.Result {
	if len(res) == 0 {
		return handler.Success().WithRedraw()
	}
	switch v := res[0].(type) {
	case string:
		return handler.SuccessWithMessage(v).WithRedraw()
	case bool:
		if !v {
			if len(res) > 1 {
				if msg, ok := res[1].(string); ok {
					return handler.NoOpWithMessage(msg)
				}
			}
			return handler.NoOp()
		}
	}
	return handler.Success().WithRedraw()
}
