package plugin

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/sentencenav/internal/dispatcher"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/input/key"
	"github.com/dshills/sentencenav/internal/input/keymap"
	"github.com/dshills/sentencenav/internal/sentence"
)

const testText = "This is a sentence. Here's another one!  This is a different and longer sentence with several other words in it?\n\nContinuing on a **SEPARATE** paragraph now"

type testEnv struct {
	env    Env
	disp   *dispatcher.Dispatcher
	engine *engine.Engine
	keymap *keymap.Keymap
}

func newTestEnv() *testEnv {
	d := dispatcher.NewWithDefaults()
	e := engine.New(engine.WithContent(testText))
	sc := sentence.NewConfig()
	d.SetEngine(e)
	d.SetSentences(sc)
	km := keymap.NewKeymap("test")
	return &testEnv{
		env: Env{
			Dispatcher: d,
			Keymap:     km,
			Sentences:  sc,
			Editor:     func() sentence.Accessor { return e },
		},
		disp:   d,
		engine: e,
		keymap: km,
	}
}

func createTestPlugin(t *testing.T, name, code string, commands ...CommandContribution) *Manifest {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "init.lua"), code)
	m := NewManifestMinimal(name, dir)
	m.Commands = commands
	return m
}

func TestNewHostNilManifest(t *testing.T) {
	if _, err := NewHost(nil); !errors.Is(err, ErrNilManifest) {
		t.Errorf("NewHost(nil) error = %v, want ErrNilManifest", err)
	}
}

func TestHostCommand(t *testing.T) {
	te := newTestEnv()
	m := createTestPlugin(t, "tools", `
		local nav = require("sentencenav")
		local sentence = require("sentence")
		nav.command("show", function(args)
			sentence.select()
			return args.text .. sentence.selected_text()
		end)
	`, CommandContribution{ID: "show", Title: "Show", Keys: "Ctrl+Alt+U"})

	host, err := NewHost(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := host.Load(context.Background(), te.env); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if host.State() != StateActive {
		t.Errorf("State() = %v", host.State())
	}
	if got := host.Commands(); len(got) != 1 || got[0] != "tools.show" {
		t.Errorf("Commands() = %v", got)
	}

	ev, _ := key.Parse("Ctrl+Alt+U")
	if b, ok := te.keymap.Lookup(ev); !ok || b.Action != "tools.show" {
		t.Errorf("Ctrl+Alt+U bound to %v (%v)", b.Action, ok)
	}

	te.engine.SetCursor(engine.Point{Line: 2, Column: 5})
	res := te.disp.Dispatch(input.NewAction("tools.show", input.SourcePlugin).WithText("> "))
	if res.Status != handler.StatusOK {
		t.Fatalf("Dispatch = %v %v", res.Status, res.Error)
	}
	if want := "> Continuing on a **SEPARATE** paragraph now"; res.Message != want {
		t.Errorf("Message = %q, want %q", res.Message, want)
	}

	dry := te.disp.DryRun(input.NewAction("tools.show", input.SourcePlugin))
	if dry.Status != handler.StatusNoOp {
		t.Errorf("DryRun status = %v", dry.Status)
	}

	if err := host.Unload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if te.disp.CanDispatch("tools.show") {
		t.Error("command should be unregistered")
	}
	if _, ok := te.keymap.ForAction("tools.show"); ok {
		t.Error("binding should be removed")
	}
	if host.State() != StateUnloaded {
		t.Errorf("State() = %v", host.State())
	}
}

func TestHostCommandResults(t *testing.T) {
	te := newTestEnv()
	m := createTestPlugin(t, "results", `
		local nav = require("sentencenav")
		nav.command("none", function() end)
		nav.command("nothing", function() return false, "nothing to do" end)
		nav.command("fail", function() error("boom") end)
		nav.command("count", function(args) return tostring(args.count) end)
	`)
	host, _ := NewHost(m)
	if err := host.Load(context.Background(), te.env); err != nil {
		t.Fatal(err)
	}
	defer host.Unload(context.Background())

	tests := []struct {
		action string
		count  int
		status handler.ResultStatus
		text   string
	}{
		{"results.none", 0, handler.StatusOK, ""},
		{"results.nothing", 0, handler.StatusNoOp, "nothing to do"},
		{"results.fail", 0, handler.StatusError, "boom"},
		{"results.count", 3, handler.StatusOK, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			a := input.NewAction(tt.action, input.SourcePlugin)
			if tt.count > 0 {
				a = a.WithCount(tt.count)
			}
			res := te.disp.Dispatch(a)
			if res.Status != tt.status {
				t.Errorf("status = %v, want %v (%v)", res.Status, tt.status, res.Error)
			}
			if !strings.Contains(res.Text(), tt.text) {
				t.Errorf("Text() = %q, want it to contain %q", res.Text(), tt.text)
			}
		})
	}
}

func TestHostLoadFailureRegistersNothing(t *testing.T) {
	te := newTestEnv()
	m := createTestPlugin(t, "broken", `
		local nav = require("sentencenav")
		nav.command("early", function() end)
		error("bad plugin")
	`)
	host, _ := NewHost(m)

	err := host.Load(context.Background(), te.env)
	if err == nil || !strings.Contains(err.Error(), "bad plugin") {
		t.Fatalf("Load() error = %v", err)
	}
	if host.State() != StateError || host.Error() == nil {
		t.Errorf("State() = %v, Error() = %v", host.State(), host.Error())
	}
	if te.disp.CanDispatch("broken.early") {
		t.Error("command from a failed load should be removed")
	}
}

func TestHostRejectsTakenCommand(t *testing.T) {
	te := newTestEnv()
	te.disp.RegisterHandlerFunc("taken.cmd", nil)
	m := createTestPlugin(t, "taken", `require("sentencenav").command("cmd", function() end)`)
	host, _ := NewHost(m)

	err := host.Load(context.Background(), te.env)
	if err == nil || !strings.Contains(err.Error(), "already handled") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestHostActivateDeactivate(t *testing.T) {
	te := newTestEnv()
	m := createTestPlugin(t, "life", `
		local sentence = require("sentence")
		function activate()
			sentence.set_cursor(0, 40)
			sentence.delete_to_start()
		end
		function deactivate()
			sentence.move_to_start()
		end
	`)
	host, _ := NewHost(m)
	if err := host.Load(context.Background(), te.env); err != nil {
		t.Fatal(err)
	}
	want := "This is a sentence.  This is a different and longer sentence with several other words in it?"
	if te.engine.Line(0) != want {
		t.Errorf("Line(0) = %q", te.engine.Line(0))
	}

	if err := host.Load(context.Background(), te.env); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v", err)
	}

	if err := host.Unload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if te.engine.Cursor() != (engine.Point{Line: 0, Column: 0}) {
		t.Errorf("Cursor() = %v after deactivate", te.engine.Cursor())
	}
}

func TestHostNoDispatcher(t *testing.T) {
	host, _ := NewHost(NewManifestMinimal("x", t.TempDir()))
	if err := host.Load(context.Background(), Env{}); !errors.Is(err, ErrNoDispatcher) {
		t.Errorf("Load() error = %v", err)
	}
}
