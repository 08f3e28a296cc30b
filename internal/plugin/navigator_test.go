package plugin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/sentencenav/internal/config"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	sentencecmd "github.com/dshills/sentencenav/internal/dispatcher/handlers/sentence"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/input/keymap"
)

const semicolonPattern = `[^;]+`

func newTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, content)
	cfg := config.New(config.WithPath(path), config.WithEnv(false))
	if err := cfg.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(cfg.Close)
	return cfg
}

func TestNavigatorRegistersSentenceCommands(t *testing.T) {
	te := newTestEnv()
	nav := NewNavigator()

	if err := nav.Load(context.Background(), te.env); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !te.disp.CanDispatch(sentencecmd.ActionSelect) {
		t.Error("sentence namespace should be registered")
	}

	for _, b := range keymap.DefaultBindings() {
		if b.Category != keymap.CategorySentence {
			continue
		}
		if _, ok := te.keymap.ForAction(b.Action); !ok {
			t.Errorf("%s should be bound", b.Action)
		}
	}

	res := te.disp.Dispatch(input.NewAction(sentencecmd.ActionMoveToNextStart, input.SourceKeyboard))
	if res.Status != handler.StatusOK {
		t.Errorf("Dispatch = %v %v", res.Status, res.Error)
	}

	if err := nav.Unload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if te.disp.CanDispatch(sentencecmd.ActionSelect) {
		t.Error("sentence namespace should be removed")
	}
	if te.keymap.Len() != 0 {
		t.Errorf("keymap has %d bindings after unload", te.keymap.Len())
	}
}

func TestNavigatorKeepsUserBindings(t *testing.T) {
	te := newTestEnv()
	if err := te.keymap.Bind(sentencecmd.ActionSelect, "Ctrl+Alt+S"); err != nil {
		t.Fatal(err)
	}
	nav := NewNavigator()
	if err := nav.Load(context.Background(), te.env); err != nil {
		t.Fatal(err)
	}
	for _, action := range nav.Bound() {
		if action == sentencecmd.ActionSelect {
			t.Error("user binding should not be replaced")
		}
	}
	if err := nav.Unload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b, ok := te.keymap.ForAction(sentencecmd.ActionSelect); !ok || b.Keys != "Ctrl+Alt+S" {
		t.Errorf("user binding = %+v, %v", b, ok)
	}
}

func TestNavigatorFollowsConfiguredPattern(t *testing.T) {
	te := newTestEnv()
	cfg := newTestConfig(t, "data_file = \"data.json\"\n\n[sentence]\npattern = '"+semicolonPattern+"'\n")
	te.env.Config = cfg

	nav := NewNavigator()
	if err := nav.Load(context.Background(), te.env); err != nil {
		t.Fatal(err)
	}
	defer nav.Unload(context.Background())

	if got := te.env.Sentences.Source(); got != semicolonPattern {
		t.Errorf("Source() = %q, want %q", got, semicolonPattern)
	}
	if err := cfg.Set("sentence.pattern", "[^,]+"); err != nil {
		t.Fatal(err)
	}
	if got := te.env.Sentences.Source(); got != "[^,]+" {
		t.Errorf("after Set, Source() = %q", got)
	}
}

func TestNavigatorSavesPattern(t *testing.T) {
	te := newTestEnv()
	cfg := newTestConfig(t, "data_file = \"data.json\"\n")
	te.env.Config = cfg

	nav := NewNavigator()
	if err := nav.Load(context.Background(), te.env); err != nil {
		t.Fatal(err)
	}
	defer nav.Unload(context.Background())

	set := input.NewAction(sentencecmd.ActionSetPattern, input.SourceCLI).WithText(semicolonPattern)
	if res := te.disp.DryRun(set); res.Status != handler.StatusOK {
		t.Fatalf("DryRun = %v %v", res.Status, res.Error)
	}
	if _, err := os.Stat(cfg.DataFile()); !os.IsNotExist(err) {
		t.Error("dry run must not write the data file")
	}

	if res := te.disp.Dispatch(set); res.Status != handler.StatusOK {
		t.Fatalf("Dispatch = %v %v", res.Status, res.Error)
	}
	src, ok, err := cfg.DataStore().PatternSource()
	if err != nil || !ok || src != semicolonPattern {
		t.Errorf("saved pattern = %q, %v, %v", src, ok, err)
	}

	reset := input.NewAction(sentencecmd.ActionResetPattern, input.SourceCLI)
	if res := te.disp.Dispatch(reset); res.Status != handler.StatusOK {
		t.Fatalf("reset = %v %v", res.Status, res.Error)
	}
	if _, ok, _ := cfg.DataStore().PatternSource(); ok {
		t.Error("reset should clear the saved pattern")
	}

	bad := input.NewAction(sentencecmd.ActionSetPattern, input.SourceCLI).WithText("(")
	if res := te.disp.Dispatch(bad); res.Status != handler.StatusError {
		t.Errorf("invalid pattern status = %v", res.Status)
	}
	if _, ok, _ := cfg.DataStore().PatternSource(); ok {
		t.Error("invalid pattern must not be saved")
	}
}

func TestNavigatorNoDispatcher(t *testing.T) {
	if err := NewNavigator().Load(context.Background(), Env{}); err != ErrNoDispatcher {
		t.Errorf("Load() error = %v", err)
	}
}
