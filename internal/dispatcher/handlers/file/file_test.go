package file

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/input"
)

type fakeDocument struct {
	path  string
	saves int
	err   error
}

func (d *fakeDocument) Path() string { return d.path }

func (d *fakeDocument) Save() error {
	if d.err != nil {
		return d.err
	}
	d.saves++
	return nil
}

func (d *fakeDocument) SaveAs(path string) error {
	d.path = path
	return d.Save()
}

func TestSave(t *testing.T) {
	eng := engine.New(engine.WithContent("One. Two."))
	doc := &fakeDocument{path: "/tmp/notes.md"}
	ctx := execctx.New().WithEngine(eng).WithDocument(doc)
	h := NewHandler()

	if res := h.HandleAction(input.Action{Name: ActionSave}, ctx); res.Status != handler.StatusNoOp {
		t.Errorf("unmodified save = %v, want no-op", res.Status)
	}

	if err := eng.ReplaceLine(0, "Two."); err != nil {
		t.Fatal(err)
	}
	res := h.HandleAction(input.Action{Name: ActionSave}, ctx)
	if !res.IsOK() || doc.saves != 1 {
		t.Fatalf("save = %v, saves = %d", res.Status, doc.saves)
	}
	if res.Message != "Saved: notes.md" {
		t.Errorf("Message = %q", res.Message)
	}

	doc.err = errors.New("disk full")
	if res := h.HandleAction(input.Action{Name: ActionSave}, ctx); !res.IsError() {
		t.Error("expected save error")
	}
}

func TestSaveAs(t *testing.T) {
	eng := engine.New(engine.WithContent("text"))
	doc := &fakeDocument{}
	ctx := execctx.New().WithEngine(eng).WithDocument(doc)

	if res := NewHandler().HandleAction(input.Action{Name: ActionSave}, ctx); !res.IsError() {
		t.Error("save without a path should fail")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "out.md")
	res := NewHandler().HandleAction(input.NewAction(ActionSaveAs, input.SourceCLI).WithText(target), ctx)
	if !res.IsOK() {
		t.Fatalf("saveAs error = %v", res.Error)
	}
	if doc.path != target || res.GetDataString("path") != target {
		t.Errorf("path = %q / %q", doc.path, res.GetDataString("path"))
	}
	if res.Message != "Saved: out.md" {
		t.Errorf("Message = %q, want %q", res.Message, "Saved: out.md")
	}
}

func TestMissingDocument(t *testing.T) {
	ctx := execctx.New().WithEngine(engine.New())
	res := NewHandler().HandleAction(input.Action{Name: ActionSave}, ctx)
	if !errors.Is(res.Error, execctx.ErrMissingDocument) {
		t.Errorf("expected ErrMissingDocument, got %v", res.Error)
	}
}
