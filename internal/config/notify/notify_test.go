package notify

import (
	"testing"
)

func TestChangeTypeString(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeDelete, "delete"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestSubscribePath(t *testing.T) {
	n := New()

	var exact, parent, other, all []string
	n.SubscribePath("sentence.pattern", func(c Change) { exact = append(exact, c.Path) })
	n.SubscribePath("sentence", func(c Change) { parent = append(parent, c.Path) })
	n.SubscribePath("logging", func(c Change) { other = append(other, c.Path) })
	n.Subscribe(func(c Change) { all = append(all, c.Path) })

	n.NotifySet("sentence.pattern", "a", "b", "test")
	n.NotifySet("sentencex", nil, 1, "test")

	if len(exact) != 1 || len(parent) != 1 {
		t.Errorf("exact = %v, parent = %v; want one change each", exact, parent)
	}
	if len(other) != 0 {
		t.Errorf("logging observer saw %v", other)
	}
	if len(all) != 2 {
		t.Errorf("global observer saw %v, want 2 changes", all)
	}

	n.NotifyReload("file")
	if len(other) != 1 {
		t.Error("reload should reach path observers")
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()
	calls := 0
	sub := n.Subscribe(func(Change) { calls++ })

	n.NotifyDelete("a", 1, "test")
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifyDelete("a", 1, "test")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestObserverMaySubscribe(t *testing.T) {
	n := New()
	n.Subscribe(func(Change) {
		n.Subscribe(func(Change) {})
	})
	n.NotifyReload("test")
	if n.Len() != 2 {
		t.Errorf("Len() = %d, want 2", n.Len())
	}
}

func TestClose(t *testing.T) {
	n := New()
	called := false
	n.Subscribe(func(Change) { called = true })
	n.Close()
	n.NotifyReload("test")
	if called {
		t.Error("closed notifier delivered a change")
	}
}

func TestDiff(t *testing.T) {
	old := map[string]any{
		"logging":  map[string]any{"level": "info"},
		"sentence": map[string]any{"pattern": "a"},
		"gone":     true,
	}
	new := map[string]any{
		"logging":   map[string]any{"level": "info"},
		"sentence":  map[string]any{"pattern": "b"},
		"data_file": "x.json",
	}

	changes := Diff(old, new, "file")
	want := []struct {
		path string
		typ  ChangeType
	}{
		{"data_file", ChangeSet},
		{"gone", ChangeDelete},
		{"sentence.pattern", ChangeSet},
	}
	if len(changes) != len(want) {
		t.Fatalf("Diff() = %v, want %d changes", changes, len(want))
	}
	for i, w := range want {
		if changes[i].Path != w.path || changes[i].Type != w.typ {
			t.Errorf("change %d = %v, want %s %s", i, changes[i], w.typ, w.path)
		}
	}
	if changes[2].OldValue != "a" || changes[2].NewValue != "b" {
		t.Errorf("pattern change = %v", changes[2])
	}
}
