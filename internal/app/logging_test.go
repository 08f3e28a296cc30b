package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// newTestLogger returns a debug-level logger writing to a buffer.
func newTestLogger(prefix string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: prefix}), &buf
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimRight(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := LogLevel(42).String(); got != "UNKNOWN" {
		t.Errorf("LogLevel(42).String() = %q", got)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger("")
	l.SetLevel(LogLevelWarn)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	got := lines(buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.Contains(got[0], "[WARN] w") || !strings.Contains(got[1], "[ERROR] e") {
		t.Errorf("lines = %q", got)
	}
}

func TestDerivedLoggersShareSink(t *testing.T) {
	root, buf := newTestLogger("sentencenav")
	child := root.WithComponent("dispatcher")
	grandchild := child.WithField("action", "sentence.select")

	root.SetLevel(LogLevelError)
	grandchild.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("root level should filter derived loggers, got %q", buf.String())
	}
	if grandchild.Level() != LogLevelError {
		t.Errorf("grandchild.Level() = %v", grandchild.Level())
	}

	// Setting the level on a child changes it for the root too.
	child.SetLevel(LogLevelDebug)
	root.Debug("from root")
	if !strings.Contains(buf.String(), "from root") {
		t.Errorf("child SetLevel did not reach the root: %q", buf.String())
	}

	var other bytes.Buffer
	grandchild.SetOutput(&other)
	root.Info("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Errorf("output set on a derived logger should move the root, got %q", other.String())
	}

	child.Disable()
	root.Error("silenced")
	grandchild.Error("silenced")
	if strings.Contains(other.String(), "silenced") {
		t.Error("Disable on a child should silence the whole tree")
	}
	root.Enable()
	grandchild.Error("back")
	if !strings.Contains(other.String(), "back") {
		t.Error("Enable on the root should re-enable derived loggers")
	}
}

func TestLoggerFieldsSortedAndIsolated(t *testing.T) {
	root, buf := newTestLogger("sentencenav")
	l := root.WithFields(map[string]any{"zeta": 1, "alpha": "a", "mid": true})
	l.Info("hello %s", "there")

	want := "[INFO] sentencenav: hello there {alpha=a, mid=true, zeta=1}"
	if got := buf.String(); !strings.Contains(got, want) {
		t.Errorf("line = %q, want it to contain %q", got, want)
	}

	buf.Reset()
	over := l.WithField("alpha", "b")
	over.Info("x")
	l.Info("y")
	root.Info("z")
	got := lines(buf)
	if len(got) != 3 {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got[0], "alpha=b") {
		t.Errorf("WithField should override: %q", got[0])
	}
	if !strings.Contains(got[1], "alpha=a") {
		t.Errorf("parent fields changed: %q", got[1])
	}
	if strings.Contains(got[2], "{") {
		t.Errorf("root gained fields: %q", got[2])
	}
}

func TestLoggerMessageWithoutArgs(t *testing.T) {
	l, buf := newTestLogger("")
	l.Warn("pattern [^.]+ kept at 100%")
	if !strings.Contains(buf.String(), "] pattern [^.]+ kept at 100%\n") {
		t.Errorf("message without args should be written as is: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NullLogger.WithComponent("plugin")
	l.Error("dropped")
	l.Info("dropped")
	// Derived from NullLogger, so it shares the disabled sink.
	if !l.sink.disabled || l.sink != NullLogger.sink {
		t.Error("loggers derived from NullLogger should share its disabled sink")
	}
}

func TestNewLoggerDefaults(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Prefix != "sentencenav" || cfg.Level != LogLevelInfo || cfg.Output == nil {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
	if l := NewLogger(LoggerConfig{}); l.sink.output == nil {
		t.Error("nil output should fall back to stderr")
	}
}

func TestLoggerConcurrentDerived(t *testing.T) {
	root, buf := newTestLogger("")
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := root.WithField("worker", i)
			for range 25 {
				l.Info("tick")
			}
		}()
	}
	wg.Wait()

	got := lines(buf)
	if len(got) != 200 {
		t.Fatalf("got %d lines, want 200", len(got))
	}
	for _, line := range got {
		if !strings.HasSuffix(line, "}") || !strings.Contains(line, "[INFO] tick {worker=") {
			t.Errorf("interleaved line %q", line)
		}
	}
}
