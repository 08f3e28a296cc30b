package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Ctrl+S", NewRuneEvent('s', ModCtrl)},
		{"Alt+S", NewRuneEvent('s', ModAlt)},
		{"Alt+Left", NewSpecialEvent(KeyLeft, ModAlt)},
		{"Alt+Shift+Right", NewSpecialEvent(KeyRight, ModAlt|ModShift)},
		{"Ctrl+Shift+Backspace", NewSpecialEvent(KeyBackspace, ModCtrl|ModShift)},
		{"ctrl + shift + del", NewSpecialEvent(KeyDelete, ModCtrl|ModShift)},
		{"Mod+Z", NewRuneEvent('z', ModCtrl)},
		{"Cmd+C", NewRuneEvent('c', ModMeta)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	for _, spec := range []string{"Hyper+X", "Ctrl+", "Ctrl+Nope"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewSpecialEvent(KeyBackspace, ModCtrl|ModShift), "Ctrl+Shift+Backspace"},
		{NewRuneEvent('s', ModAlt), "Alt+S"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyF5, ModNone), "F5"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	norm, err := NormalizeSpec("shift+ctrl+bs")
	if err != nil || norm != "Ctrl+Shift+Backspace" {
		t.Errorf("NormalizeSpec = %q, %v", norm, err)
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), NewRuneEvent('x', ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModAlt), NewRuneEvent('s', ModAlt)},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), NewRuneEvent('z', ModCtrl)},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt|tcell.ModShift), NewSpecialEvent(KeyLeft, ModAlt|ModShift)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModCtrl), NewSpecialEvent(KeyBackspace, ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTcell(tt.ev); got != tt.want {
				t.Errorf("FromTcell() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToTcellRoundTrip(t *testing.T) {
	for _, spec := range []string{"Alt+Left", "Ctrl+Shift+Delete", "Alt+S", "Enter"} {
		ev := MustParse(spec)
		if got := FromTcell(ToTcell(ev)); got != ev {
			t.Errorf("%s: round trip = %#v", spec, got)
		}
	}
}
