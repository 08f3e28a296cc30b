package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sentencenav/internal/config"
)

// Theme holds the styles used to draw each part of the screen.
type Theme struct {
	Text      tcell.Style
	Selection tcell.Style
	Status    tcell.Style
	Error     tcell.Style
}

// DefaultTheme draws selection and status in reverse video.
func DefaultTheme() Theme {
	return Theme{
		Text:      tcell.StyleDefault,
		Selection: tcell.StyleDefault.Reverse(true),
		Status:    tcell.StyleDefault.Reverse(true),
		Error:     tcell.StyleDefault.Reverse(true).Bold(true),
	}
}

// ParseColor accepts a color name such as "blue" or a "#rrggbb" value.
func ParseColor(s string) (tcell.Color, error) {
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("renderer: unknown color %q", s)
	}
	return c, nil
}

// ThemeFromConfig applies the configured colors to the default theme. A
// color that does not parse is reported and keeps the default style.
func ThemeFromConfig(ui config.UIConfig) (Theme, error) {
	theme := DefaultTheme()
	var firstErr error

	if ui.SelectionColor != "" {
		if c, err := ParseColor(ui.SelectionColor); err != nil {
			firstErr = err
		} else {
			theme.Selection = tcell.StyleDefault.Background(c)
		}
	}
	if ui.StatusColor != "" {
		c, err := ParseColor(ui.StatusColor)
		switch {
		case err == nil:
			theme.Status = tcell.StyleDefault.Background(c)
			theme.Error = theme.Status.Bold(true)
		case firstErr == nil:
			firstErr = err
		}
	}
	return theme, firstErr
}
