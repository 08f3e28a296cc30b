package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles colors CLI output. Color is dropped when w is not a terminal.
type styles struct {
	heading lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	spans   [2]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		spans: [2]lipgloss.Style{
			r.NewStyle().Foreground(lipgloss.Color("6")),
			r.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}
