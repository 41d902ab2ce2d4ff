// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/invowk/textutils/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by every styled CLI output, chosen for dark
// terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green, used for values and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, used for utility names and flags.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles are built per output writer so that piped output stays plain.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Cmd      lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

// newStyles returns the palette rendered for w. ui.color "never" strips all
// colors and "always" forces them; "auto" follows terminal detection.
func newStyles(w io.Writer, mode config.ColorMode) Styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	}

	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: r.NewStyle().Foreground(ColorMuted),
		Cmd:      r.NewStyle().Foreground(ColorHighlight),
		Value:    r.NewStyle().Foreground(ColorSuccess),
		Error:    r.NewStyle().Bold(true).Foreground(ColorError),
		Warning:  r.NewStyle().Foreground(ColorWarning),
	}
}
