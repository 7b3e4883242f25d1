package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
)

// Theme is a colour scheme for the search screen.
type Theme struct {
	Accent    color.Color // mode badge, matches, focused borders
	Text      color.Color
	Muted     color.Color // meta lines, hints, tags
	Border    color.Color
	SelectedF color.Color // selected dropdown row
	SelectedB color.Color
	Error     color.Color
	Success   color.Color
	Code      color.Color
	ToastF    color.Color
	ToastB    color.Color
}

// ThemePresets maps the persisted theme names to palettes.
var ThemePresets = map[law.Theme]Theme{
	law.ThemeLight: {
		Accent:    lipgloss.Color("#4f46e5"),
		Text:      lipgloss.Color("#1f2937"),
		Muted:     lipgloss.Color("#6b7280"),
		Border:    lipgloss.Color("#d1d5db"),
		SelectedF: lipgloss.Color("#ffffff"),
		SelectedB: lipgloss.Color("#4f46e5"),
		Error:     lipgloss.Color("#dc2626"),
		Success:   lipgloss.Color("#059669"),
		Code:      lipgloss.Color("#9333ea"),
		ToastF:    lipgloss.Color("#ffffff"),
		ToastB:    lipgloss.Color("#1f2937"),
	},
	law.ThemeDark: {
		Accent:    lipgloss.Color("81"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("244"),
		Border:    lipgloss.Color("240"),
		SelectedF: lipgloss.Color("16"),
		SelectedB: lipgloss.Color("81"),
		Error:     lipgloss.Color("203"),
		Success:   lipgloss.Color("114"),
		Code:      lipgloss.Color("180"),
		ToastF:    lipgloss.Color("16"),
		ToastB:    lipgloss.Color("252"),
	},
}

// styles are the lipgloss styles derived from a Theme.
type styles struct {
	Title    lipgloss.Style
	Badge    lipgloss.Style
	Muted    lipgloss.Style
	Heading  lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Toast    lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
	Chip     lipgloss.Style

	Palette render.Palette
}

func newStyles(theme law.Theme, noColor bool) styles {
	border := lipgloss.RoundedBorder()
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			Title:    plain.Bold(true),
			Badge:    plain.Bold(true),
			Muted:    plain,
			Heading:  plain.Bold(true),
			Selected: plain.Reverse(true),
			Cursor:   plain.Bold(true),
			Error:    plain.Bold(true),
			Success:  plain,
			Toast:    plain.Reverse(true).Padding(0, 1),
			Panel:    plain.Border(border).Padding(0, 1),
			Focused:  plain.Border(lipgloss.DoubleBorder()).Padding(0, 1),
			Chip:     plain,
		}
	}

	th, ok := ThemePresets[theme]
	if !ok {
		th = ThemePresets[law.DefaultTheme]
	}
	base := lipgloss.NewStyle().Foreground(th.Text)
	s := styles{
		Title:    base.Bold(true).Foreground(th.Accent),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(th.SelectedF).Background(th.Accent).Padding(0, 1),
		Muted:    lipgloss.NewStyle().Foreground(th.Muted),
		Heading:  base.Bold(true),
		Selected: lipgloss.NewStyle().Foreground(th.SelectedF).Background(th.SelectedB),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		Success:  lipgloss.NewStyle().Foreground(th.Success),
		Toast:    lipgloss.NewStyle().Foreground(th.ToastF).Background(th.ToastB).Padding(0, 1),
		Panel:    lipgloss.NewStyle().Border(border).BorderForeground(th.Border).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Border(border).BorderForeground(th.Accent).Padding(0, 1),
		Chip:     lipgloss.NewStyle().Foreground(th.Accent).Underline(true),
	}
	s.Palette = render.Palette{
		Strong:  paintWith(lipgloss.NewStyle().Bold(true)),
		Emph:    paintWith(lipgloss.NewStyle().Italic(true)),
		Code:    paintWith(lipgloss.NewStyle().Foreground(th.Code)),
		Link:    paintWith(lipgloss.NewStyle().Foreground(th.Accent).Underline(true)),
		Strike:  paintWith(lipgloss.NewStyle().Strikethrough(true)),
		Heading: paintWith(lipgloss.NewStyle().Bold(true).Foreground(th.Accent)),
		Quote:   paintWith(lipgloss.NewStyle().Foreground(th.Muted).Italic(true)),
		Muted:   paintWith(s.Muted),
		Match:   paintWith(lipgloss.NewStyle().Bold(true).Foreground(th.Accent)),
	}
	return s
}

// paintWith adapts a style to the single-argument painter render.Palette uses.
func paintWith(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// TerminalPalette returns the markdown palette the TUI uses for theme, for
// callers that print results outside the TUI.
func TerminalPalette(theme law.Theme, noColor bool) render.Palette {
	return newStyles(theme, noColor).Palette
}
