package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
)

const (
	maxDropdownRows = 6
	bodyIndent      = "    "
)

// Loading step labels, in order.
var loadingSteps = []string{"Searching legal database", "Preparing explanation"}

var settingLabels = map[string]string{
	"autocomplete": "Autocomplete suggestions",
	"voiceSearch":  "Voice search",
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	width := max(20, m.WinWidth)
	var head []string
	head = append(head, m.header(width))
	head = append(head, strings.Split(m.inputBox(), "\n")...)
	if m.State.Dropdown.Open && m.Overlay == overlayNone {
		head = append(head, m.dropdown(width)...)
	}

	foot := []string{""}
	if m.Toast != "" {
		foot[0] = m.styles.Toast.Render(render.SanitizeLine(m.Toast))
	}
	foot = append(foot, m.styles.Muted.Render(truncate(m.footerHints(), width)))

	var body []string
	cursorLine := -1
	if m.Overlay != overlayNone {
		body = strings.Split(m.styles.Focused.Render(strings.Join(m.overlay(width-4), "\n")), "\n")
	} else {
		body, cursorLine = m.body(width)
	}

	avail := m.WinHeight - len(head) - len(foot) - 1
	body = window(body, cursorLine, avail)

	lines := make([]string, 0, len(head)+len(body)+len(foot)+1)
	lines = append(lines, head...)
	lines = append(lines, "")
	lines = append(lines, body...)
	lines = append(lines, foot...)
	return strings.Join(lines, "\n")
}

// window keeps at most avail lines, scrolled so the cursor line stays visible.
func window(lines []string, cursor, avail int) []string {
	if avail <= 0 || len(lines) <= avail {
		return lines
	}
	offset := 0
	if cursor >= 0 {
		offset = min(max(0, cursor-avail/3), len(lines)-avail)
	}
	return lines[offset : offset+avail]
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func (m *Model) header(width int) string {
	title := m.styles.Title.Render("⚖ lawlens")
	mode := m.styles.Badge.Render(m.State.Mode.Label())
	other := m.styles.Muted.Render(m.State.Mode.Toggle().Label() + " (F2)")
	theme := m.styles.Muted.Render(string(m.Theme) + " theme")
	left := title + "  " + mode + " " + other
	gap := width - runewidth.StringWidth(stripANSI(left)) - runewidth.StringWidth(stripANSI(theme))
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + theme
}

func (m *Model) inputBox() string {
	view := m.Input.View()
	if m.Listening {
		view += "  " + m.Spinner.View() + " Listening..."
	}
	if m.State.Focus == search.FocusInput {
		return m.styles.Focused.Render(view)
	}
	return m.styles.Panel.Render(view)
}

func (m *Model) dropdown(width int) []string {
	d := m.State.Dropdown
	if d.ShowsPlaceholder() {
		return []string{"  " + m.styles.Muted.Render(search.NoMatchesText)}
	}
	start := 0
	if d.Cursor >= maxDropdownRows {
		start = d.Cursor - maxDropdownRows + 1
	}
	end := min(len(d.Items), start+maxDropdownRows)

	inner := width - 4
	var lines []string
	for i := start; i < end; i++ {
		item := d.Items[i]
		title := truncate(render.SanitizeLine(item.Title), inner)
		meta := truncate(fmt.Sprintf("IPC: %s | BNS: %s", render.SanitizeLine(item.IPC), render.SanitizeLine(item.BNS)), inner)
		if i == d.Cursor {
			lines = append(lines,
				"▌ "+m.styles.Selected.Render(title),
				"▌ "+m.styles.Muted.Render(meta))
			continue
		}
		lines = append(lines,
			"  "+render.HighlightTerminal(search.Highlight(title, d.Query), m.styles.Palette),
			"  "+m.styles.Muted.Render(meta))
	}
	if len(d.Items) > end {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  … %d more", len(d.Items)-end)))
	}
	return lines
}

func (m *Model) body(width int) ([]string, int) {
	switch m.State.Flow.Phase {
	case search.PhaseRequesting, search.PhaseSettling:
		return m.loading(), -1
	case search.PhaseErrored:
		panel := render.ErrorLines(render.ErrorView(m.State.Flow.Error), width-4, m.styles.Palette)
		if len(panel) > 0 {
			panel[0] = m.styles.Error.Render(stripANSI(panel[0]))
		}
		st := m.styles.Panel
		if m.State.Focus == search.FocusResult {
			st = m.styles.Focused
		}
		return strings.Split(st.Render(strings.Join(panel, "\n")), "\n"), -1
	case search.PhaseDisplayed:
		if m.Result != nil {
			return m.result(width)
		}
	}
	return m.emptyState(width), -1
}

func (m *Model) emptyState(width int) []string {
	return []string{
		m.styles.Heading.Render("Search Indian criminal law"),
		"",
		truncate("Type a legal term (e.g. \"murder\") or a section number (e.g. \"302\").", width),
		truncate("Press Enter to search, F1 for keyboard shortcuts.", width),
	}
}

func (m *Model) loading() []string {
	active := 0
	if m.State.Flow.Phase == search.PhaseSettling {
		active = 1
	}
	lines := []string{m.Spinner.View() + " " + loadingSteps[active] + "...", ""}
	for i, step := range loadingSteps {
		switch {
		case i < active:
			lines = append(lines, "  "+m.styles.Success.Render("✓")+" "+step)
		case i == active:
			lines = append(lines, "  "+m.styles.Cursor.Render("●")+" "+step)
		default:
			lines = append(lines, "  "+m.styles.Muted.Render("○ "+step))
		}
	}
	return lines
}

func (m *Model) result(width int) ([]string, int) {
	v := m.Result
	focused := m.State.Focus == search.FocusResult
	lines := []string{
		m.styles.Heading.Render(truncate(render.SanitizeLine(v.Title), width)),
		m.styles.Badge.Render("IPC "+render.SanitizeLine(v.IPC)) + " " + m.styles.Badge.Render("BNS "+render.SanitizeLine(v.BNS)),
		m.styles.Muted.Render(truncate("b bookmark · s share · p print · I/B copy IPC/BNS · e/E expand/collapse all", width)),
		"",
	}
	cursorLine := -1
	for i, s := range v.Sections {
		marker := "▸ "
		if m.Expanded[s.ID] {
			marker = "▾ "
		}
		head := marker + s.Title
		if focused && i == m.Cursor {
			cursorLine = len(lines)
			head = m.styles.Selected.Render(head) + m.styles.Muted.Render("  y copy")
		} else {
			head = m.styles.Heading.Render(head)
		}
		lines = append(lines, head)
		if m.Expanded[s.ID] {
			for _, l := range render.SectionBody(s, width-len(bodyIndent), m.styles.Palette) {
				lines = append(lines, bodyIndent+l)
			}
			lines = append(lines, "")
		}
	}

	if len(v.Related) > 0 {
		lines = append(lines, "", m.styles.Heading.Render("Related Sections"))
		chips := make([]string, len(v.Related))
		for i, n := range v.Related {
			label := render.RelatedLabel(n)
			if focused && m.Cursor == len(v.Sections)+i {
				cursorLine = len(lines)
				chips[i] = m.styles.Selected.Render(label)
			} else {
				chips[i] = m.styles.Chip.Render(label)
			}
		}
		lines = append(lines, "  "+strings.Join(chips, "  "))
	}
	return lines, cursorLine
}

func (m *Model) overlay(width int) []string {
	switch m.Overlay {
	case overlayShortcuts:
		lines := []string{m.styles.Heading.Render("Keyboard Shortcuts"), ""}
		for _, s := range Shortcuts {
			if s.Keys == "F5" && !m.voiceEnabled() {
				continue
			}
			lines = append(lines, truncate(fmt.Sprintf("%-10s %s", s.Keys, s.Description), width))
		}
		return lines
	case overlayHistory:
		lines := []string{m.styles.Heading.Render("Search History"), ""}
		if len(m.History) == 0 {
			return append(lines, m.styles.Muted.Render("No search history"))
		}
		for i, q := range m.History {
			lines = append(lines, m.overlayRow(i, truncate(render.SanitizeLine(q), width-2)))
		}
		return append(lines, m.overlayRow(len(m.History), m.styles.Error.Render("Clear History")))
	case overlaySettings:
		lines := []string{m.styles.Heading.Render("Settings"), ""}
		for i, name := range law.SettingNames {
			on, _ := m.Settings.Get(name)
			box := "[ ]"
			if on {
				box = "[x]"
			}
			label := settingLabels[name]
			if name == "voiceSearch" && !voiceAvailable(m.VoiceArgs) {
				label += " (unavailable)"
			}
			lines = append(lines, m.overlayRow(i, box+" "+label))
		}
		return lines
	}
	return nil
}

func (m *Model) overlayRow(i int, text string) string {
	if i == m.overlayCursor {
		return m.styles.Cursor.Render("› ") + text
	}
	return "  " + text
}

func (m *Model) footerHints() string {
	hints := []string{"F1 help", "F2 mode", "F3 history", "F4 settings"}
	if m.voiceEnabled() {
		hints = append(hints, "F5 voice")
	}
	hints = append(hints, "Ctrl+T theme", "Tab switch", "Ctrl+C quit")
	return strings.Join(hints, " · ")
}
