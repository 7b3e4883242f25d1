package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/search"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

// Shortcut is one row of the shortcuts overlay.
type Shortcut struct {
	Keys        string
	Description string
}

// Shortcuts lists the key bindings in the order the overlay shows them.
var Shortcuts = []Shortcut{
	{"Ctrl+K", "Focus search"},
	{"Enter", "Search, or pick the highlighted suggestion"},
	{"↑ / ↓", "Move through suggestions"},
	{"Esc", "Close suggestions"},
	{"Tab", "Switch between search and result"},
	{"F1 / ?", "Keyboard shortcuts"},
	{"F2", "Switch IPC / BNS mode"},
	{"F3", "Search history"},
	{"F4", "Settings"},
	{"F5", "Voice search"},
	{"Ctrl+T", "Toggle theme"},
	{"Space", "Expand or collapse section"},
	{"e / E", "Expand all / Collapse all"},
	{"y", "Copy section"},
	{"b", "Bookmark result"},
	{"s", "Copy share link"},
	{"p", "Print"},
	{"I / B", "Copy IPC / BNS sections"},
	{"Ctrl+C", "Quit"},
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return tea.Quit
	}
	if m.Overlay != overlayNone {
		return m.handleOverlayKey(keyStr)
	}

	switch keyStr {
	case "f1":
		return m.openOverlay(overlayShortcuts)
	case "f2":
		return m.apply(search.ModeSwitched{Mode: m.State.Mode.Toggle()})
	case "f3":
		m.History = m.store.History(m.ctx)
		return m.openOverlay(overlayHistory)
	case "f4":
		return m.openOverlay(overlaySettings)
	case "f5":
		return m.startVoice()
	case "ctrl+t":
		return m.toggleTheme()
	case "ctrl+k":
		return m.apply(search.FocusChanged{Focus: search.FocusInput})
	case "tab":
		if m.State.Focus == search.FocusInput && m.hasPanel() {
			return m.apply(search.FocusChanged{Focus: search.FocusResult})
		}
		if m.State.Focus == search.FocusResult {
			return m.apply(search.FocusChanged{Focus: search.FocusInput})
		}
		return nil
	}

	if m.State.Focus == search.FocusResult {
		return m.handleResultKey(keyStr)
	}
	return m.handleInputKey(msg, keyStr)
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg, keyStr string) tea.Cmd {
	switch keyStr {
	case "down":
		return m.apply(search.MoveDown{})
	case "up":
		return m.apply(search.MoveUp{})
	case "enter":
		return m.apply(search.EnterPressed{})
	case "esc":
		return m.apply(search.EscapePressed{})
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if after := m.Input.Value(); after != before {
		return tea.Batch(cmd, m.apply(search.InputChanged{Value: after}))
	}
	return cmd
}

func (m *Model) openOverlay(kind overlayKind) tea.Cmd {
	m.Overlay = kind
	m.overlayCursor = 0
	return m.apply(search.FocusChanged{Focus: search.FocusOverlay})
}

func (m *Model) closeOverlay() tea.Cmd {
	m.Overlay = overlayNone
	return m.apply(search.FocusChanged{Focus: search.FocusInput})
}

func (m *Model) handleOverlayKey(keyStr string) tea.Cmd {
	switch m.Overlay {
	case overlayShortcuts:
		switch keyStr {
		case "f1", "?", "esc", "q":
			return m.closeOverlay()
		}
	case overlayHistory:
		return m.handleHistoryKey(keyStr)
	case overlaySettings:
		return m.handleSettingsKey(keyStr)
	}
	return nil
}

// historyEntries is the number of selectable rows: entries plus "Clear History".
func (m *Model) historyEntries() int {
	if len(m.History) == 0 {
		return 0
	}
	return len(m.History) + 1
}

func (m *Model) handleHistoryKey(keyStr string) tea.Cmd {
	switch keyStr {
	case "f3", "esc":
		return m.closeOverlay()
	case "down", "j":
		if m.overlayCursor < m.historyEntries()-1 {
			m.overlayCursor++
		}
	case "up", "k":
		if m.overlayCursor > 0 {
			m.overlayCursor--
		}
	case "enter":
		n := m.historyEntries()
		if n == 0 {
			return nil
		}
		if m.overlayCursor == n-1 {
			return m.clearHistory()
		}
		query := m.History[m.overlayCursor]
		m.Overlay = overlayNone
		return m.apply(search.Filled{Value: query})
	}
	return nil
}

func (m *Model) clearHistory() tea.Cmd {
	if err := m.store.ClearHistory(m.ctx); err != nil {
		logger.FromContext(m.ctx).Error(err, "failed to clear search history")
	}
	m.History = nil
	return tea.Batch(m.closeOverlay(), m.notify("Search history cleared"))
}

func (m *Model) handleSettingsKey(keyStr string) tea.Cmd {
	switch keyStr {
	case "f4", "esc":
		return m.closeOverlay()
	case "down", "j":
		if m.overlayCursor < len(law.SettingNames)-1 {
			m.overlayCursor++
		}
	case "up", "k":
		if m.overlayCursor > 0 {
			m.overlayCursor--
		}
	case "enter", "space":
		return m.toggleSetting(law.SettingNames[m.overlayCursor])
	}
	return nil
}

func (m *Model) toggleSetting(name string) tea.Cmd {
	updated, err := m.store.ToggleSetting(m.ctx, name)
	if err != nil {
		logger.FromContext(m.ctx).Error(err, "failed to save settings", "setting", name)
		return m.notify("Failed to save settings")
	}
	m.Settings = updated
	enabled, _ := updated.Get(name)
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	var cmd tea.Cmd
	if name == "autocomplete" {
		cmd = m.apply(search.AutocompleteChanged{Enabled: enabled})
	}
	return tea.Batch(cmd, m.notify(name+" "+state))
}

func (m *Model) toggleTheme() tea.Cmd {
	next, err := m.store.ToggleTheme(m.ctx)
	if err != nil {
		logger.FromContext(m.ctx).Error(err, "failed to save theme")
		next = m.Theme.Toggle()
	}
	m.Theme = next
	m.styles = newStyles(next, m.NoColor)
	return nil
}

func (m *Model) startVoice() tea.Cmd {
	if !m.voiceEnabled() || m.Listening {
		return nil
	}
	m.Listening = true
	ctx, args := m.ctx, m.VoiceArgs
	run := func() tea.Msg {
		text, err := runVoiceFn(ctx, args)
		return voiceResultMsg{Text: text, Err: err}
	}
	return tea.Batch(m.Spinner.Tick, run)
}
