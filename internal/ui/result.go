package ui

import (
	"bytes"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

// resultItems is the number of cursor stops in the result pane: the
// sections followed by the related-section chips.
func (m *Model) resultItems() int {
	if m.Result == nil {
		return 0
	}
	return len(m.Result.Sections) + len(m.Result.Related)
}

func (m *Model) handleResultKey(keyStr string) tea.Cmd {
	switch keyStr {
	case "esc":
		return m.apply(search.FocusChanged{Focus: search.FocusInput})
	case "?":
		return m.openOverlay(overlayShortcuts)
	}

	res, ok := m.State.Flow.Displayed()
	if !ok || m.Result == nil {
		return nil
	}

	switch keyStr {
	case "down", "j":
		if m.Cursor < m.resultItems()-1 {
			m.Cursor++
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "enter", "space":
		return m.activate()
	case "e":
		for _, s := range m.Result.Sections {
			m.Expanded[s.ID] = true
		}
	case "E":
		m.Expanded = map[render.SectionID]bool{}
	case "y":
		if s, ok := m.cursorSection(); ok {
			return m.copyText(s.CopyText, s.CopyLabel)
		}
	case "I":
		return m.copyText(res.IPCSections, "IPC")
	case "B":
		return m.copyText(res.BNSSections, "BNS")
	case "b":
		return m.bookmark(*res)
	case "s":
		if m.ShareLink == "" {
			return nil
		}
		if err := copyToClipboardFn(m.ShareLink); err != nil {
			return m.notify("Failed to copy")
		}
		return m.notify("Share link copied!")
	case "p":
		return m.print()
	}
	return nil
}

func (m *Model) cursorSection() (render.Section, bool) {
	if m.Result == nil || m.Cursor < 0 || m.Cursor >= len(m.Result.Sections) {
		return render.Section{}, false
	}
	return m.Result.Sections[m.Cursor], true
}

// activate toggles the section under the cursor, or searches for the
// related section chip under it.
func (m *Model) activate() tea.Cmd {
	if s, ok := m.cursorSection(); ok {
		m.Expanded[s.ID] = !m.Expanded[s.ID]
		return nil
	}
	i := m.Cursor - len(m.Result.Sections)
	if i < 0 || i >= len(m.Result.Related) {
		return nil
	}
	section := strconv.Itoa(m.Result.Related[i])
	fill := m.apply(search.Filled{Value: section})
	return tea.Batch(fill, m.apply(search.Submitted{}))
}

func (m *Model) copyText(text, label string) tea.Cmd {
	if err := copyToClipboardFn(text); err != nil {
		logger.FromContext(m.ctx).Error(err, "clipboard write failed")
		return m.notify("Failed to copy")
	}
	return m.notify(label + " copied to clipboard!")
}

func (m *Model) bookmark(res law.Result) tea.Cmd {
	added, err := m.store.AddBookmark(m.ctx, law.BookmarkFromResult(res))
	if err != nil {
		logger.FromContext(m.ctx).Error(err, "failed to save bookmark")
		return m.notify("Failed to save bookmark")
	}
	if !added {
		return m.notify("Already bookmarked!")
	}
	return m.notify("Bookmarked successfully!")
}

// print writes the result as a printable page and opens it in the browser,
// whose print dialog takes over from there.
func (m *Model) print() tea.Cmd {
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, *m.Result, m.Theme); err != nil {
		logger.FromContext(m.ctx).Error(err, "failed to render print view")
		return m.notify("Failed to print")
	}
	name := render.ExportFilename(m.Result.Title, "html")
	data := buf.Bytes()
	return func() tea.Msg {
		path, err := writePrintFileFn(name, data)
		if err != nil {
			return printDoneMsg{Err: err}
		}
		return printDoneMsg{Err: openURLFn("file://" + path)}
	}
}
