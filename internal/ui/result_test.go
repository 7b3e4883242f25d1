package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
	"github.com/oakwood-commons/lawlens/internal/store"
)

// captureClipboard records clipboard writes for the duration of the test.
func captureClipboard(t *testing.T) *[]string {
	t.Helper()
	var copied []string
	orig := copyToClipboardFn
	copyToClipboardFn = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { copyToClipboardFn = orig })
	return &copied
}

func displayedModel(t *testing.T, configure ...func(*Options)) *Model {
	t.Helper()
	srv := newBackend(t)
	m := newTestModel(t, srv.URL, configure...)
	submitQuery(t, m, "murder")
	require.Equal(t, search.PhaseDisplayed, m.State.Flow.Phase)
	press(t, m, "tab")
	require.Equal(t, search.FocusResult, m.State.Focus)
	return m
}

func TestTabRequiresPanel(t *testing.T) {
	srv := newBackend(t)
	m := newTestModel(t, srv.URL)
	press(t, m, "tab")
	assert.Equal(t, search.FocusInput, m.State.Focus)
}

func TestSectionToggleAndExpandAll(t *testing.T) {
	m := displayedModel(t)
	assert.True(t, m.Expanded[render.SectionExplanation], "explanation starts expanded")
	assert.False(t, m.Expanded[render.SectionSummary])

	press(t, m, "down", "space")
	assert.True(t, m.Expanded[render.SectionSummary])
	assert.Contains(t, screen(m), "Old Law (IPC): 302")
	assert.Contains(t, screen(m), "BNSS Classification")

	press(t, m, "E")
	assert.Empty(t, m.Expanded)
	press(t, m, "e")
	assert.True(t, m.Expanded[render.SectionExplanation])
	assert.True(t, m.Expanded[render.SectionSummary])
}

func TestCursorStaysInBounds(t *testing.T) {
	m := displayedModel(t)
	for range 20 {
		press(t, m, "down")
	}
	assert.Equal(t, m.resultItems()-1, m.Cursor)
	for range 20 {
		press(t, m, "up")
	}
	assert.Equal(t, 0, m.Cursor)
}

func TestCopySection(t *testing.T) {
	copied := captureClipboard(t)
	m := displayedModel(t)

	press(t, m, "y")
	assert.Equal(t, []string{"Killing a person **on purpose**."}, *copied)
	assert.Equal(t, "Explanation copied to clipboard!", m.Toast)

	press(t, m, "down", "y")
	assert.Equal(t, "Summary copied to clipboard!", m.Toast)
	assert.Contains(t, (*copied)[1], "Old Law (IPC): 302")

	press(t, m, "I")
	assert.Equal(t, "302", (*copied)[2])
	assert.Equal(t, "IPC copied to clipboard!", m.Toast)
	press(t, m, "B")
	assert.Equal(t, "103", (*copied)[3])
}

func TestCopyFailure(t *testing.T) {
	orig := copyToClipboardFn
	copyToClipboardFn = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { copyToClipboardFn = orig })

	m := displayedModel(t)
	press(t, m, "y")
	assert.Equal(t, "Failed to copy", m.Toast)
}

func TestShareCopiesLink(t *testing.T) {
	copied := captureClipboard(t)
	m := displayedModel(t)
	press(t, m, "s")
	require.Len(t, *copied, 1)
	assert.True(t, strings.HasSuffix((*copied)[0], "/?section=302"))
	assert.Equal(t, "Share link copied!", m.Toast)
}

func TestBookmarkIsIdempotent(t *testing.T) {
	st := store.New(store.NewMemoryBlob())
	m := displayedModel(t, func(o *Options) { o.Store = st })

	press(t, m, "b")
	assert.Equal(t, "Bookmarked successfully!", m.Toast)
	press(t, m, "b")
	assert.Equal(t, "Already bookmarked!", m.Toast)
	assert.Equal(t, []law.Bookmark{{Title: "Murder", IPC: "302", BNS: "103"}}, st.Bookmarks(context.Background()))
}

func TestPrintOpensExportedPage(t *testing.T) {
	var written []byte
	var opened string
	origWrite, origOpen := writePrintFileFn, openURLFn
	writePrintFileFn = func(name string, data []byte) (string, error) {
		written = data
		return "/tmp/" + name, nil
	}
	openURLFn = func(u string) error { opened = u; return nil }
	t.Cleanup(func() { writePrintFileFn, openURLFn = origWrite, origOpen })

	m := displayedModel(t)
	press(t, m, "p")
	assert.Equal(t, "file:///tmp/Murder.html", opened)
	assert.Contains(t, string(written), "<title>")
	assert.Equal(t, "Print view opened in browser", m.Toast)
}

func TestRelatedChipRunsSearchForSection(t *testing.T) {
	srv := newBackend(t)
	m := newTestModel(t, srv.URL)
	submitQuery(t, m, "murder")
	require.Equal(t, search.PhaseDisplayed, m.State.Flow.Phase)
	press(t, m, "tab")
	token, explains := m.State.Flow.Token, srv.explains.Load()

	// Explanation, Summary, then the chips 301, 303, 292, 312.
	press(t, m, "down", "down", "enter")
	assert.Equal(t, "301", m.State.Query)
	assert.Equal(t, "301", m.Input.Value())
	assert.Equal(t, search.FocusInput, m.State.Focus)
	assert.Equal(t, token+1, m.State.Flow.Token, "chip submits a new lookup")
	assert.Equal(t, explains+1, srv.explains.Load())
	assert.Equal(t, search.PhaseErrored, m.State.Flow.Phase)
	assert.Equal(t, "301", m.store.History(context.Background())[0])
}

func TestEscapeReturnsToInput(t *testing.T) {
	m := displayedModel(t)
	press(t, m, "esc")
	assert.Equal(t, search.FocusInput, m.State.Focus)
	assert.True(t, m.Input.Focused())
}

func TestResubmitWhileFocusedOnResult(t *testing.T) {
	m := displayedModel(t)
	press(t, m, "ctrl+k")
	assert.Equal(t, search.FocusInput, m.State.Focus)
	send(t, m, search.InputChanged{Value: "nothing here"})
	press(t, m, "enter")
	assert.Equal(t, search.PhaseErrored, m.State.Flow.Phase)
	assert.NotContains(t, screen(m), "Simple Explanation", "old result is hidden")
}
