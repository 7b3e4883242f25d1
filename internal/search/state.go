package search

import (
	"strings"

	"github.com/oakwood-commons/lawlens/internal/law"
)

// Focus names the pane that owns keyboard input.
type Focus int

const (
	FocusInput Focus = iota
	FocusResult
	FocusOverlay
)

// State is everything the search screen knows. It is a value; Update returns a
// modified copy.
type State struct {
	Query         string
	SelectedTitle string // title of an explicitly picked suggestion, sent as a hint
	Mode          law.SearchMode
	Autocomplete  bool
	Focus         Focus
	Dropdown      Dropdown
	Flow          Flow
	ShareSection  string

	debounceSeq uint64
	fetchSeq    uint64
}

// NewState returns the initial screen state for a mode and settings.
func NewState(mode law.SearchMode, settings law.Settings) State {
	if _, err := law.ParseMode(string(mode)); err != nil {
		mode = law.DefaultMode
	}
	return State{
		Mode:         mode,
		Autocomplete: settings.Autocomplete,
		Dropdown:     NewDropdown(),
	}
}

// TrimmedQuery is the query as it is sent to the server.
func (s State) TrimmedQuery() string {
	return strings.TrimSpace(s.Query)
}

// ShowsEmptyState reports whether neither a result, an error nor a loader is visible.
func (s State) ShowsEmptyState() bool {
	return s.Flow.Phase == PhaseIdle
}
