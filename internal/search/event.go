package search

import "github.com/oakwood-commons/lawlens/internal/law"

// Event is an input to Update. Events double as Bubble Tea messages.
type Event interface {
	isEvent()
}

type (
	// InputChanged is a keystroke that changed the query text.
	InputChanged struct{ Value string }
	// DebounceElapsed fires DebounceDelay after the InputChanged that scheduled it.
	DebounceElapsed struct {
		Seq   uint64
		Query string
	}
	// SuggestionsLoaded carries the answer to a FetchSuggestions effect.
	SuggestionsLoaded struct {
		Seq   uint64
		Query string
		Items []law.Suggestion
	}
	// SuggestionsFailed reports a FetchSuggestions effect that did not complete.
	SuggestionsFailed struct {
		Seq uint64
		Err error
	}
	// MoveDown and MoveUp are the arrow keys while the input has focus.
	MoveDown struct{}
	MoveUp   struct{}
	// EnterPressed commits the highlighted suggestion or submits.
	EnterPressed struct{}
	// EscapePressed closes the dropdown.
	EscapePressed struct{}
	// FocusChanged moves keyboard focus between panes.
	FocusChanged struct{ Focus Focus }
	// Filled replaces the query from outside the keyboard: history, voice, chips, deep links.
	Filled struct{ Value string }
	// ModeSwitched selects the IPC or BNS search mode.
	ModeSwitched struct{ Mode law.SearchMode }
	// AutocompleteChanged follows the autocomplete setting.
	AutocompleteChanged struct{ Enabled bool }
	// Submitted asks for an explanation of the current query.
	Submitted struct{}
	// ExplainArrived carries a decoded server response to RequestExplain. OK is
	// false for non-2xx answers, in which case Message holds the server's error.
	ExplainArrived struct {
		Token   uint64
		OK      bool
		Result  *law.Result
		Message string
	}
	// ExplainFailed reports a RequestExplain that never produced a decodable response.
	ExplainFailed struct {
		Token uint64
		Err   error
	}
	// SettleElapsed fires SettleDelay after ExplainArrived.
	SettleElapsed struct{ Token uint64 }
)

func (InputChanged) isEvent()        {}
func (DebounceElapsed) isEvent()     {}
func (SuggestionsLoaded) isEvent()   {}
func (SuggestionsFailed) isEvent()   {}
func (MoveDown) isEvent()            {}
func (MoveUp) isEvent()              {}
func (EnterPressed) isEvent()        {}
func (EscapePressed) isEvent()       {}
func (FocusChanged) isEvent()        {}
func (Filled) isEvent()              {}
func (ModeSwitched) isEvent()        {}
func (AutocompleteChanged) isEvent() {}
func (Submitted) isEvent()           {}
func (ExplainArrived) isEvent()      {}
func (ExplainFailed) isEvent()       {}
func (SettleElapsed) isEvent()       {}
