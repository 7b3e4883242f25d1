package search

import "github.com/oakwood-commons/lawlens/internal/law"

// Phase is the position of the result request flow.
type Phase int

const (
	// PhaseIdle shows the empty state.
	PhaseIdle Phase = iota
	// PhaseRequesting is loading step one: the request is in flight.
	PhaseRequesting
	// PhaseSettling is loading step two: the response is in, waiting out SettleDelay.
	PhaseSettling
	// PhaseDisplayed shows the current result.
	PhaseDisplayed
	// PhaseErrored shows the error panel.
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseRequesting:
		return "requesting"
	case PhaseSettling:
		return "settling"
	case PhaseDisplayed:
		return "displayed"
	case PhaseErrored:
		return "errored"
	}
	return "idle"
}

// Loading reports whether either loading step is active.
func (p Phase) Loading() bool {
	return p == PhaseRequesting || p == PhaseSettling
}

const (
	// NoMatchFallback is shown when the server rejects a query without a message.
	NoMatchFallback = "No matching law found"
	// NetworkErrorMessage is shown when the server could not be reached or answered garbage.
	NetworkErrorMessage = "Network error: Unable to connect to the server. Please check your connection and try again."
	// EmptyQueryMessage is the notice for submitting an empty query.
	EmptyQueryMessage = "Please enter a search term"
)

// Flow tracks one submit at a time. Token identifies the latest submit; events
// carrying an older token are ignored.
type Flow struct {
	Phase  Phase
	Token  uint64
	Result *law.Result // last successful result, kept while hidden
	Error  string      // message of the error panel

	pendingResult *law.Result
	pendingError  string
}

// Displayed returns the shown result, if the flow is displaying one.
func (f Flow) Displayed() (*law.Result, bool) {
	if f.Phase != PhaseDisplayed || f.Result == nil {
		return nil, false
	}
	return f.Result, true
}
