package search

import (
	"strings"

	"github.com/oakwood-commons/lawlens/internal/law"
)

// Update applies one event to the state. It is pure: the returned effects are
// the only way it reaches the outside world.
func Update(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case InputChanged:
		return onInput(s, ev.Value)
	case DebounceElapsed:
		if ev.Seq != s.debounceSeq {
			return s, nil
		}
		return fetch(s, ev.Query)
	case SuggestionsLoaded:
		if ev.Seq != s.fetchSeq {
			return s, []Effect{DiscardedStale{Kind: "suggestions", Seq: ev.Seq}}
		}
		s.Dropdown = s.Dropdown.Replace(ev.Items, ev.Query)
		return s, nil
	case SuggestionsFailed:
		if ev.Seq != s.fetchSeq {
			return s, []Effect{DiscardedStale{Kind: "suggestions", Seq: ev.Seq}}
		}
		return s, nil
	case MoveDown:
		s.Dropdown = s.Dropdown.Down()
		return s, nil
	case MoveUp:
		s.Dropdown = s.Dropdown.Up()
		return s, nil
	case EnterPressed:
		if picked, ok := s.Dropdown.Selected(); ok {
			s.Query = picked.Title
			s.SelectedTitle = picked.Title
			s.Dropdown = s.Dropdown.Close()
			s.Focus = FocusInput
			return s, nil
		}
		return submit(s)
	case EscapePressed:
		s.Dropdown = s.Dropdown.Close()
		if s.Query == "" && !s.Flow.Phase.Loading() {
			s.Flow.Phase = PhaseIdle
		}
		return s, nil
	case FocusChanged:
		s.Focus = ev.Focus
		if ev.Focus != FocusInput {
			s.Dropdown = s.Dropdown.Close()
		}
		return s, nil
	case Filled:
		s.Query = ev.Value
		s.Focus = FocusInput
		s.debounceSeq++
		return fetch(s, ev.Value)
	case ModeSwitched:
		mode, err := law.ParseMode(string(ev.Mode))
		if err != nil {
			return s, nil
		}
		s.Mode = mode
		if !Eligible(s.Query) {
			return s, nil
		}
		return fetch(s, s.Query)
	case AutocompleteChanged:
		s.Autocomplete = ev.Enabled
		if !ev.Enabled {
			s = clearSuggestions(s)
		}
		return s, nil
	case Submitted:
		return submit(s)
	case ExplainArrived:
		if ev.Token != s.Flow.Token || s.Flow.Phase != PhaseRequesting {
			return s, []Effect{DiscardedStale{Kind: "explain", Token: ev.Token}}
		}
		s.Flow.Phase = PhaseSettling
		s.Flow.pendingResult = nil
		s.Flow.pendingError = ""
		if ev.OK && ev.Result != nil {
			s.Flow.pendingResult = ev.Result
		} else {
			s.Flow.pendingError = ev.Message
			if s.Flow.pendingError == "" {
				s.Flow.pendingError = NoMatchFallback
			}
		}
		return s, []Effect{ScheduleSettle{Token: ev.Token, Delay: SettleDelay}}
	case ExplainFailed:
		if ev.Token != s.Flow.Token || s.Flow.Phase != PhaseRequesting {
			return s, []Effect{DiscardedStale{Kind: "explain", Token: ev.Token}}
		}
		s.Flow.Phase = PhaseErrored
		s.Flow.Error = NetworkErrorMessage
		return s, nil
	case SettleElapsed:
		if ev.Token != s.Flow.Token || s.Flow.Phase != PhaseSettling {
			return s, []Effect{DiscardedStale{Kind: "settle", Token: ev.Token}}
		}
		return settle(s)
	}
	return s, nil
}

func onInput(s State, value string) (State, []Effect) {
	s.Query = value
	if s.SelectedTitle != "" && value != s.SelectedTitle {
		s.SelectedTitle = ""
	}
	s.debounceSeq++
	if !s.Autocomplete || !Eligible(value) {
		return clearSuggestions(s), nil
	}
	return s, []Effect{ScheduleDebounce{Seq: s.debounceSeq, Query: s.TrimmedQuery(), Delay: DebounceDelay}}
}

// fetch issues a suggestion request right away, or clears the dropdown when the
// query or settings do not allow one.
func fetch(s State, query string) (State, []Effect) {
	if !s.Autocomplete || !Eligible(query) {
		return clearSuggestions(s), nil
	}
	s.fetchSeq++
	return s, []Effect{FetchSuggestions{Seq: s.fetchSeq, Query: strings.TrimSpace(query), Mode: s.Mode}}
}

// clearSuggestions empties the dropdown and invalidates in-flight fetches.
func clearSuggestions(s State) State {
	s.Dropdown = s.Dropdown.Clear()
	s.fetchSeq++
	return s
}

func submit(s State) (State, []Effect) {
	query := s.TrimmedQuery()
	if query == "" {
		return s, []Effect{Notify{Message: EmptyQueryMessage}}
	}
	s.Dropdown = s.Dropdown.Close()
	s.debounceSeq++
	s.fetchSeq++
	s.Flow.Token++
	s.Flow.Phase = PhaseRequesting
	s.Flow.Error = ""
	s.Flow.pendingResult = nil
	s.Flow.pendingError = ""
	return s, []Effect{
		RecordHistory{Query: query},
		RequestExplain{Token: s.Flow.Token, Query: query, SelectedTitle: s.SelectedTitle, Mode: s.Mode},
	}
}

func settle(s State) (State, []Effect) {
	if res := s.Flow.pendingResult; res != nil {
		s.Flow.Phase = PhaseDisplayed
		s.Flow.Result = res
		s.Flow.pendingResult = nil
		s.SelectedTitle = ""
		s.ShareSection = res.PrimarySection()
		return s, []Effect{ShareSectionChanged{Section: s.ShareSection}}
	}
	s.Flow.Phase = PhaseErrored
	s.Flow.Error = s.Flow.pendingError
	s.Flow.pendingError = ""
	return s, nil
}
