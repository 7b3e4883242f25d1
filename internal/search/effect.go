package search

import (
	"time"

	"github.com/oakwood-commons/lawlens/internal/law"
)

// Effect is work Update asks its caller to perform.
type Effect interface {
	isEffect()
}

type (
	// ScheduleDebounce asks for a DebounceElapsed{Seq, Query} after Delay.
	ScheduleDebounce struct {
		Seq   uint64
		Query string
		Delay time.Duration
	}
	// FetchSuggestions asks for autocomplete results, answered by SuggestionsLoaded or SuggestionsFailed.
	FetchSuggestions struct {
		Seq   uint64
		Query string
		Mode  law.SearchMode
	}
	// RecordHistory asks for the query to be added to the search history.
	RecordHistory struct{ Query string }
	// RequestExplain asks for an explanation, answered by ExplainArrived or ExplainFailed.
	RequestExplain struct {
		Token         uint64
		Query         string
		SelectedTitle string
		Mode          law.SearchMode
	}
	// ScheduleSettle asks for a SettleElapsed{Token} after Delay.
	ScheduleSettle struct {
		Token uint64
		Delay time.Duration
	}
	// ShareSectionChanged reports the section that now identifies the shown result.
	ShareSectionChanged struct{ Section string }
	// Notify asks for a transient notice.
	Notify struct{ Message string }
	// DiscardedStale reports an event that lost a token race; callers usually log it.
	DiscardedStale struct {
		Kind  string
		Seq   uint64
		Token uint64
	}
)

func (ScheduleDebounce) isEffect()    {}
func (FetchSuggestions) isEffect()    {}
func (RecordHistory) isEffect()       {}
func (RequestExplain) isEffect()      {}
func (ScheduleSettle) isEffect()      {}
func (ShareSectionChanged) isEffect() {}
func (Notify) isEffect()              {}
func (DiscardedStale) isEffect()      {}
