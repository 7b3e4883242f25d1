// Package search is the interaction core of lawlens: the suggestion dropdown,
// the result request flow and the pure update function that ties them to user
// input. Nothing here performs I/O or reads the clock. Update returns the new
// state plus a list of effects (fetches, timers, history writes) that the
// caller executes and later reports back as events.
package search

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DebounceDelay is the keystroke silence required before suggestions are fetched.
	DebounceDelay = 300 * time.Millisecond
	// SettleDelay is the fixed pause between a response arriving and it being shown.
	SettleDelay = 500 * time.Millisecond
	// DeepLinkDelay is the pause before a deep-linked section is auto-submitted.
	DeepLinkDelay = 500 * time.Millisecond
	// MinQueryLength is the shortest trimmed query that may fetch suggestions.
	MinQueryLength = 2
)

// Eligible reports whether a query is long enough to fetch suggestions for.
func Eligible(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinQueryLength
}
