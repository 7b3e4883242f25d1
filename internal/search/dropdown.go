package search

import "github.com/oakwood-commons/lawlens/internal/law"

// NoMatchesText is shown in place of the list when a fetch returned nothing.
const NoMatchesText = "No matching laws found. Try a different term?"

// Dropdown is the autocomplete list and its selection cursor. Cursor is -1 when
// nothing is highlighted and otherwise indexes Items. All methods return a new
// value; the receiver is never modified.
type Dropdown struct {
	Items  []law.Suggestion
	Query  string // query the items were fetched for, used for highlighting
	Cursor int
	Open   bool
}

// NewDropdown returns a closed, empty dropdown.
func NewDropdown() Dropdown {
	return Dropdown{Cursor: -1}
}

// Replace installs a freshly fetched list, resets the cursor and opens the dropdown.
func (d Dropdown) Replace(items []law.Suggestion, query string) Dropdown {
	d.Items = append([]law.Suggestion(nil), items...)
	d.Query = query
	d.Cursor = -1
	d.Open = true
	return d
}

// Down moves the cursor one row down, stopping at the last row.
func (d Dropdown) Down() Dropdown {
	if !d.Open {
		return d
	}
	d.Cursor = min(d.Cursor+1, len(d.Items)-1)
	return d
}

// Up moves the cursor one row up, stopping at "no selection".
func (d Dropdown) Up() Dropdown {
	if !d.Open {
		return d
	}
	d.Cursor = max(d.Cursor-1, -1)
	return d
}

// Selected returns the highlighted suggestion, if any.
func (d Dropdown) Selected() (law.Suggestion, bool) {
	if !d.Open || d.Cursor < 0 || d.Cursor >= len(d.Items) {
		return law.Suggestion{}, false
	}
	return d.Items[d.Cursor], true
}

// Close hides the dropdown and drops the selection but keeps the items.
func (d Dropdown) Close() Dropdown {
	d.Open = false
	d.Cursor = -1
	return d
}

// Clear hides the dropdown and forgets the items.
func (d Dropdown) Clear() Dropdown {
	return NewDropdown()
}

// ShowsPlaceholder reports whether the open dropdown should render NoMatchesText.
func (d Dropdown) ShowsPlaceholder() bool {
	return d.Open && len(d.Items) == 0
}
