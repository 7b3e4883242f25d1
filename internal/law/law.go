// Package law holds the wire and storage types shared by the lawlens client,
// the search state machine and the renderers.
package law

import (
	"fmt"
	"strings"
)

// SearchMode selects which code the backend matches section numbers against.
type SearchMode string

const (
	// ModeIPC matches against Indian Penal Code section numbers.
	ModeIPC SearchMode = "ipc"
	// ModeBNS matches against Bharatiya Nyaya Sanhita section numbers.
	ModeBNS SearchMode = "bns"
)

// DefaultMode is the mode a fresh session starts in.
const DefaultMode = ModeIPC

// ParseMode validates a mode string (case-insensitive).
func ParseMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeIPC:
		return ModeIPC, nil
	case ModeBNS:
		return ModeBNS, nil
	}
	return "", fmt.Errorf("invalid search mode %q (expected ipc or bns)", s)
}

// Toggle returns the other mode.
func (m SearchMode) Toggle() SearchMode {
	if m == ModeBNS {
		return ModeIPC
	}
	return ModeBNS
}

// Label is the upper-case display name of the mode.
func (m SearchMode) Label() string {
	return strings.ToUpper(string(m))
}

// Suggestion is one autocomplete candidate. It has no identity beyond its
// position in the list it arrived in.
type Suggestion struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	IPC   string `json:"ipc" yaml:"ipc" toml:"ipc"`
	BNS   string `json:"bns" yaml:"bns" toml:"bns"`
}

// Result is the explanation bundle returned for a submitted query.
type Result struct {
	Title              string   `json:"title" yaml:"title" toml:"title"`
	Explanation        string   `json:"explanation" yaml:"explanation" toml:"explanation"`
	Legal              string   `json:"legal,omitempty" yaml:"legal,omitempty" toml:"legal,omitempty"`
	Change             string   `json:"change,omitempty" yaml:"change,omitempty" toml:"change,omitempty"`
	Source             string   `json:"source" yaml:"source" toml:"source"`
	IPCSections        string   `json:"ipc_sections" yaml:"ipc_sections" toml:"ipc_sections"`
	IPCSubsections     string   `json:"ipc_subsections,omitempty" yaml:"ipc_subsections,omitempty" toml:"ipc_subsections,omitempty"`
	BNSSections        string   `json:"bns_sections" yaml:"bns_sections" toml:"bns_sections"`
	BNSSClassification []string `json:"bnss_classification,omitempty" yaml:"bnss_classification,omitempty" toml:"bnss_classification,omitempty"`
}

// PrimarySection is the first comma-separated IPC section id. It is what deep
// links and share links point at.
func (r Result) PrimarySection() string {
	first, _, _ := strings.Cut(r.IPCSections, ",")
	return strings.TrimSpace(first)
}

// Bookmark is a saved result reference. Bookmarks are unique by IPC.
type Bookmark struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	IPC   string `json:"ipc" yaml:"ipc" toml:"ipc"`
	BNS   string `json:"bns" yaml:"bns" toml:"bns"`
}

// BookmarkFromResult captures the identifying fields of a result.
func BookmarkFromResult(r Result) Bookmark {
	return Bookmark{Title: r.Title, IPC: r.IPCSections, BNS: r.BNSSections}
}

// Settings are the user toggles persisted between sessions.
type Settings struct {
	Autocomplete bool `json:"autocomplete" yaml:"autocomplete" toml:"autocomplete"`
	VoiceSearch  bool `json:"voiceSearch" yaml:"voiceSearch" toml:"voiceSearch"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{Autocomplete: true, VoiceSearch: true}
}

// SettingNames lists the toggles in display order.
var SettingNames = []string{"autocomplete", "voiceSearch"}

// Get reads a toggle by its persisted name.
func (s Settings) Get(name string) (bool, error) {
	switch name {
	case "autocomplete":
		return s.Autocomplete, nil
	case "voiceSearch":
		return s.VoiceSearch, nil
	}
	return false, fmt.Errorf("unknown setting %q", name)
}

// With returns a copy with one toggle set.
func (s Settings) With(name string, v bool) (Settings, error) {
	switch name {
	case "autocomplete":
		s.Autocomplete = v
	case "voiceSearch":
		s.VoiceSearch = v
	default:
		return s, fmt.Errorf("unknown setting %q", name)
	}
	return s, nil
}

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no theme was saved.
const DefaultTheme = ThemeLight

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme %q (expected light or dark)", s)
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
