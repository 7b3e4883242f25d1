// Package render turns explanation results into view models and draws them
// for the terminal, HTML export and PDF export. BuildView and ErrorView are
// pure; every renderer escapes text for its own medium.
package render

import (
	"strconv"
	"strings"

	"github.com/oakwood-commons/lawlens/internal/law"
)

// SectionID names a collapsible result section.
type SectionID string

const (
	SectionExplanation SectionID = "explanation"
	SectionLegal       SectionID = "legal"
	SectionChanges     SectionID = "changes"
	SectionSummary     SectionID = "summary"
)

// Section is one collapsible panel of a result.
type Section struct {
	ID    SectionID
	Title string
	// Markdown is the body; empty for the summary, which uses Summary.
	Markdown string
	// Tag is a short attribution shown under the body.
	Tag     string
	Summary *Summary
	// CopyLabel names the section in the "copied" notice.
	CopyLabel string
	CopyText  string
}

// Summary is the fixed old-law/new-law block.
type Summary struct {
	OldLaw         string
	NewLaw         string
	Title          string
	Classification []string
}

// Lines are the three labelled summary lines.
func (s Summary) Lines() []string {
	return []string{
		"Old Law (IPC): " + s.OldLaw,
		"New Law (BNS): " + s.NewLaw,
		"Title: " + s.Title,
	}
}

// ResultView is everything needed to draw a result.
type ResultView struct {
	Title    string
	IPC      string
	BNS      string
	Primary  string
	Sections []Section
	Related  []int
}

// Section returns the section with the given id.
func (v ResultView) Section(id SectionID) (Section, bool) {
	for _, s := range v.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// present reports whether an optional text field carries content.
func present(s string) bool {
	t := strings.TrimSpace(s)
	return t != "" && t != "None"
}

// BuildView arranges a result into its sections.
func BuildView(r law.Result) ResultView {
	v := ResultView{
		Title:   r.Title,
		IPC:     r.IPCSections,
		BNS:     r.BNSSections,
		Primary: r.PrimarySection(),
		Related: RelatedSections(r.IPCSections),
	}

	v.Sections = append(v.Sections, Section{
		ID:        SectionExplanation,
		Title:     "Simple Explanation",
		Markdown:  r.Explanation,
		Tag:       r.Source,
		CopyLabel: "Explanation",
		CopyText:  r.Explanation,
	})
	if present(r.Legal) {
		v.Sections = append(v.Sections, Section{
			ID:        SectionLegal,
			Title:     "Legal Meaning",
			Markdown:  r.Legal,
			CopyLabel: "Legal meaning",
			CopyText:  r.Legal,
		})
	}
	if present(r.Change) {
		v.Sections = append(v.Sections, Section{
			ID:        SectionChanges,
			Title:     "IPC to BNS Changes",
			Markdown:  r.Change,
			CopyLabel: "Changes",
			CopyText:  r.Change,
		})
	}

	oldLaw := r.IPCSections
	if r.IPCSubsections != "" {
		oldLaw += " (" + r.IPCSubsections + ")"
	}
	sum := &Summary{
		OldLaw:         oldLaw,
		NewLaw:         r.BNSSections,
		Title:          r.Title,
		Classification: append([]string(nil), r.BNSSClassification...),
	}
	v.Sections = append(v.Sections, Section{
		ID:        SectionSummary,
		Title:     "Summary",
		Summary:   sum,
		CopyLabel: "Summary",
		CopyText:  strings.Join(sum.Lines(), "\n"),
	})
	return v
}

// MaxSection is the highest IPC section number.
const MaxSection = 511

// RelatedSections suggests neighbours of the first listed section: one and ten
// either side, within 1..MaxSection. The first token is read like a leading
// integer, so "302A" counts as 302; a token without leading digits yields none.
func RelatedSections(ipcSections string) []int {
	first, _, _ := strings.Cut(ipcSections, ",")
	n, ok := leadingInt(strings.TrimSpace(first))
	if !ok {
		return nil
	}
	var out []int
	for _, s := range []int{n - 1, n + 1, n - 10, n + 10} {
		if s > 0 && s <= MaxSection {
			out = append(out, s)
		}
	}
	return out
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ErrorPanel is the view of a failed lookup.
type ErrorPanel struct {
	Title       string
	Heading     string
	Message     string
	TipsHeading string
	Tips        []string
}

var errorTips = []string{
	"Check your spelling and try again",
	"Use different keywords or section numbers",
	"Try searching by legal term instead of section number",
	"Switch between IPC and BNS search modes",
}

// ErrorView builds the error panel for message.
func ErrorView(message string) ErrorPanel {
	return ErrorPanel{
		Title:       "Search Error",
		Heading:     "No Results Found",
		Message:     message,
		TipsHeading: "Try these suggestions:",
		Tips:        append([]string(nil), errorTips...),
	}
}
