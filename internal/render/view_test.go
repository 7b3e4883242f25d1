package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/lawlens/internal/law"
)

func murderResult() law.Result {
	return law.Result{
		Title:              "Punishment for murder",
		Explanation:        "Killing someone **on purpose**.",
		Legal:              "None",
		Change:             "",
		Source:             "Gemini",
		IPCSections:        "302, 303",
		BNSSections:        "103",
		BNSSClassification: []string{"Cognizable", "Non-bailable"},
	}
}

func sectionIDs(v ResultView) []SectionID {
	ids := make([]SectionID, 0, len(v.Sections))
	for _, s := range v.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestBuildViewMurderShowsExplanationAndSummaryOnly(t *testing.T) {
	v := BuildView(murderResult())
	assert.Equal(t, []SectionID{SectionExplanation, SectionSummary}, sectionIDs(v))
	assert.Equal(t, "302", v.Primary)

	exp, ok := v.Section(SectionExplanation)
	require.True(t, ok)
	assert.Equal(t, "Simple Explanation", exp.Title)
	assert.Equal(t, "Gemini", exp.Tag)
	assert.Equal(t, "Explanation", exp.CopyLabel)
}

func TestBuildViewOptionalSections(t *testing.T) {
	tests := []struct {
		name   string
		legal  string
		change string
		want   []SectionID
	}{
		{"both present", "Whoever commits murder...", "Renumbered to 103.", []SectionID{SectionExplanation, SectionLegal, SectionChanges, SectionSummary}},
		{"legal only", "text", "None", []SectionID{SectionExplanation, SectionLegal, SectionSummary}},
		{"whitespace is empty", "   ", "\n", []SectionID{SectionExplanation, SectionSummary}},
		{"None with spaces", " None ", "None", []SectionID{SectionExplanation, SectionSummary}},
		{"lower-case none is content", "none", "", []SectionID{SectionExplanation, SectionLegal, SectionSummary}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := murderResult()
			r.Legal, r.Change = tt.legal, tt.change
			assert.Equal(t, tt.want, sectionIDs(BuildView(r)))
		})
	}
}

func TestSummaryCopyText(t *testing.T) {
	r := murderResult()
	v := BuildView(r)
	sum, ok := v.Section(SectionSummary)
	require.True(t, ok)
	assert.Equal(t, "Old Law (IPC): 302, 303\nNew Law (BNS): 103\nTitle: Punishment for murder", sum.CopyText)
	assert.Equal(t, []string{"Cognizable", "Non-bailable"}, sum.Summary.Classification)

	r.IPCSubsections = "1"
	sum, _ = BuildView(r).Section(SectionSummary)
	assert.Equal(t, "Old Law (IPC): 302, 303 (1)\nNew Law (BNS): 103\nTitle: Punishment for murder", sum.CopyText)
}

func TestRelatedSections(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"302", []int{301, 303, 292, 312}},
		{"302, 303", []int{301, 303, 292, 312}},
		{"302A", []int{301, 303, 292, 312}},
		{" 120 ", []int{119, 121, 110, 130}},
		{"1", []int{2, 11}},
		{"505", []int{504, 506, 495}},
		{"511", []int{510, 501}},
		{"-5", []int{5}},
		{"+7", []int{6, 8, 17}},
		{"abc", nil},
		{"", nil},
		{"A302", nil},
		{"9999", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RelatedSections(tt.in))
		})
	}
}

func TestErrorView(t *testing.T) {
	e := ErrorView("No matching law found")
	assert.Equal(t, "Search Error", e.Title)
	assert.Equal(t, "No Results Found", e.Heading)
	assert.Equal(t, "No matching law found", e.Message)
	assert.Equal(t, []string{
		"Check your spelling and try again",
		"Use different keywords or section numbers",
		"Try searching by legal term instead of section number",
		"Switch between IPC and BNS search modes",
	}, e.Tips)

	e.Tips[0] = "mutated"
	assert.Equal(t, "Check your spelling and try again", ErrorView("x").Tips[0])
}
