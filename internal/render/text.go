package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oakwood-commons/lawlens/internal/search"
)

// RelatedLabel is the chip text for a related section.
func RelatedLabel(n int) string {
	return "IPC " + strconv.Itoa(n)
}

// HighlightTerminal paints the matched spans of a suggestion title.
func HighlightTerminal(spans []search.Span, p Palette) string {
	var b strings.Builder
	for _, s := range spans {
		text := SanitizeLine(s.Text)
		if s.Match {
			text = paint(p.Match, text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// SectionBody renders the expanded content of one section.
func SectionBody(s Section, width int, p Palette) []string {
	if s.Summary != nil {
		return summaryBody(*s.Summary, width, p)
	}
	lines := MarkdownTerminal(s.Markdown, width, p)
	if tag := strings.TrimSpace(SanitizeLine(s.Tag)); tag != "" {
		lines = append(lines, "", paint(p.Muted, "Source: "+tag))
	}
	return lines
}

func summaryBody(s Summary, width int, p Palette) []string {
	fields := []struct{ label, value string }{
		{"Old Law (IPC):", s.OldLaw},
		{"New Law (BNS):", s.NewLaw},
		{"Title:", s.Title},
	}
	var lines []string
	for _, f := range fields {
		lines = append(lines, paint(p.Strong, f.label)+" "+SanitizeLine(f.value))
	}
	if len(s.Classification) == 0 {
		return lines
	}
	lines = append(lines, "", paint(p.Heading, "BNSS Classification"))
	bar := paint(p.Quote, "│ ")
	for _, item := range s.Classification {
		body := MarkdownTerminal(item, width-2, p)
		if len(body) == 0 {
			continue
		}
		for _, l := range body {
			lines = append(lines, bar+l)
		}
	}
	return lines
}

// WriteText prints a fully expanded result, for non-interactive output.
func WriteText(w io.Writer, v ResultView, width int, p Palette) error {
	var b strings.Builder
	b.WriteString(paint(p.Heading, SanitizeLine(v.Title)) + "\n")
	b.WriteString(paint(p.Muted, fmt.Sprintf("IPC: %s   BNS: %s", SanitizeLine(v.IPC), SanitizeLine(v.BNS))) + "\n")
	for _, s := range v.Sections {
		b.WriteString("\n" + paint(p.Strong, "▸ "+s.Title) + "\n")
		for _, l := range SectionBody(s, width-2, p) {
			b.WriteString(strings.TrimRight("  "+l, " ") + "\n")
		}
	}
	if len(v.Related) > 0 {
		labels := make([]string, len(v.Related))
		for i, n := range v.Related {
			labels[i] = RelatedLabel(n)
		}
		b.WriteString("\n" + paint(p.Strong, "Related Sections") + "\n  " + strings.Join(labels, "  ") + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ErrorLines renders the error panel body.
func ErrorLines(e ErrorPanel, width int, p Palette) []string {
	lines := []string{paint(p.Strong, e.Heading), ""}
	lines = append(lines, WrapText(e.Message, width)...)
	lines = append(lines, "", paint(p.Muted, e.TipsHeading))
	for _, tip := range e.Tips {
		lines = append(lines, "  • "+tip)
	}
	return lines
}

// WriteErrorText prints an error panel for non-interactive output.
func WriteErrorText(w io.Writer, e ErrorPanel, width int, p Palette) error {
	var b strings.Builder
	b.WriteString(paint(p.Heading, e.Title) + "\n\n")
	for _, l := range ErrorLines(e, width, p) {
		b.WriteString(l + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
