package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/oakwood-commons/lawlens/internal/law"
)

//go:embed templates/*.html
var templateFS embed.FS

var resultTemplate = template.Must(template.ParseFS(templateFS, "templates/result.html"))

type htmlSection struct {
	ID             SectionID
	Title          string
	Body           template.HTML
	Tag            string
	Summary        *Summary
	Classification []template.HTML
}

type htmlPage struct {
	Theme    law.Theme
	Title    string
	IPC      string
	BNS      string
	Sections []htmlSection
	Related  []int
}

// WriteHTML renders a standalone, printable HTML page for v. Plain fields are
// escaped by the template; markdown bodies go through the markdown renderer
// with raw HTML dropped.
func WriteHTML(w io.Writer, v ResultView, theme law.Theme) error {
	page := htmlPage{
		Theme:   theme,
		Title:   v.Title,
		IPC:     v.IPC,
		BNS:     v.BNS,
		Related: v.Related,
	}
	for _, s := range v.Sections {
		hs := htmlSection{ID: s.ID, Title: s.Title, Tag: s.Tag, Summary: s.Summary}
		if s.Summary != nil {
			for _, c := range s.Summary.Classification {
				hs.Classification = append(hs.Classification, template.HTML(MarkdownHTML(c))) //nolint:gosec // markdown renderer drops raw HTML
			}
		} else {
			hs.Body = template.HTML(MarkdownHTML(s.Markdown)) //nolint:gosec // markdown renderer drops raw HTML
		}
		page.Sections = append(page.Sections, hs)
	}
	if err := resultTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
