package search

import "strings"

// Span is a run of text that either matched the query or did not.
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text into spans, marking every case-insensitive occurrence of
// query. The query is matched literally and occurrences do not overlap; scanning
// resumes after each match. Spans carry raw text; escaping is the renderer's job.
func Highlight(text, query string) []Span {
	if query == "" || text == "" {
		return []Span{{Text: text}}
	}
	src := []rune(text)
	q := []rune(query)
	var spans []Span
	start := 0
	for i := 0; i+len(q) <= len(src); {
		if strings.EqualFold(string(src[i:i+len(q)]), query) {
			if i > start {
				spans = append(spans, Span{Text: string(src[start:i])})
			}
			spans = append(spans, Span{Text: string(src[i : i+len(q)]), Match: true})
			i += len(q)
			start = i
			continue
		}
		i++
	}
	if start < len(src) {
		spans = append(spans, Span{Text: string(src[start:])})
	}
	return spans
}
