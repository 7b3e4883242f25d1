// Package completion produces shell completions for lawlens arguments: legal
// terms from the server, and CEL --where predicates over list records.
package completion

import (
	"context"
	"strings"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/search"
)

// Kind indicates the type of completion.
type Kind int

const (
	KindTerm     Kind = iota // legal term or section from the server
	KindField                // record field in a --where predicate
	KindFunction             // CEL method on a field
)

// Completion represents a single completion suggestion.
type Completion struct {
	Text   string // The text to insert if selected
	Kind   Kind
	Detail string // Shown next to the candidate by shells that support it
}

// Shell formats c the way cobra expects: text, then a tab and the detail.
func (c Completion) Shell() string {
	if c.Detail == "" {
		return c.Text
	}
	return c.Text + "\t" + c.Detail
}

// Shell formats a list of completions.
func Shell(items []Completion) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Shell()
	}
	return out
}

// Suggester is the part of the API client completions need.
type Suggester interface {
	Suggest(ctx context.Context, query string, mode law.SearchMode) ([]law.Suggestion, error)
}

// Terms completes a partial query with suggestion titles. Queries too short
// to be sent return nothing.
func Terms(ctx context.Context, s Suggester, query string, mode law.SearchMode) ([]Completion, error) {
	if !search.Eligible(query) {
		return nil, nil
	}
	items, err := s.Suggest(ctx, strings.TrimSpace(query), mode)
	if err != nil {
		return nil, err
	}
	out := make([]Completion, 0, len(items))
	for _, it := range items {
		out = append(out, Completion{
			Text:   it.Title,
			Kind:   KindTerm,
			Detail: "IPC " + it.IPC + " | BNS " + it.BNS,
		})
	}
	return out, nil
}

// Field is one key of a record bound to _ in a --where predicate.
type Field struct {
	Name string
	Type string // "string" or "int"
}

var (
	// HistoryFields mirror cel.HistoryRecord.
	HistoryFields = []Field{{Name: "query", Type: "string"}, {Name: "rank", Type: "int"}}
	// BookmarkFields mirror cel.BookmarkRecord.
	BookmarkFields = []Field{
		{Name: "title", Type: "string"},
		{Name: "ipc", Type: "string"},
		{Name: "bns", Type: "string"},
		{Name: "rank", Type: "int"},
	}
)

// FunctionMetadata describes a method offered after "_.field.".
type FunctionMetadata struct {
	Name      string
	Signature string
}

var stringMethods = []FunctionMetadata{
	{Name: "contains", Signature: "contains(string) -> bool"},
	{Name: "startsWith", Signature: "startsWith(string) -> bool"},
	{Name: "endsWith", Signature: "endsWith(string) -> bool"},
	{Name: "matches", Signature: "matches(regex) -> bool"},
	{Name: "lowerAscii", Signature: "lowerAscii() -> string"},
	{Name: "upperAscii", Signature: "upperAscii() -> string"},
	{Name: "trim", Signature: "trim() -> string"},
	{Name: "size", Signature: "size() -> int"},
}

// tokenBreaks end the token being completed.
const tokenBreaks = " ()!&|=<>+-*/,?:"

// Where completes the last token of a --where predicate. Candidates repeat
// everything before that token, since shells replace the whole word.
func Where(input string, fields []Field) []Completion {
	cut := strings.LastIndexAny(input, tokenBreaks) + 1
	head, tok := input[:cut], input[cut:]

	if !strings.HasPrefix(tok, "_.") {
		if strings.HasPrefix("_.", tok) {
			return fieldCompletions(head, "", fields)
		}
		return nil
	}
	name, partial, afterField := strings.Cut(tok[len("_."):], ".")
	if !afterField {
		return fieldCompletions(head, name, fields)
	}

	var field *Field
	for i := range fields {
		if fields[i].Name == name {
			field = &fields[i]
		}
	}
	if field == nil || field.Type != "string" {
		return nil
	}
	var out []Completion
	for _, fn := range stringMethods {
		if strings.HasPrefix(fn.Name, partial) {
			out = append(out, Completion{
				Text:   head + "_." + name + "." + fn.Name + "(",
				Kind:   KindFunction,
				Detail: fn.Signature,
			})
		}
	}
	return out
}

func fieldCompletions(head, prefix string, fields []Field) []Completion {
	var out []Completion
	for _, f := range fields {
		if strings.HasPrefix(f.Name, prefix) {
			out = append(out, Completion{Text: head + "_." + f.Name, Kind: KindField, Detail: f.Type})
		}
	}
	return out
}
