// Package loader reads bookmark files written by "lawlens bookmarks list -o
// json|yaml|toml" (or by hand) back into bookmarks, auto-detecting the format.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/lawlens/internal/law"
)

// Format is an input encoding LoadData understands.
type Format string

const (
	FormatJSON      Format = "json"
	FormatNDJSON    Format = "ndjson"
	FormatYAML      Format = "yaml"
	FormatMultiYAML Format = "yaml-stream"
	FormatTOML      Format = "toml"
)

// Detect guesses the format of trimmed input. TOML [[bookmarks]] headers
// look like JSON arrays, so TOML is checked before JSON.
func Detect(input string) Format {
	switch {
	case strings.HasPrefix(input, "---") || strings.Contains(input, "\n---"):
		return FormatMultiYAML
	case isLikelyNDJSON(strings.Split(input, "\n")):
		return FormatNDJSON
	case isLikelyTOML(input):
		return FormatTOML
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		return FormatJSON
	}
	return FormatYAML
}

// LoadData parses input into documents, auto-detecting the format: a JSON
// value, NDJSON, single or multi-document YAML, or TOML as written by the
// list commands (bookmarks = [...]).
func LoadData(input string) ([]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty input")
	}
	switch f := Detect(input); f {
	case FormatMultiYAML:
		return yamlStream(input)
	case FormatNDJSON:
		return ndjson(input)
	case FormatTOML:
		return single(f, toml.Unmarshal, input)
	case FormatJSON:
		return single(f, json.Unmarshal, input)
	default:
		return single(f, yaml.Unmarshal, input)
	}
}

// LoadBookmarks parses bookmarks from input. Each document may be a list of
// bookmarks, a single bookmark, or a table holding a "bookmarks" list.
func LoadBookmarks(input string) ([]law.Bookmark, error) {
	docs, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	var out []law.Bookmark
	for _, doc := range docs {
		for _, rec := range records(doc) {
			b, err := toBookmark(rec)
			if err != nil {
				return nil, fmt.Errorf("bookmark %d: %w", len(out)+1, err)
			}
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no bookmarks found in input")
	}
	return out, nil
}

// LoadBookmarksFile reads bookmarks from path, or from r when path is "-".
func LoadBookmarksFile(path string, r io.Reader) ([]law.Bookmark, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return LoadBookmarks(string(data))
}

// records flattens one document into candidate bookmark records.
func records(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case map[string]any:
		if list, ok := v["bookmarks"].([]any); ok {
			return list
		}
		return []any{v}
	case nil:
		return nil
	}
	return []any{doc}
}

// toBookmark reads title, ipc and bns from a record. Scalars are accepted
// in any type so hand-written files may use bare section numbers.
func toBookmark(rec any) (law.Bookmark, error) {
	m, ok := rec.(map[string]any)
	if !ok {
		return law.Bookmark{}, fmt.Errorf("expected an object with title, ipc and bns, got %T", rec)
	}
	field := func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}
	b := law.Bookmark{Title: field("title"), IPC: field("ipc"), BNS: field("bns")}
	if b.IPC == "" {
		return b, errors.New("missing ipc")
	}
	return b, nil
}

// single decodes one document.
func single(f Format, unmarshal func([]byte, any) error, input string) ([]any, error) {
	var doc any
	if err := unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", strings.ToUpper(string(f)), err)
	}
	return []any{doc}, nil
}

// yamlStream decodes every document of a "---" separated stream, skipping
// empty ones.
func yamlStream(input string) ([]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents found in multi-document YAML")
	}
	return docs, nil
}

// ndjson requires every non-blank line to be valid JSON.
func ndjson(input string) ([]any, error) {
	var docs []any
	for i, line := range strings.Split(input, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// isLikelyNDJSON: more than one line, most of them opening a JSON value, so
// YAML lists ("- title: ...") are not misread.
func isLikelyNDJSON(lines []string) bool {
	var total, jsonish int
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if line[0] == '{' || line[0] == '[' {
			jsonish++
		}
	}
	return total > 1 && jsonish > total/2
}

var (
	// [table] or [[array]] with bare, quoted or dotted keys; JSON arrays like
	// [1, 2] do not match.
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, where YAML would write key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML: any table header, or mostly key = value lines.
func isLikelyTOML(input string) bool {
	var total, pairs int
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		if tomlSection.MatchString(line) {
			return true
		}
		total++
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return total > 0 && pairs > total/2
}
