package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/alicebob/miniredis/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/lawlens/internal/config"
	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/ui"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

const murderJSON = `{
	"title": "Murder",
	"explanation": "Killing a person **on purpose**.",
	"legal": "Whoever commits murder shall be punished with death.",
	"change": "",
	"source": "Indian Penal Code, 1860",
	"ipc_sections": "302",
	"bns_sections": "103",
	"bnss_classification": ["Cognizable", "Non-bailable"]
}`

type backend struct {
	*httptest.Server

	mu       sync.Mutex
	lastMode string
}

func (b *backend) mode() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastMode
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	record := func(r *http.Request) string {
		_ = r.ParseForm()
		b.mu.Lock()
		b.lastMode = r.PostForm.Get("search_mode")
		b.mu.Unlock()
		return strings.ToLower(r.PostForm.Get("query"))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/autocomplete", func(w http.ResponseWriter, r *http.Request) {
		q := record(r)
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix("murder", q) {
			_, _ = w.Write([]byte(`{"suggestions":[
				{"title":"Murder","ipc":"302","bns":"103"},
				{"title":"Attempt to murder","ipc":"307","bns":"109"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"suggestions":[]}`))
	})
	mux.HandleFunc("/explain_term", func(w http.ResponseWriter, r *http.Request) {
		q := record(r)
		w.Header().Set("Content-Type", "application/json")
		switch q {
		case "murder", "302":
			_, _ = w.Write([]byte(murderJSON))
		case "blank":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"No law matches that term"}`))
		}
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// isolate points every config and data location at a temp dir and the
// server at a fresh backend.
func isolate(t *testing.T) *backend {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "")
	for _, k := range []string{
		config.EnvStorageBackend, config.EnvRedisURL, config.EnvDataDir,
		config.EnvLogLevel, config.EnvVoiceCommand,
	} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	b := newBackend(t)
	t.Setenv(config.EnvServerURL, b.URL)
	return b
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root, f := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := executeRoot(root, f)
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := runCLI(t, args...)
	require.NoError(t, err, "lawlens %s", strings.Join(args, " "))
	return out
}

func TestVersionCommand(t *testing.T) {
	// No isolation: version must not need config, storage or a server.
	out := mustRun(t, "version")
	assert.Contains(t, out, "lawlens v0.0.0-nightly")
	assert.Contains(t, out, "commit unknown")
}

func TestRootWithoutQueryShowsHelp(t *testing.T) {
	isolate(t)
	out := mustRun(t)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "explain")
}

func TestRootExplainsWhenNotATerminal(t *testing.T) {
	b := isolate(t)

	out := mustRun(t, "murder")
	assert.Contains(t, out, "Murder")
	assert.Contains(t, out, "Share: "+b.URL+"/?section=302")

	out = mustRun(t, b.URL+"/?section=302")
	assert.Contains(t, out, "IPC: 302   BNS: 103")

	out = mustRun(t, "--section", "302")
	assert.Contains(t, out, "Simple Explanation")
}

func TestRootStartsTUIOnTerminal(t *testing.T) {
	b := isolate(t)
	t.Setenv(config.EnvVoiceCommand, "dictate --lang {lang}")
	got, _ := stubTUI(t)

	mustRun(t, "--mode", "bns", "--theme", "dark", b.URL+"/?section=420")
	assert.Equal(t, "420", got.DeepLink)
	assert.Equal(t, law.ModeBNS, got.Mode)
	assert.Equal(t, law.ThemeDark, got.Theme)
	assert.Equal(t, []string{"dictate", "--lang", "en-IN"}, got.VoiceArgs)
	require.NotNil(t, got.Client)
	require.NotNil(t, got.Store)
	assert.Equal(t, b.URL, got.Client.BaseURL())
}

// stubTUI pretends stdout is a terminal and records what the TUI is given.
func stubTUI(t *testing.T) (*ui.Options, *context.Context) {
	t.Helper()
	origTerm, origRun := isTerminal, runTUI
	t.Cleanup(func() { isTerminal, runTUI = origTerm, origRun })
	isTerminal = func(io.Writer) bool { return true }

	var got ui.Options
	var ctx context.Context
	runTUI = func(c context.Context, opts ui.Options, _ ...tea.ProgramOption) error {
		got, ctx = opts, c
		return nil
	}
	return &got, &ctx
}

func TestTUIUsesConfiguredTheme(t *testing.T) {
	isolate(t)
	got, _ := stubTUI(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0o644))

	mustRun(t, "--config-file", path)
	assert.Equal(t, law.ThemeDark, got.Theme)
}

func TestTUIWithUnwritableLogFile(t *testing.T) {
	isolate(t)
	got, ctx := stubTUI(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	path := filepath.Join(dir, "config.yaml")
	cfg := "log:\n  file: " + filepath.Join(blocker, "lawlens.log") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	_, errOut, err := runCLI(t, "--config-file", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "lawlens: logging disabled")
	require.NotNil(t, got.Client, "TUI still starts")
	assert.Nil(t, logger.FromContext(*ctx).GetSink(), "nothing is logged over the TUI")
}

func TestExplainText(t *testing.T) {
	isolate(t)
	out := mustRun(t, "explain", "murder")
	for _, want := range []string{
		"Murder",
		"IPC: 302   BNS: 103",
		"Simple Explanation",
		"Killing a person on purpose.",
		"Legal Meaning",
		"Related Sections",
		"IPC 301",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "**")
}

func TestExplainStructuredFormats(t *testing.T) {
	isolate(t)

	var res law.Result
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "explain", "murder", "-o", "json")), &res))
	assert.Equal(t, "Murder", res.Title)
	assert.Equal(t, []string{"Cognizable", "Non-bailable"}, res.BNSSClassification)

	res = law.Result{}
	require.NoError(t, yaml.Unmarshal([]byte(mustRun(t, "explain", "murder", "-o", "yaml")), &res))
	assert.Equal(t, "103", res.BNSSections)

	res = law.Result{}
	require.NoError(t, toml.Unmarshal([]byte(mustRun(t, "explain", "302", "-o", "toml")), &res))
	assert.Equal(t, "Indian Penal Code, 1860", res.Source)
}

func TestExplainLookupErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{name: "server message", query: "xyzzy", message: "No law matches that term"},
		{name: "fallback message", query: "blank", message: "No matching law found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, _, err := runCLI(t, "explain", tt.query)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, 2, ExitCode(err))
			assert.Contains(t, out, "Search Error")
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestExplainLookupErrorIsQuietForJSON(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "explain", "xyzzy", "-o", "json")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestExplainNetworkError(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := runCLI(t, "explain", "murder", "--server", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Network error")
	assert.Equal(t, 1, ExitCode(err))
}

func TestExplainEmptyQuery(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "explain", "   ")
	require.EqualError(t, err, "Please enter a search term")
}

func TestExplainHTML(t *testing.T) {
	isolate(t)

	out := mustRun(t, "explain", "murder", "-o", "html")
	assert.Contains(t, out, "<title>Murder | IPC 302</title>")

	path := filepath.Join(t.TempDir(), "murder.html")
	_, errOut, err := runCLI(t, "explain", "murder", "-o", "html", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "Saved "+path+"\n", errOut)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Simple Explanation")
}

func TestExplainPDF(t *testing.T) {
	isolate(t)
	orig := pdfRenderer
	t.Cleanup(func() { pdfRenderer = orig })
	var gotHTML string
	pdfRenderer = func(_ context.Context, html string) ([]byte, error) {
		gotHTML = html
		return []byte("%PDF-1.4 test"), nil
	}

	_, errOut, err := runCLI(t, "explain", "murder", "-o", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "Saved Murder.pdf\n", errOut)
	assert.Contains(t, gotHTML, "<title>Murder | IPC 302</title>")

	data, err := os.ReadFile("Murder.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestOutputValidation(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"explain", "murder", "-o", "csv"}},
		{name: "pdf outside explain", args: []string{"suggest", "mur", "-o", "pdf"}},
		{name: "html outside explain", args: []string{"history", "list", "-o", "html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid --output")
		})
	}
}

func TestModeFlag(t *testing.T) {
	b := isolate(t)

	mustRun(t, "explain", "murder")
	assert.Equal(t, "ipc", b.mode())

	mustRun(t, "explain", "murder", "--mode", "BNS")
	assert.Equal(t, "bns", b.mode())

	_, _, err := runCLI(t, "explain", "murder", "--mode", "crpc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search mode")
}

func TestModeFromConfigFile(t *testing.T) {
	b := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  default_mode: bns\n"), 0o644))

	mustRun(t, "suggest", "mur", "--config-file", path)
	assert.Equal(t, "bns", b.mode())
}

func TestSuggest(t *testing.T) {
	isolate(t)

	out := mustRun(t, "suggest", "mur")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Murder "))
	assert.Contains(t, lines[0], "IPC: 302 | BNS: 103")
	assert.Contains(t, lines[1], "Attempt to murder")
	assert.Equal(t, strings.Index(lines[0], "IPC:"), strings.Index(lines[1], "IPC:"))

	assert.Equal(t, "No matching laws found. Try a different term?\n", mustRun(t, "suggest", "zzz"))

	var items []law.Suggestion
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "suggest", "mur", "-o", "json")), &items))
	assert.Equal(t, []law.Suggestion{
		{Title: "Murder", IPC: "302", BNS: "103"},
		{Title: "Attempt to murder", IPC: "307", BNS: "109"},
	}, items)

	var doc struct {
		Suggestions []law.Suggestion `toml:"suggestions"`
	}
	require.NoError(t, toml.Unmarshal([]byte(mustRun(t, "suggest", "mur", "-o", "toml")), &doc))
	assert.Len(t, doc.Suggestions, 2)
}

func TestSuggestRejectsShortQuery(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "suggest", "m")
	require.EqualError(t, err, "query must be at least 2 characters")
}

func TestHistory(t *testing.T) {
	isolate(t)

	assert.Equal(t, "No search history\n", mustRun(t, "history", "list"))

	mustRun(t, "explain", "murder")
	_, _, _ = runCLI(t, "explain", "theft")
	mustRun(t, "explain", "murder", "--no-history")

	assert.Equal(t, " 1. theft\n 2. murder\n", mustRun(t, "history", "list"))
	assert.Equal(t, " 1. theft\n", mustRun(t, "history", "list", "--where", "_.rank < 1"))
	assert.Equal(t, " 1. murder\n", mustRun(t, "history", "list", "--where", `_.query.startsWith("mur")`))

	var entries []string
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "history", "list", "-o", "json")), &entries))
	assert.Equal(t, []string{"theft", "murder"}, entries)

	assert.Equal(t, "Search history cleared\n", mustRun(t, "history", "clear"))
	assert.Equal(t, "[]\n", mustRun(t, "history", "list", "-o", "json"))
}

func TestHistoryWhereErrors(t *testing.T) {
	isolate(t)
	mustRun(t, "explain", "murder")

	_, _, err := runCLI(t, "history", "list", "--where", "_.query +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --where")

	_, _, err = runCLI(t, "history", "list", "--where", "_.rank + 1")
	require.Error(t, err)
}

func TestHistoryInRedis(t *testing.T) {
	isolate(t)
	mr := miniredis.RunT(t)
	t.Setenv(config.EnvRedisURL, "redis://"+mr.Addr())

	mustRun(t, "explain", "murder", "--storage", "redis")
	assert.Equal(t, " 1. murder\n", mustRun(t, "history", "list", "--storage", "redis"))
	assert.Equal(t, "No search history\n", mustRun(t, "history", "list", "--storage", "memory"))
	assert.True(t, mr.Exists("lawlens:searchHistory"))
}

func TestBookmarks(t *testing.T) {
	isolate(t)

	assert.Equal(t, "No bookmarks\n", mustRun(t, "bookmarks", "list"))
	assert.Equal(t, "Bookmarked successfully! Murder (IPC 302)\n", mustRun(t, "bookmarks", "add", "murder"))
	assert.Equal(t, "Already bookmarked! Murder (IPC 302)\n", mustRun(t, "bookmarks", "add", "302"))
	assert.Equal(t, "IPC 302  BNS 103  Murder\n", mustRun(t, "bookmarks", "list"))
	assert.Equal(t, "No bookmarks\n", mustRun(t, "bookmarks", "list", "--where", `_.ipc == "999"`))

	var items []law.Bookmark
	require.NoError(t, yaml.Unmarshal([]byte(mustRun(t, "bookmarks", "list", "-o", "yaml")), &items))
	assert.Equal(t, []law.Bookmark{{Title: "Murder", IPC: "302", BNS: "103"}}, items)

	_, _, err := runCLI(t, "bookmarks", "add", "xyzzy")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))

	assert.Equal(t, "Removed bookmark IPC 302\n", mustRun(t, "bookmarks", "remove", "302"))
	_, _, err = runCLI(t, "bookmarks", "rm", "302")
	require.EqualError(t, err, "no bookmark for IPC 302")
}

func TestSettingsCommands(t *testing.T) {
	isolate(t)

	assert.Equal(t, "autocomplete: true\nvoiceSearch: true\n", mustRun(t, "settings", "get"))
	assert.Equal(t, "autocomplete: false\nvoiceSearch: true\n", mustRun(t, "settings", "set", "autocomplete", "false"))
	assert.Equal(t, "false\n", mustRun(t, "settings", "get", "autocomplete"))
	assert.Equal(t, "voiceSearch Disabled\n", mustRun(t, "settings", "toggle", "voiceSearch"))
	assert.Equal(t, "voiceSearch Enabled\n", mustRun(t, "settings", "toggle", "voiceSearch"))

	var s law.Settings
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "settings", "get", "-o", "json")), &s))
	assert.Equal(t, law.Settings{Autocomplete: false, VoiceSearch: true}, s)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "bad value", args: []string{"settings", "set", "autocomplete", "maybe"}, want: `invalid value "maybe"`},
		{name: "unknown get", args: []string{"settings", "get", "darkMode"}, want: `unknown setting "darkMode"`},
		{name: "unknown toggle", args: []string{"settings", "toggle", "darkMode"}, want: `unknown setting "darkMode"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestThemeCommand(t *testing.T) {
	isolate(t)

	assert.Equal(t, "light\n", mustRun(t, "theme"))
	assert.Equal(t, "dark\n", mustRun(t, "theme", "dark"))
	assert.Equal(t, "dark\n", mustRun(t, "theme"))
	assert.Equal(t, "light\n", mustRun(t, "theme", "toggle"))

	_, _, err := runCLI(t, "theme", "purple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
}

func TestConfigView(t *testing.T) {
	b := isolate(t)

	out := mustRun(t, "config", "view")
	assert.Contains(t, out, "url: "+b.URL)
	assert.Contains(t, out, "default_mode: ipc")

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "config", "view", "-o", "json", "--mode", "bns")), &cfg))
	assert.Equal(t, "bns", cfg.Search.DefaultMode)
	assert.Equal(t, b.URL, cfg.Server.URL)

	assert.Equal(t, string(config.DefaultConfigYAML()), mustRun(t, "config", "view", "--defaults"))
}

func TestInvalidConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o644))

	_, _, err := runCLI(t, "history", "list", "--config-file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage.backend")
}

func TestLaunchQuery(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{arg: "murder", want: "murder"},
		{arg: "  theft ", want: "theft"},
		{arg: "http://localhost:5000/?section=302", want: "302"},
		{arg: "https://law.example/?section=%20420%20", want: "420"},
		{arg: "http://localhost:5000/", want: "http://localhost:5000/"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, launchQuery(tt.arg))
		})
	}
}

func TestModeValue(t *testing.T) {
	var m law.SearchMode
	v := newModeValue(&m)
	assert.Equal(t, "", v.String())
	require.NoError(t, v.Set("BNS"))
	assert.Equal(t, law.ModeBNS, m)
	assert.Equal(t, "bns", v.String())
	require.Error(t, v.Set("crpc"))
	assert.Equal(t, law.ModeBNS, m)
	assert.Equal(t, "ipc|bns", v.Type())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(os.ErrNotExist))
	assert.Equal(t, 2, ExitCode(&lookupError{query: "x", message: "none"}))
}

func TestListWindows(t *testing.T) {
	isolate(t)
	for _, q := range []string{"murder", "302", "theft"} {
		_, _, _ = runCLI(t, "explain", q)
	}

	assert.Equal(t, " 1. theft\n 2. 302\n", mustRun(t, "history", "list", "--limit", "2"))
	assert.Equal(t, " 1. 302\n", mustRun(t, "history", "list", "--offset", "1", "--limit", "1"))
	assert.Equal(t, " 1. murder\n", mustRun(t, "history", "list", "--tail", "1"))

	_, _, err := runCLI(t, "history", "list", "--limit", "1", "--tail", "1")
	require.EqualError(t, err, "--limit and --tail are mutually exclusive")
	_, _, err = runCLI(t, "bookmarks", "list", "--offset", "-1")
	require.EqualError(t, err, "--offset must be non-negative, got -1")
}

func TestBookmarksImportRoundTrip(t *testing.T) {
	isolate(t)
	mustRun(t, "bookmarks", "add", "murder")

	exported := mustRun(t, "bookmarks", "list", "-o", "toml")
	path := filepath.Join(t.TempDir(), "saved.toml")
	require.NoError(t, os.WriteFile(path, []byte(exported), 0o600))

	assert.Equal(t, "Imported 0 bookmarks (1 already saved)\n", mustRun(t, "bookmarks", "import", path))

	root, f := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("- title: Theft\n  ipc: '378'\n  bns: '303'\n- title: Murder\n  ipc: '302'\n  bns: '103'\n"))
	root.SetArgs([]string{"bookmarks", "import", "-"})
	require.NoError(t, executeRoot(root, f))
	assert.Equal(t, "Imported 1 bookmarks (1 already saved)\n", out.String())

	assert.Equal(t, "IPC 302  BNS 103  Murder\nIPC 378  BNS 303  Theft\n", mustRun(t, "bookmarks", "list"))

	_, _, err := runCLI(t, "bookmarks", "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestShellCompletion(t *testing.T) {
	isolate(t)

	out := mustRun(t, "__complete", "explain", "mur")
	assert.Contains(t, out, "Murder\tIPC 302 | BNS 103\n")
	assert.Contains(t, out, "Attempt to murder\tIPC 307 | BNS 109\n")
	assert.Contains(t, out, ":4\n")

	out = mustRun(t, "__complete", "bookmarks", "add", "m")
	assert.NotContains(t, out, "Murder")

	out = mustRun(t, "__complete", "history", "list", "--where", "_.q")
	assert.Contains(t, out, "_.query\tstring\n")
	assert.Contains(t, out, ":6\n")
}
