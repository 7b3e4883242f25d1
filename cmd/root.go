package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/lawlens/internal/client"
	"github.com/oakwood-commons/lawlens/internal/completion"
	"github.com/oakwood-commons/lawlens/internal/config"
	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/store"
	"github.com/oakwood-commons/lawlens/internal/ui"
	"github.com/oakwood-commons/lawlens/pkg/logger"
	"github.com/oakwood-commons/lawlens/pkg/settings"
)

// wiringAnnotation limits how much of the app a command needs.
const wiringAnnotation = "lawlens/wiring"

const (
	wireNone   = "none"
	wireConfig = "config"
)

// isTerminal is swapped in tests so the root command never starts the TUI.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runTUI is swapped in tests.
var runTUI = ui.RunModel

type rootFlags struct {
	configFile string
	server     string
	storage    string
	dataDir    string
	mode       law.SearchMode
	debug      bool
	noColor    bool
	output     string
	width      int
	noHistory  bool
	theme      string
	section    string

	app *app
}

// app is everything a command needs once flags, config and the environment
// have been merged.
type app struct {
	cfg     config.Config
	client  *client.Client
	store   *store.Store
	mode    law.SearchMode
	theme   law.Theme
	width   int
	closers []io.Closer
}

type appKey struct{}

func runOf(cmd *cobra.Command) *settings.Run {
	return settings.RunFrom(cmd.Context())
}

func appFrom(cmd *cobra.Command) (*app, error) {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a, nil
	}
	return nil, errors.New("command is not initialised")
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newRootCmd builds the lawlens command tree. The returned flags hold the
// app opened by the command that ran.
func newRootCmd() (*cobra.Command, *rootFlags) {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [query | share-link]",
		Short: "Look up Indian criminal law (IPC and BNS) from the terminal",
		Long: `lawlens searches a legal-lookup server for Indian Penal Code and
Bharatiya Nyaya Sanhita sections. Without a subcommand it opens an
interactive search with autocomplete; when stdout is not a terminal the
query is explained as plain text instead.`,
		Example: "\n  lawlens\n  lawlens murder\n  lawlens --section 302\n  lawlens 'http://localhost:5000/?section=420'\n  lawlens explain theft -o json\n  lawlens history list --where '_.query.contains(\"theft\")'\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := f.setup(cmd)
			if err != nil {
				return err
			}
			f.app = a
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			query := f.section
			if len(args) == 1 {
				query = launchQuery(args[0])
			}
			if !runOf(cmd).Interactive {
				if query == "" {
					return cmd.Help()
				}
				return explainTo(cmd, a, query, "", "")
			}
			return runTUI(cmd.Context(), ui.Options{
				Client:    a.client,
				Store:     a.store,
				Mode:      a.mode,
				Theme:     a.theme,
				NoColor:   runOf(cmd).NoColor,
				DeepLink:  query,
				VoiceArgs: a.cfg.VoiceArgs(),
			})
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config-file", "", "path to a YAML config file")
	pf.StringVar(&f.server, "server", "", "legal-lookup server URL (overrides server.url)")
	pf.StringVar(&f.storage, "storage", "", "storage backend: file|redis|memory")
	pf.StringVar(&f.dataDir, "data-dir", "", "directory for the file storage backend")
	pf.Var(newModeValue(&f.mode), "mode", "search mode: ipc|bns (default from config)")
	pf.BoolVar(&f.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&f.noColor, "no-color", false, "disable color output")
	pf.StringVarP(&f.output, "output", "o", "text", "output format: text|json|yaml|toml")
	pf.IntVar(&f.width, "width", 0, "wrap width for text output (default: terminal width or 80)")
	pf.BoolVar(&f.noHistory, "no-history", false, "do not record queries in the search history")
	pf.StringVar(&f.theme, "theme", "", "color theme for this run: light|dark")

	rootCmd.Flags().StringVar(&f.section, "section", "", "open the result for an IPC section, as a share link does")

	explainCmd := newExplainCmd()
	explainCmd.ValidArgsFunction = f.completeTerms
	bookmarksCmd := newBookmarksCmd()
	if addCmd, _, err := bookmarksCmd.Find([]string{"add"}); err == nil {
		addCmd.ValidArgsFunction = f.completeTerms
	}

	rootCmd.AddCommand(
		explainCmd,
		newSuggestCmd(),
		newHistoryCmd(),
		bookmarksCmd,
		newSettingsCmd(),
		newThemeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd, f
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return executeRoot(newRootCmd())
}

// executeRoot runs root and releases whatever the command opened, whether or
// not it succeeded.
func executeRoot(root *cobra.Command, f *rootFlags) error {
	err := root.Execute()
	if f.app != nil {
		if cerr := f.app.close(); err == nil {
			err = cerr
		}
	}
	return err
}

// launchQuery accepts a share link ({server}/?section=302) or a plain query.
func launchQuery(arg string) string {
	arg = strings.TrimSpace(arg)
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if s := strings.TrimSpace(u.Query().Get("section")); s != "" {
			return s
		}
	}
	return arg
}

func (f *rootFlags) themeOverride() law.Theme {
	t, err := law.ParseTheme(f.theme)
	if err != nil {
		return ""
	}
	return t
}

func wiring(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[wiringAnnotation]; ok {
			return v
		}
	}
	return ""
}

// setup loads the configuration, applies flag overrides and opens the
// logger, store and client the command needs.
func (f *rootFlags) setup(cmd *cobra.Command) (*app, error) {
	level := wiring(cmd)
	if level == wireNone || cmd.Name() == cobra.ShellCompRequestCmd {
		return nil, nil
	}

	cfg, err := config.Load(config.ResolvePath(f.configFile))
	if err != nil {
		return nil, err
	}
	if err := f.override(cmd, &cfg); err != nil {
		return nil, err
	}

	logLevel, err := cfg.Log.ZapLevel()
	if err != nil {
		return nil, err
	}
	if f.debug {
		logLevel = -1
	}

	run := settings.NewCliParams()
	run.MinLogLevel = logLevel
	run.OutputFormat = strings.ToLower(f.output)
	run.NoColor = f.noColor || cfg.UI.NoColor || os.Getenv("NO_COLOR") != ""
	run.Ephemeral = f.noHistory
	run.Interactive = cmd == cmd.Root() && isTerminal(cmd.OutOrStdout())

	a := &app{cfg: cfg, mode: cfg.Mode()}
	lgr := logger.GetNoopLogger()
	if run.Interactive {
		// The TUI owns the terminal, so logs go to a file or nowhere.
		if closer, err := logger.UseFile(cfg.Log.File); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lawlens: logging disabled: %v\n", err)
		} else {
			run.LogFile = cfg.Log.File
			a.closers = append(a.closers, closer)
			lgr = logger.Get(logLevel)
		}
	} else {
		lgr = logger.Get(logLevel)
	}
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)

	if level != wireConfig {
		blob, closer, err := store.Open(cfg.Storage.Options())
		if err != nil {
			_ = a.close()
			return nil, err
		}
		a.closers = append(a.closers, closer)
		a.store = store.New(blob)

		a.client, err = client.New(cfg.Server.URL, client.WithTimeout(cfg.Server.TimeoutDuration()))
		if err != nil {
			_ = a.close()
			return nil, err
		}

		a.theme = f.themeOverride()
		if a.theme == "" {
			if t, err := law.ParseTheme(cfg.UI.Theme); err == nil {
				a.theme = t
			} else {
				a.theme = a.store.Theme(ctx)
			}
		}
	}

	a.width = f.width
	if a.width <= 0 {
		a.width = terminalWidth(cmd.OutOrStdout())
	}

	lgr.V(1).Info("command initialised", "server", cfg.Server.URL, "storage", cfg.Storage.Backend, "mode", a.mode)
	cmd.SetContext(context.WithValue(ctx, appKey{}, a))
	return a, nil
}

// completionTimeout bounds the suggestion request behind shell completion.
const completionTimeout = 2 * time.Second

// completeTerms offers suggestion titles for the first query word.
func (f *rootFlags) completeTerms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(config.ResolvePath(f.configFile))
	if err == nil {
		err = f.override(cmd, &cfg)
	}
	var c *client.Client
	if err == nil {
		c, err = client.New(cfg.Server.URL, client.WithTimeout(completionTimeout))
	}
	if err != nil {
		cobra.CompDebugln(err.Error(), true)
		return nil, cobra.ShellCompDirectiveError
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	items, err := completion.Terms(ctx, c, toComplete, cfg.Mode())
	if err != nil {
		cobra.CompDebugln(err.Error(), true)
		return nil, cobra.ShellCompDirectiveError
	}
	return completion.Shell(items), cobra.ShellCompDirectiveNoFileComp
}

// completeWhere completes --where predicates over fields.
func completeWhere(fields []completion.Field) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completion.Shell(completion.Where(toComplete, fields)), cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}

// override applies explicitly set flags on top of the loaded configuration.
func (f *rootFlags) override(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.URL = f.server
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = f.storage
	}
	if flags.Changed("data-dir") {
		cfg.Storage.Dir = f.dataDir
	}
	if flags.Changed("mode") {
		cfg.Search.DefaultMode = string(f.mode)
	}
	if flags.Changed("theme") {
		if _, err := law.ParseTheme(f.theme); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return validateOutput(cmd, f.output)
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

func validateOutput(cmd *cobra.Command, format string) error {
	allowed := []string{formatText, formatJSON, formatYAML, formatTOML}
	if cmd.Name() == "explain" {
		allowed = append(allowed, formatHTML, formatPDF)
	}
	format = strings.ToLower(format)
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --output %q (expected %s)", format, strings.Join(allowed, "|"))
}
