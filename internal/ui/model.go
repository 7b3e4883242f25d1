package ui

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/lawlens/internal/client"
	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/render"
	"github.com/oakwood-commons/lawlens/internal/search"
	"github.com/oakwood-commons/lawlens/internal/store"
	"github.com/oakwood-commons/lawlens/pkg/logger"
)

// ToastDuration is how long a notice stays on screen.
const ToastDuration = 3 * time.Second

// Ticker schedules fn after d. The default is tea.Tick; tests inject one that
// fires immediately.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Options configure a Model.
type Options struct {
	Client *client.Client
	Store  *store.Store
	Mode   law.SearchMode
	// Theme overrides the persisted theme when set.
	Theme   law.Theme
	NoColor bool
	// DeepLink is a section id submitted shortly after start.
	DeepLink  string
	VoiceArgs []string
	Ticker    Ticker
	Width     int
	Height    int
}

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayShortcuts
	overlayHistory
	overlaySettings
)

type toastClearMsg struct{ ID int }

type deepLinkMsg struct{}

type voiceResultMsg struct {
	Text string
	Err  error
}

type printDoneMsg struct{ Err error }

// Model is the interactive search screen. All state transitions of the
// search itself go through search.Update; Model executes the effects.
type Model struct {
	ctx    context.Context
	client *client.Client
	store  *store.Store
	tick   Ticker

	State    search.State
	Settings law.Settings
	Theme    law.Theme
	NoColor  bool
	styles   styles

	Input   textinput.Model
	Spinner spinner.Model

	History       []string
	Overlay       overlayKind
	overlayCursor int

	// Result presentation, rebuilt whenever a new result is displayed.
	Result   *render.ResultView
	Expanded map[render.SectionID]bool
	Cursor   int

	ShareLink string
	Toast     string
	toastID   int

	VoiceArgs []string
	Listening bool

	deepLink  string
	WinWidth  int
	WinHeight int
	// StaleDiscards counts responses dropped by the token guards.
	StaleDiscards int
}

// NewModel builds a model with settings, history and theme loaded from the store.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Store == nil {
		opts.Store = store.New(store.NewMemoryBlob())
	}
	if opts.Ticker == nil {
		opts.Ticker = tea.Tick
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	settings := opts.Store.Settings(ctx)
	theme := opts.Theme
	if theme == "" {
		theme = opts.Store.Theme(ctx)
	}

	ti := textinput.New()
	ti.CharLimit = 200
	ti.SetWidth(opts.Width - 6)
	ti.Prompt = "› "

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		tick:      opts.Ticker,
		State:     search.NewState(opts.Mode, settings),
		Settings:  settings,
		Theme:     theme,
		NoColor:   opts.NoColor,
		Input:     ti,
		Spinner:   s,
		History:   opts.Store.History(ctx),
		Expanded:  map[render.SectionID]bool{},
		VoiceArgs: opts.VoiceArgs,
		deepLink:  opts.DeepLink,
		WinWidth:  opts.Width,
		WinHeight: opts.Height,
	}
	m.styles = newStyles(theme, opts.NoColor)
	m.Input.Placeholder = placeholder(m.State.Mode)
	m.Input.Focus()
	if opts.DeepLink != "" {
		m.Input.SetValue(opts.DeepLink)
		m.State.Query = opts.DeepLink
	}
	return m
}

func placeholder(mode law.SearchMode) string {
	return "Start typing legal term or " + mode.Label() + " section ..."
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deepLink != "" {
		cmds = append(cmds, m.tick(search.DeepLinkDelay, func(time.Time) tea.Msg { return deepLinkMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WinWidth = msg.Width
		m.WinHeight = msg.Height
		m.Input.SetWidth(max(10, msg.Width-6))
		return m, nil

	case spinner.TickMsg:
		if !m.State.Flow.Phase.Loading() && !m.Listening {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case toastClearMsg:
		if msg.ID == m.toastID {
			m.Toast = ""
		}
		return m, nil

	case deepLinkMsg:
		m.deepLink = ""
		return m, m.apply(search.Submitted{})

	case voiceResultMsg:
		m.Listening = false
		if msg.Err != nil || msg.Text == "" {
			if msg.Err != nil {
				logger.FromContext(m.ctx).Error(msg.Err, "voice capture failed")
			}
			return m, m.notify("Voice search failed")
		}
		return m, m.apply(search.Filled{Value: msg.Text})

	case printDoneMsg:
		if msg.Err != nil {
			logger.FromContext(m.ctx).Error(msg.Err, "print export failed")
			return m, m.notify("Failed to print")
		}
		return m, m.notify("Print view opened in browser")

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case search.Event:
		return m, m.apply(msg)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// apply feeds one event through search.Update, syncs the widgets with the
// new state and runs the effects.
func (m *Model) apply(ev search.Event) tea.Cmd {
	prev := m.State
	var effects []search.Effect
	m.State, effects = search.Update(m.State, ev)

	if m.Input.Value() != m.State.Query {
		m.Input.SetValue(m.State.Query)
		m.Input.CursorEnd()
	}
	var cmds []tea.Cmd
	if prev.Focus != m.State.Focus {
		if m.State.Focus == search.FocusInput {
			cmds = append(cmds, m.Input.Focus())
		} else {
			m.Input.Blur()
		}
	}
	if prev.Mode != m.State.Mode {
		m.Input.Placeholder = placeholder(m.State.Mode)
	}
	if !prev.Flow.Phase.Loading() && m.State.Flow.Phase.Loading() {
		cmds = append(cmds, m.Spinner.Tick)
	}
	if res, ok := m.State.Flow.Displayed(); ok && prev.Flow.Phase != search.PhaseDisplayed {
		m.showResult(*res)
	}
	if !m.hasPanel() && m.State.Focus == search.FocusResult {
		m.State, _ = search.Update(m.State, search.FocusChanged{Focus: search.FocusInput})
		cmds = append(cmds, m.Input.Focus())
	}

	for _, eff := range effects {
		if cmd := m.runEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) runEffect(eff search.Effect) tea.Cmd {
	lgr := logger.FromContext(m.ctx)
	switch e := eff.(type) {
	case search.ScheduleDebounce:
		return m.tick(e.Delay, func(time.Time) tea.Msg {
			return search.DebounceElapsed{Seq: e.Seq, Query: e.Query}
		})
	case search.FetchSuggestions:
		return m.fetchSuggestions(e)
	case search.RecordHistory:
		history, err := m.store.AddHistory(m.ctx, e.Query)
		if err != nil {
			lgr.Error(err, "failed to save search history")
		}
		m.History = history
	case search.RequestExplain:
		return m.requestExplain(e)
	case search.ScheduleSettle:
		return m.tick(e.Delay, func(time.Time) tea.Msg {
			return search.SettleElapsed{Token: e.Token}
		})
	case search.ShareSectionChanged:
		if m.client != nil {
			m.ShareLink = m.client.ShareLink(e.Section)
		}
	case search.Notify:
		return m.notify(e.Message)
	case search.DiscardedStale:
		m.StaleDiscards++
		lgr.V(1).Info("discarded stale response", "kind", e.Kind, "seq", e.Seq, "token", e.Token)
	}
	return nil
}

func (m *Model) fetchSuggestions(e search.FetchSuggestions) tea.Cmd {
	c, ctx := m.client, m.ctx
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := c.Suggest(ctx, e.Query, e.Mode)
		if err != nil {
			logger.FromContext(ctx).Error(err, "autocomplete failed", "query", e.Query)
			return search.SuggestionsFailed{Seq: e.Seq, Err: err}
		}
		return search.SuggestionsLoaded{Seq: e.Seq, Query: e.Query, Items: items}
	}
}

func (m *Model) requestExplain(e search.RequestExplain) tea.Cmd {
	c, ctx := m.client, m.ctx
	if c == nil {
		return func() tea.Msg {
			return search.ExplainFailed{Token: e.Token, Err: client.ErrTransport}
		}
	}
	return func() tea.Msg {
		res, err := c.Explain(ctx, e.Query, e.SelectedTitle, e.Mode)
		if err == nil {
			return search.ExplainArrived{Token: e.Token, OK: true, Result: res}
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return search.ExplainArrived{Token: e.Token, Message: apiErr.Message}
		}
		logger.FromContext(ctx).Error(err, "explain request failed", "query", e.Query)
		return search.ExplainFailed{Token: e.Token, Err: err}
	}
}

// notify shows a toast that clears itself after ToastDuration unless a newer
// one replaced it.
func (m *Model) notify(message string) tea.Cmd {
	m.toastID++
	id := m.toastID
	m.Toast = message
	return m.tick(ToastDuration, func(time.Time) tea.Msg { return toastClearMsg{ID: id} })
}

// showResult resets the result pane for a freshly displayed result.
func (m *Model) showResult(res law.Result) {
	v := render.BuildView(res)
	m.Result = &v
	m.Expanded = map[render.SectionID]bool{render.SectionExplanation: true}
	m.Cursor = 0
}

// hasPanel reports whether there is a result or error to focus.
func (m *Model) hasPanel() bool {
	switch m.State.Flow.Phase {
	case search.PhaseDisplayed:
		return m.Result != nil
	case search.PhaseErrored:
		return true
	}
	return false
}

func (m *Model) voiceEnabled() bool {
	return m.Settings.VoiceSearch && voiceAvailable(m.VoiceArgs)
}
