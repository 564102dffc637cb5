package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/slider"
	"github.com/five82/carousel/internal/state"
)

const (
	logPaneLines   = 8
	logRefreshTick = time.Second
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Settings slider.Settings
	Deck     deck.Deck
	DeckPath string
	Store    *state.Store
	Logger   *logging.Logger
	LogPath  string

	ThemeName      string
	PrefsPath      string
	AutoplayPaused bool

	// Decks delivers reloaded decks from the watcher. May be nil.
	Decks <-chan deck.Deck
	// Clock drives slider timers. Run supplies a clock that delivers timer
	// callbacks as program messages; tests inject their own.
	Clock slider.Clock
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	settings  slider.Settings
	store     *state.Store
	logger    *logging.Logger
	logPath   string
	prefsPath string
	decks     <-chan deck.Deck
	clock     slider.Clock

	// Engine state is shared by every copy of the model.
	engine *engine

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	showHelp bool
	showLogs bool
	logLines []string
}

// New creates a new Bubble Tea model. The slider is mounted when the program
// delivers the first message from Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	keys := DefaultKeyMap()
	keys.Previous.SetEnabled(opts.Settings.ShouldSlideOnArrowKeypress)
	keys.Next.SetEnabled(opts.Settings.ShouldSlideOnArrowKeypress)
	keys.Autoplay.SetEnabled(opts.Settings.ShouldAutoplay)

	m := Model{
		ctx:       ctx,
		settings:  opts.Settings,
		store:     store,
		logger:    logger.Component("ui"),
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		decks:     opts.Decks,
		clock:     opts.Clock,
		keys:      keys,
		help:      help.New(),
		theme:     GetTheme(themeName),
	}
	m.engine = newEngine(opts.Deck, opts.DeckPath, opts.AutoplayPaused)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return mountMsg{} },
	}
	if cmd := waitForDeck(m.decks); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	model.syncStore()
	return model, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case mountMsg:
		m.mount(m.engine.deck, m.settings.InitialSlide)
		return m, nil

	case timerMsg:
		msg()
		return m, nil

	case deckMsg:
		m.reload(deck.Deck(msg))
		return m, waitForDeck(m.decks)

	case logLinesMsg:
		m.logLines = msg
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(readLogsCmd(m.logPath), logTickCmd())
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tea.Batch(readLogsCmd(m.logPath), logTickCmd())
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.runAction("next", m.engine.next)
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		m.runAction("previous", m.engine.previous)
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.jump(int(msg.String()[0] - '0'))
		return m, nil

	case key.Matches(msg, m.keys.Autoplay):
		m.toggleAutoplay()
		return m, nil
	}

	return m, nil
}

// jump selects a slide from the side nav. Selecting the active slide does
// nothing.
func (m *Model) jump(target int) {
	c := m.engine.slider.Controller()
	if target > c.Total() || target == c.Active() {
		return
	}
	if err := c.GoToSlide(target); err != nil {
		m.logger.Warn("jump failed", "target", target, "error", err)
	}
}

func (m *Model) runAction(name string, action slider.Action) {
	if action == nil {
		return
	}
	if err := action(); err != nil {
		m.logger.Warn("navigation failed", "action", name, "error", err)
	}
}

func (m *Model) toggleAutoplay() {
	a := m.engine.slider.Autoplay()
	if err := a.Toggle(); err != nil {
		m.logger.Warn("autoplay toggle failed", "error", err)
		return
	}
	status := a.Status()
	m.engine.autoplayPaused = status.PausedByUser
	m.store.Record(state.Event{Kind: state.EventAutoplay, Message: autoplayLabel(status)})
	m.savePrefs()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, AutoplayPaused: m.engine.autoplayPaused}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

func (m Model) syncStore() {
	if m.engine.slider == nil {
		return
	}
	m.store.UpdateSlider(m.engine.slider.Snapshot())
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	if m.settings.ShouldDisplayButtons {
		b.WriteString(m.renderButtons())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	if m.showLogs {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys)))

	return b.String()
}

// Messages

type mountMsg struct{}

// timerMsg carries a slider timer callback onto the program goroutine.
type timerMsg func()

type deckMsg deck.Deck

type logLinesMsg []string

type logTickMsg time.Time

// Commands

func waitForDeck(decks <-chan deck.Deck) tea.Cmd {
	if decks == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-decks
		if !ok {
			return nil
		}
		return deckMsg(d)
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(logRefreshTick, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var dispatch *slider.DispatchClock
	if opts.Clock == nil {
		dispatch = slider.NewDispatchClock(nil)
		opts.Clock = dispatch
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if dispatch != nil {
		dispatch.Attach(func(fn func()) { p.Send(timerMsg(fn)) })
	}

	_, err := p.Run()
	m.engine.close()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
