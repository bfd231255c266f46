package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/state"
)

// retryEvery limits how often ctrl+r may re-run a failed load.
const retryEvery = 5 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Load      func(context.Context) error
	Metrics   *catalog.Metrics
	ThemeName string
	LogFile   string // shown in the f3 pane; empty disables it
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx     context.Context
	store   *state.Store
	load    func(context.Context) error
	metrics *catalog.Metrics
	logFile string

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	search textinput.Model
	width  int
	height int
	ready  bool

	// Data state
	snap state.Snapshot

	// List state
	cursor int
	offset int
	pulses *pulseSet

	// Log pane
	logs logState

	// Load state
	gen      int // generation of the load in flight; older results are stale
	inFlight bool
	retry    *rate.Limiter

	now func() time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	search := textinput.New()
	search.Prompt = "> "
	search.Focus()

	m := Model{
		ctx:     ctx,
		store:   store,
		load:    opts.Load,
		metrics: opts.Metrics,
		logFile: opts.LogFile,
		theme:   GetTheme(themeName),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		search:  search,
		pulses:  newPulseSet(pulseHandles),
		logs:    newLogState(),
		gen:     1,
		retry:   rate.NewLimiter(rate.Every(retryEvery), 1),
		now:     time.Now,
	}
	m.inFlight = m.load != nil
	m.refresh()
	return m
}

// Init implements tea.Model. It issues the single startup load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd(m.gen))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.sizeSearch()
		m.ensureVisible()
		if m.logs.open {
			m.updateLogViewport()
		}
		return m, nil

	case logsLoadedMsg:
		return m.handleLogsLoaded(msg)

	case logTickMsg:
		return m.handleLogTick(msg)

	case loadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.inFlight = false
		m.refresh()
		return m, nil

	case pulseFrameMsg:
		p := m.pulses.peek(msg.key)
		if p == nil || p.seq != msg.seq {
			return m, nil
		}
		if p.Advance(msg.at) {
			return m, pulseFrameCmd(msg.key, msg.seq)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.logs.open {
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
		return b.String()
	}
	b.WriteString(m.renderSearch())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input. Bindings are checked before the search
// input so that navigation never edits the query.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureVisible()
		if m.logs.open {
			m.updateLogViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.logs.open {
			m.updateLogViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		cmd := m.toggleLogs()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleDirection):
		m.toggleDirection()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		return m.retryLoad()
	}

	if m.logs.open {
		return m.handleLogKey(msg)
	}

	if !m.snap.Loading() {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.listHeight())
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.listHeight())
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.moveCursor(-len(m.snap.Filtered))
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.moveCursor(len(m.snap.Filtered))
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.snap.Filtered) {
				return m, m.selectRow(m.snap.Filtered[m.cursor])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setSearchText(m.search.Value())
	return m, cmd
}

// handleMouse selects rows on left click and scrolls on the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logs.open {
		return m.handleLogMouse(msg)
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if msg.Y == 0 {
		start, end := m.directionButtonSpan()
		if msg.X >= start && msg.X < end {
			m.toggleDirection()
		}
		return m, nil
	}

	if m.snap.Loading() {
		return m, nil
	}
	row := msg.Y - listTop
	if row < 0 || row >= m.listHeight() {
		return m, nil
	}
	idx := m.offset + row
	if idx >= len(m.snap.Filtered) {
		return m, nil
	}
	m.cursor = idx
	return m, m.selectRow(m.snap.Filtered[idx])
}

// selectRow reports the selection and starts the row's pulse.
func (m *Model) selectRow(book catalog.Book) tea.Cmd {
	logging.For(m.ctx).WithFields(logrus.Fields{
		"id":    book.ID,
		"title": book.Title,
	}).Info("book selected")
	m.metrics.IncSelection()

	rowKey := state.RowKey(book)
	seq := m.pulses.handle(rowKey).Start(m.now())
	return pulseFrameCmd(rowKey, seq)
}

func (m *Model) toggleDirection() {
	m.store.ToggleDirection()
	m.refresh()
}

func (m *Model) setSearchText(text string) {
	if text == m.snap.SearchText {
		return
	}
	m.store.SetSearchText(text)
	m.cursor = 0
	m.offset = 0
	m.refresh()
}

// retryLoad re-runs the load after a failure. The binding is only enabled
// while the store reports a failure and nothing is in flight.
func (m Model) retryLoad() (tea.Model, tea.Cmd) {
	if !m.retry.Allow() {
		logging.For(m.ctx).Debug("retry throttled")
		return m, nil
	}
	m.gen++
	m.inFlight = true
	m.refresh()
	logging.For(m.ctx).WithField("failures", m.snap.Failures).Info("retrying book load")
	return m, m.loadCmd(m.gen)
}

// refresh pulls a fresh snapshot from the store and updates everything
// derived from it.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.search.Placeholder = m.snap.Direction.Placeholder()
	m.keys.Retry.SetEnabled(m.snap.Failed() && !m.inFlight)
	if m.cursor >= len(m.snap.Filtered) {
		m.cursor = max(len(m.snap.Filtered)-1, 0)
	}
	m.sizeSearch()
	m.ensureVisible()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.snap.Filtered)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Messages

type loadedMsg struct {
	gen int
	err error
}

// Commands

// loadCmd runs the load under the program context. It produces no message
// once the context is done, so a late completion never reaches Update.
func (m Model) loadCmd(gen int) tea.Cmd {
	load, ctx := m.load, m.ctx
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		err := load(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return loadedMsg{gen: gen, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled. Quitting cancels any load still in flight.
func Run(opts Options) error {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return nil
	}
	return err
}
