package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/five82/folio/internal/logging"
)

// Log pane refresh constants
const (
	logRefreshInterval = 2 * time.Second
	logBufferLimit     = 500
)

var errNoLogFile = errors.New("no log file configured")

// logState holds the diagnostic log pane. The pane re-reads the log file on
// a timer while it is open.
type logState struct {
	open   bool
	follow bool
	lines  []string
	err    error
	seq    int // refresh loop generation; ticks from an earlier opening are dropped
	view   viewport.Model
}

func newLogState() logState {
	return logState{follow: true, view: viewport.New(0, 0)}
}

type logsLoadedMsg struct {
	seq   int
	lines []string
	err   error
}

type logTickMsg struct {
	seq int
}

// toggleLogs opens or closes the pane. Opening starts a fresh refresh loop.
func (m *Model) toggleLogs() tea.Cmd {
	m.logs.seq++
	if m.logs.open {
		m.logs.open = false
		return nil
	}
	m.logs.open = true
	m.logs.follow = true
	m.updateLogViewport()
	return m.fetchLogsCmd(m.logs.seq)
}

func (m Model) fetchLogsCmd(seq int) tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{seq: seq, err: errNoLogFile}
		}
		lines, err := logging.Tail(path, logBufferLimit, logrus.DebugLevel)
		return logsLoadedMsg{seq: seq, lines: lines, err: err}
	}
}

func logTickCmd(seq int) tea.Cmd {
	return tea.Tick(logRefreshInterval, func(time.Time) tea.Msg {
		return logTickMsg{seq: seq}
	})
}

// handleLogsLoaded stores a refresh result and schedules the next one.
func (m Model) handleLogsLoaded(msg logsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.logs.open || msg.seq != m.logs.seq {
		return m, nil
	}
	m.logs.lines = msg.lines
	m.logs.err = msg.err
	m.updateLogViewport()
	return m, logTickCmd(msg.seq)
}

func (m Model) handleLogTick(msg logTickMsg) (tea.Model, tea.Cmd) {
	if !m.logs.open || msg.seq != m.logs.seq {
		return m, nil
	}
	return m, m.fetchLogsCmd(msg.seq)
}

// handleLogKey scrolls the pane. Reaching the bottom turns follow back on.
func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "home":
		m.logs.view.GotoTop()
		m.logs.follow = false
		return m, nil
	case "end":
		m.logs.view.GotoBottom()
		m.logs.follow = true
		return m, nil
	}
	var cmd tea.Cmd
	m.logs.view, cmd = m.logs.view.Update(msg)
	m.logs.follow = m.logs.view.AtBottom()
	return m, cmd
}

func (m Model) handleLogMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.logs.view, cmd = m.logs.view.Update(msg)
	m.logs.follow = m.logs.view.AtBottom()
	return m, cmd
}

// logPaneHeight is the outer height of the bordered pane.
func (m Model) logPaneHeight() int {
	return max(m.height-headerLines-lipgloss.Height(m.renderFooter()), 4)
}

// updateLogViewport sizes the viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	styles := m.theme.Styles()
	m.logs.view.Width = max(m.width-styles.LogBox.GetHorizontalFrameSize(), 1)
	// Border rows plus the title line.
	m.logs.view.Height = max(m.logPaneHeight()-styles.LogBox.GetVerticalFrameSize()-1, 1)
	m.logs.view.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SurfaceAlt))
	m.logs.view.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logs.view.GotoBottom()
	}
}

// renderLogs renders the bordered log pane.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)
	title := bg.Render("Diagnostic log", styles.AccentText.Bold(true))
	if m.logFile != "" {
		title += bg.Render("  "+m.logFile, styles.FaintText)
	}
	title = ansi.Truncate(title, m.logs.view.Width, "…")

	height := m.logPaneHeight() - styles.LogBox.GetVerticalBorderSize()
	return styles.LogBox.
		Width(max(m.width-styles.LogBox.GetHorizontalBorderSize(), 1)).
		Height(height).
		MaxHeight(m.logPaneHeight()).
		Render(title + "\n" + m.logs.view.View())
}

// renderLogContent colors each entry by its level.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)
	width := max(m.logs.view.Width, 1)

	switch {
	case errors.Is(m.logs.err, errNoLogFile):
		return bg.Render("No log file configured", styles.MutedText)
	case m.logs.err != nil:
		return bg.Render(ansi.Truncate(fmt.Sprintf("Could not read log: %v", m.logs.err), width, "…"), styles.DangerText)
	case len(m.logs.lines) == 0:
		return bg.Render("No log entries", styles.MutedText)
	}

	rendered := make([]string, len(m.logs.lines))
	for i, line := range m.logs.lines {
		rendered[i] = bg.Render(ansi.Truncate(line, width, "…"), logLineStyle(line, styles))
	}
	return strings.Join(rendered, "\n")
}

func logLineStyle(line string, styles Styles) lipgloss.Style {
	level, ok := logging.LevelOf(line)
	if !ok {
		return styles.MutedText
	}
	switch {
	case level <= logrus.ErrorLevel:
		return styles.DangerText
	case level == logrus.WarnLevel:
		return styles.WarningText
	case level == logrus.InfoLevel:
		return styles.Text
	default:
		return styles.FaintText
	}
}

func (m Model) logCountLabel() string {
	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	return fmt.Sprintf("%d log lines  follow %s", len(m.logs.lines), follow)
}
