package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Book Reading App"

// renderHeader renders the title bar with the direction button. The button
// sits at the trailing edge for the current direction.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	title := bg.Render(appTitle, styles.Title)
	button := styles.Button.Render(m.snap.Direction.ButtonLabel())
	gap := m.headerGap(title, button)

	line := title + bg.Spaces(gap) + button
	if m.snap.Direction.IsRTL() {
		line = button + bg.Spaces(gap) + title
	}
	return styles.Header.Width(max(m.width, 1)).MaxWidth(max(m.width, 1)).Render(line)
}

// directionButtonSpan returns the [start, end) columns of the direction
// button on the title bar, matching renderHeader.
func (m Model) directionButtonSpan() (int, int) {
	styles := m.theme.Styles()
	title := lipgloss.Width(appTitle)
	button := lipgloss.Width(styles.Button.Render(m.snap.Direction.ButtonLabel()))
	pad := styles.Header.GetPaddingLeft()

	if m.snap.Direction.IsRTL() {
		return pad, pad + button
	}
	start := pad + title + m.gapWidth(title, button)
	return start, start + button
}

func (m Model) headerGap(title, button string) int {
	return m.gapWidth(lipgloss.Width(title), lipgloss.Width(button))
}

func (m Model) gapWidth(title, button int) int {
	styles := m.theme.Styles()
	inner := m.width - styles.Header.GetHorizontalPadding()
	return max(inner-title-button, 1)
}

// renderSearch renders the bordered search input, aligned by direction.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	box := styles.SearchBox.
		Width(max(m.width-2, 1)).
		MaxHeight(searchLines)
	if m.snap.Direction.IsRTL() {
		box = box.Align(lipgloss.Right)
	}
	return box.Render(m.search.View())
}
