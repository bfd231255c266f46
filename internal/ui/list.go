package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/state"
)

// renderBody renders the loading indicator or the filtered list, padded to
// the list height so the footer stays at the bottom.
func (m Model) renderBody() string {
	height := m.listHeight()
	var content string
	if m.snap.Loading() {
		content = m.renderLoading()
	} else {
		content = m.renderList(height)
	}
	return lipgloss.NewStyle().
		Height(height).
		MaxHeight(height).
		Render(content)
}

func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	lines := []string{m.alignRow(styles.AccentText.Padding(0, 1)).Render("Loading...")}

	switch {
	case m.inFlight && m.snap.Failed():
		lines = append(lines, m.alignRow(styles.MutedText.Padding(0, 1)).Render("Retrying..."))
	case m.snap.Failed():
		hint := fmt.Sprintf("Could not reach the library (%d attempts). Press ctrl+r to retry.", m.snap.Failures)
		lines = append(lines, m.alignRow(styles.MutedText.Padding(0, 1)).Render(m.truncate(hint)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderList(height int) string {
	styles := m.theme.Styles()
	books := m.snap.Filtered
	if len(books) == 0 {
		return m.alignRow(styles.FaintText.Padding(0, 1)).Render("No matching books")
	}

	end := min(m.offset+height, len(books))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(books[i], i == m.cursor, styles))
	}
	return strings.Join(rows, "\n")
}

// renderRow draws one title. A row whose pulse is expanded takes the pulse
// style over the cursor style.
func (m Model) renderRow(book catalog.Book, selected bool, styles Styles) string {
	style := styles.Row
	if selected {
		style = styles.Selected
	}
	if m.pulses.peek(state.RowKey(book)).Expanded() {
		style = styles.Pulse
	}
	return m.alignRow(style).Render(m.truncate(book.Title))
}

// alignRow stretches style to the screen width and aligns it by direction.
func (m Model) alignRow(style lipgloss.Style) lipgloss.Style {
	style = style.Width(max(m.width, 1))
	if m.snap.Direction.IsRTL() {
		return style.Align(lipgloss.Right)
	}
	return style.Align(lipgloss.Left)
}

// truncate fits text to one row, leaving room for the row padding.
func (m Model) truncate(text string) string {
	return ansi.Truncate(text, max(m.width-2, 1), "…")
}
