package ui

import "github.com/charmbracelet/lipgloss"

// Vertical layout: title bar, search box, one blank line, then the list.
const (
	// headerLines is the height of the title bar.
	headerLines = 1

	// searchLines is the height of the bordered search box.
	searchLines = 3

	// listTop is the screen row of the first list entry.
	listTop = headerLines + searchLines + 1
)

// Horizontal chrome around the search input: border plus padding.
const searchChrome = 4

// listHeight is the number of rows available to the book list.
func (m Model) listHeight() int {
	h := m.height - listTop - lipgloss.Height(m.renderFooter())
	if h < 1 {
		return 1
	}
	return h
}

// sizeSearch fits the input to the box. In RTL the input is shrunk to its
// content so the box can push it against the right edge.
func (m *Model) sizeSearch() {
	avail := m.width - searchChrome - lipgloss.Width(m.search.Prompt) - 1
	if avail < 1 {
		avail = 1
	}
	if !m.snap.Direction.IsRTL() {
		m.search.Width = avail
		return
	}

	// The placeholder is truncated to Width minus the prompt, while a typed
	// value gets the full Width after the prompt.
	if m.search.Value() == "" {
		prompt := lipgloss.Width(m.search.Prompt)
		m.search.Width = min(lipgloss.Width(m.search.Placeholder)+prompt+1, avail+prompt)
		return
	}
	m.search.Width = min(lipgloss.Width(m.search.Value())+1, avail)
}
