package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderFooter renders the book count and key help. f1 expands the help to
// the full key list under the count line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	h := m.help
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	h.Styles.FullKey = styles.AccentText
	h.Styles.FullDesc = styles.MutedText
	h.Styles.FullSeparator = styles.FaintText

	footer := styles.Footer.Width(max(m.width, 1))
	inner := max(m.width-styles.Footer.GetHorizontalPadding(), 1)
	count := m.countLabel()
	if h.ShowAll {
		h.Width = inner
		return footer.Render(count + "\n" + h.FullHelpView(m.keys.FullHelp()))
	}
	h.Width = max(inner-lipgloss.Width(count)-2, 1)
	return footer.Render(count + "  " + h.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) countLabel() string {
	if m.logs.open {
		return m.logCountLabel()
	}
	if m.snap.Loading() {
		return "loading"
	}
	total := len(m.snap.Books)
	shown := len(m.snap.Filtered)
	if shown == total {
		return fmt.Sprintf("%s books", humanize.Comma(int64(total)))
	}
	return fmt.Sprintf("%s of %s books", humanize.Comma(int64(shown)), humanize.Comma(int64(total)))
}
