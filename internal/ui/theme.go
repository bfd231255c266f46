package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Deepest shade, text on accent buttons
	Surface    string // Title bar and footer
	SurfaceAlt string // Search box

	// List colors
	SelectionBg   string // Cursor row background
	SelectionText string // Cursor row text
	PulseBg       string // Row background while its pulse is expanded

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Button: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		LogBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Padding(0, 1),

		Pulse: lipgloss.NewStyle().
			Background(lipgloss.Color(t.PulseBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Title     lipgloss.Style
	Button    lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	SearchBox lipgloss.Style
	LogBox    lipgloss.Style

	// List rows
	Row      lipgloss.Style
	Selected lipgloss.Style
	Pulse    lipgloss.Style
}

// Theme definitions

const defaultThemeName = "Blossom"

var themes = map[string]Theme{
	"Blossom":  blossomTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Blossom", "Nightfox", "Slate"}

// GetTheme returns a theme by name, falling back to Blossom.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return blossomTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func blossomTheme() Theme {
	// Pink reading-app palette
	return Theme{
		Name: "Blossom",

		Background: "#1F1520",
		Surface:    "#2B1D2C",
		SurfaceAlt: "#362538",

		SelectionBg:   "#8E3B6B",
		SelectionText: "#FFF0F6",
		PulseBg:       "#D6336C", // pink-7

		Border:      "#5C3A57",
		BorderFocus: "#F783AC", // pink-4

		Text:    "#FFF0F6", // pink-0
		Muted:   "#C9A3B8",
		Faint:   "#7D5E72",
		Accent:  "#F06595", // pink-5
		Warning: "#FFA94D",
		Danger:  "#FF6B6B",
	}
}

func nightfoxTheme() Theme {
	// EdenEast/nightfox.nvim palette
	return Theme{
		Name: "Nightfox",

		Background: "#131A24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212E3F", // bg2

		SelectionBg:   "#2B3B51", // sel0
		SelectionText: "#CDCECF", // fg1
		PulseBg:       "#3C5372", // sel1

		Border:      "#39506D",
		BorderFocus: "#719CD6", // blue

		Text:    "#CDCECF", // fg1
		Muted:   "#AEAFB0", // fg2
		Faint:   "#738091", // comment
		Accent:  "#C94F6D", // red
		Warning: "#DBC074", // yellow
		Danger:  "#C94F6D", // red
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		PulseBg:       "#0ea5e9", // sky-500

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
	}
}
