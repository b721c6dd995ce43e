package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Badge identifies a header badge.
type Badge int

const (
	BadgeCompose Badge = iota
	BadgeEdit
	BadgeSaving
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // behind overlays
	Surface    string // header and command bar

	Text  string
	Muted string
	Faint string

	Accent      string
	Border      string
	BorderFocus string

	Selection     string
	SelectionText string

	Success string
	Warning string
	Danger  string

	// Mode badges
	Compose string
	Edit    string
	Saving  string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	badges     [3]string
	background string
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: fg(t.Muted).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Logo: fg(t.Accent).Bold(true),
		Selected: fg(t.SelectionText).
			Background(lipgloss.Color(t.Selection)),

		badges:     [3]string{t.Compose, t.Edit, t.Saving},
		background: t.Background,
	}
}

// BadgeStyle returns the pill style for a header badge.
func (s Styles) BadgeStyle(b Badge) lipgloss.Style {
	color := ""
	if int(b) >= 0 && int(b) < len(s.badges) {
		color = s.badges[b]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

// WithBackground paints every text style onto bg so header segments do not
// fall back to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Border:     "#39506d", BorderFocus: "#719cd6",
		Selection: "#2b3b51", SelectionText: "#cdcecf",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d",
		Compose: "#81b29a", Edit: "#dbc074", Saving: "#63cdcf",
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		Text:       "#DCD7BA",
		Muted:      "#C8C093",
		Faint:      "#727169",
		Accent:     "#7E9CD8",
		Border:     "#54546D", BorderFocus: "#7E9CD8",
		Selection: "#2D4F67", SelectionText: "#DCD7BA",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876",
		Compose: "#98BB6C", Edit: "#E6C384", Saving: "#7FB4CA",
	},
	// Tailwind slate/sky
	"Slate": {
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Border:     "#334155", BorderFocus: "#38bdf8",
		Selection: "#0284c7", SelectionText: "#f8fafc",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444",
		Compose: "#22c55e", Edit: "#f59e0b", Saving: "#06b6d4",
	},
}

// GetTheme returns the named theme, or Nightfox when the name is unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in cycle order.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists themes in cycle order.
func ThemeNames() []string {
	return themeOrder
}
