package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Villa717/sf241--react--restapi/internal/workflow"
)

// renderHeader renders the status bar: logo, host, count, mode badge,
// refresh time and either the last error or a flash message.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("postdeck", styles.Logo)}
	if m.width >= LayoutCompactWidth && m.apiHost != "" {
		parts = append(parts, bg.Render(m.apiHost, styles.MutedText))
	}

	count := "loading"
	if m.snapshot.Loaded {
		count = fmt.Sprintf("%d posts", m.snapshot.Len())
	}
	parts = append(parts, bg.Render(count, styles.Text))
	parts = append(parts, m.modeBadge(styles))

	if m.state.Pending > 0 {
		parts = append(parts, styles.BadgeStyle(BadgeSaving).Render("SAVING"))
	}

	if m.width >= LayoutCompactWidth && m.snapshot.Loaded {
		parts = append(parts, bg.Render("loaded "+humanizeDuration(m.now.Sub(m.snapshot.LoadedAt)), styles.FaintText))
	}

	left := strings.Join(parts, sep)
	room := m.width - lipgloss.Width(left) - 4

	switch {
	case m.state.LastError != nil && room > 8:
		left += sep + bg.Render(truncate(singleLine(m.state.LastError.Error()), room), styles.DangerText)
	case m.flash != "" && room > 8:
		left += sep + bg.Render(truncate(m.flash, room), styles.SuccessText)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(left)
}

// modeBadge shows COMPOSE or EDIT #id.
func (m Model) modeBadge(styles Styles) string {
	if edit, ok := m.state.Draft.(workflow.EditDraft); ok {
		return styles.BadgeStyle(BadgeEdit).Render(fmt.Sprintf("EDIT #%d", edit.Post.ID))
	}
	return styles.BadgeStyle(BadgeCompose).Render("COMPOSE")
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.currentView == ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Refresh"},
			{"esc", "Posts"},
			{"?", "More"},
		}
	case m.focus != focusList:
		escLabel := "List"
		if m.state.Mode() == workflow.ModeEditing {
			escLabel = "Cancel edit"
		}
		commands = []cmd{
			{"ctrl+s", "Save"},
			{"tab", "Next field"},
			{"esc", escLabel},
		}
	default:
		commands = []cmd{
			{"n", "New"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"j/k", "Navigate"},
			{"l", "Activity"},
			{"tab", "Form"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
