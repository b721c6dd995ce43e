package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// initActivityViewport initializes the activity viewport.
func (m *Model) initActivityViewport() {
	m.activityViewport = viewport.New(maxInt(m.width-4, 1), maxInt(m.height-ChromeHeight-3, 1))
	m.activityViewport.Style = lipgloss.NewStyle()
}

// updateActivityViewport resizes the viewport and re-renders its content,
// keeping the view pinned to the newest entry.
func (m *Model) updateActivityViewport() {
	if m.activityViewport.Width == 0 {
		m.initActivityViewport()
	}
	// Box height = m.height - 2 (header, cmdbar)
	// Box inner = box height - 2 (borders) - 1 (title)
	m.activityViewport.Width = maxInt(m.width-4, 1)
	m.activityViewport.Height = maxInt(m.height-ChromeHeight-3, 1)

	atBottom := m.activityViewport.AtBottom()
	m.activityViewport.SetContent(m.renderActivityContent())
	if atBottom {
		m.activityViewport.GotoBottom()
	}
}

// renderActivity renders the activity view.
func (m Model) renderActivity() string {
	title := "Activity"
	if m.logPath != "" {
		title = fmt.Sprintf("Activity (%s)", truncate(m.logPath, maxInt(m.width-16, 10)))
	}
	return m.renderBox(title, m.activityViewport.View(), m.width, m.height-ChromeHeight, true)
}

func (m Model) renderActivityContent() string {
	styles := m.theme.Styles()
	if m.activityErr != nil {
		return styles.DangerText.Render("read log: " + m.activityErr.Error())
	}
	if len(m.activityEntries) == 0 {
		return styles.MutedText.Render("No activity yet.")
	}

	width := m.activityViewport.Width
	lines := make([]string, 0, len(m.activityEntries))
	for _, e := range m.activityEntries {
		line := truncate(e.Summary(), width)
		lines = append(lines, m.levelStyle(e.Level, styles).Render(line))
	}
	return strings.Join(lines, "\n")
}

// levelStyle returns the style for a log level.
func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToLower(level) {
	case "info":
		return styles.Text
	case "warn":
		return styles.WarningText
	case "error", "fatal", "panic":
		return styles.DangerText
	case "debug", "trace":
		return styles.FaintText
	default:
		return styles.MutedText
	}
}
