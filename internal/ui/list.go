package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Villa717/sf241--react--restapi/internal/workflow"
)

// listHeight is the outer height of the list box.
func (m Model) listHeight() int {
	return maxInt(m.height-ChromeHeight-FormHeight, MinListHeight)
}

// listRows is the number of post rows that fit in the list box.
func (m Model) listRows() int {
	return maxInt(m.listHeight()-3, 1)
}

// renderList renders the post list box.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	inner := maxInt(m.width-4, 10)
	rows := m.listRows()

	var lines []string
	switch {
	case !m.snapshot.Loaded && m.state.Pending > 0:
		lines = append(lines, styles.MutedText.Render("Loading posts..."))
	case m.snapshot.Len() == 0:
		lines = append(lines, styles.MutedText.Render("No posts. Press r to reload or n to write one."))
	default:
		editingID := int64(0)
		if edit, ok := m.state.Draft.(workflow.EditDraft); ok {
			editingID = edit.Post.ID
		}

		offset := 0
		if m.selectedRow >= rows {
			offset = m.selectedRow - rows + 1
		}
		end := offset + rows
		if end > m.snapshot.Len() {
			end = m.snapshot.Len()
		}
		for i := offset; i < end; i++ {
			post := m.snapshot.Posts[i]
			marker := " "
			if post.ID == editingID {
				marker = "*"
			}
			id := padRight(fmt.Sprintf("#%d", post.ID), 5)
			title := truncate(singleLine(post.Title), inner-8)
			row := padRight(marker+" "+id+" "+title, inner)
			if i == m.selectedRow {
				lines = append(lines, styles.Selected.Render(row))
			} else {
				lines = append(lines, styles.Text.Render(row))
			}
		}
	}

	title := "Posts"
	if m.snapshot.Len() > rows {
		title = fmt.Sprintf("Posts (%d/%d)", m.selectedRow+1, m.snapshot.Len())
	}
	return m.renderBox(title, strings.Join(lines, "\n"), m.width, m.listHeight(), m.focus == focusList)
}

// renderBox draws a rounded border with a title line above content.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	border := m.theme.Border
	titleStyle := styles.MutedText.Bold(true)
	if focused {
		border = m.theme.BorderFocus
		titleStyle = styles.AccentText.Bold(true)
	}

	body := titleStyle.Render(title) + "\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(maxInt(width-2, 1)).
		Height(maxInt(height-2, 1)).
		MaxHeight(height).
		Render(body)
}
