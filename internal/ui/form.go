package ui

import (
	"fmt"
	"strings"

	"github.com/Villa717/sf241--react--restapi/internal/workflow"
)

// renderForm renders the compose/edit box.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	title := "Create New Post"
	if edit, ok := m.state.Draft.(workflow.EditDraft); ok {
		title = fmt.Sprintf("Edit Post #%d", edit.Post.ID)
	}

	label := func(text string, active bool) string {
		if active {
			return styles.AccentText.Render(padRight(text, 7))
		}
		return styles.MutedText.Render(padRight(text, 7))
	}

	var b strings.Builder
	b.WriteString(label("Title", m.focus == focusTitle))
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")
	b.WriteString(label("Body", m.focus == focusBody))
	b.WriteString("\n")
	b.WriteString(m.bodyInput.View())
	b.WriteString("\n")

	hint := "ctrl+s create"
	if m.state.Mode() == workflow.ModeEditing {
		hint = "ctrl+s update  esc cancel"
	}
	b.WriteString(styles.FaintText.Render(hint))

	focused := m.focus == focusTitle || m.focus == focusBody
	return m.renderBox(title, b.String(), m.width, FormHeight, focused)
}
