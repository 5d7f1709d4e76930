// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// =============================================================================
// ENTRY VIEW
// =============================================================================

// EntryView renders one transcript entry.
type EntryView struct {
	Entry *model.Entry

	// Width is the space available to the entry, including margins.
	Width int

	// Expanded shows the extracted-content panel body.
	Expanded bool

	// ShowTimestamp adds the entry time after the role label.
	ShowTimestamp bool

	// Frame is the current spinner frame for placeholder entries.
	Frame string

	theme *styles.Theme
}

// NewEntryView creates an EntryView with the default width.
func NewEntryView(e *model.Entry, theme *styles.Theme) *EntryView {
	return &EntryView{Entry: e, Width: 80, theme: theme}
}

// bubbleChrome is the border and padding added around the body.
const bubbleChrome = 4

// BodyWidth returns the width available to a rendered body.
// Markdown renderers should wrap to this width.
func BodyWidth(width int) int {
	w := width - bubbleChrome - 4
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the entry.
func (v *EntryView) View() string {
	if v.Entry == nil {
		return ""
	}
	if v.Entry.Placeholder {
		return v.renderPlaceholder()
	}

	label := v.renderLabel()
	bubble := v.theme.BubbleStyle(v.Entry.Role, v.Entry.IsError).
		MaxWidth(v.Width).
		Render(v.body())

	parts := []string{label, bubble}
	if v.Entry.HasPanel() {
		parts = append(parts, v.renderPanel())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *EntryView) body() string {
	body := v.Entry.Body
	if body == "" {
		body = render.Sanitize(v.Entry.Text)
	}
	if v.Entry.Format == model.FormatLiteral {
		// Literal text is wrapped here; markdown arrives pre-wrapped.
		return lipgloss.NewStyle().Width(BodyWidth(v.Width)).Render(body)
	}
	return body
}

func (v *EntryView) renderLabel() string {
	name := v.Entry.Role.DisplayName()
	if v.Entry.IsError {
		name = "error"
	}
	label := v.theme.LabelStyle(v.Entry.Role, v.Entry.IsError).Render(name)
	if v.ShowTimestamp && !v.Entry.Timestamp.IsZero() {
		label += " " + v.theme.Timestamp.Render(v.Entry.Timestamp.Format("15:04:05"))
	}
	if v.Entry.Role == model.RoleUser {
		return lipgloss.NewStyle().MarginLeft(4).Render(label)
	}
	return label
}

func (v *EntryView) renderPlaceholder() string {
	text := render.Sanitize(v.Entry.Text)
	if v.Frame != "" {
		text = v.Frame + " " + text
	}
	return v.theme.Placeholder.Render(text)
}

func (v *EntryView) renderPanel() string {
	p := v.Entry.Extracted
	if !v.Expanded {
		lines := strings.Count(p.Text, "\n") + 1
		return v.theme.PanelTitle.Render(fmt.Sprintf("▸ %s (%d lines, ctrl+e to expand)", p.Title, lines))
	}

	// Panel text comes from uploaded documents; only sanitized text reaches
	// the terminal.
	body := p.Body
	if body == "" {
		body = render.Sanitize(p.Text)
	}
	title := v.theme.PanelTitle.Render("▾ " + p.Title)
	content := v.theme.PanelBody.Width(BodyWidth(v.Width)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}
