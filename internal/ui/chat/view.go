// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/agentchat/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View implements tea.Model.
// Layout: header + viewport + [attachment line] + input box + status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := components.Header("agentchat", m.target, m.width, m.theme)

	var body string
	if m.showHelp {
		body = m.renderHelp()
	} else {
		body = m.viewport.View()
	}

	parts := []string{header, body}
	if line := components.AttachmentIndicator(m.surf.attachment, m.width, m.theme); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.renderInput(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInput() string {
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	return m.theme.InputContainer.Width(width).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	bar := components.NewStatusBar(m.theme)
	bar.Width = m.width
	bar.Status = m.status
	if m.ctrl.Busy() {
		bar.Status = components.StatusWaiting
	}
	bar.Target = m.target
	bar.Notice = m.notice
	bar.Elapsed = m.spinner.Elapsed()
	return bar.View()
}

func (m Model) renderHelp() string {
	items := append([]components.HelpItem{}, Commands...)
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		items = append(items, components.HelpItem{Key: h.Key, Description: h.Desc})
	}
	items = append(items, components.HelpItem{
		Key:         strings.Join(keyNames(m.keyMap.Up, m.keyMap.Down), "/"),
		Description: "scroll one line",
	})

	text := components.HelpView(items, m.width, m.theme)
	text += "\n\n" + m.theme.Help.Render("Esc or Enter to close")

	// Pad to the viewport height so the input stays anchored.
	lines := strings.Count(text, "\n") + 1
	if h := m.viewportHeight(); lines < h {
		text += strings.Repeat("\n", h-lines)
	}
	return text
}

func keyNames(bindings ...key.Binding) []string {
	names := make([]string, 0, len(bindings))
	for _, b := range bindings {
		names = append(names, b.Help().Key)
	}
	return names
}
