// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/session"
	"github.com/jeranaias/agentchat/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.spinner.Active() {
			m.refresh()
		}
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case AttachmentLoadedMsg:
		return m.handleAttachmentLoaded(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.notice = "export failed: " + msg.Err.Error()
		} else {
			m.notice = "exported to " + msg.Path
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case NoticeMsg:
		m.notice = msg.Text
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays the view out for the new window size and re-renders
// markdown bodies at the new wrap width.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)

	inputWidth := m.width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	if err := m.renderer.SetWordWrap(m.wrapWidth()); err == nil {
		m.rerenderMarkdown()
	}
	m.refresh()
	return m, nil
}

// rerenderMarkdown re-renders every markdown entry from its source text.
func (m *Model) rerenderMarkdown() {
	for _, e := range m.surf.transcript.Entries() {
		if e.Format != model.FormatMarkdown {
			continue
		}
		body, ok := render.MarkdownOrLiteral(m.renderer, e.Text)
		e.Body = body
		if !ok {
			e.Format = model.FormatLiteral
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m.quit()
	}

	if m.showHelp {
		if key.Matches(msg, m.keyMap.Dismiss) || key.Matches(msg, m.keyMap.Submit) {
			m.showHelp = false
			m.refresh()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.TogglePanel):
		m.expanded = !m.expanded
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	if m.notice != "" && msg.Type == tea.KeyRunes {
		m.notice = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes the input to a slash command or to the controller.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "//") {
		m.input.Reset()
		return m.runCommand(trimmed)
	}
	if strings.HasPrefix(trimmed, "//") {
		raw = trimmed[1:]
	}

	sub, err := m.ctrl.Begin(raw)
	switch {
	case errors.Is(err, session.ErrBusy):
		m.notice = "waiting for reply; message kept"
		return m, nil
	case errors.Is(err, session.ErrEmpty), errors.Is(err, session.ErrClosed):
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.applySurface()
	m.status = components.StatusWaiting
	m.notice = ""
	spin := m.spinner.Start()
	m.refresh()
	return m, tea.Batch(exchange(m.ctrl, sub), spin)
}

// exchange runs the network phase of sub off the UI goroutine.
func exchange(ctrl *session.Controller, sub *session.Submission) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Outcome: ctrl.Exchange(context.Background(), sub)}
	}
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	m.ctrl.Finish(msg.Outcome)
	m.spinner.Stop()
	if msg.Outcome.Err != nil {
		m.status = components.StatusFailed
	} else {
		m.status = components.StatusReady
	}
	m.applySurface()
	m.refresh()
	return m, nil
}

func (m Model) handleAttachmentLoaded(msg AttachmentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = "attach failed: " + msg.Err.Error()
		return m, nil
	}
	m.ctrl.SelectAttachment(msg.Attachment)
	m.notice = ""
	m.refresh()
	return m, nil
}

// handleConfigReloaded applies UI settings from a changed config file.
// The service URL is fixed for the life of the session.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = "config reload failed: " + msg.Err.Error()
		return m, nil
	}
	if msg.Config == nil {
		return m, nil
	}
	m.cfg = msg.Config
	m.expanded = m.cfg.UI.ExpandPanels
	if err := m.renderer.SetWordWrap(m.wrapWidth()); err == nil {
		m.rerenderMarkdown()
	}
	m.notice = "config reloaded"
	m.refresh()
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	m.spinner.Stop()
	m.quitting = true
	return m, tea.Quit
}

// applySurface applies the input and scroll requests the controller made.
func (m *Model) applySurface() {
	if m.surf.clearInput {
		m.input.Reset()
		m.surf.clearInput = false
	}
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.Width = m.width
	m.viewport.Height = m.viewportHeight()
	m.viewport.SetContent(components.RenderTranscript(
		m.surf.transcript.Entries(),
		m.theme,
		components.TranscriptOptions{
			Width:         m.width,
			Expanded:      m.expanded,
			ShowTimestamp: m.cfg.UI.ShowTimestamps,
			Frame:         m.spinner.Frame(),
		},
	))
	if m.surf.scroll {
		m.viewport.GotoBottom()
		m.surf.scroll = false
	}
	m.surf.dirty = false
}

// viewportHeight is the window height minus the fixed rows:
// header, input box (3), status bar, and the attachment line when shown.
func (m Model) viewportHeight() int {
	reserved := 1 + 3 + 1
	if m.surf.attachment != "" {
		reserved++
	}
	h := m.height - reserved
	if h < 1 {
		h = 1
	}
	return h
}
