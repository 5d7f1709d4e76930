// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/agentchat/internal/ui/styles"
	"github.com/jeranaias/agentchat/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status is the session state shown in the status bar.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusFailed
)

// String returns the display text for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusWaiting:
		return "waiting for reply"
	case StatusFailed:
		return "last request failed"
	default:
		return "unknown"
	}
}

// StatusBar is the bottom line of the TUI.
type StatusBar struct {
	Width   int
	Status  Status
	Target  string
	Notice  string
	Elapsed string
	theme   *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// View renders the status bar.
func (s *StatusBar) View() string {
	ind := s.theme.Indicators()

	var state string
	switch s.Status {
	case StatusWaiting:
		text := ind.Pending + " " + s.Status.String()
		if s.Elapsed != "" {
			text += " " + s.Elapsed
		}
		state = s.theme.StatusBusy.Render(text)
	case StatusFailed:
		state = s.theme.StatusErr.Render(ind.Error + " " + s.Status.String())
	default:
		state = s.theme.StatusIdle.Render(ind.Success + " " + s.Status.String())
	}

	left := []string{state}
	if s.Notice != "" {
		left = append(left, s.Notice)
	}
	leftText := strings.Join(left, "  ")

	right := s.theme.Help.Render("/help  " + s.Target)
	gap := s.Width - lipgloss.Width(leftText) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Drop the target before the state when narrow.
		room := s.Width - lipgloss.Width(state) - 4
		leftText = state
		if s.Notice != "" && room > 3 {
			leftText += "  " + util.TruncateWidth(s.Notice, room)
		}
		return s.theme.StatusBar.Width(s.Width).Render(leftText)
	}
	return s.theme.StatusBar.Width(s.Width).Render(leftText + strings.Repeat(" ", gap) + right)
}
