// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner animates the placeholder entry and tracks how long it has run.
type Spinner struct {
	spinner   spinner.Model
	startTime time.Time
	active    bool
}

// NewSpinner creates a spinner using cfg.
func NewSpinner(cfg styles.SpinnerConfig) Spinner {
	s := spinner.New()
	s.Spinner = cfg.Bubble()
	return Spinner{spinner: s}
}

// Start activates the spinner and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are ignored.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s Spinner) Active() bool {
	return s.active
}

// Update advances the animation. Ticks arriving while stopped end the loop.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current animation frame, or "" when stopped.
func (s Spinner) Frame() string {
	if !s.active {
		return ""
	}
	return s.spinner.View()
}

// Elapsed returns the running time formatted for the status bar.
func (s Spinner) Elapsed() string {
	if !s.active {
		return ""
	}
	return formatElapsed(time.Since(s.startTime))
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
