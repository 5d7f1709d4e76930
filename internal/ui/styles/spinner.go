// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerConfig describes a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    time.Duration
}

// BrailleSpinner is a smooth 10-frame spinner.
var BrailleSpinner = SpinnerConfig{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    80 * time.Millisecond,
}

// DotsSpinner is used when the terminal cannot draw braille.
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    200 * time.Millisecond,
}

// Duration returns the length of one full cycle.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Duration(len(s.Frames)) * s.FPS
}

// Bubble converts the config to a bubbles spinner definition.
func (s SpinnerConfig) Bubble() spinner.Spinner {
	return spinner.Spinner{Frames: s.Frames, FPS: s.FPS}
}

// PlaceholderSpinner is the animation shown next to the placeholder entry.
var PlaceholderSpinner = BrailleSpinner
