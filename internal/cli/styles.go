// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for banners
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// UserLabelStyle prefixes echoed user entries
	UserLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")) // Blue

	// BotLabelStyle prefixes bot entries
	BotLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("141")) // Purple

	// PanelTitleStyle heads the extracted-content block
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Underline(true)

	// ErrorStyle is used for error entries
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// MutedStyle is used for hints and the waiting placeholder
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Gray

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green
)
