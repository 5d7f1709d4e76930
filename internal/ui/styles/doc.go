// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the agentchat TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

	UserBubbleFg / UserBubbleBorder           - user entries
	AssistantBubbleFg / AssistantBubbleBorder - bot entries
	ErrorFg / ErrorBorder                     - "Error: ..." entries
	PanelBorder                               - extracted-content panels

# Theme System (theme.go)

	theme := styles.NewTheme()
	bubble := theme.BubbleStyle(entry.Role, entry.IsError)

# Spinners (spinner.go)

	PlaceholderSpinner - animation shown next to the "Thinking..." entry
*/
package styles
