// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple is the primary accent, used for the assistant.
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan is the brand color, used for the user and commands.
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald marks success.
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose marks errors.
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber marks warnings and the pending attachment.
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"}

var ErrorFg = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FECACA"}
var ErrorBorder = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

var PanelBorder = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet holds the glyphs used in the status bar.
type StatusIndicatorSet struct {
	Success  string
	Error    string
	Pending  string
	Attached string
}

// StatusIndicators are the Unicode indicators.
var StatusIndicators = StatusIndicatorSet{
	Success:  "✓",
	Error:    "✗",
	Pending:  "…",
	Attached: "📎",
}

// ASCIIIndicators are used when the terminal has no color support.
var ASCIIIndicators = StatusIndicatorSet{
	Success:  "[OK]",
	Error:    "[ERR]",
	Pending:  "[..]",
	Attached: "[+]",
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderSuccess renders a message with the success indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Render(StatusIndicators.Success + " " + message)
}

// RenderError renders a message with the error indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a message in the warning color.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Render(message)
}

// RenderMuted renders de-emphasized text.
func RenderMuted(message string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(message)
}
