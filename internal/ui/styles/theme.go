// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/agentchat/internal/model"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// ENTRY STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	ErrorLabel     lipgloss.Style
	Timestamp      lipgloss.Style

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	Placeholder     lipgloss.Style

	PanelTitle lipgloss.Style
	PanelBody  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Attachment     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar  lipgloss.Style
	StatusBusy lipgloss.Style
	StatusIdle lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
// Call it before the Bubble Tea program starts; background detection
// queries the terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// NewThemeWithProfile creates a theme for a known color profile and
// background without querying the terminal.
func NewThemeWithProfile(profile termenv.Profile, dark bool) *Theme {
	t := &Theme{
		IsDark:       dark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.ErrorLabel = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ErrorBorder).
		Padding(0, 1).
		MarginRight(4)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		PaddingLeft(2)

	t.PanelTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.PanelBody = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderTop(false).
		BorderRight(false).
		BorderBottom(false).
		BorderForeground(PanelBorder).
		PaddingLeft(1)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Attachment = lipgloss.NewStyle().
		Foreground(Amber).
		PaddingLeft(1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusBusy = lipgloss.NewStyle().Foreground(Amber)
	t.StatusIdle = lipgloss.NewStyle().Foreground(Emerald)
	t.StatusErr = lipgloss.NewStyle().Foreground(Rose)

	t.Help = lipgloss.NewStyle().Foreground(TextMuted)
}

// BubbleStyle returns the bubble style for an entry.
func (t *Theme) BubbleStyle(role model.Role, isError bool) lipgloss.Style {
	switch {
	case isError:
		return t.ErrorBubble
	case role == model.RoleUser:
		return t.UserBubble
	default:
		return t.AssistantBubble
	}
}

// LabelStyle returns the role label style for an entry.
func (t *Theme) LabelStyle(role model.Role, isError bool) lipgloss.Style {
	switch {
	case isError:
		return t.ErrorLabel
	case role == model.RoleUser:
		return t.UserLabel
	default:
		return t.AssistantLabel
	}
}

// Indicators returns the glyph set suited to the color profile.
func (t *Theme) Indicators() StatusIndicatorSet {
	if t.ColorProfile == termenv.Ascii {
		return ASCIIIndicators
	}
	return StatusIndicators
}

// GlamourStyle resolves a configured markdown style. "auto" and "" pick
// from the detected background so glamour does not query the terminal
// while the UI owns it.
func (t *Theme) GlamourStyle(configured string) string {
	if configured != "" && configured != "auto" {
		return configured
	}
	switch {
	case t.ColorProfile == termenv.Ascii:
		return "notty"
	case t.IsDark:
		return "dark"
	default:
		return "light"
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
