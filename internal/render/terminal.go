// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// =============================================================================
// TERMINAL RENDERER
// =============================================================================

// DefaultWordWrap is the glamour wrap width used when none is configured.
const DefaultWordWrap = 80

// Terminal renders markdown with glamour and strips escape sequences from
// literal text so nothing typed by a user or a document can drive the terminal.
type Terminal struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	wordWrap int
	style    string
}

// TerminalOption configures a Terminal renderer.
type TerminalOption func(*Terminal)

// WithWordWrap sets the markdown wrap width.
func WithWordWrap(width int) TerminalOption {
	return func(t *Terminal) {
		if width > 0 {
			t.wordWrap = width
		}
	}
}

// WithStyle selects a glamour standard style ("dark", "light", "notty").
// An empty or "auto" style detects the terminal background.
func WithStyle(style string) TerminalOption {
	return func(t *Terminal) {
		t.style = style
	}
}

// NewTerminal creates a terminal renderer.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	t := &Terminal{wordWrap: DefaultWordWrap}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Terminal) build() error {
	styleOpt := glamour.WithAutoStyle()
	if t.style != "" && t.style != "auto" {
		styleOpt = glamour.WithStandardStyle(t.style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(t.wordWrap),
	)
	if err != nil {
		return err
	}
	t.renderer = r
	return nil
}

// SetWordWrap rebuilds the glamour renderer for a new width.
// Used when the terminal is resized.
func (t *Terminal) SetWordWrap(width int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width <= 0 || width == t.wordWrap {
		return nil
	}
	t.wordWrap = width
	return t.build()
}

// Markdown renders src with glamour after stripping escape sequences from it.
func (t *Terminal) Markdown(src string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out, err := t.renderer.Render(Sanitize(src))
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Literal returns src with every escape sequence and control character removed.
func (t *Terminal) Literal(src string) string {
	return Sanitize(src)
}

// Sanitize strips ANSI/OSC escape sequences and C0/C1 control characters,
// keeping newlines and tabs.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}
