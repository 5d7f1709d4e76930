// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateRunes cuts s to at most maxRunes runes and appends marker when
// anything was removed. The marker does not count toward maxRunes.
func TruncateRunes(s string, maxRunes int, marker string) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + marker
}

// TruncateWidth cuts s to a display width, ending in "..." when shortened.
// Double-width characters count as two columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Wrap breaks each line of text at word boundaries so no line is wider
// than width columns. Words wider than width are split. Existing line
// breaks are kept; runs of spaces inside a line collapse to one.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		cur := 0
		for _, word := range strings.Fields(line) {
			for _, chunk := range splitWidth(word, width) {
				w := runewidth.StringWidth(chunk)
				switch {
				case cur == 0:
				case cur+1+w <= width:
					b.WriteByte(' ')
					cur++
				default:
					b.WriteByte('\n')
					cur = 0
				}
				b.WriteString(chunk)
				cur += w
			}
		}
	}
	return b.String()
}

// splitWidth cuts word into pieces no wider than width. A single glyph
// wider than width becomes its own piece.
func splitWidth(word string, width int) []string {
	if runewidth.StringWidth(word) <= width {
		return []string{word}
	}
	var parts []string
	cur, curWidth := []rune{}, 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if curWidth+rw > width && len(cur) > 0 {
			parts = append(parts, string(cur))
			cur, curWidth = cur[:0:0], 0
		}
		cur = append(cur, r)
		curWidth += rw
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}
