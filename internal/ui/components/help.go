// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/agentchat/internal/ui/styles"
	"github.com/jeranaias/agentchat/internal/util"
)

// HelpItem is one line of the command reference.
type HelpItem struct {
	Key         string
	Description string
}

// HelpView renders items as an aligned two-column list wrapped to width.
func HelpView(items []HelpItem, width int, theme *styles.Theme) string {
	keyWidth := 0
	for _, it := range items {
		if w := util.StringWidth(it.Key); w > keyWidth {
			keyWidth = w
		}
	}

	descWidth := width - keyWidth - 4
	if descWidth < 20 {
		descWidth = 20
	}

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		pad := strings.Repeat(" ", keyWidth-util.StringWidth(it.Key))
		lines := strings.Split(util.Wrap(it.Description, descWidth), "\n")
		b.WriteString("  " + theme.InputPrompt.Render(it.Key) + pad + "  " + lines[0])
		for _, l := range lines[1:] {
			b.WriteString("\n" + strings.Repeat(" ", keyWidth+4) + l)
		}
	}
	return theme.Help.Render(b.String())
}
