// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/agentchat/internal/ui/styles"
	"github.com/jeranaias/agentchat/internal/util"
)

// Header renders the title bar: the product name and the service URL.
func Header(title, subtitle string, width int, theme *styles.Theme) string {
	text := theme.HeaderTitle.Render(title)
	if subtitle != "" {
		room := width - util.StringWidth(title) - 5
		if room > 3 {
			text += "  " + theme.HeaderSubtitle.Render(util.TruncateWidth(subtitle, room))
		}
	}
	return theme.Header.Width(width).Render(text)
}
