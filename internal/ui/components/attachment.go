// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/agentchat/internal/ui/styles"
	"github.com/jeranaias/agentchat/internal/util"
)

// AttachmentIndicator renders the pending-attachment line, or "" when no
// file is pending.
func AttachmentIndicator(name string, width int, theme *styles.Theme) string {
	if name == "" {
		return ""
	}
	icon := theme.Indicators().Attached
	// icon, two spaces, "Attached: " and the style padding
	room := width - util.StringWidth(icon) - 13
	if room < 8 {
		room = 8
	}
	return theme.Attachment.Render(icon + " Attached: " + util.TruncateWidth(name, room))
}
