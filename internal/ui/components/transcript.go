// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// TranscriptOptions controls how RenderTranscript draws entries.
type TranscriptOptions struct {
	Width         int
	Expanded      bool
	ShowTimestamp bool
	Frame         string
}

// RenderTranscript renders every entry in order, separated by blank lines.
func RenderTranscript(entries []*model.Entry, theme *styles.Theme, opts TranscriptOptions) string {
	if len(entries) == 0 {
		return ""
	}
	views := make([]string, 0, len(entries))
	for _, e := range entries {
		v := NewEntryView(e, theme)
		v.Width = opts.Width
		v.Expanded = opts.Expanded
		v.ShowTimestamp = opts.ShowTimestamp
		v.Frame = opts.Frame
		views = append(views, v.View())
	}
	return strings.Join(views, "\n\n")
}
