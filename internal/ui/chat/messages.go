// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/session"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// ReplyMsg carries the result of a submission's network exchange.
type ReplyMsg struct {
	Outcome session.Outcome
}

// AttachmentLoadedMsg reports a file read for /attach.
type AttachmentLoadedMsg struct {
	Path       string
	Attachment *model.Attachment
	Err        error
}

// ExportDoneMsg reports the result of /export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// NoticeMsg sets the status bar notice.
type NoticeMsg struct {
	Text string
}
