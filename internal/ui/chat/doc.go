// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive Bubble Tea surface for a chat session.
//
// The Model owns a session.Controller and implements session.Surface through
// a small pointer-backed adapter, so controller calls made from Update are
// reflected in the next View. The network exchange runs as a tea.Cmd and
// reports back with ReplyMsg.
//
// # Keys
//
//	Enter            submit (ignored while a reply is pending)
//	PgUp/PgDn Up/Dn  scroll the transcript
//	Ctrl+E           expand or collapse extracted-content panels
//	Ctrl+C Ctrl+D    quit
//
// # Commands
//
//	/attach <path>   queue a file for the next message
//	/detach          drop the queued file
//	/export <path>   write the transcript (.html, .json, else Markdown)
//	/help            show commands
//	/quit            exit
package chat
