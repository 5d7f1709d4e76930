// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a chat transcript to a file.
//
// Three formats are supported, chosen by file extension:
//
//   - .html, .htm: standalone document with embedded CSS. Bot replies are
//     rendered from markdown and sanitized; user text and extracted content
//     are escaped and shown verbatim.
//   - .json: the settled entries as a JSON array.
//   - anything else: Markdown. User text and extracted content are fenced
//     so viewers do not interpret them.
//
// Placeholder entries are never exported.
//
//	path, err := export.ToFile(transcript.Settled(), "chat.html", nil)
package export
