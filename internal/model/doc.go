// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// This package defines the display-side domain types shared by the session
// controller, the rendering surfaces and the exporters.
//
// # Key Types
//
//   - Entry: One rendered transcript item (user, bot or placeholder)
//   - Panel: Optional extracted-content block attached to a bot entry
//   - Attachment: A single file queued for upload before a submission
//   - Transcript: Append-only, in-memory list of entries
//   - Role: Entry role enumeration (user, bot)
//
// # Usage
//
//	t := model.NewTranscript()
//	t.Append(model.Entry{ID: "e1", Role: model.RoleUser, Text: "Hello"})
//	for _, e := range t.Entries() {
//	    fmt.Println(e.Role.DisplayName(), e.Text)
//	}
package model
