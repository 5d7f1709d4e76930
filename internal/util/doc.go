// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the agentchat packages.
//
// # Key Functions
//
// Text:
//   - TruncateRunes: UTF-8 safe truncation with a marker
//   - TruncateWidth: truncation to a display width
//   - Wrap: word wrapping by display width
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	display := util.TruncateWidth(name, 30)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
