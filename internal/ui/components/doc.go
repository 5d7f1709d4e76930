// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable view pieces of the agentchat TUI.

Components hold no session state. They take what to draw and a width and
return strings, so the chat model can compose them in View.

# Components

  - EntryView (entry.go): one transcript entry with its role label, bubble
    and optional extracted-content panel
  - RenderTranscript (transcript.go): every entry, separated by blank lines
  - AttachmentIndicator (attachment.go): the "Attached: <name>" line
  - StatusBar (statusbar.go): connection target, busy state, last notice
  - Header (header.go): title bar
  - HelpView (help.go): slash command reference
  - Spinner (spinner.go): placeholder animation with elapsed time
*/
package components
