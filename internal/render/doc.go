// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render converts transcript text into surface-safe output.
//
// Every surface gets two paths: Markdown, used only for the server's reply
// text, and Literal, used for everything else (user input, error text,
// extracted document text). Literal output is never interpreted as markup.
//
// Two renderers are provided:
//
//   - Terminal: glamour for markdown, ANSI/control stripping for literals
//   - HTML: goldmark + bluemonday for markdown, html escaping for literals,
//     chroma class-based highlighting for fenced code
package render
