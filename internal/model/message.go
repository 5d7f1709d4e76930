// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"path/filepath"
	"time"
)

// PlaceholderText is the body of the transient loading entry.
const PlaceholderText = "Thinking..."

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "you"
	case RoleBot:
		return "assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// FORMAT TYPE
// =============================================================================

// Format records which rendering path produced an entry body.
type Format string

const (
	// FormatLiteral bodies are escaped text and never interpreted as markup.
	FormatLiteral Format = "literal"
	// FormatMarkdown bodies were produced by a markdown renderer.
	FormatMarkdown Format = "markdown"
)

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Panel is the collapsible extracted-content block shown under a bot entry.
// Its body is always literal.
type Panel struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Body  string `json:"-"`
}

// Entry is one item of the transcript.
type Entry struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Text is the raw source; Body is the rendered, surface-safe form.
	Text   string `json:"text"`
	Body   string `json:"-"`
	Format Format `json:"format"`

	// Extracted is set on bot entries that carry extracted document text.
	Extracted *Panel `json:"extracted,omitempty"`

	// Placeholder marks the transient loading entry.
	Placeholder bool `json:"-"`
	// IsError marks a bot entry describing a failed submission.
	IsError bool `json:"is_error,omitempty"`
}

// HasPanel reports whether the entry carries an extracted-content panel.
func (e *Entry) HasPanel() bool {
	return e.Extracted != nil
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// Attachment is a single user-selected file waiting to be uploaded.
type Attachment struct {
	Name    string
	Content []byte
}

// NewAttachment builds an attachment named after the last element of path.
func NewAttachment(path string, content []byte) *Attachment {
	return &Attachment{
		Name:    filepath.Base(path),
		Content: content,
	}
}

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Content)
}
