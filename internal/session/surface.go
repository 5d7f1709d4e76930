// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/model"
)

// Surface is where the controller shows its results.
// All methods are called from the goroutine that calls Begin and Finish.
type Surface interface {
	// Append adds an entry to the end of the transcript.
	Append(e model.Entry)
	// Remove deletes the placeholder entry with the given id.
	Remove(id string) bool
	// SetAttachment shows the pending file name; an empty name hides it.
	SetAttachment(name string)
	// ClearInput empties the message input.
	ClearInput()
	// ScrollToEnd brings the newest entry into view.
	ScrollToEnd()
}

// ChatService is the network side of a submission. *api.Client satisfies it.
type ChatService interface {
	Upload(ctx context.Context, att *model.Attachment) (*api.UploadResult, error)
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// TranscriptSurface adapts a *model.Transcript to Surface for callers that
// render the transcript themselves.
type TranscriptSurface struct {
	Transcript *model.Transcript
	Attachment string
}

// NewTranscriptSurface wraps t, creating a transcript when t is nil.
func NewTranscriptSurface(t *model.Transcript) *TranscriptSurface {
	if t == nil {
		t = model.NewTranscript()
	}
	return &TranscriptSurface{Transcript: t}
}

func (s *TranscriptSurface) Append(e model.Entry)      { s.Transcript.Append(e) }
func (s *TranscriptSurface) Remove(id string) bool     { return s.Transcript.Remove(id) }
func (s *TranscriptSurface) SetAttachment(name string) { s.Attachment = name }
func (s *TranscriptSurface) ClearInput()               {}
func (s *TranscriptSurface) ScrollToEnd()              {}
