// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/agentchat/internal/model"

// surface records controller effects for the Model to apply.
// It is held by pointer so every copy of the Model shares it.
type surface struct {
	transcript *model.Transcript
	attachment string

	clearInput bool
	scroll     bool
	dirty      bool
}

func newSurface() *surface {
	return &surface{transcript: model.NewTranscript()}
}

func (s *surface) Append(e model.Entry) {
	s.transcript.Append(e)
	s.dirty = true
}

func (s *surface) Remove(id string) bool {
	ok := s.transcript.Remove(id)
	if ok {
		s.dirty = true
	}
	return ok
}

func (s *surface) SetAttachment(name string) {
	s.attachment = name
	s.dirty = true
}

func (s *surface) ClearInput() {
	s.clearInput = true
}

func (s *surface) ScrollToEnd() {
	s.scroll = true
}
