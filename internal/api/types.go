// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for /api/chat.
// FilePath is encoded as null when no file was uploaded.
type ChatRequest struct {
	Message  string  `json:"message"`
	FilePath *string `json:"file_path"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// UploadResult is the response body of /api/upload.
type UploadResult struct {
	FileName    string `json:"filename,omitempty"`
	FilePath    string `json:"filepath"`
	ContentType string `json:"content_type,omitempty"`
}

// ChatResponse is the response body of /api/chat.
// Response is nil when the server omitted it or sent null.
type ChatResponse struct {
	Response         *string `json:"response"`
	Action           string  `json:"action,omitempty"`
	ExtractedContent *string `json:"extracted_content,omitempty"`
}

// Reply returns the reply text and whether one was present and non-empty.
func (r *ChatResponse) Reply() (string, bool) {
	if r == nil || r.Response == nil || *r.Response == "" {
		return "", false
	}
	return *r.Response, true
}

// Extracted returns the extracted content and whether it was non-empty.
func (r *ChatResponse) Extracted() (string, bool) {
	if r == nil || r.ExtractedContent == nil || *r.ExtractedContent == "" {
		return "", false
	}
	return *r.ExtractedContent, true
}

// errorBody covers the error shapes the server may return.
type errorBody struct {
	Detail any `json:"detail"`
	Error  any `json:"error"`
}
