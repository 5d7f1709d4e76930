// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the chat service.
//
// The service exposes two endpoints under the /api prefix:
//
//   - POST /api/upload - multipart upload, returns the stored file path
//   - POST /api/chat   - JSON chat request, returns the markdown reply
//
// Example:
//
//	client := api.NewClient(&api.ClientConfig{BaseURL: "http://127.0.0.1:8000"})
//	up, err := client.Upload(ctx, attachment)
//	resp, err := client.Chat(ctx, api.ChatRequest{Message: "Summarize", FilePath: &up.FilePath})
package api
