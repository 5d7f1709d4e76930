// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the companion HTTP backend for the chat client.
//
// # Endpoints
//
//   - POST /api/upload - multipart field "file"; stores it and returns its path
//   - POST /api/chat   - runs one agent turn for {message, file_path}
//   - GET  /health     - liveness check
//
// Failures are reported as {"detail": "<message>"}, the shape the client
// reads error reasons from.
//
// # Middleware
//
//   - Panic recovery returning 500 {"detail"}
//   - Request logging in the EVENT | key=value format
//   - Per-IP token bucket rate limiting
//   - CORS allowing any origin
//   - Request body size limits
//
// # Usage
//
//	srv := server.New(cfg.Server, agent.New(ollamaClient))
//	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
//		log.Fatal(err)
//	}
package server
