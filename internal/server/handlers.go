// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeranaias/agentchat/internal/agent"
)

// ============================================================================
// REQUEST AND RESPONSE TYPES
// ============================================================================

// ChatRequest is the /api/chat request body.
type ChatRequest struct {
	Message  string  `json:"message"`
	FilePath *string `json:"file_path"`
}

// ChatResponse is the /api/chat response body.
type ChatResponse struct {
	Response         string  `json:"response"`
	Action           string  `json:"action"`
	ExtractedContent *string `json:"extracted_content"`
}

// UploadResponse is the /api/upload response body.
type UploadResponse struct {
	FileName    string `json:"filename"`
	FilePath    string `json:"filepath"`
	ContentType string `json:"content_type"`
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		switch {
		case isBodyTooLarge(err):
			detail(c, http.StatusRequestEntityTooLarge, s.tooLargeMessage())
		case errors.Is(err, http.ErrMissingFile):
			detail(c, http.StatusBadRequest, "missing form field: file")
		default:
			detail(c, http.StatusBadRequest, "invalid multipart form")
		}
		return
	}
	if fh.Size > s.cfg.MaxUploadBytes() {
		detail(c, http.StatusRequestEntityTooLarge, s.tooLargeMessage())
		return
	}

	stored, err := storeUpload(s.cfg.UploadDir, fh)
	if err != nil {
		s.logger.Printf("UPLOAD_FAILED | name=%q error=%v", fh.Filename, err)
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Printf("UPLOAD_STORED | name=%q bytes=%d path=%s", stored.Name, fh.Size, stored.Path)
	c.JSON(http.StatusOK, UploadResponse{
		FileName:    stored.Name,
		FilePath:    stored.Path,
		ContentType: fh.Header.Get("Content-Type"),
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			detail(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		detail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	turn := agent.Request{Message: req.Message}
	if req.FilePath != nil {
		turn.FilePath = strings.TrimSpace(*req.FilePath)
	}

	res, err := s.runner.Run(c.Request.Context(), turn)
	if err != nil {
		s.logger.Printf("CHAT_FAILED | error=%v", err)
		detail(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := ChatResponse{Response: res.Response, Action: res.Action}
	if res.ExtractedContent != "" {
		extracted := res.ExtractedContent
		out.ExtractedContent = &extracted
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     Version,
		"uptime_secs": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("file exceeds the %d MB upload limit", s.cfg.MaxUploadMB)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
