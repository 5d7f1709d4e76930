// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeranaias/agentchat/internal/agent"
	"github.com/jeranaias/agentchat/internal/config"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// MaxChatBodySize bounds the /api/chat request body (1MB).
	MaxChatBodySize = 1 * 1024 * 1024

	// multipartOverhead is allowed on top of the upload limit for form framing.
	multipartOverhead = 64 * 1024

	// Version is the server version reported by /health.
	Version = "0.1.0"
)

// Runner executes one chat turn. *agent.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, req agent.Request) (*agent.Result, error)
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the HTTP backend.
type Server struct {
	cfg     config.ServerConfig
	runner  Runner
	logger  *log.Logger
	engine  *gin.Engine
	limiter *RateLimiter
	started time.Time

	server *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server and registers its routes.
func New(cfg config.ServerConfig, runner Runner, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  log.Default(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}
	s.engine = s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		CORSMiddleware(),
	)

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	if s.limiter != nil {
		api.Use(RateLimitMiddleware(s.limiter))
	}
	api.POST("/upload", BodyLimitMiddleware(s.cfg.MaxUploadBytes()+multipartOverhead), s.handleUpload)
	api.POST("/chat", BodyLimitMiddleware(MaxChatBodySize), s.handleChat)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// ListenAndServe starts the HTTP server. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2*s.cfg.LLMTimeout() + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Printf("SERVER_START | addr=%s version=%s upload_dir=%s", s.cfg.Addr, Version, s.cfg.UploadDir)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}
