// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jeranaias/agentchat/internal/agent"
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/ollama"
	"github.com/jeranaias/agentchat/internal/server"
)

// shutdownTimeout bounds graceful shutdown of the backend.
const shutdownTimeout = 10 * time.Second

// =============================================================================
// SERVE COMMAND
// =============================================================================

// HandleServe runs the chat backend until SIGINT or SIGTERM.
func HandleServe(args Args) error {
	// A .env file in the working directory feeds the AGENTCHAT_* overrides.
	_ = godotenv.Load()

	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	applyServeFlags(&cfg.Server, args)
	if err := cfg.Validate(); err != nil {
		return &CommandError{Command: "serve", Action: "configure", Reason: "invalid option", Err: err, Code: ExitUsageError}
	}

	if !args.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	llm := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Server.OllamaURL,
		Timeout:      cfg.Server.LLMTimeout(),
		DefaultModel: cfg.Server.Model,
	})

	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 3*time.Second)
	if err := llm.CheckRunning(checkCtx); err != nil {
		logger.Printf("OLLAMA_UNAVAILABLE | url=%s error=%v", cfg.Server.OllamaURL, err)
	}
	cancelCheck()

	ag := agent.New(llm,
		agent.WithModel(cfg.Server.Model),
		agent.WithExtractor(&agent.Extractor{
			MaxChars: cfg.Server.MaxExtractChars,
			Root:     cfg.Server.UploadDir,
		}),
		agent.WithTimeout(cfg.Server.LLMTimeout()),
		agent.WithLogger(logger),
	)
	srv := server.New(cfg.Server, ag, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &CommandError{Command: "serve", Action: "listen", Reason: "server stopped", Err: err}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return &CommandError{Command: "serve", Action: "shutdown", Reason: "graceful shutdown failed", Err: err}
	}
	logger.Printf("SERVER_STOPPED | addr=%s", srv.Addr())
	return nil
}

// applyServeFlags lets serve flags win over the config file.
func applyServeFlags(s *config.ServerConfig, args Args) {
	if args.Addr != "" {
		s.Addr = args.Addr
	}
	if args.UploadDir != "" {
		s.UploadDir = args.UploadDir
	}
	if args.Model != "" {
		s.Model = args.Model
	}
	if args.OllamaURL != "" {
		s.OllamaURL = strings.TrimRight(args.OllamaURL, "/")
	}
}
