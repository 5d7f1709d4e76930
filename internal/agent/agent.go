// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jeranaias/agentchat/internal/ollama"
)

// LLM is the model backend. *ollama.Client satisfies it.
type LLM interface {
	Chat(ctx context.Context, model string, messages []ollama.Message) (*ollama.ChatResponse, error)
	ChatJSON(ctx context.Context, model string, messages []ollama.Message) (*ollama.ChatResponse, error)
}

// Request is one chat turn as received by the server.
type Request struct {
	Message  string
	FilePath string
}

// Result is the outcome of a turn.
type Result struct {
	Response         string
	Action           string
	Intent           Intent
	ExtractedContent string
}

// Agent runs turns against an LLM. It holds no per-turn state and is safe
// for concurrent use.
type Agent struct {
	llm       LLM
	model     string
	extractor *Extractor
	timeout   time.Duration
	logger    *log.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel selects the model name passed to the LLM.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// WithExtractor replaces the default extractor.
func WithExtractor(x *Extractor) Option {
	return func(a *Agent) {
		if x != nil {
			a.extractor = x
		}
	}
}

// WithTimeout bounds each LLM call.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) { a.timeout = d }
}

// WithLogger sets the logger for turn events.
func WithLogger(l *log.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// New creates an agent.
func New(llm LLM, opts ...Option) *Agent {
	a := &Agent{llm: llm, extractor: &Extractor{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one turn: extract, classify, then clarify or execute.
func (a *Agent) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	content, err := a.extractor.Extract(req.FilePath, req.Message)
	if err != nil {
		return nil, err
	}

	cls, err := a.classify(ctx, req.Message, content)
	if err != nil {
		return nil, err
	}

	res := &Result{Intent: cls.Intent, ExtractedContent: content}
	if cls.Intent == IntentAmbiguous {
		res.Response = cls.MissingInfo
		if res.Response == "" {
			res.Response = defaultClarification
		}
		res.Action = ActionAskClarification
	} else {
		reply, err := a.execute(ctx, cls.Intent, req.Message, content)
		if err != nil {
			return nil, err
		}
		res.Response = reply
		res.Action = string(cls.Intent)
	}

	a.logf("AGENT_TURN | intent=%s action=%s extracted_chars=%d reply_chars=%d duration=%.3fs",
		res.Intent, res.Action, len(content), len(res.Response), time.Since(start).Seconds())
	return res, nil
}

func (a *Agent) classify(ctx context.Context, message, content string) (Classification, error) {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	resp, err := a.llm.ChatJSON(ctx, a.model, []ollama.Message{
		ollama.NewSystemMessage(classifyPrompt),
		ollama.NewUserMessage(turnPrompt("", message, content)),
	})
	if err != nil {
		return Classification{}, fmt.Errorf("intent classification failed: %w", err)
	}
	return ParseClassification(resp.Message.Content), nil
}

func (a *Agent) execute(ctx context.Context, intent Intent, message, content string) (string, error) {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	resp, err := a.llm.Chat(ctx, a.model, []ollama.Message{
		ollama.NewUserMessage(turnPrompt(Instruction(intent), message, content)),
	})
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

func (a *Agent) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// turnPrompt formats the user turn. An empty task is omitted.
func turnPrompt(task, message, content string) string {
	var b strings.Builder
	if task != "" {
		b.WriteString("Task: " + task + "\n")
	}
	b.WriteString("User: " + message + "\n")
	b.WriteString("Content: " + content)
	return b.String()
}

func (a *Agent) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}
