// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/export"
	"github.com/jeranaias/agentchat/internal/session"
	"github.com/jeranaias/agentchat/internal/ui/chat"
)

const chatPrompt = "agentchat> "

// =============================================================================
// LINE INPUT
// =============================================================================

// ChatCLI provides input history and line editing for the REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads the saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, _ := config.DataPath("chat_history")
	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line, adding it to the history when non-empty.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes the history file with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// RunChat runs the line-mode REPL until /quit or end of input.
func RunChat(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	logger := verboseLogger(cfg)
	client := newAPIClient(cfg, logger)

	tty := IsStdoutTTY()
	surf := newLineSurface(os.Stdout, tty)
	surf.quiet = args.Quiet
	ctrl := session.New(client, surf, lineRenderer(cfg, tty), session.WithLogger(logger))
	defer ctrl.Close()

	r := &repl{ctrl: ctrl, surf: surf, out: os.Stdout, cfg: cfg, interruptible: true}

	if !args.Quiet {
		fmt.Println(TitleStyle.Render("agentchat") + " " + MutedStyle.Render(client.BaseURL()))
		fmt.Println(MutedStyle.Render("Type a message, /attach <path> to add a file, /help for commands."))
		fmt.Println()
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(chatPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println(MutedStyle.Render("(use /quit or Ctrl+D to exit)"))
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if r.handleLine(context.Background(), line) {
			return nil
		}
	}
}

// =============================================================================
// REPL
// =============================================================================

type repl struct {
	ctrl *session.Controller
	surf *lineSurface
	out  io.Writer
	cfg  *config.Config

	// interruptible lets Ctrl+C cancel the request in flight.
	interruptible bool
}

// handleLine runs one line of input and reports whether to quit.
func (r *repl) handleLine(ctx context.Context, line string) bool {
	text := strings.TrimSpace(line)
	if strings.HasPrefix(text, "/") && !strings.HasPrefix(text, "//") {
		return r.command(text)
	}
	text = strings.TrimPrefix(text, "/")

	if r.interruptible {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}

	// Failures are already on screen as an error entry.
	_ = r.ctrl.Submit(ctx, text)
	return false
}

func (r *repl) command(line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "attach", "a":
		if arg == "" {
			r.notice("usage: /attach <path>")
			return false
		}
		att, err := chat.ReadAttachment(chat.ExpandPath(arg))
		if err != nil {
			r.errorf("attach failed: %v", err)
			return false
		}
		r.ctrl.SelectAttachment(att)

	case "detach":
		if r.ctrl.Pending() == nil {
			r.notice("no attachment pending")
			return false
		}
		r.ctrl.ClearAttachment()
		r.notice("attachment cleared")

	case "export":
		if arg == "" {
			r.notice("usage: /export <path>")
			return false
		}
		opts := export.DefaultOptions()
		if r.cfg.UI.CodeStyle != "" {
			opts.CodeStyle = r.cfg.UI.CodeStyle
		}
		abs, err := export.ToFile(r.surf.transcript.Settled(), chat.ExpandPath(arg), opts)
		if err != nil {
			r.errorf("export failed: %v", err)
			return false
		}
		fmt.Fprintln(r.out, SuccessStyle.Render("exported to "+abs))

	case "help", "h", "?":
		for _, item := range chat.Commands {
			fmt.Fprintf(r.out, "  %-16s %s\n", item.Key, item.Description)
		}

	case "quit", "exit", "q":
		return true

	default:
		r.notice(fmt.Sprintf("unknown command: /%s (try /help)", name))
	}
	return false
}

func (r *repl) notice(s string) {
	fmt.Fprintln(r.out, MutedStyle.Render(s))
}

func (r *repl) errorf(format string, args ...any) {
	fmt.Fprintln(r.out, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// HELPERS
// =============================================================================

// newAPIClient builds the chat service client from the client config.
func newAPIClient(cfg *config.Config, logger *log.Logger) *api.Client {
	return api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Client.URL,
		Timeout: cfg.Client.Timeout(),
		Logger:  logger,
	})
}

// verboseLogger returns a stderr logger when client.verbose is set.
func verboseLogger(cfg *config.Config) *log.Logger {
	if !cfg.Client.Verbose {
		return nil
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}
