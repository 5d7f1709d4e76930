// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/session"
	"github.com/jeranaias/agentchat/internal/ui/chat"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs "agentchat ask" against the configured service.
func HandleAsk(args Args) error {
	if args.Query == "" && args.File == "" {
		return &ValidationError{Field: "arguments", Message: `usage: agentchat ask [--file <path>] [--json] "message"`}
	}
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := newAPIClient(cfg, verboseLogger(cfg))
	tty := IsStdoutTTY()
	return runAsk(ctx, client, args, os.Stdout, tty, lineRenderer(cfg, tty && !args.JSON))
}

// runAsk performs one submission. Text mode prints the transcript as it
// forms; JSON mode prints only the raw service response.
func runAsk(ctx context.Context, service session.ChatService, args Args, out io.Writer, tty bool, renderer render.Renderer) error {
	var att *model.Attachment
	if args.File != "" {
		a, err := chat.ReadAttachment(chat.ExpandPath(args.File))
		if err != nil {
			return &CommandError{Command: "ask", Action: "attach", Reason: "could not read file", Err: err, Code: ExitUsageError}
		}
		att = a
	}

	var surface session.Surface
	if args.JSON {
		surface = session.NewTranscriptSurface(model.NewTranscript())
	} else {
		ls := newLineSurface(out, tty)
		ls.echoUser = true
		ls.quiet = args.Quiet
		surface = ls
	}

	ctrl := session.New(service, surface, renderer)
	defer ctrl.Close()
	if att != nil {
		ctrl.SelectAttachment(att)
	}

	sub, err := ctrl.Begin(args.Query)
	if err != nil {
		return err
	}
	outcome := ctrl.Exchange(ctx, sub)
	ctrl.Finish(outcome)

	if args.JSON {
		if outcome.Err != nil {
			writeJSON(out, map[string]string{"error": outcome.Err.Error()})
			return &ReportedError{Err: outcome.Err, Code: ExitGeneralError}
		}
		return writeJSON(out, outcome.Response)
	}
	if outcome.Err != nil {
		return &ReportedError{Err: outcome.Err, Code: ExitGeneralError}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
