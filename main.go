// agentchat - a terminal client for a document-aware chat agent.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/cli"
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/ui/chat"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.HandleAsk(args)
	case cli.CmdChat:
		err = cli.RunChat(args)
	case cli.CmdServe:
		err = cli.HandleServe(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args, os.Stdout)
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
	case cli.CmdHelp:
		if args.Unknown != "" {
			fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args.Unknown)
			cli.PrintUsage(os.Stderr)
			os.Exit(cli.ExitUsageError)
		}
		cli.PrintUsage(os.Stdout)
	}

	if err != nil {
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

// =============================================================================
// TUI
// =============================================================================

// runTUI starts the Bubble Tea interface. Without a terminal on both ends
// it falls back to the line-mode REPL.
func runTUI(args cli.Args) error {
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		return cli.RunChat(args)
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	logger, closeLog := openLog()
	defer closeLog()

	// Background detection queries the terminal, so it runs before the
	// program takes over stdin.
	theme := styles.NewTheme()

	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Client.URL,
		Timeout: cfg.Client.Timeout(),
		Logger:  logger,
	})

	m := chat.New(theme, chat.Options{
		Service: client,
		Config:  cfg,
		Target:  client.BaseURL(),
		Logger:  logger,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if path, err := cli.ResolveConfigPath(args); err == nil {
		w, err := config.Watch(path, func(c *config.Config, err error) {
			p.Send(chat.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logger.Printf("CONFIG_WATCH_FAILED | path=%s error=%v", path, err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running agentchat: %w", err)
	}
	return nil
}

// openLog sends the standard logger to ~/.agentchat/agentchat.log; the
// terminal belongs to the UI while it runs.
func openLog() (*log.Logger, func()) {
	discard := log.New(io.Discard, "", 0)
	if err := config.EnsureConfigDir(); err != nil {
		return discard, func() {}
	}
	path, err := config.DataPath("agentchat.log")
	if err != nil {
		return discard, func() {}
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return discard, func() {}
	}
	return log.Default(), func() { f.Close() }
}
