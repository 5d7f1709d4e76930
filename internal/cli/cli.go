// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies the top-level action.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdServe:
		return "serve"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// =============================================================================
// ARGS
// =============================================================================

// Args holds everything parsed from the command line.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	URL        string
	ConfigPath string

	// ask
	Query string
	File  string
	JSON  bool

	// serve
	Addr      string
	UploadDir string
	Model     string
	OllamaURL string

	// config
	Subcommand string
	Force      bool

	// Unknown holds an unrecognised command name (Parse returns CmdHelp).
	Unknown string

	// Raw is the command's own argument list with global flags removed.
	Raw []string
}

const usageText = `agentchat - chat with a document-aware agent

Usage:
  agentchat                      Start the TUI (default)
  agentchat ask [options] "msg"  Send one message and print the reply
  agentchat chat                 Interactive line-mode chat
  agentchat serve [options]      Run the chat backend
  agentchat config [sub]         Configuration (show|path|init|get <key>|keys)
  agentchat version              Show version
  agentchat help                 Show this help

Global options:
  --url <origin>      Chat service origin (default from config)
  --config <path>     Config file (default ~/.agentchat/config.toml)
  -v, --verbose       Log every request
  -q, --quiet         Print only replies

Ask options:
  -f, --file <path>   Upload this file with the message
  --json              Print the raw service response as JSON

Serve options:
  --addr <host:port>  Listen address
  --upload-dir <dir>  Where uploads are stored
  --model <name>      Ollama model
  --ollama-url <url>  Ollama server

Config init options:
  --force             Overwrite an existing file

Version: %s
`

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "agentchat version %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n  built:  %s\n  go:     %s\n", GitCommit, BuildDate, runtime.Version())
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	var args Args
	rest := parseGlobalFlags(argv, &args)

	if len(rest) == 0 {
		return CmdTUI, args
	}

	name, sub := rest[0], rest[1:]
	args.Raw = sub

	switch strings.ToLower(name) {
	case "ask", "a":
		parseAskArgs(sub, &args)
		return CmdAsk, args
	case "chat", "c":
		return CmdChat, args
	case "serve", "server":
		parseServeArgs(sub, &args)
		return CmdServe, args
	case "config", "cfg":
		p := NewArgParser(sub, "force")
		args.Subcommand = p.Subcommand()
		args.Force = p.BoolFlag("force")
		args.Raw = p.PositionalFrom(0)
		return CmdConfig, args
	case "version", "--version", "-V":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	case "tui":
		return CmdTUI, args
	}

	args.Unknown = name
	return CmdHelp, args
}

// parseGlobalFlags pulls the global flags out of argv wherever they appear
// and returns what is left.
func parseGlobalFlags(argv []string, args *Args) []string {
	rest := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			rest = append(rest, argv[i:]...)
			break
		}

		name, value, hasValue := strings.Cut(arg, "=")
		takeValue := func() (string, bool) {
			if hasValue {
				return value, true
			}
			if i+1 < len(argv) {
				i++
				return argv[i], true
			}
			return "", false
		}

		switch name {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--url":
			if v, ok := takeValue(); ok {
				args.URL = v
			}
		case "--config":
			if v, ok := takeValue(); ok {
				args.ConfigPath = v
			}
		default:
			rest = append(rest, arg)
		}
	}
	return rest
}

func parseAskArgs(sub []string, args *Args) {
	p := NewArgParser(sub, "json")
	args.File = p.Flag("file", "f")
	args.JSON = p.BoolFlag("json")
	args.Query = strings.TrimSpace(strings.Join(p.PositionalFrom(0), " "))
}

func parseServeArgs(sub []string, args *Args) {
	p := NewArgParser(sub)
	args.Addr = p.Flag("addr")
	args.UploadDir = p.Flag("upload-dir")
	args.Model = p.Flag("model")
	args.OllamaURL = p.Flag("ollama-url")
}
