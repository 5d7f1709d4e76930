// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		boolNames []string
		validate  func(*testing.T, *ArgParser)
	}{
		{
			name: "subcommand with value flag",
			args: []string{"get", "--key", "client.url"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Subcommand() != "get" {
					t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), "get")
				}
				if p.Flag("key") != "client.url" {
					t.Errorf("Flag(key) = %q, want %q", p.Flag("key"), "client.url")
				}
			},
		},
		{
			name: "equals form",
			args: []string{"--addr=:9000"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("addr") != ":9000" {
					t.Errorf("Flag(addr) = %q, want %q", p.Flag("addr"), ":9000")
				}
			},
		},
		{
			name:      "named bool flag does not consume the next word",
			args:      []string{"--json", "what", "is", "this"},
			boolNames: []string{"json"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) = false, want true")
				}
				if got := strings.Join(p.PositionalFrom(0), " "); got != "what is this" {
					t.Errorf("positionals = %q, want %q", got, "what is this")
				}
			},
		},
		{
			name:      "explicit bool value",
			args:      []string{"--json=false"},
			boolNames: []string{"json"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("json") {
					t.Error("BoolFlag(json) = true, want false")
				}
				if !p.HasFlag("json") {
					t.Error("HasFlag(json) = false, want true")
				}
			},
		},
		{
			name: "trailing flag is boolean",
			args: []string{"init", "--force"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("force") {
					t.Error("BoolFlag(force) = false, want true")
				}
			},
		},
		{
			name: "double dash ends flags",
			args: []string{"-f", "a.txt", "--", "--not-a-flag"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("f", "file") != "a.txt" {
					t.Errorf("Flag(f) = %q, want %q", p.Flag("f"), "a.txt")
				}
				if p.Positional(0) != "--not-a-flag" {
					t.Errorf("Positional(0) = %q, want %q", p.Positional(0), "--not-a-flag")
				}
			},
		},
		{
			name: "out of range positional",
			args: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Positional(3) != "" || p.PositionalCount() != 0 {
					t.Error("expected no positionals")
				}
				if p.FlagOrDefault("model", "llama3.2") != "llama3.2" {
					t.Error("FlagOrDefault did not fall back")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.boolNames...)
			tt.validate(t, p)
		})
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "no arguments starts the TUI",
			argv:    nil,
			wantCmd: CmdTUI,
		},
		{
			name:    "ask with json",
			argv:    []string{"ask", "--json", "what", "is", "this"},
			wantCmd: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if !a.JSON || a.Query != "what is this" {
					t.Errorf("JSON=%v Query=%q", a.JSON, a.Query)
				}
			},
		},
		{
			name:    "ask with file",
			argv:    []string{"ask", "-f", "notes.txt", "summarize", "this"},
			wantCmd: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.File != "notes.txt" || a.Query != "summarize this" {
					t.Errorf("File=%q Query=%q", a.File, a.Query)
				}
			},
		},
		{
			name:    "global flags anywhere",
			argv:    []string{"chat", "--url=http://example.test:8000", "-v"},
			wantCmd: CmdChat,
			validate: func(t *testing.T, a Args) {
				if a.URL != "http://example.test:8000" || !a.Verbose {
					t.Errorf("URL=%q Verbose=%v", a.URL, a.Verbose)
				}
			},
		},
		{
			name:    "config path before command",
			argv:    []string{"--config", "/tmp/agentchat.toml", "config", "path"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "/tmp/agentchat.toml" || a.Subcommand != "path" {
					t.Errorf("ConfigPath=%q Subcommand=%q", a.ConfigPath, a.Subcommand)
				}
			},
		},
		{
			name:    "serve flags",
			argv:    []string{"serve", "--addr", ":9000", "--upload-dir", "/var/uploads", "--model", "mistral"},
			wantCmd: CmdServe,
			validate: func(t *testing.T, a Args) {
				if a.Addr != ":9000" || a.UploadDir != "/var/uploads" || a.Model != "mistral" {
					t.Errorf("Addr=%q UploadDir=%q Model=%q", a.Addr, a.UploadDir, a.Model)
				}
			},
		},
		{
			name:    "config init force",
			argv:    []string{"config", "init", "--force"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "init" || !a.Force {
					t.Errorf("Subcommand=%q Force=%v", a.Subcommand, a.Force)
				}
			},
		},
		{
			name:    "version",
			argv:    []string{"version"},
			wantCmd: CmdVersion,
		},
		{
			name:    "unknown command",
			argv:    []string{"frobnicate"},
			wantCmd: CmdHelp,
			validate: func(t *testing.T, a Args) {
				if a.Unknown != "frobnicate" {
					t.Errorf("Unknown = %q", a.Unknown)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Fatalf("command = %v, want %v", cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, want := range []string{"agentchat ask", "agentchat serve", "--url", Version} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"validation", &ValidationError{Field: "key", Message: "missing"}, ExitUsageError},
		{"command with code", &CommandError{Command: "config", Action: "load", Reason: "bad", Code: ExitConfigError}, ExitConfigError},
		{"command without code", &CommandError{Command: "serve", Action: "listen", Reason: "bad"}, ExitGeneralError},
		{"reported", &ReportedError{Err: errors.New("x"), Code: ExitGeneralError}, ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}

	if !Reported(&ReportedError{Err: errors.New("x")}) {
		t.Error("Reported() = false for ReportedError")
	}
	if Reported(errors.New("x")) {
		t.Error("Reported() = true for plain error")
	}
}

// =============================================================================
// CONFIG COMMAND TESTS (config.go)
// =============================================================================

func TestHandleConfig_InitAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	args := Args{ConfigPath: path, Subcommand: "init"}

	var out bytes.Buffer
	if err := HandleConfig(args, &out); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if err := HandleConfig(args, &out); err == nil {
		t.Fatal("second init without --force should fail")
	}
	args.Force = true
	if err := HandleConfig(args, &out); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	out.Reset()
	get := Args{ConfigPath: path, URL: "http://example.test:9000/", Subcommand: "get", Raw: []string{"get", "client.url"}}
	if err := HandleConfig(get, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "http://example.test:9000" {
		t.Errorf("client.url = %q", got)
	}
}

func TestHandleConfig_PathShowKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := HandleConfig(Args{ConfigPath: path, Subcommand: "init"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("init: %v", err)
	}

	var out bytes.Buffer
	if err := HandleConfig(Args{ConfigPath: path, Subcommand: "path"}, &out); err != nil {
		t.Fatalf("path: %v", err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("path = %q, want %q", out.String(), path)
	}

	out.Reset()
	if err := HandleConfig(Args{ConfigPath: path}, &out); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out.String(), "[server]") {
		t.Errorf("show output missing [server] table:\n%s", out.String())
	}

	out.Reset()
	if err := HandleConfig(Args{Subcommand: "keys"}, &out); err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out.String(), "server.upload_dir") {
		t.Errorf("keys missing server.upload_dir:\n%s", out.String())
	}
}

func TestHandleConfig_Errors(t *testing.T) {
	var valErr *ValidationError

	err := HandleConfig(Args{Subcommand: "frob"}, &bytes.Buffer{})
	if !errors.As(err, &valErr) {
		t.Errorf("unknown subcommand: got %v, want ValidationError", err)
	}

	err = HandleConfig(Args{Subcommand: "get", Raw: []string{"get"}}, &bytes.Buffer{})
	if !errors.As(err, &valErr) {
		t.Errorf("get without key: got %v, want ValidationError", err)
	}

	_, err = LoadConfig(Args{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")})
	if ExitCode(err) != ExitConfigError {
		t.Errorf("missing explicit config: exit code %d, want %d", ExitCode(err), ExitConfigError)
	}
}
