// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI entry points of agentchat.
//
// Commands:
//
//	agentchat                   Start the TUI (falls back to chat without a terminal)
//	agentchat ask [-f file] q   Send one message and print the reply
//	agentchat chat              Line-mode REPL
//	agentchat serve             Run the companion backend
//	agentchat config [sub]      Show, locate or initialise the config file
//	agentchat version           Print the version
//
// Every handler returns its error; main decides how to report it and which
// exit code to use.
package cli
