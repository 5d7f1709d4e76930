// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for agentchat.
//
// Configuration is stored as TOML, with sensible defaults, environment
// variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ClientConfig: Chat service location and request timeout
//   - UIConfig: Rendering and terminal settings
//   - ServerConfig: Companion backend settings used by "agentchat serve"
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (AGENTCHAT_*)
//   - ~/.agentchat/config.toml, or the file given with --config
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reload on change:
//
//	stop, err := config.Watch(path, func(cfg *config.Config, err error) { ... })
package config
