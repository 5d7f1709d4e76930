// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/ui/chat"
)

// =============================================================================
// LOADING
// =============================================================================

// ResolveConfigPath returns --config when given, else the default path.
func ResolveConfigPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return chat.ExpandPath(args.ConfigPath), nil
	}
	return config.ConfigPath()
}

// LoadConfig loads the config file and applies the command-line overrides.
// An explicit --config path must exist.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(chat.ExpandPath(args.ConfigPath))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &CommandError{Command: "config", Action: "load", Reason: "could not read configuration", Err: err, Code: ExitConfigError}
	}

	if args.URL != "" {
		cfg.Client.URL = strings.TrimRight(args.URL, "/")
	}
	if args.Verbose {
		cfg.Client.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, &CommandError{Command: "config", Action: "validate", Reason: "invalid option", Err: err, Code: ExitUsageError}
	}

	config.SetGlobal(cfg)
	return cfg, nil
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig runs "agentchat config [show|path|init|get|keys]".
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		return toml.NewEncoder(w).Encode(cfg)

	case "path":
		path, err := ResolveConfigPath(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, path)
		return nil

	case "init":
		return initConfig(args, w)

	case "get":
		key := ""
		if len(args.Raw) > 1 {
			key = args.Raw[1]
		}
		if key == "" {
			return &ValidationError{Field: "key", Message: "usage: agentchat config get <key>"}
		}
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		v, err := cfg.Get(key)
		if err != nil {
			return &ValidationError{Field: "key", Message: err.Error()}
		}
		fmt.Fprintln(w, v)
		return nil

	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(w, k)
		}
		return nil
	}

	return &ValidationError{Field: "subcommand", Message: fmt.Sprintf("unknown config subcommand %q (show, path, init, get, keys)", args.Subcommand)}
}

func initConfig(args Args, w io.Writer) error {
	path, err := ResolveConfigPath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !args.Force {
		return &CommandError{Command: "config", Action: "init", Reason: path + " already exists (use --force to overwrite)", Code: ExitConfigError}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}
