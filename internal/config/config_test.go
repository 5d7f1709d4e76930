// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// clearEnv unsets every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"AGENTCHAT_URL", "AGENTCHAT_TIMEOUT", "AGENTCHAT_WORD_WRAP",
		"AGENTCHAT_SERVE_ADDR", "AGENTCHAT_UPLOAD_DIR",
		"AGENTCHAT_OLLAMA_URL", "AGENTCHAT_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Client.URL)
	assert.Zero(t, cfg.Client.TimeoutSecs, "the client has no timeout unless configured")
	assert.Equal(t, time.Duration(0), cfg.Client.Timeout())
	assert.Equal(t, int64(25<<20), cfg.Server.MaxUploadBytes())
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[client]
url = "http://chat.local:9000/"
timeout_secs = 30

[ui]
theme = "dark"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://chat.local:9000", cfg.Client.URL, "trailing slash is trimmed")
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "monokai", cfg.UI.CodeStyle)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[client]\nurll = \"http://x\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.urll")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[client]\nurl = \"ftp://x\"\n[ui]\ntheme = \"neon\"\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "client.url", verrs[0].Field)
	assert.Equal(t, "ui.theme", verrs[1].Field)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Client, cfg.Client)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENTCHAT_URL", "http://env:1")
	t.Setenv("AGENTCHAT_TIMEOUT", "45s")
	t.Setenv("AGENTCHAT_WORD_WRAP", "100")
	t.Setenv("AGENTCHAT_SERVE_ADDR", ":9999")
	t.Setenv("AGENTCHAT_UPLOAD_DIR", "/var/uploads")
	t.Setenv("AGENTCHAT_OLLAMA_URL", "http://ollama:11434")
	t.Setenv("AGENTCHAT_MODEL", "qwen2.5")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://env:1", cfg.Client.URL)
	assert.Equal(t, 45, cfg.Client.TimeoutSecs)
	assert.Equal(t, 100, cfg.UI.WordWrap)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/var/uploads", cfg.Server.UploadDir)
	assert.Equal(t, "http://ollama:11434", cfg.Server.OllamaURL)
	assert.Equal(t, "qwen2.5", cfg.Server.Model)
}

func TestApplyEnvOverrides_BadValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("AGENTCHAT_TIMEOUT", "soon")
	t.Setenv("AGENTCHAT_WORD_WRAP", "wide")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Zero(t, cfg.Client.TimeoutSecs)
	assert.Zero(t, cfg.UI.WordWrap)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative timeout", func(c *Config) { c.Client.TimeoutSecs = -1 }, "client.timeout_secs"},
		{"narrow wrap", func(c *Config) { c.UI.WordWrap = 5 }, "ui.word_wrap"},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server.addr"},
		{"huge upload", func(c *Config) { c.Server.MaxUploadMB = 4096 }, "server.max_upload_mb"},
		{"zero burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
		{"bad ollama", func(c *Config) { c.Server.OllamaURL = "localhost" }, "server.ollama_url"},
		{"no model", func(c *Config) { c.Server.Model = "" }, "server.model"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "expected ValidateErrors, got %v", err)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidate_BurstIgnoredWithoutRateLimit(t *testing.T) {
	cfg := Default()
	cfg.Server.RateLimit = 0
	cfg.Server.Burst = 0
	assert.NoError(t, cfg.Validate())
}

func TestSaveTOML_Reloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Client.URL = "http://saved:8000"
	cfg.UI.ShowTimestamps = true
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestGet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("client.url")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", v)

	v, err = cfg.Get("server.max_upload_mb")
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	_, err = cfg.Get("client.nope")
	assert.EqualError(t, err, "unknown key: client.nope")

	_, err = cfg.Get("client.url.host")
	assert.Error(t, err)

	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "version")
	assert.Contains(t, keys, "client.url")
	assert.Contains(t, keys, "ui.expand_panels")
	assert.Contains(t, keys, "server.llm_timeout_secs")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

// =============================================================================
// WATCH TESTS
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[ui]\ntheme = \"dark\"\n")

	changes := make(chan *Config, 4)
	w, err := WatchWithDebounce(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "[ui]\ntheme = \"light\"\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, "light", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatch_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	called := make(chan struct{}, 1)
	w, err := WatchWithDebounce(path, 10*time.Millisecond, func(*Config, error) {
		called <- struct{}{}
	})
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1")

	select {
	case <-called:
		t.Fatal("reload triggered by an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "")

	w, err := Watch(path, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

// =============================================================================
// SINGLETON TESTS
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestReloadGlobal(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	assert.Equal(t, "auto", Global().UI.Theme)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".agentchat"), 0755))
	writeFile(t, filepath.Join(home, ".agentchat", "config.toml"), "[ui]\ntheme = \"light\"\n")

	require.NoError(t, ReloadGlobal())
	assert.Equal(t, "light", Global().UI.Theme)
}
