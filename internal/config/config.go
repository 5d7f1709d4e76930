// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/agentchat/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// Config is the main configuration structure for agentchat.
type Config struct {
	// Version of the config format.
	Version string `toml:"version" json:"version"`

	// Client settings for talking to the chat service.
	Client ClientConfig `toml:"client" json:"client"`

	// UI settings for the TUI and line-mode REPL.
	UI UIConfig `toml:"ui" json:"ui"`

	// Server settings for the companion backend.
	Server ServerConfig `toml:"server" json:"server"`
}

// ClientConfig holds chat service settings.
type ClientConfig struct {
	// URL is the service origin; endpoints are under URL + "/api".
	URL string `toml:"url" json:"url"`

	// TimeoutSecs bounds each request. 0 means no timeout.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// Verbose logs one line per request.
	Verbose bool `toml:"verbose" json:"verbose"`
}

// UIConfig holds settings for the interactive surfaces.
type UIConfig struct {
	// Theme is the glamour style: "auto", "dark", "light" or "notty".
	Theme string `toml:"theme" json:"theme"`

	// WordWrap is the markdown wrap width. 0 follows the terminal width.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`

	// ShowTimestamps prints the entry time next to each role label.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`

	// ExpandPanels shows extracted-content panels expanded by default.
	ExpandPanels bool `toml:"expand_panels" json:"expand_panels"`

	// CodeStyle is the chroma style used for HTML export.
	CodeStyle string `toml:"code_style" json:"code_style"`
}

// ServerConfig holds settings for "agentchat serve".
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr" json:"addr"`

	// UploadDir is where uploaded files are stored.
	UploadDir string `toml:"upload_dir" json:"upload_dir"`

	// MaxUploadMB is the largest accepted upload.
	MaxUploadMB int `toml:"max_upload_mb" json:"max_upload_mb"`

	// RateLimit is requests per second per client IP. 0 disables limiting.
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`

	// Burst is the token bucket size for the rate limiter.
	Burst int `toml:"burst" json:"burst"`

	// OllamaURL is the Ollama server used by the agent.
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`

	// Model is the Ollama model used by the agent.
	Model string `toml:"model" json:"model"`

	// MaxExtractChars truncates extracted document text.
	MaxExtractChars int `toml:"max_extract_chars" json:"max_extract_chars"`

	// LLMTimeoutSecs bounds each Ollama call.
	LLMTimeoutSecs int `toml:"llm_timeout_secs" json:"llm_timeout_secs"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Client: ClientConfig{
			URL:         "http://127.0.0.1:8000",
			TimeoutSecs: 0,
		},
		UI: UIConfig{
			Theme:     "auto",
			WordWrap:  0,
			CodeStyle: "monokai",
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8000",
			UploadDir:       "temp_uploads",
			MaxUploadMB:     25,
			RateLimit:       5,
			Burst:           10,
			OllamaURL:       "http://localhost:11434",
			Model:           "llama3.2",
			MaxExtractChars: 20000,
			LLMTimeoutSecs:  120,
		},
	}
}

// Timeout returns the client timeout as a duration.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// MaxUploadBytes returns MaxUploadMB in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// LLMTimeout returns the Ollama call timeout as a duration.
func (s ServerConfig) LLMTimeout() time.Duration {
	return time.Duration(s.LLMTimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the agentchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".agentchat"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	return DataPath("config.toml")
}

// DataPath returns the path of name inside the config directory.
func DataPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file.
// A missing file is not an error; defaults are used.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file, replacing it atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# agentchat configuration file\n")
	buf.WriteString("# Generated by agentchat - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validThemes = map[string]bool{
	"auto":  true,
	"dark":  true,
	"light": true,
	"notty": true,
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if err := validateHTTPURL(c.Client.URL); err != nil {
		add("client.url", err.Error())
	}
	if c.Client.TimeoutSecs < 0 {
		add("client.timeout_secs", "must not be negative")
	}

	if !validThemes[c.UI.Theme] {
		add("ui.theme", fmt.Sprintf("unknown theme %q (use auto, dark, light or notty)", c.UI.Theme))
	}
	if c.UI.WordWrap != 0 && (c.UI.WordWrap < 20 || c.UI.WordWrap > 500) {
		add("ui.word_wrap", "must be 0 or between 20 and 500")
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		add("server.addr", "must not be empty")
	}
	if strings.TrimSpace(c.Server.UploadDir) == "" {
		add("server.upload_dir", "must not be empty")
	}
	if c.Server.MaxUploadMB <= 0 || c.Server.MaxUploadMB > 1024 {
		add("server.max_upload_mb", "must be between 1 and 1024")
	}
	if c.Server.RateLimit < 0 {
		add("server.rate_limit", "must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		add("server.burst", "must be at least 1 when rate limiting is enabled")
	}
	if err := validateHTTPURL(c.Server.OllamaURL); err != nil {
		add("server.ollama_url", err.Error())
	}
	if strings.TrimSpace(c.Server.Model) == "" {
		add("server.model", "must not be empty")
	}
	if c.Server.MaxExtractChars < 0 {
		add("server.max_extract_chars", "must not be negative")
	}
	if c.Server.LLMTimeoutSecs < 0 {
		add("server.llm_timeout_secs", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero setting.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Client.URL == "" {
		c.Client.URL = defaults.Client.URL
	}
	c.Client.URL = strings.TrimRight(c.Client.URL, "/")
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.CodeStyle == "" {
		c.UI.CodeStyle = defaults.UI.CodeStyle
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = defaults.Server.UploadDir
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = defaults.Server.MaxUploadMB
	}
	if c.Server.OllamaURL == "" {
		c.Server.OllamaURL = defaults.Server.OllamaURL
	}
	if c.Server.Model == "" {
		c.Server.Model = defaults.Server.Model
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AGENTCHAT_URL: overrides client.url
//   - AGENTCHAT_TIMEOUT: overrides client.timeout_secs ("30" or "30s")
//   - AGENTCHAT_WORD_WRAP: overrides ui.word_wrap
//   - AGENTCHAT_SERVE_ADDR: overrides server.addr
//   - AGENTCHAT_UPLOAD_DIR: overrides server.upload_dir
//   - AGENTCHAT_OLLAMA_URL: overrides server.ollama_url
//   - AGENTCHAT_MODEL: overrides server.model
//
// Values that do not parse are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AGENTCHAT_URL"); v != "" {
		c.Client.URL = v
	}

	if v := os.Getenv("AGENTCHAT_TIMEOUT"); v != "" {
		if secs, ok := parseSeconds(v); ok {
			c.Client.TimeoutSecs = secs
		}
	}

	if v := os.Getenv("AGENTCHAT_WORD_WRAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.WordWrap = n
		}
	}

	if v := os.Getenv("AGENTCHAT_SERVE_ADDR"); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv("AGENTCHAT_UPLOAD_DIR"); v != "" {
		c.Server.UploadDir = v
	}

	if v := os.Getenv("AGENTCHAT_OLLAMA_URL"); v != "" {
		c.Server.OllamaURL = v
	}

	if v := os.Getenv("AGENTCHAT_MODEL"); v != "" {
		c.Server.Model = v
	}
}

// parseSeconds accepts a whole number of seconds or a Go duration string.
func parseSeconds(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return int(d / time.Second), true
}

// =============================================================================
// KEY LOOKUP (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by its TOML path (e.g. "client.url").
func (c *Config) Get(key string) (any, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown key: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("key '%s' is not a table", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return nil, fmt.Errorf("invalid key: %s", key)
}

// Keys returns every leaf key in file order.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := tagName(f)
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, prefix+name+".")
				continue
			}
			keys = append(keys, prefix+name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tagName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tagName(f reflect.StructField) string {
	tag := f.Tag.Get("toml")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	return strings.Split(tag, ",")[0]
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
