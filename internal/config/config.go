// Package config loads lawlens settings: embedded defaults, then the user's
// YAML file, then .env and LAWLENS_* environment variables. Command-line flags
// are applied last by the caller.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/lawlens/internal/law"
	"github.com/oakwood-commons/lawlens/internal/store"
	"github.com/oakwood-commons/lawlens/pkg/settings"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// DefaultConfigYAML returns the embedded defaults.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" toml:"server"`
	Search  SearchConfig  `yaml:"search" json:"search" toml:"search"`
	Storage StorageConfig `yaml:"storage" json:"storage" toml:"storage"`
	UI      UIConfig      `yaml:"ui" json:"ui" toml:"ui"`
	Voice   VoiceConfig   `yaml:"voice" json:"voice" toml:"voice"`
	Log     LogConfig     `yaml:"log" json:"log" toml:"log"`
}

type ServerConfig struct {
	URL     string `yaml:"url" json:"url" toml:"url"`
	Timeout string `yaml:"timeout" json:"timeout" toml:"timeout"`
}

// TimeoutDuration parses Timeout; Validate has already rejected bad values.
func (s ServerConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

type SearchConfig struct {
	DefaultMode string `yaml:"default_mode" json:"default_mode" toml:"default_mode"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend" json:"backend" toml:"backend"`
	Dir      string `yaml:"dir" json:"dir" toml:"dir"`
	RedisURL string `yaml:"redis_url" json:"redis_url" toml:"redis_url"`
	Prefix   string `yaml:"prefix" json:"prefix" toml:"prefix"`
}

// Options converts the storage section for store.Open.
func (s StorageConfig) Options() store.Options {
	return store.Options{Backend: s.Backend, Dir: s.Dir, RedisURL: s.RedisURL, RedisPrefix: s.Prefix}
}

type UIConfig struct {
	Theme   string `yaml:"theme" json:"theme" toml:"theme"`
	NoColor bool   `yaml:"no_color" json:"no_color" toml:"no_color"`
}

type VoiceConfig struct {
	Command  string `yaml:"command" json:"command" toml:"command"`
	Language string `yaml:"language" json:"language" toml:"language"`
}

type LogConfig struct {
	File  string `yaml:"file" json:"file" toml:"file"`
	Level string `yaml:"level" json:"level" toml:"level"`
}

var logLevels = map[string]int8{"debug": -1, "info": 0, "warn": 1, "error": 2}

// ZapLevel maps Level to a zap level number.
func (l LogConfig) ZapLevel() (int8, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(l.Level))]
	if !ok {
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", l.Level)
	}
	return lvl, nil
}

// Defaults decodes the embedded configuration.
func Defaults() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// ResolvePath returns explicit when set, otherwise the user config file if one exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load builds the configuration from defaults, the YAML file at path (if
// any) and the environment. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return cfg, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg, os.LookupEnv)
	cfg.fillPaths()

	return cfg, cfg.Validate()
}

// Environment variables that override the file.
const (
	EnvServerURL      = "LAWLENS_SERVER_URL"
	EnvStorageBackend = "LAWLENS_STORAGE_BACKEND"
	EnvRedisURL       = "LAWLENS_REDIS_URL"
	EnvDataDir        = "LAWLENS_DATA_DIR"
	EnvLogLevel       = "LAWLENS_LOG_LEVEL"
	EnvVoiceCommand   = "LAWLENS_VOICE_COMMAND"
)

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.URL, EnvServerURL)
	set(&cfg.Storage.Backend, EnvStorageBackend)
	set(&cfg.Storage.RedisURL, EnvRedisURL)
	set(&cfg.Storage.Dir, EnvDataDir)
	set(&cfg.Log.Level, EnvLogLevel)
	set(&cfg.Voice.Command, EnvVoiceCommand)
}

// fillPaths resolves empty directories to the XDG locations.
func (c *Config) fillPaths() {
	if c.Storage.Dir == "" {
		c.Storage.Dir = xdgDir("XDG_DATA_HOME", ".local/share")
	}
	if c.Log.File == "" {
		if dir := xdgDir("XDG_STATE_HOME", ".local/state"); dir != "" {
			c.Log.File = filepath.Join(dir, settings.CliBinaryName+".log")
		}
	}
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, settings.CliBinaryName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, filepath.FromSlash(fallback), settings.CliBinaryName)
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.URL) == "" {
		return fmt.Errorf("server.url must be set")
	}
	if d, err := time.ParseDuration(c.Server.Timeout); err != nil || d < 0 {
		return fmt.Errorf("invalid server.timeout %q", c.Server.Timeout)
	}
	if _, err := law.ParseMode(c.Search.DefaultMode); err != nil {
		return fmt.Errorf("search.default_mode: %w", err)
	}
	switch strings.ToLower(c.Storage.Backend) {
	case store.BackendFile, store.BackendRedis, store.BackendMemory:
	default:
		return fmt.Errorf("invalid storage.backend %q (expected file, redis or memory)", c.Storage.Backend)
	}
	if c.UI.Theme != "" {
		if _, err := law.ParseTheme(c.UI.Theme); err != nil {
			return fmt.Errorf("ui.theme: %w", err)
		}
	}
	if _, err := c.Log.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// Mode is the validated default search mode.
func (c Config) Mode() law.SearchMode {
	m, err := law.ParseMode(c.Search.DefaultMode)
	if err != nil {
		return law.DefaultMode
	}
	return m
}

// VoiceArgs splits the voice command into argv, substituting {lang}. It
// returns nil when no command is configured.
func (c Config) VoiceArgs() []string {
	fields := strings.Fields(c.Voice.Command)
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, "{lang}", c.Voice.Language)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
