// Package config loads the docsite YAML configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "docsite.yaml"

// Config is the complete site configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Sources   []Source        `yaml:"sources"`
	Narrative NarrativeConfig `yaml:"narrative,omitempty"`
	Output    OutputConfig    `yaml:"output"`
	Build     BuildConfig     `yaml:"build,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Refresh   RefreshConfig   `yaml:"refresh,omitempty"`
	Notify    NotifyConfig    `yaml:"notify,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
}

// SiteConfig describes the generated site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	// BaseURL prefixes cross-package links; empty yields root-relative links.
	BaseURL string `yaml:"base_url,omitempty"`
}

// Source is a location holding extracted package documents (*.json and an
// optional index.json).
type Source struct {
	Name string     `yaml:"name"`
	Type SourceType `yaml:"type"`
	// Path is the local directory, or the directory inside a git checkout.
	Path      string `yaml:"path,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Branch    string `yaml:"branch,omitempty"`
	AuthToken string `yaml:"auth_token,omitempty"`
}

// NarrativeConfig points at hand-written markdown docs.
type NarrativeConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// BuildConfig tunes the site builder.
type BuildConfig struct {
	// Workers bounds concurrent package renders.
	Workers int `yaml:"workers,omitempty"`
	// WorkspaceDir holds git checkouts.
	WorkspaceDir string `yaml:"workspace_dir,omitempty"`
	// Retry governs retries of transient git sync failures.
	Retry RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig tunes source sync retries. Unset fields keep the defaults
// (linear backoff from 1s, capped at 30s, 2 retries).
type RetryConfig struct {
	Backoff    string        `yaml:"backoff,omitempty"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial,omitempty"`
	Max        time.Duration `yaml:"max,omitempty"`
	MaxRetries *int          `yaml:"max_retries,omitempty"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr  string `yaml:"addr,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// RefreshConfig schedules periodic git source refreshes. Zero disables them.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
}

// NotifyConfig enables NATS build notifications when NATSURL is set.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// HistoryConfig enables the SQLite build history when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Load reads the configuration at path. Variables from .env files are loaded
// first and ${VAR} references in the file are expanded. Defaults are applied
// before validation.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse configuration").Build()
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Example returns the configuration written by "docsite init": one local
// and one git source plus every optional feature switched on.
func Example() *Config {
	return &Config{
		Site: SiteConfig{
			Title:       "API Reference",
			Description: "Reference documentation for every package",
			BaseURL:     "https://docs.example.com",
		},
		Sources: []Source{
			{Name: "local", Type: SourceLocal, Path: "./api-json"},
			{Name: "sdk", Type: SourceGit, URL: "https://github.com/example/sdk-docs.git", Branch: "main", Path: "api", AuthToken: "${GIT_TOKEN}"},
		},
		Narrative: NarrativeConfig{Dir: "./docs"},
		Output:    OutputConfig{Directory: "./site", Clean: true},
		Build: BuildConfig{
			Workers: 4,
			Retry:   RetryConfig{Backoff: "exponential", Initial: 2 * time.Second, Max: time.Minute},
		},
		Server:  ServerConfig{Addr: ":8080", Watch: true},
		Refresh: RefreshConfig{Interval: 15 * time.Minute},
		History: HistoryConfig{Path: "./.docsite/history.db"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Write stores cfg as YAML at path. An existing file is kept unless force is
// set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.NewError(derrors.CategoryAlreadyExists, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
