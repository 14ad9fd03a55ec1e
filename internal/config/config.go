// Package config loads and validates the pdfsearch YAML configuration.
//
// All search behavior is ultimately a pure function parameter; the config
// file only supplies the defaults the CLI starts from, so a user who always
// searches with hyphenation tolerance does not have to repeat --mode on
// every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pserr "github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/errors"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/search"
)

// DefaultFileName is the per-user config file name.
const DefaultFileName = "config.yaml"

// Config represents the complete pdfsearch configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SearchConfig configures default search behavior. Every recognized option
// is enumerated here; unknown mode values are rejected by Validate rather
// than silently ignored.
type SearchConfig struct {
	// Mode is the default tolerance mode: whitespace-only, intra-word,
	// intra-word-hyphen, or full.
	Mode string `yaml:"mode" json:"mode"`

	// WholeWord wraps patterns in word-boundary assertions.
	WholeWord bool `yaml:"whole_word" json:"whole_word"`

	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// MaxResults caps the number of matches reported per page in
	// find-all searches. 0 means unlimited.
	MaxResults int `yaml:"max_results" json:"max_results"`
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	FilePath  string `yaml:"file_path" json:"file_path"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			Mode:      string(pattern.DefaultMode),
			WholeWord: true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// DefaultPath returns the default config file path
// (~/.pdfsearch/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".pdfsearch", DefaultFileName)
	}
	return filepath.Join(home, ".pdfsearch", DefaultFileName)
}

// Load reads and validates a config file. A missing file is not an error:
// defaults are returned so the tool works with zero configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, pserr.New(pserr.ErrCodeConfigNotFound,
			fmt.Sprintf("cannot read config: %s", path), err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, pserr.ConfigError("config is not valid YAML", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return pserr.InternalError("cannot marshal config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pserr.IOError("cannot create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pserr.IOError("cannot write config", err)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Search.Mode != "" && !pattern.Mode(c.Search.Mode).Valid() {
		return pserr.New(pserr.ErrCodeInvalidMode,
			"unknown search mode in config: "+c.Search.Mode, nil).
			WithSuggestion("use one of: whitespace-only, intra-word, intra-word-hyphen, full")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return pserr.ConfigError("unknown log level: "+c.Logging.Level, nil)
	}

	if c.Search.MaxResults < 0 {
		return pserr.ConfigError("max_results must not be negative", nil)
	}
	return nil
}

// SearchOptions projects the config onto search options.
func (c *Config) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	if c.Search.Mode != "" {
		opts.Mode = pattern.Mode(c.Search.Mode)
	}
	opts.WholeWord = c.Search.WholeWord
	opts.CaseSensitive = c.Search.CaseSensitive
	return opts
}
