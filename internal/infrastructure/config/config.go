// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for theatre configuration.
	DefaultConfigDir = ".theatre"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultStoreFile is the default knowledge store file name.
	DefaultStoreFile = "hospital.yaml"
	// DefaultJournalFile is the default decision journal file name.
	DefaultJournalFile = "journal.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Store   StoreConfig  `yaml:"store,omitempty"`
	Journal SQLiteConfig `yaml:"journal,omitempty"`
	LLM     LLMConfig    `yaml:"llm,omitempty"`
	Log     LogConfig    `yaml:"log,omitempty"`
}

// StoreConfig locates the knowledge store file.
type StoreConfig struct {
	// Path is relative to the project directory unless absolute.
	Path string `yaml:"path,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite decision journal.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Empty disables the journal.
	Path string `yaml:"path,omitempty"`
}

// LLMConfig holds configuration for the extraction provider. Any
// OpenAI-compatible chat completions endpoint works, including Ollama's /v1.
type LLMConfig struct {
	Provider          string        `yaml:"provider,omitempty"`
	Model             string        `yaml:"model,omitempty"`
	APIKey            string        `yaml:"api_key,omitempty"`
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	RequestsPerMinute int           `yaml:"requests_per_minute,omitempty"`
	MaxFailures       uint32        `yaml:"max_failures,omitempty"`
	OpenTimeout       time.Duration `yaml:"open_timeout,omitempty"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultStoreFile),
		},
		Journal: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultJournalFile),
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           180 * time.Second,
			RequestsPerMinute: 30,
			MaxFailures:       3,
			OpenTimeout:       30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .theatre directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'theatre init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. The OLLAMA_*
// variables point the extractor at an Ollama server.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv("OLLAMA_API_URL"); url != "" {
		c.LLM.Provider = "ollama"
		c.LLM.BaseURL = url
	}
	if key := os.Getenv("OLLAMA_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("THEATRE_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if level := os.Getenv("THEATRE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// StorePath returns the absolute knowledge store path for a project directory.
func (c *Config) StorePath(basePath string) string {
	return resolve(basePath, c.Store.Path)
}

// JournalPath returns the absolute journal path, or "" when journaling is off.
func (c *Config) JournalPath(basePath string) string {
	if c.Journal.Path == "" {
		return ""
	}
	return resolve(basePath, c.Journal.Path)
}

func resolve(basePath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// ConfigDir returns the path to the .theatre config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
