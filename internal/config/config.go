// Package config loads medtrix settings from a YAML file and the
// environment.
//
// Precedence, highest first: command-line flags (applied by cmd), MEDTRIX_*
// environment variables, the config file, built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/medtrix/medtrix/internal/llm"
)

// Config describes the medtrix YAML configuration.
type Config struct {
	// Content is the location quizzes are loaded from: an http(s) base
	// URL, a gs://bucket/prefix or a local directory.
	Content string `yaml:"content"`

	// DB is the SQLite database path. Empty uses the XDG data directory.
	DB string `yaml:"db"`

	Log LogConfig `yaml:"log"`
	AI  AIConfig  `yaml:"ai"`
}

// LogConfig selects where diagnostics go.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// AIConfig holds the explanation provider settings. It stands in for the
// secrets object the credential is read from.
type AIConfig struct {
	Provider  string        `yaml:"provider"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
	Attempts  int           `yaml:"attempts"`
}

// Default returns the built-in configuration: quizzes from the working
// directory, Gemini explanations with a single attempt and no timeout.
func Default() Config {
	return Config{
		Content: ".",
		Log:     LogConfig{Level: "info"},
		AI: AIConfig{
			Provider:  "gemini",
			MaxTokens: 1024,
			Attempts:  1,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/medtrix/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "medtrix", "config.yaml"), nil
}

// Load reads the config file at path, then applies the environment.
// An empty path means MEDTRIX_CONFIG or DefaultPath; only an explicitly
// named file has to exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("MEDTRIX_CONFIG"); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := Decode(bytes.NewReader(data), &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays MEDTRIX_* environment variables. GEMINI_API_KEY is
// honored when no key is configured for the gemini provider.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MEDTRIX_CONTENT"); v != "" {
		c.Content = v
	}
	if v := os.Getenv("MEDTRIX_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("MEDTRIX_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("MEDTRIX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MEDTRIX_LLM_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("MEDTRIX_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("MEDTRIX_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if c.AI.APIKey == "" && c.AI.Provider == "gemini" {
		c.AI.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks values that would otherwise fail late. A missing API key
// is not an error: explanations report it when asked.
func (c Config) Validate() error {
	if c.Content == "" {
		return fmt.Errorf("content location is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.AI.Provider {
	case "gemini", "openai", "anthropic", "openrouter", "mock":
	default:
		return fmt.Errorf("ai.provider: unknown provider %q", c.AI.Provider)
	}
	if c.AI.MaxTokens < 0 {
		return fmt.Errorf("ai.max_tokens must not be negative")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai.timeout must not be negative")
	}
	return nil
}

// LLM converts the AI settings into a provider configuration. Provider
// specific MEDTRIX_<PROVIDER>_* variables are applied last.
func (c Config) LLM() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.AI.Provider
	out.SetAPIKey(c.AI.APIKey)
	if c.AI.Model != "" {
		out.SetModel(c.AI.Model)
	}
	if c.AI.BaseURL != "" {
		switch out.Provider {
		case "gemini":
			out.Gemini.BaseURL = c.AI.BaseURL
		case "openai":
			out.OpenAI.BaseURL = c.AI.BaseURL
		case "anthropic":
			out.Anthropic.BaseURL = c.AI.BaseURL
		case "openrouter":
			out.OpenRouter.BaseURL = c.AI.BaseURL
		}
	}
	out.Timeout = c.AI.Timeout
	if c.AI.MaxTokens > 0 {
		out.MaxTokens = c.AI.MaxTokens
	}
	out.Retry.MaxAttempts = max(c.AI.Attempts, 1)

	llm.ApplyEnv(&out)
	return out
}
