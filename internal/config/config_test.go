package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MEDTRIX_CONFIG", "MEDTRIX_CONTENT", "MEDTRIX_DB", "MEDTRIX_LOG_FILE",
		"MEDTRIX_LOG_LEVEL", "MEDTRIX_LLM_PROVIDER", "MEDTRIX_MODEL", "MEDTRIX_API_KEY",
		"GEMINI_API_KEY", "MEDTRIX_GEMINI_API_KEY", "MEDTRIX_GEMINI_MODEL",
		"MEDTRIX_OPENAI_API_KEY", "MEDTRIX_OPENAI_MODEL", "MEDTRIX_OPENAI_BASE_URL",
		"MEDTRIX_ANTHROPIC_API_KEY", "MEDTRIX_ANTHROPIC_MODEL",
		"MEDTRIX_OPENROUTER_API_KEY", "MEDTRIX_OPENROUTER_MODEL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
content: https://cdn.example.com/medtrix/
db: /tmp/medtrix.db
log:
  file: /tmp/medtrix.log
  level: debug
ai:
  provider: openai
  api_key: sk-file
  model: gpt-4o
  timeout: 30s
  max_tokens: 512
  attempts: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/medtrix/", cfg.Content)
	assert.Equal(t, "/tmp/medtrix.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)

	lc := cfg.LLM()
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "sk-file", lc.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", lc.OpenAI.Model)
	assert.Equal(t, 512, lc.MaxTokens)
	assert.Equal(t, 3, lc.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, lc.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "content: ./quizzes\nai:\n  api_key: from-file\n")
	t.Setenv("MEDTRIX_CONTENT", "gs://bucket/medtrix")
	t.Setenv("MEDTRIX_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/medtrix", cfg.Content)
	assert.Equal(t, "from-env", cfg.AI.APIKey)
}

func TestLoad_ConfigEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDTRIX_CONFIG", writeFile(t, "content: ./from-env-file\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "./from-env-file", cfg.Content)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "AIza-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "AIza-env", cfg.AI.APIKey)
	assert.Equal(t, "AIza-env", cfg.LLM().Gemini.APIKey)
}

func TestLoad_MissingKeyIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM().APIKey())
	assert.Equal(t, 1, cfg.LLM().Retry.MaxAttempts)
	assert.Zero(t, cfg.LLM().Timeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "contnet: ./x\n", "field contnet not found"},
		{"bad provider", "ai:\n  provider: skynet\n", "unknown provider"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad duration", "ai:\n  timeout: soon\n", "parse"},
		{"negative tokens", "ai:\n  max_tokens: -1\n", "max_tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeFile(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLLM_BaseURLFollowsProvider(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.AI.BaseURL = "http://127.0.0.1:9999"
	assert.Equal(t, "http://127.0.0.1:9999", cfg.LLM().Gemini.BaseURL)

	cfg.AI.Provider = "anthropic"
	lc := cfg.LLM()
	assert.Equal(t, "http://127.0.0.1:9999", lc.Anthropic.BaseURL)
	assert.Empty(t, lc.Gemini.BaseURL)
}
