package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/config"
	"github.com/medtrix/medtrix/internal/content"
	"github.com/medtrix/medtrix/internal/explain"
	"github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/logging"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "medtrix",
	Short: "Medical exam quizzes in the terminal",
	Long: "MEDTRIX plays medical exam quizzes in the terminal, keeps your answer " +
		"history and asks a generative-AI provider to explain questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the YAML config file (overrides MEDTRIX_CONFIG)")
	pf.String("db", "", "Path to SQLite database file (overrides MEDTRIX_DB)")
	pf.String("content", "", "Quiz content location: directory, http(s) URL or gs://bucket/prefix")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("provider", "", "AI provider: gemini, openai, openrouter, anthropic, mock")
	pf.String("model", "", "AI model override")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	flags := map[string]*string{
		"db":        &cfg.DB,
		"content":   &cfg.Content,
		"log-file":  &cfg.Log.File,
		"log-level": &cfg.Log.Level,
		"provider":  &cfg.AI.Provider,
		"model":     &cfg.AI.Model,
	}
	for name, dst := range flags {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger. The TUI owns the terminal, so without a
// configured file it logs to medtrix.log in the data directory.
func newLogger(cfg config.Config, tui bool) (*zap.Logger, error) {
	file := cfg.Log.File
	if file == "" && tui {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		file = filepath.Join(dir, "medtrix.log")
		if err := store.EnsureDir(file); err != nil {
			return nil, err
		}
	}
	return logging.New(logging.Options{File: file, Level: cfg.Log.Level})
}

// openStore opens the database named by cfg.DB or the default path.
func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.DB
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openRepository opens the content source and wraps it in a repository.
// The returned closer releases the source.
func openRepository(ctx context.Context, cfg config.Config, log *zap.Logger) (*quiz.Repository, io.Closer, error) {
	src, err := content.Open(ctx, cfg.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("open content %q: %w", cfg.Content, err)
	}
	closer := io.Closer(nopCloser{})
	if c, ok := src.(io.Closer); ok {
		closer = c
	}
	return quiz.NewRepository(src, quiz.WithLogger(log)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newExplainer builds the explanation client, recording requests in s.
func newExplainer(ctx context.Context, cfg config.Config, s *store.Store, log *zap.Logger) *explain.Client {
	var repo store.RequestRepo
	if s != nil {
		repo = s.RequestRepo()
	}
	return explain.New(ctx, cfg.LLM(), repo, explain.WithLogger(log))
}

func newHistory(s *store.Store, log *zap.Logger) *history.Store {
	return history.New(s.KV(), history.WithLogger(log))
}
