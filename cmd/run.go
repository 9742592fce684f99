package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/app"
	"github.com/medtrix/medtrix/internal/screens/home"
	"github.com/medtrix/medtrix/internal/store"
)

// runApp loads config, opens the store and content, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	repo, closer, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	themeName, _, err := st.KV().Get(ctx, store.KeyTheme)
	if err != nil {
		log.Warn("read theme preference", zap.Error(err))
	}

	explainer := newExplainer(ctx, cfg, st, log)
	if explainer.Err() != nil {
		cmd.PrintErrln("AI provider not configured:", explainer.Err())
		cmd.PrintErrln("Explanations will show an error until a key is set.")
	}

	return app.Run(ctx, app.Options{
		Home: home.Deps{
			Ctx:        ctx,
			Catalog:    repo,
			Journal:    newHistory(st, log),
			Explainer:  explainer,
			AIDisabled: explainer.Err() != nil,
			SessionID:  uuid.NewString(),
		},
		Theme: themeName,
		Log:   log,
	})
}
