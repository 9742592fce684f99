package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/content"
	"github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quiz content (and the local history) over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.Content = dir
		}
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("origins")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		log, err := newLogger(cfg, false)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		src, err := content.Open(ctx, cfg.Content)
		if err != nil {
			return fmt.Errorf("open content %q: %w", cfg.Content, err)
		}
		if c, ok := src.(io.Closer); ok {
			defer c.Close()
		}

		var hist *history.Store
		if !noHistory {
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			hist = newHistory(st, log)
		}

		h := server.New(server.Options{
			Source:         src,
			History:        hist,
			AllowedOrigins: origins,
			Log:            log,
		})
		log.Info("content server starting",
			zap.String("content", cfg.Content),
			zap.Bool("history", hist != nil),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", cfg.Content, addr)
		return server.ListenAndServe(ctx, addr, h, log)
	},
}

func init() {
	serveCmd.Flags().String("dir", "", "Content location to serve (default: the configured content)")
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("origins", nil, "Allowed CORS origins (default any)")
	serveCmd.Flags().Bool("no-history", false, "Do not expose /api/history")
}
