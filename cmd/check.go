package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch and validate every quiz in the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg, false)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		repo, closer, err := openRepository(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closer.Close()

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		report, err := repo.Preload(ctx, concurrency)
		if err != nil {
			return fmt.Errorf("preload: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d files loaded, %d questions\n", report.Loaded, report.Questions)
		failed := report.FailedFiles()
		for _, name := range failed {
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, report.Failed[name])
		}
		if report.Loaded == 0 && len(failed) == 0 {
			return fmt.Errorf("no quizzes found at %s", cfg.Content)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed", len(failed), len(failed)+report.Loaded)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntP("concurrency", "c", 4, "Maximum concurrent fetches")
}
