package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the quizzes in the manifest",
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

		entries := repo.Manifest(ctx)
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes found.")
			return nil
		}
		fmt.Fprintf(out, "%-4s  %-36s  %s\n", "#", "File", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for i, e := range entries {
			fmt.Fprintf(out, "%-4d  %-36s  %s\n", i+1, truncate(e.Filename, 36), e.DisplayTitle())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Print the manifest as JSON")
}
