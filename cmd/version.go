package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medtrix/medtrix/internal/bundle"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "medtrix", version)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil
		}
		if v, err := bundle.InstalledVersion(cfg.Content); err == nil && v != "" {
			fmt.Fprintln(out, "content", v)
		}
		return nil
	},
}
