package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medtrix/medtrix/internal/bundle"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download and install a content release",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		version, _ := cmd.Flags().GetString("version")
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Content
		}
		if strings.Contains(dir, "://") {
			return fmt.Errorf("content location %q is not a directory; pass --dir", dir)
		}

		log, err := newLogger(cfg, false)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer log.Sync()

		syncer, err := bundle.New(from, bundle.WithLogger(log))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		res, err := syncer.Sync(cmd.Context(), bundle.SyncInput{
			Dir:     dir,
			Version: version,
			Force:   force,
		}, func(p bundle.Progress) {
			fmt.Fprintln(out, p.Message)
		})
		if errors.Is(err, bundle.ErrAlreadyCurrent) {
			installed, _ := bundle.InstalledVersion(dir)
			fmt.Fprintf(out, "Content is already up to date (%s).\n", installed)
			return nil
		}
		if err != nil {
			return fmt.Errorf("sync content: %w", err)
		}

		if res.Previous != "" {
			fmt.Fprintf(out, "Updated %s -> %s (%d files) in %s\n", res.Previous, res.Version, len(res.Files), dir)
		} else {
			fmt.Fprintf(out, "Installed %s (%d files) in %s\n", res.Version, len(res.Files), dir)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().String("from", "", "Base URL of the content releases")
	syncCmd.Flags().String("version", "", "Version to install (default: latest)")
	syncCmd.Flags().Bool("force", false, "Reinstall even when already current")
	syncCmd.Flags().String("dir", "", "Content directory (default: the configured content)")
	_ = syncCmd.MarkFlagRequired("from")
}
