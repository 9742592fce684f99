package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medtrix/medtrix/internal/quiz"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the normalized questions of a quiz file",
	Args:  cobra.ExactArgs(1),
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

		doc, err := repo.LoadQuiz(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		if t := doc.Title(); t != "" {
			fmt.Fprintf(out, "%s\n\n", t)
		}
		for i, q := range doc.Questions {
			fmt.Fprint(out, formatQuestion(i+1, q))
		}
		fmt.Fprintf(out, "%d questions\n", len(doc.Questions))
		return nil
	},
}

func formatQuestion(n int, q quiz.Question) string {
	s := fmt.Sprintf("%d. %s", n, q.Text)
	if q.UID != "" {
		s += fmt.Sprintf("  [%s]", q.UID)
	}
	s += "\n"
	if !q.HasOptions() {
		s += "   (no options)\n"
	}
	for i, o := range q.Options {
		mark := " "
		if o.Correct {
			mark = "*"
		}
		s += fmt.Sprintf("  %s%s) %s\n", mark, quiz.OptionLabel(i), o.Text)
	}
	if q.Explanation != "" {
		s += "   " + q.Explanation + "\n"
	}
	return s + "\n"
}

func init() {
	showCmd.Flags().Bool("json", false, "Print the normalized document as JSON")
}
