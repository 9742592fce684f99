package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/medtrix/medtrix/internal/explain"
	"github.com/medtrix/medtrix/internal/llm"
	"github.com/medtrix/medtrix/internal/quiz"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask the AI a question, optionally about a quiz question",
	Long: "Ask sends the prompt followed by up to 1000 characters of context. " +
		"The context is either --context or a question picked with --file and --question.",
	Args: cobra.MinimumNArgs(1),
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
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		excerpt, _ := cmd.Flags().GetString("context")
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			ref, _ := cmd.Flags().GetString("question")
			repo, closer, err := openRepository(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closer.Close()

			doc, err := repo.LoadQuiz(ctx, file)
			if err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}
			q, err := findQuestion(doc, ref)
			if err != nil {
				return err
			}
			excerpt = explain.QuestionContext(q)
		}

		client := newExplainer(ctx, cfg, st, log)
		ctx = llm.WithPurpose(llm.WithSession(ctx, uuid.NewString()), explain.PurposeCLI)
		answer := client.Ask(ctx, strings.Join(args, " "), excerpt)
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		if explain.IsError(answer) {
			return errors.New("explanation failed")
		}
		return nil
	},
}

// findQuestion picks a question by uid or by 1-based position.
func findQuestion(doc *quiz.Document, ref string) (quiz.Question, error) {
	if ref == "" {
		return quiz.Question{}, errors.New("--question is required with --file")
	}
	for _, q := range doc.Questions {
		if string(q.UID) == ref {
			return q, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(doc.Questions) {
		return doc.Questions[n-1], nil
	}
	return quiz.Question{}, fmt.Errorf("question %q not found", ref)
}

func init() {
	askCmd.Flags().String("context", "", "Context text appended to the prompt")
	askCmd.Flags().StringP("file", "f", "", "Quiz file the question comes from")
	askCmd.Flags().StringP("question", "q", "", "Question uid or 1-based position in --file")
}
