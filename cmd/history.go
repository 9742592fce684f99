package cmd

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medtrix/medtrix/internal/history"
	"github.com/medtrix/medtrix/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the answer history",
}

// withHistory opens the store and runs fn with the history log.
func withHistory(cmd *cobra.Command, fn func(h *history.Store) error) error {
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
	return fn(newHistory(st, log))
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List answered questions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		return withHistory(cmd, func(h *history.Store) error {
			records, err := h.Records(cmd.Context())
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			printRecords(cmd.OutOrStdout(), filterRecords(records, source, limit))
			return nil
		})
	},
}

// filterRecords keeps records from source (all when empty), newest first,
// at most limit of them (all when limit <= 0).
func filterRecords(records []history.Record, source string, limit int) []history.Record {
	var out []history.Record
	for _, r := range records {
		if source == "" || r.Source == source {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b history.Record) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func printRecords(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No answers recorded.")
		return
	}
	fmt.Fprintf(w, "%-16s  %-2s  %-28s  %s\n", "Time", "OK", "Source", "Question")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, r := range records {
		ok := "✓"
		if !r.IsCorrect {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-16s  %-2s  %-28s  %s\n",
			r.Time().Local().Format("2006-01-02 15:04"), ok,
			truncate(r.Source, 28), truncate(strings.Join(strings.Fields(r.Text), " "), 48))
	}
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy overall and per quiz file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(h *history.Store) error {
			sum, err := h.Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		})
	},
}

func printSummary(w io.Writer, sum history.Summary) {
	if sum.Total == 0 {
		fmt.Fprintln(w, "No answers recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s  %6s  %7s  %8s\n", "Source", "Total", "Correct", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 64))
	for _, s := range sum.BySource {
		fmt.Fprintf(w, "%-36s  %6d  %7d  %7.0f%%\n", truncate(s.Source, 36), s.Total, s.Correct,
			float64(s.Correct)/float64(s.Total)*100)
	}
	fmt.Fprintln(w, strings.Repeat("─", 64))
	fmt.Fprintf(w, "%-36s  %6d  %7d  %7.0f%%\n", "TOTAL", sum.Total, sum.Correct, sum.Accuracy()*100)
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the history log as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return withHistory(cmd, func(h *history.Store) error {
			records, err := h.Records(cmd.Context())
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if records == nil {
				records = []history.Record{}
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the answer history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(h *history.Store) error {
			if err := h.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", store.KeyHistory)
			return nil
		})
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of records to show (0 for all)")
	historyListCmd.Flags().StringP("source", "s", "", "Only records from this quiz file")
	historyExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
}
