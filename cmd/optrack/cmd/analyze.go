package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optrack/journal"
	"optrack/performance"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize performance across closed trades",
	Long: `Aggregate closed trades into a performance report: win rate,
total and average P&L, hold times, and breakdowns by strategy type,
ticker, and tag.

Reads the archive directory by default; --db reads the SQLite journal
instead.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var analyzeDB bool

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeDB, "db", false, "read closed trades from the SQLite journal")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var closed []performance.ClosedTrade

	if analyzeDB {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal db: %w", err)
		}
		defer j.Close()

		recs, err := j.ListAll()
		if err != nil {
			return fmt.Errorf("query journal: %w", err)
		}
		for _, rec := range recs {
			closed = append(closed, performance.FromRecord(rec))
		}
	} else {
		r, err := openRepo(cfg)
		if err != nil {
			return err
		}
		entries, err := r.ListArchived()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.Trade.Closed == "" {
				continue
			}
			closed = append(closed, performance.FromTrade(e.File, e.Trade))
		}
	}

	performance.PrintSummary(cmd.OutOrStdout(), closed)
	return nil
}
