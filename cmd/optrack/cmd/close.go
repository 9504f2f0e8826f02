package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"optrack/config"
	"optrack/journal"
	"optrack/tracker"
)

var closeCmd = &cobra.Command{
	Use:   "close <trade-file> <pnl>",
	Short: "Close a trade with its realized P&L",
	Long: `Mark an open trade closed, archive its record and daily log, and
append the result to the closed-trades journal.

Example:
  optrack close spy_2025-03-28.yaml 145.25`,
	Args: cobra.ExactArgs(2),
	RunE: runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := openRepo(cfg)
	if err != nil {
		return err
	}

	pnl, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("pnl: %w", err)
	}

	jnl, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer jnl.Close()

	closer := &tracker.Closer{Repo: r, Journal: jnl}
	t, err := closer.Close(args[0], pnl, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Closed %s (%s), realized P&L $%.2f\n",
		t.Ticker, t.Strategy, t.RealizedPnL)
	return nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	var multi journal.Multi

	if cfg.Journal.Type != config.JournalSQLite {
		j, err := journal.NewCSV(cfg.Journal.SummaryFile)
		if err != nil {
			return nil, fmt.Errorf("open summary csv: %w", err)
		}
		multi = append(multi, j)
	}
	if cfg.Journal.Type != config.JournalCSV {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			multi.Close()
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		multi = append(multi, j)
	}
	return multi, nil
}
