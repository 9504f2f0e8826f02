package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"optrack/options"
	"optrack/repo"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trade records",
	Long: `Print a table of trade records from the strategies and archive
directories, optionally filtered by status.

Examples:
  optrack list
  optrack list --status open`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listStatus string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (open|closed)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := openRepo(cfg)
	if err != nil {
		return err
	}

	var entries []repo.Entry
	if listStatus != options.StatusClosed {
		open, err := r.List(listStatus)
		if err != nil {
			return err
		}
		entries = append(entries, open...)
	}
	if listStatus == "" || listStatus == options.StatusClosed {
		archived, err := r.ListArchived()
		if err != nil {
			return err
		}
		entries = append(entries, archived...)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTICKER\tSTRATEGY\tSTATUS\tOPENED\tCLOSED\tCREDIT\tPNL")
	for _, e := range entries {
		t := e.Trade
		closed := t.Closed
		if closed == "" {
			closed = "-"
		}
		pnl := "-"
		if t.Status == options.StatusClosed {
			pnl = fmt.Sprintf("%.2f", t.RealizedPnL)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			e.File, t.Ticker, t.Strategy, t.Status, t.Opened, closed, t.InitialCredit, pnl)
	}
	return w.Flush()
}
