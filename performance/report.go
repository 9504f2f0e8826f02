package performance

import (
	"fmt"
	"io"
)

// PrintSummary renders the full performance report.
func PrintSummary(w io.Writer, trades []ClosedTrade) {
	s := Summarize(trades)

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Performance Summary")
	fmt.Fprintln(w, "==================================================")

	if s.Total == 0 {
		fmt.Fprintln(w, "No closed trades.")
		return
	}

	fmt.Fprintf(w, "Total trades:   %d\n", s.Total)
	fmt.Fprintf(w, "Wins:           %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:         %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:       %.1f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "Total P&L:      $%.2f\n", s.TotalPnL)
	fmt.Fprintf(w, "Avg P&L/trade:  $%.2f\n", s.AvgPnL)
	fmt.Fprintf(w, "Avg hold time:  %.1f days\n", s.AvgHoldDays)
	fmt.Fprintf(w, "Rolled trades:  %d\n", s.Rolled)

	printGroup(w, "By Strategy Type", ByStrategy(trades))
	printGroup(w, "By Ticker", ByTicker(trades))
	if tags := ByTag(trades); len(tags) > 0 {
		printGroup(w, "By Tag", tags)
	}
}

func printGroup(w io.Writer, title string, stats []GroupStat) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, g := range stats {
		fmt.Fprintf(w, "%-24s count=%-3d total=$%-10.2f avg=$%.2f\n",
			g.Key, g.Count, g.Total, g.Mean)
	}
}
