package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optrack/options"
	"optrack/repo"
	"optrack/transactions"
)

var parseCmd = &cobra.Command{
	Use:   "parse <export.csv>...",
	Short: "Create or update trade records from transaction exports",
	Long: `Parse broker activity exports into per-trade strategy records.

Option fills are grouped by order number (or by underlying and date
with --combo), classified into a strategy, and written to the
strategies directory as YAML. Orders that mix opening and closing legs
are treated as rolls against the matching open trade. Expiration
events mark legs expired and archive trades with no legs left.

Examples:
  optrack parse transactions/2025-03-28.csv
  optrack parse -i --combo transactions/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseInteractive bool
	parseCombo       bool
)

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVarP(&parseInteractive, "interactive", "i", false, "confirm each candidate group")
	parseCmd.Flags().BoolVar(&parseCombo, "combo", false, "group fills by underlying and date instead of order #")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := openRepo(cfg)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for _, path := range args {
		rows, err := transactions.LoadFile(path)
		if err != nil {
			return err
		}
		fills := transactions.Trades(rows)
		log.WithFields(logrus.Fields{"file": path, "fills": len(fills)}).Info("processing export")

		if parseCombo {
			keys, groups := transactions.GroupByTickerDate(fills)
			for _, key := range keys {
				if err := processGroup(r, groups[key], key.String(), in, out); err != nil {
					return err
				}
			}
		} else {
			ids, groups := transactions.GroupByOrder(fills)
			for _, id := range ids {
				if err := processGroup(r, groups[id], fmt.Sprintf("order #%d", id), in, out); err != nil {
					return err
				}
			}
		}

		res, err := r.ApplyExpirations(transactions.Expirations(rows))
		if err != nil {
			return fmt.Errorf("apply expirations: %w", err)
		}
		for _, file := range res.Updated {
			log.WithField("trade", file).Info("marked expired legs")
		}
		for _, file := range res.Archived {
			log.WithField("trade", file).Info("archived, all legs expired")
		}
	}
	return nil
}

func processGroup(r *repo.Repo, rows []transactions.Row, desc string, in *bufio.Reader, out io.Writer) error {
	if parseInteractive {
		fmt.Fprintf(out, "\nCandidate group (%s):\n", desc)
		for _, row := range rows {
			if !row.IsOption() {
				continue
			}
			fmt.Fprintf(out, "  %s: %s %g exp %s @ %g | fees %.2f\n",
				row.Action, row.CallOrPut, row.Strike, row.Expiration, row.AveragePrice, row.Fees)
		}
		if !confirm(in, out, "Generate strategy record from this group? [y/N]: ") {
			return nil
		}
	}

	if transactions.IsRollCandidate(rows) {
		target, err := pickRollTarget(r, rows, in, out)
		if err != nil {
			return err
		}
		if target != "" {
			if err := r.ApplyRoll(target, rows); err != nil {
				return fmt.Errorf("apply roll to %s: %w", target, err)
			}
			log.WithFields(logrus.Fields{"trade": target, "group": desc}).Info("roll applied")
			return nil
		}
		log.WithField("group", desc).Warn("roll candidate with no open trade to link, creating new record")
	}

	t, err := transactions.BuildTrade(rows)
	if err != nil {
		return fmt.Errorf("%s: %w", desc, err)
	}

	file, err := r.Create(t)
	if errors.Is(err, repo.ErrExists) {
		log.WithField("trade", file).Debug("record exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"trade":    file,
		"strategy": t.Strategy,
		"credit":   t.InitialCredit,
	}).Info("created strategy record")
	return nil
}

// pickRollTarget chooses the open trade a roll belongs to. In
// interactive mode the operator picks from a list; otherwise a single
// open trade on the same underlying is linked automatically.
func pickRollTarget(r *repo.Repo, rows []transactions.Row, in *bufio.Reader, out io.Writer) (string, error) {
	entries, err := r.List(options.StatusOpen)
	if err != nil {
		return "", err
	}

	ticker := ""
	for _, row := range rows {
		if row.IsOption() {
			ticker = options.NormalizeTicker(row.RootSymbol)
			break
		}
	}

	var candidates []repo.Entry
	for _, e := range entries {
		if e.Trade.Ticker == ticker {
			candidates = append(candidates, e)
		}
	}

	if !parseInteractive {
		if len(candidates) == 1 {
			return candidates[0].File, nil
		}
		return "", nil
	}

	if len(candidates) == 0 {
		return "", nil
	}
	fmt.Fprintln(out, "Open trades:")
	for i, e := range candidates {
		fmt.Fprintf(out, " [%d] %s (%s)\n", i, e.File, e.Trade.Strategy)
	}
	fmt.Fprint(out, "Link this roll to which trade? Enter index or press enter to skip: ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 0 || idx >= len(candidates) {
		return "", nil
	}
	return candidates[idx].File, nil
}

func confirm(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
