package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optrack/charts"
)

var chartCmd = &cobra.Command{
	Use:   "chart [trade-file...]",
	Short: "Render per-trade metric charts from the daily logs",
	Long: `Draw one PNG per metric (P&L, % of max profit, beta delta, IV rank,
PoP, theta) over time from each trade's daily log CSV.

Charts every log in the logs directory by default; pass trade record
filenames to chart specific trades.

Examples:
  optrack chart
  optrack chart spy_2025-03-28.yaml -o charts`,
	RunE: runChart,
}

var chartOut string

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "charts", "output directory for PNGs")
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := openRepo(cfg)
	if err != nil {
		return err
	}

	var logs []string
	if len(args) > 0 {
		for _, file := range args {
			logs = append(logs, r.LogPath(file))
		}
	} else {
		entries, err := os.ReadDir(cfg.Dirs.Logs)
		if err != nil {
			return err
		}
		for _, de := range entries {
			if !de.IsDir() && strings.HasSuffix(de.Name(), ".csv") {
				logs = append(logs, filepath.Join(cfg.Dirs.Logs, de.Name()))
			}
		}
	}

	for _, logPath := range logs {
		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			log.WithField("log", logPath).Warn("no daily log, skipping")
			continue
		}
		written, err := charts.Render(logPath, chartOut)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"log":    filepath.Base(logPath),
			"charts": len(written),
		}).Info("rendered charts")
	}
	return nil
}
