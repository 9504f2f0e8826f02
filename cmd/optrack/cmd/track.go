package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optrack/options"
	"optrack/tracker"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Log today's greeks and P&L for all open trades",
	Long: `Match every open trade's active legs against the broker's
positions export and append a row to the trade's daily log CSV.

Example:
  optrack track --positions tastytrade_positions.csv`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

var trackPositions string

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVarP(&trackPositions, "positions", "p", "", "positions CSV (default from config)")
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := openRepo(cfg)
	if err != nil {
		return err
	}

	path := trackPositions
	if path == "" {
		path = cfg.Track.PositionsFile
	}
	positions, err := tracker.LoadPositions(path)
	if err != nil {
		return err
	}

	entries, err := r.List(options.StatusOpen)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, e := range entries {
		matched := tracker.MatchLegs(e.Trade, positions)
		if len(matched) == 0 {
			log.WithField("trade", e.File).Warn("no matching positions")
			continue
		}

		row := tracker.Snapshot(e.Trade, matched, now)
		if err := tracker.AppendLog(r.LogPath(e.File), row); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"trade": e.File,
			"legs":  len(matched),
			"pnl":   row.PnL,
		}).Info("logged")
	}
	return nil
}
