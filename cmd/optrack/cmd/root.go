package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"optrack/config"
	"optrack/repo"
)

var rootCmd = &cobra.Command{
	Use:   "optrack",
	Short: "A journal and performance tracker for options trades",
	Long: `Optrack manages the lifecycle of multi-leg options trades from
broker transaction exports.

It provides tools for:
  - Parsing daily transaction exports into per-trade strategy records
  - Detecting common structures (verticals, strangles, iron condors, ratio spreads)
  - Tracking open positions with a daily greeks/P&L log
  - Rolling and expiring legs
  - Closing trades into an archive and a queryable journal
  - Aggregate performance reporting (win rate, P&L, hold times)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

var (
	cfgFile string
	verbose bool

	log = logrus.New()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./optrack.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func openRepo(cfg *config.Config) (*repo.Repo, error) {
	return repo.New(cfg.Dirs.Strategies, cfg.Dirs.Archive, cfg.Dirs.Logs)
}
