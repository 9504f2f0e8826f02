package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Journal backends.
const (
	JournalCSV    = "csv"
	JournalSQLite = "sqlite"
	JournalBoth   = "both"
)

// Config locates the tracker's working files.
type Config struct {
	Dirs    DirsConfig    `json:"dirs" yaml:"dirs"`
	Track   TrackConfig   `json:"track" yaml:"track"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// DirsConfig names the directories the tracker reads and writes.
type DirsConfig struct {
	Transactions string `json:"transactions" yaml:"transactions"`
	Strategies   string `json:"strategies" yaml:"strategies"`
	Archive      string `json:"archive" yaml:"archive"`
	Logs         string `json:"logs" yaml:"logs"`
}

// TrackConfig contains position-tracking parameters.
type TrackConfig struct {
	PositionsFile string `json:"positions_file" yaml:"positions_file"`
}

// JournalConfig contains closed-trade journaling parameters.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite", or "both"
	SummaryFile string `json:"summary_file,omitempty" yaml:"summary_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Default returns a configuration rooted in the current directory.
func Default() *Config {
	return &Config{
		Dirs: DirsConfig{
			Transactions: "transactions",
			Strategies:   "strategies",
			Archive:      "archive",
			Logs:         "logs",
		},
		Track: TrackConfig{
			PositionsFile: "tastytrade_positions.csv",
		},
		Journal: JournalConfig{
			Type:        JournalBoth,
			SummaryFile: "closed_trades.csv",
			DBPath:      "optrack.sqlite",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Dirs.Strategies == "" {
		return fmt.Errorf("dirs.strategies is required")
	}
	if c.Dirs.Archive == "" {
		return fmt.Errorf("dirs.archive is required")
	}
	if c.Dirs.Logs == "" {
		return fmt.Errorf("dirs.logs is required")
	}
	switch c.Journal.Type {
	case JournalCSV, JournalSQLite, JournalBoth:
	default:
		return fmt.Errorf("journal.type must be %q, %q, or %q", JournalCSV, JournalSQLite, JournalBoth)
	}
	if c.Journal.Type != JournalSQLite && c.Journal.SummaryFile == "" {
		return fmt.Errorf("journal.summary_file required for CSV journaling")
	}
	if c.Journal.Type != JournalCSV && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite journaling")
	}
	return nil
}

// Env vars honored by Load, optionally sourced from a .env file.
const (
	EnvConfig  = "OPTRACK_CONFIG"
	EnvBaseDir = "OPTRACK_BASE_DIR"
)

// Load resolves the effective configuration: an explicit path wins,
// then OPTRACK_CONFIG, then ./optrack.yaml when present, then the
// defaults. OPTRACK_BASE_DIR re-roots all relative paths.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		if _, err := os.Stat("optrack.yaml"); err == nil {
			path = "optrack.yaml"
		}
	}

	var cfg *Config
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = Default()
	}

	if base := os.Getenv(EnvBaseDir); base != "" {
		cfg.Rebase(base)
	}
	return cfg, nil
}

// Rebase joins all relative paths onto the given base directory.
func (c *Config) Rebase(base string) {
	rebase := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	rebase(&c.Dirs.Transactions)
	rebase(&c.Dirs.Strategies)
	rebase(&c.Dirs.Archive)
	rebase(&c.Dirs.Logs)
	rebase(&c.Track.PositionsFile)
	rebase(&c.Journal.SummaryFile)
	rebase(&c.Journal.DBPath)
}
