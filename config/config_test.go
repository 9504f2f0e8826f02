package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		path := filepath.Join(dir, name)
		cfg := Default()
		cfg.Journal.Type = JournalSQLite
		cfg.Journal.SummaryFile = ""

		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing strategies dir", func(c *Config) { c.Dirs.Strategies = "" }},
		{"missing archive dir", func(c *Config) { c.Dirs.Archive = "" }},
		{"missing logs dir", func(c *Config) { c.Dirs.Logs = "" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "org" }},
		{"csv without summary file", func(c *Config) { c.Journal.Type = JournalCSV; c.Journal.SummaryFile = "" }},
		{"sqlite without db path", func(c *Config) { c.Journal.Type = JournalSQLite; c.Journal.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: org\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestRebase(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Journal.DBPath = "/var/lib/optrack.sqlite" // absolute paths stay put
	cfg.Rebase("/data")

	assert.Equal(t, filepath.Join("/data", "strategies"), cfg.Dirs.Strategies)
	assert.Equal(t, filepath.Join("/data", "tastytrade_positions.csv"), cfg.Track.PositionsFile)
	assert.Equal(t, "/var/lib/optrack.sqlite", cfg.Journal.DBPath)
}
