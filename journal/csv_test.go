package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "closed_trades.csv")

	closed := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleRecord("T1", closed)))
	require.NoError(t, j.Close())

	// Reopening must not duplicate the header.
	j, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleRecord("T2", closed.AddDate(0, 0, 7))))
	require.NoError(t, j.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "Put Vertical", records[1][0])
	assert.Equal(t, "SPY", records[1][1])
	assert.Equal(t, "2025-03-01", records[1][2])
	assert.Equal(t, "2025-03-28", records[1][3])
	assert.Equal(t, "145.25", records[1][4])
	assert.Equal(t, "rolled", records[1][5])
	assert.Equal(t, "2025-04-04", records[2][3])
}

func TestMultiJournal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, err := NewCSV(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	b, err := NewCSV(filepath.Join(dir, "b.csv"))
	require.NoError(t, err)

	m := Multi{a, b}
	require.NoError(t, m.RecordTrade(sampleRecord("T1", time.Now())))
	require.NoError(t, m.Close())

	for _, name := range []string{"a.csv", "b.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(data), "SPY")
	}
}
