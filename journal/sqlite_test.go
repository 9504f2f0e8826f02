package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func sampleRecord(id string, closed time.Time) TradeRecord {
	return TradeRecord{
		TradeID:       id,
		File:          "spy_2025-03-01.yaml",
		Ticker:        "SPY",
		Strategy:      "Put Vertical",
		Opened:        closed.AddDate(0, 0, -27),
		Closed:        closed,
		HoldDays:      27,
		InitialCredit: 250,
		RealizedPnL:   145.25,
		RollCount:     1,
		Tags:          "rolled",
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteRecordAndGet(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	closed := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
	rec := sampleRecord("01HTEST", closed)
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade("01HTEST")
	require.NoError(t, err)

	assert.Equal(t, rec.File, got.File)
	assert.Equal(t, rec.Ticker, got.Ticker)
	assert.Equal(t, rec.Strategy, got.Strategy)
	assert.Equal(t, rec.HoldDays, got.HoldDays)
	assert.InDelta(t, rec.RealizedPnL, got.RealizedPnL, 1e-9)
	assert.True(t, got.Closed.Equal(rec.Closed))
	assert.Equal(t, "rolled", got.Tags)
}

func TestSQLiteGetMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	_, err := j.GetTrade("nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListClosedBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	march := time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleRecord("T1", march)))
	require.NoError(t, j.RecordTrade(sampleRecord("T2", april)))

	got, err := j.ListClosedBetween(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].TradeID)

	all, err := j.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "T1", all[0].TradeID)
	assert.Equal(t, "T2", all[1].TradeID)
}
