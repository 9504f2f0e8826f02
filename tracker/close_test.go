package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optrack/journal"
	"optrack/options"
	"optrack/repo"
)

type memJournal struct {
	records []journal.TradeRecord
}

func (m *memJournal) RecordTrade(t journal.TradeRecord) error {
	m.records = append(m.records, t)
	return nil
}

func (m *memJournal) Close() error { return nil }

func newTestCloser(t *testing.T) (*Closer, *repo.Repo, *memJournal) {
	t.Helper()

	dir := t.TempDir()
	r, err := repo.New(
		filepath.Join(dir, "strategies"),
		filepath.Join(dir, "archive"),
		filepath.Join(dir, "logs"),
	)
	require.NoError(t, err)

	j := &memJournal{}
	return &Closer{Repo: r, Journal: j}, r, j
}

func openTrade() *options.Trade {
	return &options.Trade{
		Strategy:      options.StrategyShortPut,
		Ticker:        "SPY",
		Opened:        "2025-03-01",
		Status:        options.StatusOpen,
		InitialCredit: 250,
		RollCount:     1,
		Tags:          []string{"rolled"},
		Legs: []options.Leg{
			{Type: options.Put, Ticker: "SPY", Side: options.Short, Strike: 450, Expiry: "2025-03-28", Contracts: 1, EntryPrice: 2.50},
		},
	}
}

func TestCloseTrade(t *testing.T) {
	t.Parallel()

	c, r, j := newTestCloser(t)
	file, err := r.Create(openTrade())
	require.NoError(t, err)

	now := time.Date(2025, 3, 28, 16, 0, 0, 0, time.UTC)
	closed, err := c.Close(file, 145.25, now)
	require.NoError(t, err)

	assert.Equal(t, options.StatusClosed, closed.Status)
	assert.Equal(t, "2025-03-28", closed.Closed)
	assert.InDelta(t, 145.25, closed.RealizedPnL, 1e-9)

	got, err := r.LoadArchived(file)
	require.NoError(t, err)
	assert.Equal(t, options.StatusClosed, got.Status)
	assert.InDelta(t, 145.25, got.RealizedPnL, 1e-9)

	require.Len(t, j.records, 1)
	rec := j.records[0]
	assert.NotEmpty(t, rec.TradeID)
	assert.Equal(t, file, rec.File)
	assert.Equal(t, "SPY", rec.Ticker)
	assert.Equal(t, 27, rec.HoldDays)
	assert.Equal(t, "rolled", rec.Tags)
}

func TestCloseTwiceFails(t *testing.T) {
	t.Parallel()

	c, r, _ := newTestCloser(t)
	file, err := r.Create(openTrade())
	require.NoError(t, err)

	_, err = c.Close(file, 100, time.Now())
	require.NoError(t, err)

	_, err = c.Close(file, 100, time.Now())
	assert.ErrorIs(t, err, repo.ErrAlreadyClosed)
}

func TestCloseUnknownTrade(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCloser(t)
	_, err := c.Close("missing.yaml", 100, time.Now())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
