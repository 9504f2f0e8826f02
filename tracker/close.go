package tracker

import (
	"fmt"
	"strings"
	"time"

	"optrack/journal"
	"optrack/options"
	"optrack/pkg/id"
	"optrack/repo"
)

// Closer finalizes trades: archive the record, journal the result.
type Closer struct {
	Repo    *repo.Repo
	Journal journal.Journal // may be nil
}

// Close marks an open trade closed with the given realized P&L,
// archives its record and daily log, and appends it to the journal.
// Closing an unknown trade fails with repo.ErrNotFound; closing twice
// fails with repo.ErrAlreadyClosed.
func (c *Closer) Close(file string, pnl float64, now time.Time) (*options.Trade, error) {
	t, err := c.Repo.Load(file)
	if err != nil {
		return nil, err
	}
	if !t.Open() || t.Closed != "" {
		return nil, fmt.Errorf("%s: %w", file, repo.ErrAlreadyClosed)
	}

	t.Status = options.StatusClosed
	t.Closed = now.Format(options.DateLayout)
	t.RealizedPnL = pnl

	if err := c.Repo.Archive(file, t); err != nil {
		return nil, fmt.Errorf("archive %s: %w", file, err)
	}

	if c.Journal != nil {
		if err := c.Journal.RecordTrade(Record(file, t)); err != nil {
			return nil, fmt.Errorf("journal %s: %w", file, err)
		}
	}
	return t, nil
}

// Record flattens a closed trade into a journal record.
func Record(file string, t *options.Trade) journal.TradeRecord {
	opened, _ := time.Parse(options.DateLayout, t.Opened)
	closed, _ := time.Parse(options.DateLayout, t.Closed)
	return journal.TradeRecord{
		TradeID:       id.New(),
		File:          file,
		Ticker:        t.Ticker,
		Strategy:      t.Strategy,
		Opened:        opened,
		Closed:        closed,
		HoldDays:      t.HoldDays(),
		InitialCredit: t.InitialCredit,
		RealizedPnL:   t.RealizedPnL,
		RollCount:     t.RollCount,
		Tags:          strings.Join(t.Tags, ","),
	}
}
