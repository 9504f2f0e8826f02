// Package journal records closed trades for later analysis. Two
// backends are provided: an append-only CSV summary and a SQLite
// database that supports queries.
package journal

import "time"

// TradeRecord is the flattened form of a closed trade.
type TradeRecord struct {
	TradeID       string // ULID, time-sortable
	File          string // record filename, e.g. spy_2025-03-28.yaml
	Ticker        string
	Strategy      string
	Opened        time.Time
	Closed        time.Time
	HoldDays      int
	InitialCredit float64
	RealizedPnL   float64
	RollCount     int
	Tags          string // comma-joined
}

type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}
