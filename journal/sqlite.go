package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, file, ticker, strategy, opened, closed, hold_days, initial_credit, realized_pnl, roll_count, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.File, t.Ticker, t.Strategy, t.Opened, t.Closed,
		t.HoldDays, t.InitialCredit, t.RealizedPnL, t.RollCount, t.Tags,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
