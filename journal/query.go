package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const selectCols = `trade_id, file, ticker, strategy, opened, closed, hold_days, initial_credit, realized_pnl, roll_count, tags`

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT ` + selectCols + `
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListClosedBetween returns trades whose close date is within [start, end).
func (j *SQLite) ListClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT ` + selectCols + `
		FROM trades
		WHERE closed >= ? AND closed < ?
		ORDER BY closed ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListAll returns every recorded trade ordered by close date.
func (j *SQLite) ListAll() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT ` + selectCols + `
		FROM trades
		ORDER BY closed ASC`)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

func collectTrades(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrade(scan func(...any) error) (TradeRecord, error) {
	var rec TradeRecord
	err := scan(
		&rec.TradeID,
		&rec.File,
		&rec.Ticker,
		&rec.Strategy,
		&rec.Opened,
		&rec.Closed,
		&rec.HoldDays,
		&rec.InitialCredit,
		&rec.RealizedPnL,
		&rec.RollCount,
		&rec.Tags,
	)
	return rec, err
}
