package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	file TEXT NOT NULL,
	ticker TEXT NOT NULL,
	strategy TEXT NOT NULL,
	opened DATETIME NOT NULL,
	closed DATETIME NOT NULL,
	hold_days INTEGER NOT NULL,
	initial_credit REAL NOT NULL,
	realized_pnl REAL NOT NULL,
	roll_count INTEGER NOT NULL,
	tags TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_closed ON trades(closed);
CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
`
