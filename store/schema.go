package store

// Schema creates the bar history table. Bars are keyed by (symbol, time);
// re-importing a bar replaces it.
const Schema = `
CREATE TABLE IF NOT EXISTS bars (
	symbol TEXT NOT NULL,
	time INTEGER NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, time)
);

CREATE INDEX IF NOT EXISTS idx_bars_symbol_time ON bars(symbol, time);
`
