// Package store keeps bar history in SQLite so the CLI can compute
// indicators without re-fetching market data. It holds input bars only;
// indicator output is always recomputed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// ErrNoBars is returned by LoadBars when a symbol has no stored bars.
var ErrNoBars = errors.New("no bars stored")

type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the bar database at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// InsertBars upserts bars for symbol in one transaction. The bars are
// validated first so the store never holds a malformed series.
func (s *SQLite) InsertBars(ctx context.Context, symbol string, bars []pricing.Bar) (err error) {
	if symbol == "" {
		return errors.New("symbol is required")
	}
	if err := pricing.Validate(bars); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bars
		(symbol, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err = stmt.ExecContext(ctx, symbol, b.Time, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar %d: %w", b.Time, err)
		}
	}

	return tx.Commit()
}

// LoadBars returns the bars of symbol with time in [from, to), ordered by
// time. A zero bound is open.
func (s *SQLite) LoadBars(ctx context.Context, symbol string, from, to int64) ([]pricing.Bar, error) {
	query := `
		SELECT time, open, high, low, close, volume
		FROM bars
		WHERE symbol = ?`
	args := []any{symbol}
	if from != 0 {
		query += ` AND time >= ?`
		args = append(args, from)
	}
	if to != 0 {
		query += ` AND time < ?`
		args = append(args, to)
	}
	query += ` ORDER BY time ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.Bar
	for rows.Next() {
		var b pricing.Bar
		if err := rows.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoBars, symbol)
	}
	return out, nil
}

// Symbols lists stored symbols with their bar counts.
func (s *SQLite) Symbols(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT symbol, COUNT(*) FROM bars GROUP BY symbol ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			sym string
			n   int
		)
		if err := rows.Scan(&sym, &n); err != nil {
			return nil, err
		}
		out[sym] = n
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
