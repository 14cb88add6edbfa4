package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bars.db")

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func testBars() []pricing.Bar {
	return []pricing.Bar{
		{Time: 100, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 1000},
		{Time: 200, Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 1500},
		{Time: 300, Open: 11.5, High: 12.5, Low: 11, Close: 12, Volume: 900},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'bars'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "bars", name)
}

func TestInsertAndLoadBars(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.InsertBars(ctx, "AAPL", testBars()))

	got, err := s.LoadBars(ctx, "AAPL", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, testBars(), got)

	got, err = s.LoadBars(ctx, "AAPL", 200, 300)
	require.NoError(t, err)
	assert.Equal(t, testBars()[1:2], got)
}

func TestInsertBarsReplaces(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.InsertBars(ctx, "AAPL", testBars()))

	updated := []pricing.Bar{{Time: 200, Open: 1, High: 2, Low: 1, Close: 2, Volume: 5}}
	require.NoError(t, s.InsertBars(ctx, "AAPL", updated))

	got, err := s.LoadBars(ctx, "AAPL", 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, updated[0], got[1])
}

func TestInsertBarsRejectsMalformed(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	bad := []pricing.Bar{{Time: 1, Open: 5, High: 4, Low: 3, Close: 4}}
	err := s.InsertBars(ctx, "AAPL", bad)
	assert.ErrorIs(t, err, pricing.ErrMalformed)

	assert.Error(t, s.InsertBars(ctx, "", testBars()))

	_, err = s.LoadBars(ctx, "AAPL", 0, 0)
	assert.ErrorIs(t, err, ErrNoBars)
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.InsertBars(ctx, "AAPL", testBars()))
	require.NoError(t, s.InsertBars(ctx, "MSFT", testBars()[:1]))

	syms, err := s.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"AAPL": 3, "MSFT": 1}, syms)
}
