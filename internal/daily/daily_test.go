package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/flow/internal/game"
	"github.com/robalobadob/flow/internal/storage"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-10-18", DateKey(time.Date(2026, 10, 19, 5, 0, 0, 0, loc)))
}

func TestSeed_Deterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	assert.Equal(t, Seed(day, "salt"), Seed(later, "salt"))
	assert.NotEqual(t, Seed(day, "salt"), Seed(next, "salt"))
	assert.NotEqual(t, Seed(day, "salt"), Seed(day, "pepper"))
}

func TestPuzzle(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	a, err := Puzzle(day, "salt", 7, 6)
	require.NoError(t, err)
	b, err := Puzzle(day.Add(3*time.Hour), "salt", 7, 6)
	require.NoError(t, err)
	assert.Equal(t, a.Scheme, b.Scheme)

	st, err := game.ParseScheme(a.Rows, a.Scheme)
	require.NoError(t, err)
	assert.Equal(t, 6, st.ColorCount())
}

func TestStore(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "flow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.Migrate(db))

	ctx := context.Background()
	s := NewStore(db)

	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Rows: 7, Colors: 6, Moves: 40, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-19", Rows: 7, Colors: 6, Moves: 30, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-19", Rows: 7, Colors: 6, Moves: 50, ElapsedMs: 4000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Rows: 7, Colors: 6, Moves: 1, ElapsedMs: 1}), "duplicate ignored")
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u4", Date: "2026-10-20", Rows: 7, Colors: 6, Moves: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2026-10-19", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "u3", Moves: 50, ElapsedMs: 4000},
		{UserID: "u2", Moves: 30, ElapsedMs: 9000},
		{UserID: "u1", Moves: 40, ElapsedMs: 9000},
	}, top)
}
