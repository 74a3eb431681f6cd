package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidScheme(t *testing.T) {
	g, err := New(3, "AB")
	assert.ErrorIs(t, err, ErrInvalidScheme)
	assert.Nil(t, g)
}

func TestGame_Apply(t *testing.T) {
	g, err := New(3, "A-A\n-B-\n-B-")
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, smallScheme, g.Scheme)

	changed, solved := g.Apply(Enter(1))
	assert.False(t, changed)
	assert.False(t, solved)

	changed, _ = g.Apply(Press(0))
	assert.True(t, changed)
	changed, _ = g.Apply(Enter(1))
	assert.True(t, changed)
	changed, _ = g.Apply(Release())
	assert.True(t, changed)

	moves, _ := g.Stats()
	assert.Equal(t, 2, moves, "release is not a move")
	assert.Equal(t, []int{0, 1}, filled(t, g.State(), "A"))
}

func TestGame_SolvedOnce(t *testing.T) {
	g, err := New(5, fiveScheme)
	require.NoError(t, err)

	solvedEvents := 0
	for _, id := range g.State().Colors() {
		cells := fiveSolution[id]
		for i, c := range cells {
			in := Enter(c)
			if i == 0 {
				in = Press(c)
			}
			if _, solved := g.Apply(in); solved {
				solvedEvents++
			}
		}
		g.Apply(Release())
	}
	assert.Equal(t, 1, solvedEvents)
	assert.True(t, g.Finished())

	// Breaking and re-solving does not report a second finish.
	_, solved := g.Apply(Press(24))
	assert.False(t, solved)
}

func TestGame_Restart(t *testing.T) {
	g, err := New(3, smallScheme)
	require.NoError(t, err)
	g.Apply(Press(0))
	g.Apply(Enter(1))

	before := g.State()
	require.NoError(t, g.Restart())

	assert.NotSame(t, before, g.State())
	assert.Empty(t, filled(t, g.State(), "A"))
	moves, _ := g.Stats()
	assert.Zero(t, moves)
	assert.False(t, g.Finished())
}

func TestGame_RestartAfterSolveFails(t *testing.T) {
	g, err := New(5, fiveScheme)
	require.NoError(t, err)
	for _, id := range g.State().Colors() {
		cells := fiveSolution[id]
		g.Apply(Press(cells[0]))
		for _, c := range cells[1:] {
			g.Apply(Enter(c))
		}
	}
	require.True(t, g.Finished())
	solved := g.State()

	assert.ErrorIs(t, g.Restart(), ErrAlreadySolved)
	assert.Same(t, solved, g.State())
	assert.True(t, g.Finished())
}

func TestGame_RestartKeepsDailyClock(t *testing.T) {
	g, err := New(3, smallScheme)
	require.NoError(t, err)
	g.Daily = "2026-10-19"
	g.StartedAt = g.StartedAt.Add(-time.Minute)
	started := g.StartedAt
	g.Apply(Press(0))
	g.Apply(Enter(1))

	require.NoError(t, g.Restart())
	assert.Empty(t, filled(t, g.State(), "A"))
	moves, elapsed := g.Stats()
	assert.Equal(t, 2, moves)
	assert.Equal(t, started, g.StartedAt)
	assert.GreaterOrEqual(t, elapsed, time.Minute)
}
