package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/flow/internal/game"
)

func TestInit_EmbeddedPack(t *testing.T) {
	require.NoError(t, Init())
	require.Greater(t, Count(), 0)

	for i := 0; i < Count(); i++ {
		lv, ok := Get(i)
		require.True(t, ok)
		_, err := game.ParseScheme(lv.Rows, lv.Scheme)
		assert.NoError(t, err, "level %d", i)
	}

	_, ok := Get(Count())
	assert.False(t, ok)
	_, ok = Get(-1)
	assert.False(t, ok)

	lv, ok := Random()
	assert.True(t, ok)
	assert.NotEmpty(t, lv.Scheme)
}

func TestParse_SkipsInvalidLines(t *testing.T) {
	got := Parse([]string{
		"3 --ABB-A--",
		"3",
		"x --ABB-A--",
		"3 --ABB-A-",
		"2 AB BA",
	})
	assert.Equal(t, []Level{
		{Rows: 3, Scheme: "--ABB-A--"},
		{Rows: 2, Scheme: "ABBA"},
	}, got)
}
