package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"press 3", Press(3)},
		{"  enter   12 ", Enter(12)},
		{"RELEASE", Release()},
		{"clear", Clear()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntent(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntent_Errors(t *testing.T) {
	for _, in := range []string{"", "jump 3", "press", "press x", "enter 1 2", "release 4"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseIntent(in)
			assert.ErrorIs(t, err, ErrInvalidIntent)
		})
	}
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "press 3", Press(3).String())
	assert.Equal(t, "release", Release().String())
	assert.Equal(t, "unknown", IntentKind(0).String())
}

func TestIntent_JSON(t *testing.T) {
	var in Intent
	require.NoError(t, json.Unmarshal([]byte(`{"type":"enter","cell":5}`), &in))
	assert.Equal(t, Enter(5), in)

	b, err := json.Marshal(Press(2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"press","cell":2}`, string(b))

	err = json.Unmarshal([]byte(`{"type":"hover","cell":5}`), &in)
	assert.Error(t, err)
}

func TestColorPath_Complete(t *testing.T) {
	p := ColorPath{Endpoints: Endpoints{Tail: 0, Head: 2}}

	p.Filled = []int{0, 1, 2}
	assert.True(t, p.Complete())
	p.Filled = []int{2, 1, 0}
	assert.True(t, p.Complete())
	p.Filled = []int{0, 1}
	assert.False(t, p.Complete())
	p.Filled = []int{0}
	assert.False(t, p.Complete())
	p.Filled = []int{1, 2}
	assert.False(t, p.Complete())
}
