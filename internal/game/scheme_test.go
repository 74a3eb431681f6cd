package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheme_Endpoints(t *testing.T) {
	s, err := ParseScheme(3, smallScheme)
	require.NoError(t, err)

	assert.Equal(t, []ColorID{"A", "B"}, s.Colors())
	a, _ := s.Path("A")
	assert.Equal(t, Endpoints{Tail: 0, Head: 2}, a.Endpoints)
	b, _ := s.Path("B")
	assert.Equal(t, Endpoints{Tail: 4, Head: 7}, b.Endpoints)
	assert.Empty(t, a.Filled)
	assert.False(t, a.Dragging)
}

func TestParseScheme_IgnoresWhitespace(t *testing.T) {
	s, err := ParseScheme(3, "A-A\n-B-\n-B-\n")
	require.NoError(t, err)
	assert.Equal(t, 2, s.ColorCount())
}

func TestParseScheme_SortsIdentifiers(t *testing.T) {
	s, err := ParseScheme(2, "BAAB")
	require.NoError(t, err)
	assert.Equal(t, []ColorID{"A", "B"}, s.Colors())
}

func TestNewState_ExplicitIdentifiers(t *testing.T) {
	s, err := NewState(3, smallScheme, []ColorID{"B", "A"})
	require.NoError(t, err)
	assert.Equal(t, []ColorID{"B", "A"}, s.Colors())
}

func TestNewState_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		scheme string
		ids    []ColorID
	}{
		{"zero rows", 0, "", nil},
		{"too short", 3, "A-A-B--B", nil},
		{"too long", 3, "A-A-B--B--", nil},
		{"single occurrence", 3, "A-A-B----", nil},
		{"three occurrences", 3, "A-A-B-AB-", nil},
		{"no colors", 2, "----", nil},
		{"unknown marker", 3, smallScheme, []ColorID{"A"}},
		{"missing color", 3, smallScheme, []ColorID{"A", "B", "C"}},
		{"duplicate id", 3, smallScheme, []ColorID{"A", "A", "B"}},
		{"placeholder id", 3, smallScheme, []ColorID{"A", "B", "-"}},
		{"multi-char id", 3, smallScheme, []ColorID{"A", "BB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewState(tt.rows, tt.scheme, tt.ids)
			assert.ErrorIs(t, err, ErrInvalidScheme)
			assert.Nil(t, s)
		})
	}
}

func TestNormalizeScheme(t *testing.T) {
	assert.Equal(t, "A-A-B--B-", NormalizeScheme(" A-A\n\t-B-\r\n-B- "))
}
