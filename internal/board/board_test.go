package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_Geometry(t *testing.T) {
	b := New(4)

	assert.Equal(t, 16, b.TilesCount())
	assert.Equal(t, 1, b.RowOf(7))
	assert.Equal(t, 3, b.ColOf(7))
	assert.Equal(t, 7, b.Index(1, 3))
	assert.True(t, b.Contains(0))
	assert.True(t, b.Contains(15))
	assert.False(t, b.Contains(16))
	assert.False(t, b.Contains(-1))
}

func TestBoard_IsAdjacent(t *testing.T) {
	b := New(3)

	tests := []struct {
		name string
		a, c int
		want bool
	}{
		{"right", 0, 1, true},
		{"left", 1, 0, true},
		{"down", 1, 4, true},
		{"up", 4, 1, true},
		{"diagonal", 0, 4, false},
		{"same cell", 4, 4, false},
		{"row end to next row start", 2, 3, false},
		{"row start to previous row end", 3, 2, false},
		{"two apart", 0, 2, false},
		{"out of range below", 1, -2, false},
		{"out of range above", 7, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.IsAdjacent(tt.a, tt.c))
		})
	}
}

func TestBoard_Neighbors(t *testing.T) {
	b := New(3)

	assert.Equal(t, []int{1, 3}, b.Neighbors(0))
	assert.Equal(t, []int{1, 5, 7, 3}, b.Neighbors(4))
	assert.Equal(t, []int{5, 7}, b.Neighbors(8))
	assert.Equal(t, []int{0, 4, 6}, b.Neighbors(3))
}
