package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCells(t *testing.T) {
	s := applyAll(mustState(t, 3, smallScheme), Press(0), Enter(1))
	cells := Cells(s)

	assert.Len(t, cells, 9)
	assert.Equal(t, CellView{Index: 0, Owner: "A", Endpoint: true, Filled: true}, cells[0])
	assert.Equal(t, CellView{Index: 1, Owner: "A", Filled: true, Current: true}, cells[1])
	assert.Equal(t, CellView{Index: 2, Owner: "A", Endpoint: true}, cells[2])
	assert.Equal(t, CellView{Index: 3}, cells[3])
	assert.Equal(t, CellView{Index: 4, Owner: "B", Endpoint: true}, cells[4])
}

func TestQueries(t *testing.T) {
	s := applyAll(mustState(t, 3, smallScheme), Press(0), Enter(1))

	id, ok := s.ColorAt(1)
	assert.True(t, ok)
	assert.Equal(t, ColorID("A"), id)
	id, ok = s.ColorAt(7)
	assert.True(t, ok)
	assert.Equal(t, ColorID("B"), id)
	_, ok = s.ColorAt(3)
	assert.False(t, ok)

	assert.True(t, s.IsOccupied(1))
	assert.False(t, s.IsOccupied(2), "endpoint alone is not occupied")
	assert.True(t, s.IsEndpoint(7))
	assert.False(t, s.IsEndpoint(1))
	assert.False(t, s.IsComplete("Z"))
	assert.Equal(t, 22, s.ProgressPercent())
}

func TestSummarize(t *testing.T) {
	s := applyAll(mustState(t, 3, smallScheme), Press(0), Enter(1), Enter(2))

	assert.Equal(t, Summary{Flows: 1, Colors: 2, Progress: 33}, Summarize(s))
}

func TestRender(t *testing.T) {
	s := applyAll(mustState(t, 3, smallScheme), Press(0), Enter(3), Press(7), Enter(8))

	assert.Equal(t, "A.A\naB.\n.Bb\n", Render(s))
}
