// internal/board/board.go
//
// Static geometry of a square puzzle grid.
// Cells are addressed by a flat index in [0, rows²):
//   row = index / rows, col = index % rows.
//
// Board is a plain value; it carries no game state and has no failure modes.
// Callers pass in-range indices; out-of-range input is never adjacent to anything.

package board

// Board describes a rows×rows grid.
type Board struct {
	Rows int
}

// New returns a Board with the given side length.
func New(rows int) Board { return Board{Rows: rows} }

// TilesCount is the number of cells on the board (rows²).
func (b Board) TilesCount() int { return b.Rows * b.Rows }

// RowOf returns the row of a cell index.
func (b Board) RowOf(i int) int { return i / b.Rows }

// ColOf returns the column of a cell index.
func (b Board) ColOf(i int) int { return i % b.Rows }

// Index maps (row, col) back to a flat cell index.
func (b Board) Index(row, col int) int { return row*b.Rows + col }

// Contains reports whether i is a valid cell index.
func (b Board) Contains(i int) bool { return i >= 0 && i < b.TilesCount() }

// IsAdjacent reports whether a and b share an edge.
//
// Horizontal steps (±1) must stay on the same row, so the last cell of a row
// is never adjacent to the first cell of the next one.
func (b Board) IsAdjacent(a, c int) bool {
	if !b.Contains(a) || !b.Contains(c) {
		return false
	}
	switch c {
	case a + 1, a - 1:
		return b.RowOf(a) == b.RowOf(c)
	case a + b.Rows, a - b.Rows:
		return true
	}
	return false
}

// Neighbors returns the in-range orthogonal neighbours of i
// in the order up, right, down, left.
func (b Board) Neighbors(i int) []int {
	out := make([]int, 0, 4)
	for _, n := range [...]int{i - b.Rows, i + 1, i + b.Rows, i - 1} {
		if b.IsAdjacent(i, n) {
			out = append(out, n)
		}
	}
	return out
}
