// internal/generator/generator.go
//
// Random puzzle generator.
//
// A puzzle is cut out of a Hamiltonian path over the grid:
//   1. Start from the boustrophedon (snake) path.
//   2. Shuffle it with random backbite moves; every move keeps it Hamiltonian.
//   3. Cut the path into one segment per color, each at least 3 cells long.
//   4. The two ends of each segment become that color's endpoints.
//
// The segments form a full cover of the board, so every generated puzzle has
// at least one solution, returned alongside the scheme.

package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/robalobadob/flow/internal/board"
	"github.com/robalobadob/flow/internal/game"
)

// Alphabet lists the color ids in the order they are assigned.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// minSegment is the shortest path handed to a color.
const minSegment = 3

// ErrBadDimensions is returned when no puzzle fits the requested size.
var ErrBadDimensions = errors.New("generator: bad dimensions")

// Puzzle is a generated scheme with one known solution.
type Puzzle struct {
	Rows     int                    `json:"rows"`
	Scheme   string                 `json:"scheme"`
	Solution map[game.ColorID][]int `json:"solution"`
}

// Generate builds a random rows×rows puzzle with the given number of colors.
func Generate(rng *rand.Rand, rows, colors int) (Puzzle, error) {
	b := board.New(rows)
	switch {
	case rows < 2:
		return Puzzle{}, fmt.Errorf("%w: rows %d < 2", ErrBadDimensions, rows)
	case colors < 1 || colors > len(Alphabet):
		return Puzzle{}, fmt.Errorf("%w: colors %d not in [1,%d]", ErrBadDimensions, colors, len(Alphabet))
	case colors*minSegment > b.TilesCount():
		return Puzzle{}, fmt.Errorf("%w: %d colors do not fit %d cells", ErrBadDimensions, colors, b.TilesCount())
	}

	path := snake(b)
	shuffle(rng, b, path, b.TilesCount()*rows*4)

	cells := []byte(strings.Repeat(string(game.Placeholder), b.TilesCount()))
	solution := make(map[game.ColorID][]int, colors)
	start := 0
	for i, n := range segmentLengths(rng, len(path), colors) {
		seg := append([]int(nil), path[start:start+n]...)
		cells[seg[0]] = Alphabet[i]
		cells[seg[n-1]] = Alphabet[i]
		solution[game.ColorID(Alphabet[i:i+1])] = seg
		start += n
	}

	return Puzzle{Rows: rows, Scheme: string(cells), Solution: solution}, nil
}

// snake returns the boustrophedon path: left to right on even rows,
// right to left on odd rows.
func snake(b board.Board) []int {
	out := make([]int, 0, b.TilesCount())
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Rows; c++ {
			if r%2 == 1 {
				out = append(out, b.Index(r, b.Rows-1-c))
			} else {
				out = append(out, b.Index(r, c))
			}
		}
	}
	return out
}

// shuffle applies n backbite moves to a Hamiltonian path in place.
//
// A backbite picks a random grid neighbour v of the path's end. v is already
// on the path at position i; reversing path[i+1:] links the end to v and makes
// path[i+1] the new end. Moves alternate randomly between both ends.
func shuffle(rng *rand.Rand, b board.Board, path []int, n int) {
	pos := make([]int, len(path))
	for i, c := range path {
		pos[c] = i
	}
	for ; n > 0; n-- {
		if rng.IntN(2) == 0 {
			reverse(path, pos, 0, len(path)-1)
		}
		end := path[len(path)-1]
		nbs := b.Neighbors(end)
		v := nbs[rng.IntN(len(nbs))]
		i := pos[v]
		if i == len(path)-2 {
			continue
		}
		reverse(path, pos, i+1, len(path)-1)
	}
}

// reverse flips path[lo..hi] in place, keeping pos in sync.
func reverse(path, pos []int, lo, hi int) {
	for ; lo < hi; lo, hi = lo+1, hi-1 {
		path[lo], path[hi] = path[hi], path[lo]
		pos[path[lo]] = lo
		pos[path[hi]] = hi
	}
}

// segmentLengths splits total into parts lengths of at least minSegment,
// distributing the remainder at random.
func segmentLengths(rng *rand.Rand, total, parts int) []int {
	out := make([]int, parts)
	for i := range out {
		out[i] = minSegment
	}
	for extra := total - parts*minSegment; extra > 0; extra-- {
		out[rng.IntN(parts)]++
	}
	return out
}

// NewRand returns a deterministic generator for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
