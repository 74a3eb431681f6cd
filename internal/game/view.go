// internal/game/view.go
//
// Read-only projections of a snapshot for renderers:
//   - Cells:   per-cell owner / endpoint / current flags.
//   - Summary: flows, colors, progress and the solved flag.
//   - Render:  a plain-text grid, used by the CLI and golden tests.

package game

import (
	"strings"
)

// CellView is what a renderer needs to draw one tile.
type CellView struct {
	Index    int     `json:"index"`
	Owner    ColorID `json:"owner,omitempty"`
	Endpoint bool    `json:"endpoint,omitempty"`
	Filled   bool    `json:"filled,omitempty"`
	Current  bool    `json:"current,omitempty"` // last cell of its owner's path
}

// Cells projects the snapshot onto every tile of the board.
func Cells(s *State) []CellView {
	out := make([]CellView, s.board.TilesCount())
	for i := range out {
		out[i].Index = i
	}
	for _, id := range s.order {
		p := s.paths[id]
		out[p.Endpoints.Tail].Owner = id
		out[p.Endpoints.Tail].Endpoint = true
		out[p.Endpoints.Head].Owner = id
		out[p.Endpoints.Head].Endpoint = true
		for _, c := range p.Filled {
			out[c].Owner = id
			out[c].Filled = true
		}
		if n := len(p.Filled); n > 0 {
			out[p.Filled[n-1]].Current = true
		}
	}
	return out
}

// Summary is the statistics line shown above the board.
type Summary struct {
	Flows    int  `json:"flows"`
	Colors   int  `json:"colors"`
	Progress int  `json:"progress"` // percent of cells covered
	Solved   bool `json:"solved"`
}

// Summarize computes the statistics of a snapshot.
func Summarize(s *State) Summary {
	return Summary{
		Flows:    s.FlowCount(),
		Colors:   s.ColorCount(),
		Progress: s.ProgressPercent(),
		Solved:   s.Solved(),
	}
}

// Render draws the board as text, one line per row:
// endpoints as their id, drawn cells as the lower-cased id, empty cells as '.'.
func Render(s *State) string {
	cells := Cells(s)
	var sb strings.Builder
	sb.Grow(len(cells) + s.board.Rows)
	for i, c := range cells {
		switch {
		case c.Endpoint:
			sb.WriteString(string(c.Owner))
		case c.Filled:
			sb.WriteString(strings.ToLower(string(c.Owner)))
		default:
			sb.WriteByte('.')
		}
		if s.board.ColOf(i) == s.board.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
