package game

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/flow/internal/board"
)

// Placeholder marks a scheme cell that holds no endpoint.
const Placeholder = '-'

// ParseScheme loads a scheme, deriving the color ids from the distinct
// non-placeholder characters it contains (sorted).
func ParseScheme(rows int, scheme string) (*State, error) {
	return NewState(rows, scheme, nil)
}

// NewState builds the initial snapshot for a scheme.
//
// The scheme is rows² characters (whitespace ignored); every color id must
// occur exactly twice. The first occurrence becomes the color's Tail, the
// second its Head. When ids is nil they are derived from the scheme.
func NewState(rows int, scheme string, ids []ColorID) (*State, error) {
	if rows < 1 {
		return nil, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidScheme, rows)
	}
	cells := []rune(NormalizeScheme(scheme))
	b := board.New(rows)
	if len(cells) != b.TilesCount() {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidScheme, len(cells), b.TilesCount())
	}
	if ids == nil {
		ids = identifiers(cells)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no colors", ErrInvalidScheme)
	}

	paths := make(map[ColorID]ColorPath, len(ids))
	seen := make(map[ColorID]int, len(ids))
	order := make([]ColorID, 0, len(ids))
	for _, id := range ids {
		if utf8.RuneCountInString(string(id)) != 1 || id == ColorID(Placeholder) {
			return nil, fmt.Errorf("%w: bad color id %q", ErrInvalidScheme, id)
		}
		if _, dup := paths[id]; dup {
			return nil, fmt.Errorf("%w: duplicate color id %q", ErrInvalidScheme, id)
		}
		paths[id] = ColorPath{ID: id}
		order = append(order, id)
	}

	for i, r := range cells {
		if r == Placeholder {
			continue
		}
		id := ColorID(r)
		p, ok := paths[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown marker %q at %d", ErrInvalidScheme, r, i)
		}
		switch seen[id] {
		case 0:
			p.Endpoints.Tail = i
		case 1:
			p.Endpoints.Head = i
		default:
			return nil, fmt.Errorf("%w: color %q occurs more than twice", ErrInvalidScheme, id)
		}
		seen[id]++
		paths[id] = p
	}
	for _, id := range order {
		if seen[id] != 2 {
			return nil, fmt.Errorf("%w: color %q occurs %d times, want 2", ErrInvalidScheme, id, seen[id])
		}
	}

	return &State{board: b, order: order, paths: paths}, nil
}

// NormalizeScheme strips all whitespace, so multi-line schemes are accepted.
func NormalizeScheme(scheme string) string {
	return strings.Join(strings.Fields(scheme), "")
}

// identifiers returns the sorted set of non-placeholder runes.
func identifiers(cells []rune) []ColorID {
	set := make(map[ColorID]struct{})
	for _, r := range cells {
		if r != Placeholder {
			set[ColorID(r)] = struct{}{}
		}
	}
	out := make([]ColorID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
