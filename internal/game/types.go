// internal/game/types.go
//
// Core type definitions for the flow path engine.
// Defines:
//   - ColorID / Endpoints / ColorPath: per-color path state.
//   - State: an immutable snapshot of every color's path.
//   - Intent: the closed set of pointer events the engine consumes.

package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/flow/internal/board"
)

var (
	// ErrInvalidScheme is returned when a scheme cannot be loaded.
	ErrInvalidScheme = errors.New("invalid scheme")
	// ErrInvalidIntent is returned when a textual intent cannot be parsed.
	ErrInvalidIntent = errors.New("invalid intent")
	// ErrAlreadySolved is returned by Restart once the puzzle has been solved.
	ErrAlreadySolved = errors.New("already solved")
)

// ColorID identifies one color of the puzzle (a single scheme character).
type ColorID string

// Endpoints are the two fixed cells a color must connect.
// Tail is the first occurrence in the scheme, Head the second.
type Endpoints struct {
	Tail int `json:"tail"`
	Head int `json:"head"`
}

// Has reports whether cell is one of the two endpoints.
func (e Endpoints) Has(cell int) bool { return cell == e.Tail || cell == e.Head }

// ColorPath is the drawn path of one color.
type ColorPath struct {
	ID        ColorID   `json:"id"`
	Endpoints Endpoints `json:"endpoints"`
	Filled    []int     `json:"filled"`   // ordered, consecutive cells adjacent
	Dragging  bool      `json:"dragging"` // true while the pointer extends this path
}

// Complete reports whether the path runs from one endpoint to the other.
func (p ColorPath) Complete() bool {
	n := len(p.Filled)
	if n < 2 {
		return false
	}
	first, last := p.Filled[0], p.Filled[n-1]
	return (first == p.Endpoints.Tail && last == p.Endpoints.Head) ||
		(first == p.Endpoints.Head && last == p.Endpoints.Tail)
}

func (p ColorPath) clone() ColorPath {
	p.Filled = append([]int(nil), p.Filled...)
	return p
}

// State is a snapshot of the game. A State is never modified once it has
// been returned to a caller; Apply builds a new one for every change.
type State struct {
	board board.Board
	order []ColorID // color ids in load order, shared between snapshots
	paths map[ColorID]ColorPath
}

// Board returns the grid geometry.
func (s *State) Board() board.Board { return s.board }

// Colors returns the color ids in load order.
func (s *State) Colors() []ColorID { return append([]ColorID(nil), s.order...) }

// Path returns a copy of one color's path.
func (s *State) Path(id ColorID) (ColorPath, bool) {
	p, ok := s.paths[id]
	if !ok {
		return ColorPath{}, false
	}
	return p.clone(), true
}

// Paths returns copies of every color's path in color order.
func (s *State) Paths() []ColorPath {
	out := make([]ColorPath, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.paths[id].clone())
	}
	return out
}

func (s *State) clone() *State {
	paths := make(map[ColorID]ColorPath, len(s.paths))
	for id, p := range s.paths {
		paths[id] = p.clone()
	}
	return &State{board: s.board, order: s.order, paths: paths}
}

// samePaths reports whether two snapshots hold identical paths and drag flags.
func (s *State) samePaths(o *State) bool {
	for _, id := range s.order {
		a, b := s.paths[id], o.paths[id]
		if a.Dragging != b.Dragging || len(a.Filled) != len(b.Filled) {
			return false
		}
		for i := range a.Filled {
			if a.Filled[i] != b.Filled[i] {
				return false
			}
		}
	}
	return true
}

// IntentKind enumerates the pointer events understood by Apply.
type IntentKind int

const (
	IntentPress   IntentKind = iota + 1 // pointer pressed on a cell
	IntentEnter                         // pointer moved onto a cell while held
	IntentRelease                       // pointer released
	IntentClear                         // pointer left the board; drop all drags
)

var intentNames = map[IntentKind]string{
	IntentPress:   "press",
	IntentEnter:   "enter",
	IntentRelease: "release",
	IntentClear:   "clear",
}

func (k IntentKind) String() string {
	if s, ok := intentNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind by name for JSON payloads.
func (k IntentKind) MarshalText() ([]byte, error) {
	if _, ok := intentNames[k]; !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidIntent, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name ("press", "enter", "release", "clear").
func (k *IntentKind) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for kind, s := range intentNames {
		if s == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidIntent, name)
}

// Intent is one normalized pointer event.
// Cell is only meaningful for IntentPress and IntentEnter.
type Intent struct {
	Kind IntentKind `json:"type"`
	Cell int        `json:"cell"`
}

// Press begins a drag on cell.
func Press(cell int) Intent { return Intent{Kind: IntentPress, Cell: cell} }

// Enter moves a held pointer onto cell.
func Enter(cell int) Intent { return Intent{Kind: IntentEnter, Cell: cell} }

// Release ends the current drag.
func Release() Intent { return Intent{Kind: IntentRelease} }

// Clear drops every drag, used when the pointer leaves the board.
func Clear() Intent { return Intent{Kind: IntentClear} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentPress, IntentEnter:
		return in.Kind.String() + " " + strconv.Itoa(in.Cell)
	}
	return in.Kind.String()
}

// ParseIntent parses the textual form produced by Intent.String,
// e.g. "press 3", "enter 4", "release", "clear".
func ParseIntent(s string) (Intent, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Intent{}, fmt.Errorf("%w: empty", ErrInvalidIntent)
	}
	var kind IntentKind
	if err := kind.UnmarshalText([]byte(fields[0])); err != nil {
		return Intent{}, err
	}
	switch kind {
	case IntentPress, IntentEnter:
		if len(fields) != 2 {
			return Intent{}, fmt.Errorf("%w: %q needs a cell", ErrInvalidIntent, s)
		}
		cell, err := strconv.Atoi(fields[1])
		if err != nil {
			return Intent{}, fmt.Errorf("%w: cell %q", ErrInvalidIntent, fields[1])
		}
		return Intent{Kind: kind, Cell: cell}, nil
	default:
		if len(fields) != 1 {
			return Intent{}, fmt.Errorf("%w: %q takes no cell", ErrInvalidIntent, s)
		}
		return Intent{Kind: kind}, nil
	}
}
