// internal/game/session.go
//
// Game is one playing session around the engine: identity, the scheme it was
// loaded from, move/time bookkeeping, and the current snapshot.
//
// Apply and Restart are serialized by a mutex, so HTTP handlers and the
// websocket loop can share a *Game. Readers get the immutable *State.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Game holds the state of a single flow puzzle session.
type Game struct {
	ID         string    // Unique game identifier (uuid).
	Rows       int       // Side length of the board.
	Scheme     string    // Normalized scheme the game was loaded from.
	Daily      string    // Date key for daily puzzles, empty otherwise.
	StartedAt  time.Time // When the session was created.
	FinishedAt time.Time // When the puzzle was first solved; zero while playing.
	Moves      int       // Number of press/enter events that changed the board.

	mu    sync.Mutex
	state *State
}

// New validates the scheme and constructs a new game.
func New(rows int, scheme string) (*Game, error) {
	st, err := ParseScheme(rows, scheme)
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:        uuid.NewString(),
		Rows:      rows,
		Scheme:    NormalizeScheme(scheme),
		StartedAt: time.Now().UTC(),
		state:     st,
	}, nil
}

// State returns the current snapshot.
func (g *Game) State() *State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Apply dispatches one intent.
// Returns whether the snapshot changed and whether this event solved the puzzle.
func (g *Game) Apply(in Intent) (changed, solved bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := Apply(g.state, in)
	if next == g.state {
		return false, false
	}
	g.state = next
	if in.Kind == IntentPress || in.Kind == IntentEnter {
		g.Moves++
	}
	if g.FinishedAt.IsZero() && next.Solved() {
		g.FinishedAt = time.Now().UTC()
		return true, true
	}
	return true, false
}

// Restart replaces the snapshot with a fresh one from the scheme.
// Daily games keep their clock and move count, so a restart cannot improve
// a leaderboard result.
func (g *Game) Restart() error {
	st, err := ParseScheme(g.Rows, g.Scheme)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.FinishedAt.IsZero() {
		return ErrAlreadySolved
	}
	g.state = st
	if g.Daily == "" {
		g.Moves = 0
		g.StartedAt = time.Now().UTC()
	}
	return nil
}

// Finished reports whether the puzzle has been solved at least once.
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.FinishedAt.IsZero()
}

// Stats returns moves and elapsed time, measured up to the finish when solved.
func (g *Game) Stats() (moves int, elapsed time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	end := g.FinishedAt
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return g.Moves, end.Sub(g.StartedAt)
}
