// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
//   - POST /daily/new         → start today's game (creates or reuses a session)
//   - GET  /daily/leaderboard → fastest solves for today (or ?date=YYYY-MM-DD)
//
// Moves on a daily game go through the regular /game/{id}/events and
// /game/{id}/ws endpoints; the result is recorded when the board is solved.
// Each player gets one result per day (enforced by the UNIQUE constraint
// and checked here before a new session is started).

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/flow/internal/daily"
	"github.com/robalobadob/flow/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // userID|date -> game ID
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s, sessions: make(map[string]string)}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dailyRes is returned by /daily/new.
type dailyRes struct {
	GameID string     `json:"gameId"`
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Board  *boardView `json:"board,omitempty"`
}

// handleNew creates or reuses today's daily session.
//   - A stored result for today → Played=true, no board.
//   - A session still in the store → the same game.
//   - Otherwise a fresh game from the date-seeded generator.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	player := d.srv.playerOf(w, r)
	uid := player.id()
	now := time.Now().UTC()
	date := daily.DateKey(now)

	played, err := d.srv.daily.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("date", date).Msg("check daily result")
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.sessions[key]; ok {
		if g, err := d.srv.store.Get(r.Context(), id); err == nil {
			view := viewOf(g)
			_ = json.NewEncoder(w).Encode(dailyRes{GameID: g.ID, Date: date, Board: &view})
			return
		}
		delete(d.sessions, key)
	}

	cfg := d.srv.cfg
	p, err := daily.Puzzle(now, cfg.DailySalt, cfg.DailyRows, cfg.DailyColors)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("generate daily puzzle")
		writeError(w, http.StatusInternalServerError, "daily_unavailable")
		return
	}
	g, err := game.New(p.Rows, p.Scheme)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "daily_unavailable")
		return
	}
	g.Daily = date
	if err := d.srv.startGame(r.Context(), g, player); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = g.ID

	view := viewOf(g)
	_ = json.NewEncoder(w).Encode(dailyRes{GameID: g.ID, Date: date, Board: &view})
}

// forget drops session entries that point at evicted games.
func (d *dailyServer) forget(ids []string) {
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, id := range d.sessions {
		if gone[id] {
			delete(d.sessions, key)
		}
	}
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
