// internal/httpserver/server.go
//
// HTTP server wiring for the flow backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): new game, board view, pointer events, restart.
//   - Live play over a websocket: GET /game/{id}/ws.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Recording finished games and user stats in SQLite.
//
// Notes:
//   - Boards in play live only in the session store; the database keeps a
//     row per game (status, moves, timestamps), never the board itself.
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes still run for guests, who are tracked by an anonymous cookie.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/flow/internal/config"
	"github.com/robalobadob/flow/internal/daily"
	"github.com/robalobadob/flow/internal/game"
	"github.com/robalobadob/flow/internal/generator"
	"github.com/robalobadob/flow/internal/levels"
	"github.com/robalobadob/flow/internal/store"
)

// maxEventsPerRequest bounds the batch accepted by POST /game/{id}/events.
const maxEventsPerRequest = 512

// Server bundles router, session store, DB handle and configuration.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	daily    *daily.Store
	cfg      config.Config
	upgrader websocket.Upgrader

	mu     sync.Mutex
	owners map[string]owner // game ID -> who started it, doubles as the eviction index

	dailies *dailyServer
}

// owner identifies the player a game row belongs to.
type owner struct {
	UserID string    // set for signed-in players
	AnonID string    // set for guests
	seen   time.Time // last request that touched the game
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		db:     db,
		daily:  daily.NewStore(db),
		cfg:    cfg,
		owners: make(map[string]owner),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped logger
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(s.cors)                      // credentials-friendly CORS

	// --- websocket (no timeout, no response wrapping) ---
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(accessLog)
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"flow-go","endpoints":["/health","POST /game/new","POST /game/{id}/events","GET /game/{id}/ws","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/levels", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"levels": levels.Count(), "sessions": s.store.Len()})
		})

		// Game endpoints, optional auth (guests can play)
		r.Group(func(r chi.Router) {
			r.Use(s.withOptionalAuth())
			r.Post("/game/new", s.handleNewGame)
			r.Get("/game/{id}", s.handleGetGame)
			r.Post("/game/{id}/events", s.handleEvents)
			r.Post("/game/{id}/restart", s.handleRestart)
			s.mountDaily(r)
		})

		// Auth + profile/stats
		s.mountAuthRoutes(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Router exposes the handler; the CLI mounts it on its own http.Server.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes a {"error": code} body with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ GAME ---------------------------------------

// boardView is the read-only projection sent to clients after every change.
type boardView struct {
	GameID   string          `json:"gameId"`
	Rows     int             `json:"rows"`
	Scheme   string          `json:"scheme"`
	Daily    string          `json:"daily,omitempty"`
	Cells    []game.CellView `json:"cells"`
	Stats    game.Summary    `json:"stats"`
	Moves    int             `json:"moves"`
	Dragging game.ColorID    `json:"dragging,omitempty"`
}

func viewOf(g *game.Game) boardView {
	st := g.State()
	moves, _ := g.Stats()
	dragging, _ := st.DraggingColor()
	return boardView{
		GameID:   g.ID,
		Rows:     g.Rows,
		Scheme:   g.Scheme,
		Daily:    g.Daily,
		Cells:    game.Cells(st),
		Stats:    game.Summarize(st),
		Moves:    moves,
		Dragging: dragging,
	}
}

// newGameReq is the payload for POST /game/new.
// Exactly one source is used: scheme (with rows), then level, then the generator.
// A negative level picks a random one from the pack.
type newGameReq struct {
	Rows   int    `json:"rows"`
	Colors int    `json:"colors"`
	Scheme string `json:"scheme"`
	Level  *int   `json:"level"`
}

type newGameRes struct {
	GameID string    `json:"gameId"`
	Board  boardView `json:"board"`
}

// handleNewGame creates a new in-memory game and records an owner row.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	rows, scheme, err := s.pickScheme(req)
	if err != nil {
		switch {
		case errors.Is(err, errUnknownLevel):
			writeError(w, http.StatusNotFound, "unknown_level")
		case errors.Is(err, game.ErrInvalidScheme):
			writeError(w, http.StatusBadRequest, "invalid_scheme")
		default:
			writeError(w, http.StatusBadRequest, "bad_dimensions")
		}
		return
	}

	g, err := game.New(rows, scheme)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_scheme")
		return
	}
	if err := s.startGame(r.Context(), g, s.playerOf(w, r)); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Board: viewOf(g)})
}

var errUnknownLevel = errors.New("unknown level")

// pickScheme resolves the puzzle for a new-game request.
func (s *Server) pickScheme(req newGameReq) (int, string, error) {
	switch {
	case req.Scheme != "":
		if req.Rows < 1 || req.Rows > s.cfg.MaxRows {
			return 0, "", game.ErrInvalidScheme
		}
		return req.Rows, req.Scheme, nil
	case req.Level != nil:
		lv, ok := levels.Get(*req.Level)
		if *req.Level < 0 {
			lv, ok = levels.Random()
		}
		if !ok {
			return 0, "", errUnknownLevel
		}
		return lv.Rows, lv.Scheme, nil
	}

	rows, colors := req.Rows, req.Colors
	if rows == 0 {
		rows = s.cfg.DefaultRows
	}
	if colors == 0 {
		colors = s.cfg.DefaultColors
	}
	if rows > s.cfg.MaxRows {
		return 0, "", generator.ErrBadDimensions
	}
	p, err := generator.Generate(generator.NewRand(rand.Uint64()), rows, colors)
	if err != nil {
		return 0, "", err
	}
	return p.Rows, p.Scheme, nil
}

// playerOf identifies the caller: the signed-in user, else the anonymous cookie.
func (s *Server) playerOf(w http.ResponseWriter, r *http.Request) owner {
	if me := userFrom(r); me != nil {
		return owner{UserID: me.ID}
	}
	return owner{AnonID: s.ensureAnonID(w, r)}
}

// id returns whichever identifier is set.
func (o owner) id() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

// startGame saves g in the session store and records its owner row (best effort).
func (s *Server) startGame(ctx context.Context, g *game.Game, o owner) error {
	if err := s.store.Save(ctx, g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		return err
	}
	o.seen = time.Now()
	s.mu.Lock()
	s.owners[g.ID] = o
	s.mu.Unlock()

	st := g.State()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, board_rows, colors, scheme, daily, started_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		g.ID, nullable(o.UserID), nullable(o.AnonID), g.Rows, st.ColorCount(), g.Scheme,
		nullable(g.Daily), g.StartedAt.Format(time.RFC3339))
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
	if o.UserID != "" {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + 1 WHERE id=?`, o.UserID); err != nil {
			log.Warn().Err(err).Str("user", o.UserID).Msg("bump games played")
		}
	}
	return nil
}

// loadGame fetches the game named by the {id} URL parameter.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	s.touch(g.ID)
	return g, true
}

// touch marks a game as active, postponing its eviction.
func (s *Server) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.owners[id]; ok {
		o.seen = time.Now()
		s.owners[id] = o
	}
}

// EvictIdle drops games nobody has touched for longer than idle from the
// session store. Their database rows are kept. Returns the number evicted.
func (s *Server) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	var stale []string
	s.mu.Lock()
	for id, o := range s.owners {
		if o.seen.Before(cutoff) {
			stale = append(stale, id)
			delete(s.owners, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		if err := s.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("evict game")
		}
	}
	if s.dailies != nil {
		s.dailies.forget(stale)
	}
	if len(stale) > 0 {
		log.Debug().Int("evicted", len(stale)).Int("sessions", s.store.Len()).Msg("evicted idle games")
	}
	return len(stale)
}

// RunEviction calls EvictIdle every interval until ctx is done.
// A non-positive idle disables eviction.
func (s *Server) RunEviction(ctx context.Context, idle, interval time.Duration) {
	if idle <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.EvictIdle(ctx, idle)
		}
	}
}

// handleGetGame returns the current board view.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(g))
}

// eventsReq is a batch of pointer intents, applied in order.
type eventsReq struct {
	Events []game.Intent `json:"events"`
}

type eventsRes struct {
	Changed bool      `json:"changed"`
	Solved  bool      `json:"solved"`
	Board   boardView `json:"board"`
}

// handleEvents applies a batch of pointer intents to a game.
// Illegal moves are absorbed by the engine; only malformed payloads are rejected.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req eventsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.Events) > maxEventsPerRequest {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_events")
		return
	}

	var res eventsRes
	for _, in := range req.Events {
		changed, solved := g.Apply(in)
		res.Changed = res.Changed || changed
		if solved {
			res.Solved = true
			s.finishGame(r.Context(), g)
		}
	}
	res.Board = viewOf(g)
	_ = json.NewEncoder(w).Encode(res)
}

// handleRestart resets a game to its initial scheme.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	if err := g.Restart(); err != nil {
		if errors.Is(err, game.ErrAlreadySolved) {
			writeError(w, http.StatusConflict, "already_solved")
			return
		}
		writeError(w, http.StatusInternalServerError, "restart_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(g))
}

// finishGame records a solve: the game row, the owner's stats and, for daily
// puzzles, the daily result. Failures are logged and otherwise ignored.
func (s *Server) finishGame(ctx context.Context, g *game.Game) {
	s.mu.Lock()
	o := s.owners[g.ID]
	s.mu.Unlock()
	moves, elapsed := g.Stats()
	logger := log.With().Str("gameId", g.ID).Int("moves", moves).Dur("elapsed", elapsed).Logger()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("begin finish")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE games SET status='solved', moves=?, finished_at=? WHERE id=?`,
		moves, time.Now().UTC().Format(time.RFC3339), g.ID); err != nil {
		logger.Warn().Err(err).Msg("finish game")
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET solved = solved + 1 WHERE id=?`, o.UserID); err != nil {
			logger.Warn().Err(err).Str("user", o.UserID).Msg("bump solved")
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Msg("commit finish")
	}

	if g.Daily != "" {
		err := s.daily.InsertResult(ctx, daily.Result{
			UserID:    o.id(),
			Date:      g.Daily,
			Rows:      g.Rows,
			Colors:    g.State().ColorCount(),
			Moves:     moves,
			ElapsedMs: int(elapsed.Milliseconds()),
		})
		if err != nil {
			logger.Warn().Err(err).Msg("insert daily result")
		}
	}
	logger.Info().Msg("puzzle solved")
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
