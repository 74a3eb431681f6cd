// internal/httpserver/ws.go
//
// Live play over a websocket. The client streams pointer intents as JSON
// text frames ({"type":"enter","cell":7}); the server answers with the board
// view every time the state changes. Repeated enters on the same cell are
// dropped before they reach the engine. When the socket closes the board
// receives a Clear, so no color is left dragging.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/flow/internal/game"
)

const (
	wsWriteWait = 5 * time.Second
	wsReadLimit = 1 << 10
)

// wsMessage is pushed after the connection opens and after every change.
type wsMessage struct {
	Changed bool      `json:"changed"`
	Solved  bool      `json:"solved"`
	Board   boardView `json:"board"`
}

// checkOrigin accepts same-host requests, requests without an Origin header
// and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	logger := hlog.FromRequest(r).With().Str("gameId", g.ID).Logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	defer func() {
		if changed, _ := g.Apply(game.Clear()); changed {
			logger.Debug().Msg("pointer cleared on disconnect")
		}
	}()

	if err := writeWS(conn, wsMessage{Board: viewOf(g)}); err != nil {
		logger.Warn().Err(err).Msg("websocket write")
		return
	}

	var ptr game.Pointer
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logClose(logger, err)
			return
		}
		var in game.Intent
		if err := json.Unmarshal(data, &in); err != nil {
			logger.Debug().Err(err).Msg("bad intent frame")
			continue
		}
		if !ptr.Filter(in) {
			continue
		}
		s.touch(g.ID)
		changed, solved := g.Apply(in)
		if solved {
			s.finishGame(r.Context(), g)
		}
		if !changed {
			continue
		}
		if err := writeWS(conn, wsMessage{Changed: true, Solved: solved, Board: viewOf(g)}); err != nil {
			logger.Warn().Err(err).Msg("websocket write")
			return
		}
	}
}

// writeWS encodes m as one text frame.
func writeWS(conn *websocket.Conn, m wsMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	wr, err := conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(wr).Encode(m); err != nil {
		_ = wr.Close()
		return err
	}
	return wr.Close()
}

func logClose(logger zerolog.Logger, err error) {
	var ce *websocket.CloseError
	if errors.As(err, &ce) && (ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway) {
		logger.Debug().Int("code", ce.Code).Msg("websocket closed")
		return
	}
	logger.Info().Err(err).Msg("websocket read")
}
