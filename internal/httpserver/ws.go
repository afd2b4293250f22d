package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/palabra/internal/game"
)

const wsWriteWait = 10 * time.Second

// checkOrigin accepts same-host dials, non-browser clients and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// handleWS streams commands for one game: every text frame is a command,
// every reply is {effects, state}. The first frame sent is the current state.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("ws upgrade")
		return
	}
	defer conn.Close()
	logger := log.With().Str("gameId", sess.ID).Logger()
	logger.Debug().Msg("ws connected")

	send := func(v any) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(v); err != nil {
			logger.Debug().Err(err).Msg("ws write")
			return false
		}
		return true
	}

	var first commandRes
	first.Effects = []game.Effect{}
	sess.Do(func(g *game.State) { first.State = g.Snapshot() })
	if !send(first) {
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.opts.WSIdleTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("ws closed")
			}
			return
		}
		var req commandReq
		if err := json.Unmarshal(msg, &req); err != nil {
			if !send(map[string]string{"error": "bad_json"}) {
				return
			}
			continue
		}
		if !send(s.apply(sess, req.command())) {
			return
		}
	}
}
