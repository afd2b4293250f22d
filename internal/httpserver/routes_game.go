package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/store"
)

// newGameRes is the POST /game/new payload.
type newGameRes struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	State  game.Snapshot `json:"state"`
}

// commandReq accepts either an explicit command or a key name ("A", "ENTER", "BACKSPACE").
type commandReq struct {
	Type   game.CommandType `json:"type"`
	Letter string           `json:"letter"`
	Key    string           `json:"key"`
}

func (c commandReq) command() game.Command {
	if c.Key != "" {
		cmd, _ := game.ParseKey(c.Key)
		return cmd
	}
	return game.Command{Type: c.Type, Letter: c.Letter}
}

// commandRes is the reply to a command, over HTTP and WebSocket alike.
type commandRes struct {
	Effects []game.Effect `json:"effects"`
	State   game.Snapshot `json:"state"`
}

// handleNewGame starts a game with a freshly picked secret.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := game.New(s.opts.Game, s.lib.Dictionary(), s.opts.Picker)
	if err != nil {
		if errors.Is(err, game.ErrEmptyDictionary) {
			writeError(w, http.StatusServiceUnavailable, "empty_dictionary")
			return
		}
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	sess := s.store.Create(g)

	tok, exp, err := s.signGameToken(sess.ID)
	if err != nil {
		s.store.Delete(sess.ID)
		log.Error().Err(err).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setGameCookie(w, tok, exp)

	var snap game.Snapshot
	sess.Do(func(g *game.State) { snap = g.Snapshot() })
	log.Debug().Str("gameId", sess.ID).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.ID, Token: tok, State: snap})
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	sessionFrom(r.Context()).Do(func(g *game.State) { snap = g.Snapshot() })
	writeJSON(w, http.StatusOK, snap)
}

// handleCommand dispatches one command and returns its effects with the new state.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, http.StatusOK, s.apply(sessionFrom(r.Context()), req.command()))
}

func (s *Server) apply(sess *store.Session, cmd game.Command) commandRes {
	var res commandRes
	sess.Do(func(g *game.State) {
		res.Effects = game.Dispatch(g, cmd)
		res.State = g.Snapshot()
	})
	if res.Effects == nil {
		res.Effects = []game.Effect{}
	}
	return res
}
