// internal/httpserver/routes_dictionary.go
//
// Dictionary endpoints:
//   - GET  /dictionary        → {count, wordLength}
//   - POST /dictionary/words  → add a word; {word, added[, reason]}
//
// Adding is open unless an edit key hash is configured, in which case the
// X-Dictionary-Key header must match it (bcrypt).

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/palabra/internal/words"
)

const dictionaryKeyHeader = "X-Dictionary-Key"

type addWordReq struct {
	Word string `json:"word"`
}

type addWordRes struct {
	Word   string `json:"word"`
	Added  bool   `json:"added"`
	Reason string `json:"reason,omitempty"` // "invalid" | "duplicate"
}

// mountDictionary registers the /dictionary routes.
func (s *Server) mountDictionary(r chi.Router) {
	r.Route("/dictionary", func(r chi.Router) {
		r.Get("/", s.handleDictionaryInfo)
		r.With(s.requireEditKey).Post("/words", s.handleAddWord)
	})
}

func (s *Server) handleDictionaryInfo(w http.ResponseWriter, r *http.Request) {
	d := s.lib.Dictionary()
	writeJSON(w, http.StatusOK, map[string]int{"count": d.Len(), "wordLength": d.WordLength()})
}

// handleAddWord appends a word and saves the list. Rejections are not errors.
func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word := words.Normalize(req.Word)
	res := addWordRes{Word: word}

	added, err := s.lib.Add(r.Context(), word)
	if err != nil {
		// the word is live in memory; only the save failed
		log.Warn().Err(err).Str("word", word).Msg("dictionary save failed")
	}
	res.Added = added
	if !added {
		res.Reason = "duplicate"
		if !s.lib.Dictionary().Valid(word) {
			res.Reason = "invalid"
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// requireEditKey checks X-Dictionary-Key against the configured bcrypt hash.
func (s *Server) requireEditKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.EditKeyHash != "" {
			key := r.Header.Get(dictionaryKeyHeader)
			if key == "" || bcrypt.CompareHashAndPassword([]byte(s.opts.EditKeyHash), []byte(key)) != nil {
				writeError(w, http.StatusUnauthorized, "invalid_key")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
