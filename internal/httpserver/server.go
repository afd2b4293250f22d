// internal/httpserver/server.go
//
// HTTP server wiring for the palabra backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, then token-gated GET /game/{id},
//     POST /game/{id}/command and the /game/{id}/ws command stream.
//   - Dictionary endpoints: GET /dictionary, POST /dictionary/words.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every game carries its own signed token; a token only opens the game it was issued for.
//   - The WebSocket route sits outside the handler timeout.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/palabra/internal/config"
	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/store"
	"github.com/robalobadob/palabra/internal/words"
)

var endpoints = []string{
	"/health", "POST /game/new", "GET /game/{id}", "POST /game/{id}/command",
	"GET /game/{id}/ws", "GET /dictionary", "POST /dictionary/words",
}

// Options configures a Server.
type Options struct {
	Game    game.Config
	Picker  game.Picker // nil means uniform random
	Session config.SessionConfig

	ClientOrigin   string
	EditKeyHash    string        // bcrypt hash guarding POST /dictionary/words; empty = open
	HandlerTimeout time.Duration // 0 = 10s
	WSIdleTimeout  time.Duration // 0 = 10m
}

// Server bundles router, session store and word library.
type Server struct {
	r     *chi.Mux
	store *store.Store
	lib   *words.Library
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st *store.Store, lib *words.Library, opts Options) *Server {
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	if opts.WSIdleTimeout <= 0 {
		opts.WSIdleTimeout = 10 * time.Minute
	}
	if opts.Picker == nil {
		opts.Picker = game.RandomPicker{}
	}
	s := &Server{r: chi.NewRouter(), store: st, lib: lib, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)           // zerolog access log
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(cors(opts.ClientOrigin)) // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.HandlerTimeout)) // bound handler time

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"service": "palabra", "endpoints": endpoints})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleDebugWords)

		// --- game ---
		r.Post("/game/new", s.handleNewGame)
		r.With(s.requireGame).Get("/game/{id}", s.handleGetGame)
		r.With(s.requireGame).Post("/game/{id}/command", s.handleCommand)

		// --- dictionary ---
		s.mountDictionary(r)
	})

	// long-lived; no handler timeout
	s.r.With(s.requireGame).Get("/game/{id}/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (used by http.Server and tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	d := s.lib.Dictionary()
	writeJSON(w, http.StatusOK, map[string]any{
		"words":      d.Len(),
		"wordLength": d.WordLength(),
		"alphabet":   d.Alphabet().String(),
		"sessions":   s.store.Len(),
	})
}

// ------------------------------- helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
