package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/palabra/internal/store"
)

// ctxSessionKey is the context key type for the resolved *store.Session.
type ctxSessionKey struct{}

func sessionFrom(ctx context.Context) *store.Session {
	s, _ := ctx.Value(ctxSessionKey{}).(*store.Session)
	return s
}

// signGameToken creates an HS256 JWT whose subject is the game ID.
func (s *Server) signGameToken(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.Session.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.Session.Secret))
	return ss, exp, err
}

// parseGameToken validates tok and returns the game ID it was issued for.
func (s *Server) parseGameToken(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Session.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// setGameCookie writes the game token cookie.
func (s *Server) setGameCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Session.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Session.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

func (s *Server) cookieName() string {
	if s.opts.Session.CookieName == "" {
		return "palabra_game"
	}
	return s.opts.Session.CookieName
}

// tokenFrom extracts a token from the Authorization header, the game cookie,
// or a "token" query parameter (browsers cannot set headers on WebSocket dials).
func (s *Server) tokenFrom(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if c, err := r.Cookie(s.cookieName()); err == nil {
		return c.Value
	}
	return ""
}

// requireGame enforces a token for the {id} in the path and injects the session.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tok := s.tokenFrom(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sub, err := s.parseGameToken(tok)
		if err != nil || sub != id {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
