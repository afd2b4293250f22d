package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks ranges and enumerations. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if err := c.Game.validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	switch c.Dictionary.Backend {
	case BackendFile:
		if c.Dictionary.Path == "" {
			return fmt.Errorf("dictionary.path is required for the file backend")
		}
	case BackendSQLite:
		if c.Dictionary.DSN == "" {
			return fmt.Errorf("dictionary.dsn is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("dictionary.backend must be %q or %q (got %q)", BackendFile, BackendSQLite, c.Dictionary.Backend)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}
	return nil
}

func (g *GameConfig) validate() error {
	if g.WordLength < 1 {
		return fmt.Errorf("word_length must be >= 1 (got %d)", g.WordLength)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", g.MaxAttempts)
	}
	if utf8.RuneCountInString(strings.TrimSpace(g.Alphabet)) == 0 {
		return fmt.Errorf("alphabet must not be empty")
	}
	switch g.SecretMode {
	case SecretRandom, SecretDaily:
	default:
		return fmt.Errorf("secret_mode must be %q or %q (got %q)", SecretRandom, SecretDaily, g.SecretMode)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }
