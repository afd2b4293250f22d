// Package config loads runtime settings from an optional YAML file and the
// environment. Priority: ENV > YAML > env-default tags.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Game       GameConfig       `yaml:"game"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Session    SessionConfig    `yaml:"session"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:""`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5175"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	HandlerTimeout  time.Duration `yaml:"handler_timeout"  env:"SERVER_HANDLER_TIMEOUT"  env-default:"10s"`
	ClientOrigin    string        `yaml:"client_origin"    env:"CLIENT_ORIGIN"           env-default:"http://localhost:5173"`
}

// GameConfig holds board dimensions and secret selection.
type GameConfig struct {
	WordLength  int    `yaml:"word_length"  env:"WORD_LENGTH"  env-default:"5"`
	MaxAttempts int    `yaml:"max_attempts" env:"MAX_ATTEMPTS" env-default:"6"`
	Alphabet    string `yaml:"alphabet"     env:"ALPHABET"     env-default:"ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"`
	SecretMode  string `yaml:"secret_mode"  env:"SECRET_MODE"  env-default:"random"` // random | daily
	DailySalt   string `yaml:"daily_salt"   env:"DAILY_SALT"   env-default:"local_dev_salt"`
}

// DictionaryConfig selects the word list store.
type DictionaryConfig struct {
	Backend     string `yaml:"backend"       env:"DICTIONARY_BACKEND"       env-default:"file"` // file | sqlite
	Path        string `yaml:"path"          env:"DICTIONARY_PATH"          env-default:"./data/words.json"`
	DSN         string `yaml:"dsn"           env:"DB_PATH"                  env-default:"./data/words.db"`
	EditKeyHash string `yaml:"edit_key_hash" env:"DICTIONARY_EDIT_KEY_HASH"` // bcrypt; empty = open
}

// SessionConfig holds game token and cookie settings.
type SessionConfig struct {
	Secret      string        `yaml:"secret"       env:"JWT_SECRET"           env-default:"dev_secret_change_me"`
	TTL         time.Duration `yaml:"ttl"          env:"SESSION_TTL"          env-default:"24h"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"2h"`
	CookieName  string        `yaml:"cookie_name"  env:"COOKIE_NAME"          env-default:"palabra_game"`
	Secure      bool          `yaml:"secure"       env:"COOKIE_SECURE"        env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"` // console | json
}

// Secret selection modes.
const (
	SecretRandom = "random"
	SecretDaily  = "daily"
)

// Dictionary backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)
