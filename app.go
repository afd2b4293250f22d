package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/palabra/assets"
	"github.com/robalobadob/palabra/internal/config"
	"github.com/robalobadob/palabra/internal/daily"
	"github.com/robalobadob/palabra/internal/dictstore"
	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/words"
)

// setupLogging applies level and format; console output goes to w.
func setupLogging(cfg config.LogConfig, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(cfg.Format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// openPersister builds the configured dictionary store. close is never nil.
func openPersister(ctx context.Context, cfg config.DictionaryConfig) (words.Persister, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := dictstore.OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.DSN, err)
		}
		return db, db.Close, nil
	default:
		return dictstore.NewFile(cfg.Path), func() error { return nil }, nil
	}
}

// boardConfig converts game settings into the engine's config.
func boardConfig(cfg config.GameConfig) game.Config {
	return game.Config{
		WordLength:  cfg.WordLength,
		MaxAttempts: cfg.MaxAttempts,
		Alphabet:    words.NewAlphabet(cfg.Alphabet),
	}
}

// loadLibrary loads the dictionary, falling back to the embedded list.
func loadLibrary(ctx context.Context, store words.Persister, board game.Config) (*words.Library, error) {
	return words.Load(ctx, store, words.Options{
		WordLength: board.WordLength,
		Alphabet:   board.Alphabet,
		Bundled:    assets.BundledWords,
	})
}

// newPicker returns the secret picker for the configured mode.
func newPicker(cfg config.GameConfig) game.Picker {
	if cfg.SecretMode == config.SecretDaily {
		return daily.NewPicker(cfg.DailySalt)
	}
	return game.RandomPicker{}
}

type app struct {
	cfg    *config.Config
	board  game.Config
	lib    *words.Library
	picker game.Picker
	close  func() error
}

// bootstrap loads config, sets up logging and loads the word list.
// An empty dictionary is fatal.
func bootstrap(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Log, logOut)

	store, closeStore, err := openPersister(ctx, cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	board := boardConfig(cfg.Game)
	lib, err := loadLibrary(ctx, store, board)
	if err != nil {
		_ = closeStore()
		if errors.Is(err, words.ErrEmptyDictionary) {
			log.Fatal().Err(err).Str("backend", cfg.Dictionary.Backend).Msg("no words available")
		}
		return nil, err
	}
	return &app{cfg: cfg, board: board, lib: lib, picker: newPicker(cfg.Game), close: closeStore}, nil
}
