package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/palabra/internal/config"
	"github.com/robalobadob/palabra/internal/daily"
	"github.com/robalobadob/palabra/internal/dictstore"
	"github.com/robalobadob/palabra/internal/game"
)

func TestBoardConfig(t *testing.T) {
	board := boardConfig(config.GameConfig{WordLength: 4, MaxAttempts: 3, Alphabet: "abcñ"})
	assert.Equal(t, 4, board.WordLength)
	assert.Equal(t, 3, board.MaxAttempts)
	assert.Equal(t, "ABCÑ", board.Alphabet.String())
}

func TestNewPicker(t *testing.T) {
	_, ok := newPicker(config.GameConfig{SecretMode: config.SecretDaily, DailySalt: "x"}).(*daily.Picker)
	assert.True(t, ok)
	_, ok = newPicker(config.GameConfig{SecretMode: config.SecretRandom}).(game.RandomPicker)
	assert.True(t, ok)
}

func TestOpenPersister(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	p, closeFn, err := openPersister(ctx, config.DictionaryConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "w.json")})
	require.NoError(t, err)
	assert.IsType(t, &dictstore.File{}, p)
	assert.NoError(t, closeFn())

	p, closeFn, err = openPersister(ctx, config.DictionaryConfig{Backend: config.BackendSQLite, DSN: filepath.Join(dir, "w.db")})
	require.NoError(t, err)
	assert.IsType(t, &dictstore.SQLite{}, p)
	assert.NoError(t, closeFn())
}

func TestLoadLibrary_SeedsStoreFromBundledList(t *testing.T) {
	ctx := context.Background()
	store := dictstore.NewFile(filepath.Join(t.TempDir(), "words.json"))
	board := boardConfig(config.GameConfig{WordLength: 5, MaxAttempts: 6, Alphabet: "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"})

	lib, err := loadLibrary(ctx, store, board)
	require.NoError(t, err)
	require.NotZero(t, lib.Dictionary().Len())
	assert.True(t, lib.Dictionary().Contains("niños"))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, lib.Dictionary().Words(), saved)
}

func TestSetupLogging_JSON(t *testing.T) {
	var buf bytes.Buffer
	setupLogging(config.LogConfig{Level: "info", Format: "json"}, &buf)
	defer setupLogging(config.LogConfig{Level: "info", Format: "console"}, &bytes.Buffer{})

	lib, err := loadLibrary(context.Background(), nil, game.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, lib)
	assert.Contains(t, buf.String(), `"message":"dictionary loaded"`)
}
