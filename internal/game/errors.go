package game

import (
	"errors"

	"github.com/robalobadob/palabra/internal/words"
)

var (
	// ErrEmptyDictionary is fatal: the game cannot start without a secret.
	ErrEmptyDictionary = words.ErrEmptyDictionary

	ErrIncompleteWord = errors.New("incomplete word")
	ErrUnknownWord    = errors.New("unknown word")
	ErrGameOver       = errors.New("game finished")
)

// UnknownWordError carries the rejected guess so the caller can offer to add it.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string { return "unknown word: " + e.Word }

func (e *UnknownWordError) Unwrap() error { return ErrUnknownWord }
