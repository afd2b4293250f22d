// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Phase: in_progress, won, lost.
//   - Result: one submitted attempt and its marks.
//   - Config: board dimensions and alphabet.

package game

import "github.com/robalobadob/palabra/internal/words"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the secret at the same position.
//   - "present": letter is in the secret at another, unconsumed position.
//   - "absent":  letter is not in any unconsumed position of the secret.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// rank orders marks for keyboard colouring: absent < present < correct.
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// Phase is the coarse game state.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
)

// Terminal reports whether no further input is accepted.
func (p Phase) Terminal() bool { return p == PhaseWon || p == PhaseLost }

// Result is one submitted attempt.
type Result struct {
	Guess string `json:"guess"`
	Marks []Mark `json:"marks"`
}

// Solved reports whether every mark is correct.
func (r Result) Solved() bool { return allCorrect(r.Marks) }

// Config holds the board dimensions.
type Config struct {
	WordLength  int
	MaxAttempts int
	Alphabet    words.Alphabet
}

// DefaultConfig is the classic 6x5 board over A–Z + Ñ.
func DefaultConfig() Config {
	return Config{WordLength: 5, MaxAttempts: 6, Alphabet: words.DefaultAlphabet()}
}

// Lexicon is the view of the dictionary the engine needs.
type Lexicon interface {
	Contains(word string) bool
	Words() []string
}

// KeyboardLayout is the on-screen keyboard, row by row.
// "ENTER" submits and "BACKSPACE" deletes.
var KeyboardLayout = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L", "Ñ"},
	{"ENTER", "Z", "X", "C", "V", "B", "N", "M", "BACKSPACE"},
}
