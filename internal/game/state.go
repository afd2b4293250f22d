// internal/game/state.go
//
// State machine for a single game.
// Responsibilities:
//   - Hold the secret, the attempt/column cursors and the active guess buffer.
//   - Accept letters, deletes and submits while in progress.
//   - Score submitted guesses and track in_progress → won/lost.
//   - Keep the best mark seen per letter for keyboard colouring.
//
// A State is not safe for concurrent use; callers serialize access
// (see internal/store for the per-session lock).
package game

import (
	"fmt"

	"github.com/robalobadob/palabra/internal/words"
)

// State is one game in progress or finished.
type State struct {
	cfg    Config
	lex    Lexicon
	picker Picker

	secret  string
	row     []rune // active guess buffer; 0 marks an empty slot
	attempt int
	column  int
	phase   Phase
	results []Result
	keys    map[rune]Mark
}

// New starts a game with a secret drawn by picker.
// Returns ErrEmptyDictionary if lex has no words.
func New(cfg Config, lex Lexicon, picker Picker) (*State, error) {
	if picker == nil {
		picker = RandomPicker{}
	}
	s := &State{cfg: cfg, lex: lex, picker: picker}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset draws a new secret and clears all progress.
// On error the state is left unchanged.
func (s *State) Reset() error {
	secret, err := s.pickSecret()
	if err != nil {
		return err
	}
	s.secret = secret
	s.row = make([]rune, s.cfg.WordLength)
	s.attempt = 0
	s.column = 0
	s.phase = PhaseInProgress
	s.results = nil
	s.keys = make(map[rune]Mark)
	return nil
}

func (s *State) pickSecret() (string, error) {
	list := s.lex.Words()
	if len(list) == 0 {
		return "", ErrEmptyDictionary
	}
	w, err := s.picker.Pick(list)
	if err != nil {
		return "", fmt.Errorf("pick secret: %w", err)
	}
	w = words.Normalize(w)
	if words.Length(w) != s.cfg.WordLength {
		return "", fmt.Errorf("pick secret: %q has %d letters, want %d", w, words.Length(w), s.cfg.WordLength)
	}
	return w, nil
}

// InputLetter places ch at the cursor and advances it.
// Returns false (no-op) if the game is over, the row is full or ch is not in the alphabet.
func (s *State) InputLetter(ch rune) bool {
	if s.phase.Terminal() || s.column >= s.cfg.WordLength {
		return false
	}
	up, ok := s.cfg.Alphabet.Letter(ch)
	if !ok {
		return false
	}
	s.row[s.column] = up
	s.column++
	return true
}

// Delete clears the letter before the cursor.
// Returns false (no-op) if the game is over or the cursor is at column 0.
func (s *State) Delete() bool {
	if s.phase.Terminal() || s.column == 0 {
		return false
	}
	s.column--
	s.row[s.column] = 0
	return true
}

// Submit scores the active row.
//
// Errors (state unchanged):
//   - ErrGameOver once won or lost.
//   - ErrIncompleteWord if the row is not full.
//   - *UnknownWordError (matches ErrUnknownWord) if the guess is not in the dictionary.
//
// State transitions:
//   - All marks correct → won.
//   - Else on the last attempt → lost.
//   - Else advance to the next attempt with an empty row.
func (s *State) Submit() (Result, error) {
	if s.phase.Terminal() {
		return Result{}, ErrGameOver
	}
	if s.column < s.cfg.WordLength {
		return Result{}, ErrIncompleteWord
	}
	guess := string(s.row)
	if !s.lex.Contains(guess) {
		return Result{}, &UnknownWordError{Word: guess}
	}

	res := Result{Guess: guess, Marks: Evaluate(guess, s.secret)}
	s.mergeKeys(res)
	s.results = append(s.results, res)

	switch {
	case res.Solved():
		s.phase = PhaseWon
	case s.attempt == s.cfg.MaxAttempts-1:
		s.phase = PhaseLost
	default:
		s.attempt++
		s.column = 0
		s.row = make([]rune, s.cfg.WordLength)
	}
	return res, nil
}

// mergeKeys upgrades per-letter key status; it never downgrades.
func (s *State) mergeKeys(res Result) {
	for i, r := range []rune(res.Guess) {
		m := res.Marks[i]
		if m.rank() > s.keys[r].rank() {
			s.keys[r] = m
		}
	}
}

// ------------------------------- accessors --------------------------------

func (s *State) Phase() Phase { return s.phase }
func (s *State) Attempt() int { return s.attempt }
func (s *State) Column() int { return s.column }
func (s *State) Secret() string { return s.secret }
func (s *State) Config() Config { return s.cfg }

// Results returns the submitted attempts in order.
func (s *State) Results() []Result { return append([]Result(nil), s.results...) }

// Row returns the active row as WordLength cells; empty slots are "".
func (s *State) Row() []string {
	cells := make([]string, len(s.row))
	for i, r := range s.row {
		if r != 0 {
			cells[i] = string(r)
		}
	}
	return cells
}

// KeyStatus returns a copy of the best mark seen per letter.
func (s *State) KeyStatus() map[string]Mark {
	out := make(map[string]Mark, len(s.keys))
	for r, m := range s.keys {
		out[string(r)] = m
	}
	return out
}

// Snapshot is the full render projection of a game.
type Snapshot struct {
	Phase       Phase           `json:"phase"`
	Attempt     int             `json:"attempt"`
	Column      int             `json:"column"`
	WordLength  int             `json:"wordLength"`
	MaxAttempts int             `json:"maxAttempts"`
	Results     []Result        `json:"results"`
	Row         []string        `json:"row"`
	Keys        map[string]Mark `json:"keys"`
	Secret      string          `json:"secret,omitempty"` // revealed once finished
}

// Snapshot projects the state for rendering.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Attempt:     s.attempt,
		Column:      s.column,
		WordLength:  s.cfg.WordLength,
		MaxAttempts: s.cfg.MaxAttempts,
		Results:     s.Results(),
		Row:         s.Row(),
		Keys:        s.KeyStatus(),
	}
	if snap.Results == nil {
		snap.Results = []Result{}
	}
	if s.phase.Terminal() {
		snap.Secret = s.secret
	}
	return snap
}
