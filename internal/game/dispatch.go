// internal/game/dispatch.go
//
// Command dispatch: the single entry point input adapters (HTTP, WebSocket,
// terminal) use to drive a State. Each command returns the effects a renderer
// needs; renderers never read state back from what they drew.
//
// Ignored input (letter outside the alphabet, delete at column 0, letter on a
// full row, anything after the game ended) yields no effects.

package game

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// CommandType enumerates input events.
type CommandType string

const (
	CmdLetter CommandType = "letter"
	CmdDelete CommandType = "delete"
	CmdSubmit CommandType = "submit"
	CmdReset  CommandType = "reset"
)

// Command is one input event. Letter is used by CmdLetter only.
type Command struct {
	Type   CommandType `json:"type"`
	Letter string      `json:"letter,omitempty"`
}

// ParseKey maps a key name as sent by a keyboard widget ("A", "ñ", "ENTER",
// "BACKSPACE", "DELETE") to a command.
func ParseKey(key string) (Command, bool) {
	switch k := strings.ToUpper(strings.TrimSpace(key)); k {
	case "ENTER":
		return Command{Type: CmdSubmit}, true
	case "BACKSPACE", "DELETE":
		return Command{Type: CmdDelete}, true
	case "":
		return Command{}, false
	default:
		if utf8.RuneCountInString(k) != 1 {
			return Command{}, false
		}
		return Command{Type: CmdLetter, Letter: k}, true
	}
}

// EffectKind enumerates render updates.
type EffectKind string

const (
	EffectRow    EffectKind = "row"    // cells of the active row changed
	EffectResult EffectKind = "result" // a submitted row was scored
	EffectKeys   EffectKind = "keys"   // keyboard colouring changed
	EffectNotice EffectKind = "notice" // message for the player
	EffectReset  EffectKind = "reset"  // board cleared for a new game
)

// Notice enumerates player-facing messages.
type Notice string

const (
	NoticeWon             Notice = "won"              // Word is the guessed word
	NoticeLost            Notice = "lost"             // Word is the secret
	NoticeIncompleteWord  Notice = "incomplete_word"  // transient
	NoticeUnknownWord     Notice = "unknown_word"     // Word may be offered for adding
	NoticeEmptyDictionary Notice = "empty_dictionary" // fatal
	NoticeResetFailed     Notice = "reset_failed"     // fatal, picker error
)

// Effect is one render update.
type Effect struct {
	Kind    EffectKind      `json:"kind"`
	Attempt int             `json:"attempt"`
	Cells   []string        `json:"cells,omitempty"`
	Marks   []Mark          `json:"marks,omitempty"`
	Keys    map[string]Mark `json:"keys,omitempty"`
	Notice  Notice          `json:"notice,omitempty"`
	Word    string          `json:"word,omitempty"`
	Fatal   bool            `json:"fatal,omitempty"`
}

// Dispatch applies cmd to s and returns the resulting effects.
func Dispatch(s *State, cmd Command) []Effect {
	switch cmd.Type {
	case CmdLetter:
		r, size := utf8.DecodeRuneInString(cmd.Letter)
		if size == 0 || size != len(cmd.Letter) {
			return nil
		}
		if !s.InputLetter(r) {
			return nil
		}
		return []Effect{s.rowEffect()}

	case CmdDelete:
		if !s.Delete() {
			return nil
		}
		return []Effect{s.rowEffect()}

	case CmdSubmit:
		return s.dispatchSubmit()

	case CmdReset:
		if err := s.Reset(); err != nil {
			n := NoticeResetFailed
			if errors.Is(err, ErrEmptyDictionary) {
				n = NoticeEmptyDictionary
			}
			return []Effect{{Kind: EffectNotice, Attempt: s.attempt, Notice: n, Fatal: true}}
		}
		return []Effect{{Kind: EffectReset, Attempt: 0, Cells: s.Row()}}
	}
	return nil
}

func (s *State) dispatchSubmit() []Effect {
	attempt := s.attempt
	res, err := s.Submit()
	if err != nil {
		var unknown *UnknownWordError
		switch {
		case errors.Is(err, ErrIncompleteWord):
			return []Effect{{Kind: EffectNotice, Attempt: attempt, Notice: NoticeIncompleteWord}}
		case errors.As(err, &unknown):
			return []Effect{{Kind: EffectNotice, Attempt: attempt, Notice: NoticeUnknownWord, Word: unknown.Word}}
		default:
			return nil
		}
	}

	effects := []Effect{
		{Kind: EffectResult, Attempt: attempt, Cells: splitCells(res.Guess), Marks: res.Marks},
		{Kind: EffectKeys, Attempt: attempt, Keys: s.KeyStatus()},
	}
	switch s.phase {
	case PhaseWon:
		effects = append(effects, Effect{Kind: EffectNotice, Attempt: attempt, Notice: NoticeWon, Word: res.Guess})
	case PhaseLost:
		effects = append(effects, Effect{Kind: EffectNotice, Attempt: attempt, Notice: NoticeLost, Word: s.secret})
	default:
		effects = append(effects, s.rowEffect())
	}
	return effects
}

func (s *State) rowEffect() Effect {
	return Effect{Kind: EffectRow, Attempt: s.attempt, Cells: s.Row()}
}

func splitCells(w string) []string {
	cells := make([]string, 0, utf8.RuneCountInString(w))
	for _, r := range w {
		cells = append(cells, string(r))
	}
	return cells
}
