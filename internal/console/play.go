package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/palabra/internal/game"
	"github.com/robalobadob/palabra/internal/words"
)

// Session is a terminal game. Each input line is either a guess or a
// "!" command:
//
//	!reset       start a new game
//	!add [WORD]  add WORD (default: the last rejected guess) to the dictionary
//	!board       redraw the board
//	!quit        leave
type Session struct {
	game *game.State
	lib  *words.Library
	r    *Renderer

	lastUnknown string
}

// NewSession wires a game, its word library and a renderer.
func NewSession(g *game.State, lib *words.Library, r *Renderer) *Session {
	return &Session{game: g, lib: lib, r: r}
}

// Run reads lines from in until EOF, !quit or ctx is cancelled.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.r.Board(s.game.Snapshot())
	s.prompt()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := s.Line(ctx, sc.Text()); quit {
			return nil
		}
		s.prompt()
	}
	return sc.Err()
}

// Line handles one input line. It reports whether the player asked to quit.
func (s *Session) Line(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "!") {
		return s.command(ctx, line)
	}
	if s.game.Phase().Terminal() {
		fmt.Fprintln(s.r.out, "game over, !reset to play again")
		return false
	}
	if n, want := words.Length(line), s.game.Config().WordLength; n != want {
		fmt.Fprintf(s.r.out, "%s has %d letters, guesses need %d\n", words.Normalize(line), n, want)
		return false
	}
	s.r.Effects(s.guess(line))
	return false
}

// guess clears the active row, types line letter by letter and submits it.
func (s *Session) guess(line string) []game.Effect {
	dispatch := func(c game.Command) []game.Effect { return game.Dispatch(s.game, c) }

	for s.game.Delete() {
		// clear a partial row left by a rejected guess
	}
	for _, ch := range line {
		dispatch(game.Command{Type: game.CmdLetter, Letter: string(ch)})
	}
	effects := dispatch(game.Command{Type: game.CmdSubmit})
	for _, e := range effects {
		if e.Notice == game.NoticeUnknownWord {
			s.lastUnknown = e.Word
		}
	}
	return effects
}

func (s *Session) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "!quit", "!q":
		return true
	case "!reset":
		s.lastUnknown = ""
		s.r.Effects(game.Dispatch(s.game, game.Command{Type: game.CmdReset}))
		s.r.Board(s.game.Snapshot())
	case "!board":
		s.r.Board(s.game.Snapshot())
		s.r.Keyboard(s.game.KeyStatus())
	case "!add":
		word := s.lastUnknown
		if len(fields) > 1 {
			word = fields[1]
		}
		s.add(ctx, word)
	default:
		fmt.Fprintf(s.r.out, "unknown command %s (try !reset, !add, !board, !quit)\n", fields[0])
	}
	return false
}

func (s *Session) add(ctx context.Context, word string) {
	if word == "" {
		fmt.Fprintln(s.r.out, "nothing to add")
		return
	}
	word = words.Normalize(word)
	added, err := s.lib.Add(ctx, word)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary save failed")
	}
	if !added {
		fmt.Fprintf(s.r.out, "%s was not added\n", word)
		return
	}
	fmt.Fprintf(s.r.out, "%s added\n", word)
	if word == s.lastUnknown {
		s.lastUnknown = ""
	}
}

func (s *Session) prompt() {
	if s.game.Phase().Terminal() {
		fmt.Fprint(s.r.out, "!reset to play again, !quit to leave > ")
		return
	}
	fmt.Fprintf(s.r.out, "guess %d/%d > ", s.game.Attempt()+1, s.game.Config().MaxAttempts)
}
