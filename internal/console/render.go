// Package console is the terminal front end: it turns typed lines into game
// commands and draws the returned effects with ANSI colours.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/palabra/internal/game"
)

// Theme maps marks to colours.
type Theme struct {
	Correct *color.Color
	Present *color.Color
	Absent  *color.Color
	Pending *color.Color
	Notice  *color.Color
	Fatal   *color.Color
}

// DefaultTheme is green / yellow / grey tiles.
func DefaultTheme() Theme {
	return Theme{
		Correct: color.New(color.FgBlack, color.BgGreen, color.Bold),
		Present: color.New(color.FgBlack, color.BgYellow, color.Bold),
		Absent:  color.New(color.FgWhite, color.BgHiBlack),
		Pending: color.New(color.FgHiWhite),
		Notice:  color.New(color.FgCyan),
		Fatal:   color.New(color.FgRed, color.Bold),
	}
}

// Renderer draws effects to out. It keeps no game state of its own.
type Renderer struct {
	out   io.Writer
	theme Theme
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer, theme Theme) *Renderer {
	return &Renderer{out: out, theme: theme}
}

func (r *Renderer) tile(cell string, m game.Mark) string {
	// brackets keep marks readable with colour disabled
	switch m {
	case game.MarkCorrect:
		return r.theme.Correct.Sprintf("[%s]", cell)
	case game.MarkPresent:
		return r.theme.Present.Sprintf("<%s>", cell)
	case game.MarkAbsent:
		return r.theme.Absent.Sprintf(" %s ", cell)
	}
	if cell == "" {
		cell = "_"
	}
	return r.theme.Pending.Sprintf(" %s ", cell)
}

func (r *Renderer) row(cells []string, marks []game.Mark) string {
	var b strings.Builder
	for i, c := range cells {
		var m game.Mark
		if i < len(marks) {
			m = marks[i]
		}
		b.WriteString(r.tile(c, m))
	}
	return b.String()
}

// Effects draws a batch of effects in order.
func (r *Renderer) Effects(effects []game.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case game.EffectResult:
			fmt.Fprintf(r.out, "%d %s\n", e.Attempt+1, r.row(e.Cells, e.Marks))
		case game.EffectKeys:
			r.Keyboard(e.Keys)
		case game.EffectReset:
			fmt.Fprintln(r.out, r.theme.Notice.Sprint("new game"))
		case game.EffectNotice:
			r.notice(e)
		}
	}
}

func (r *Renderer) notice(e game.Effect) {
	var msg string
	switch e.Notice {
	case game.NoticeWon:
		msg = fmt.Sprintf("solved: %s in %d", e.Word, e.Attempt+1)
	case game.NoticeLost:
		msg = "out of attempts, the word was " + e.Word
	case game.NoticeIncompleteWord:
		msg = "not enough letters"
	case game.NoticeUnknownWord:
		msg = fmt.Sprintf("%s is not in the dictionary (type !add to add it)", e.Word)
	case game.NoticeEmptyDictionary:
		msg = "the dictionary is empty"
	case game.NoticeResetFailed:
		msg = "could not start a new game"
	default:
		msg = string(e.Notice)
	}
	c := r.theme.Notice
	if e.Fatal {
		c = r.theme.Fatal
	}
	fmt.Fprintln(r.out, c.Sprint(msg))
}

// Keyboard draws the on-screen keyboard coloured by key status.
func (r *Renderer) Keyboard(keys map[string]game.Mark) {
	for _, line := range game.KeyboardLayout {
		var b strings.Builder
		for _, k := range line {
			if len([]rune(k)) != 1 {
				continue
			}
			b.WriteString(r.tile(k, keys[k]))
		}
		fmt.Fprintln(r.out, b.String())
	}
}

// Board draws every scored row, the active row and the remaining empty rows.
func (r *Renderer) Board(s game.Snapshot) {
	for i, res := range s.Results {
		cells := make([]string, 0, s.WordLength)
		for _, ch := range res.Guess {
			cells = append(cells, string(ch))
		}
		fmt.Fprintf(r.out, "%d %s\n", i+1, r.row(cells, res.Marks))
	}
	if s.Phase.Terminal() {
		return
	}
	fmt.Fprintf(r.out, "%d %s\n", s.Attempt+1, r.row(s.Row, nil))
	empty := make([]string, s.WordLength)
	for i := s.Attempt + 1; i < s.MaxAttempts; i++ {
		fmt.Fprintf(r.out, "%d %s\n", i+1, r.row(empty, nil))
	}
}
