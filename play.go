package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robalobadob/palabra/internal/console"
	"github.com/robalobadob/palabra/internal/game"
)

func newPlayCmd() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: "Type a word and press enter to guess it.\n" +
			"!reset starts over, !add [WORD] adds a word to the dictionary, !board redraws, !quit leaves.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if noColor {
				color.NoColor = true
			}
			// logs go to stderr so they don't interleave with the board
			a, err := bootstrap(ctx, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			g, err := game.New(a.board, a.lib.Dictionary(), a.picker)
			if err != nil {
				if errors.Is(err, game.ErrEmptyDictionary) {
					return fmt.Errorf("cannot start a game: %w", err)
				}
				return err
			}
			out := cmd.OutOrStdout()
			r := console.NewRenderer(out, console.DefaultTheme())
			return console.NewSession(g, a.lib, r).Run(ctx, cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colours")
	return cmd
}
