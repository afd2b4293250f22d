// main.go
//
// Entry point for the palabra CLI.
//   - palabra serve   runs the HTTP/WebSocket game server.
//   - palabra play    plays one game in the terminal.
//
// Both load .env, then config (CONFIG_PATH YAML or env), then the word list.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const releaseVersion = "0.1.0"

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("palabra")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "palabra",
		Short:         "A word-guessing game: six attempts to find the hidden word.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
	}
	root.AddCommand(newServeCmd(), newPlayCmd())
	return root
}
