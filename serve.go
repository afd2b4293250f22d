package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/palabra/internal/httpserver"
	"github.com/robalobadob/palabra/internal/store"
)

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, os.Stdout)
			if err != nil {
				return err
			}
			defer a.close()
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return serve(ctx, a)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 5175, "port to listen on (env: PORT)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	sessions := store.NewMemoryStore()
	go sessions.Run(ctx, time.Minute, a.cfg.Session.IdleTimeout)

	srv := httpserver.New(sessions, a.lib, httpserver.Options{
		Game:           a.board,
		Picker:         a.picker,
		Session:        a.cfg.Session,
		ClientOrigin:   a.cfg.Server.ClientOrigin,
		EditKeyHash:    a.cfg.Dictionary.EditKeyHash,
		HandlerTimeout: a.cfg.Server.HandlerTimeout,
		WSIdleTimeout:  a.cfg.Session.IdleTimeout,
	})
	hs := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      srv,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", hs.Addr).
			Int("words", a.lib.Dictionary().Len()).
			Str("secretMode", a.cfg.Game.SecretMode).
			Msg("starting palabra server")
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}
