package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/plycut/internal/config"
	"github.com/piwi3910/plycut/internal/logger"
	"github.com/piwi3910/plycut/internal/server"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the optimization HTTP service",
		Long: `Starts the HTTP API. Configuration comes from environment variables
(PORT, LOG_LEVEL, SHEET_LENGTH, SHEET_WIDTH, KERF, MAX_SHEETS,
CORS_ORIGINS); the --port flag overrides PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Server.Port = port
			}
			logger.Init(cfg.Log.Level, cfg.Log.Pretty)
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")

	return cmd
}

func serve(cfg config.Config) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		l := logger.Logger()
		l.Info().Str("port", cfg.Server.Port).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		l := logger.Logger()
		l.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
