package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oguzk/noteshub/internal/bootstrap"
	"github.com/oguzk/noteshub/internal/pkg/logger"
)

// Run starts the HTTP server and blocks until shutdown completes. SIGINT and
// SIGTERM trigger a graceful drain before the database pool is closed.
func Run(deps *bootstrap.Dependencies) error {
	srv := &http.Server{
		Addr:         ":" + deps.Config.Server.Port,
		Handler:      deps.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", deps.Config.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
		return err
	}

	deps.DB.Close()
	logger.Info().Msg("Server stopped")
	return nil
}
