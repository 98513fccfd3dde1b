package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/songsmith/internal/usecase/song"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the running server and everything it must release on exit
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	songs  *song.SongUsecase
	logger *zap.Logger
}

// Run serves HTTP until the process is signalled or the listener fails
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		_ = a.shutdown()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

// shutdown drains HTTP first so no new watchers start, then stops the watchers and the pool
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	var shutdownErr error
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		shutdownErr = err
	}

	a.logger.Info("Stopping generation watchers")
	if err := a.songs.Shutdown(ctx); err != nil {
		a.logger.Warn("Generation watchers did not stop in time", zap.Error(err))
	}

	a.logger.Info("Closing database connections")
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped")
	_ = a.logger.Sync()
	return shutdownErr
}
