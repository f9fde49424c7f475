// Package app holds the bootstrap shared by the usuarios and citas binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"medical-agenda/internal/config"
	"medical-agenda/internal/health"
	"medical-agenda/internal/service"
	"medical-agenda/internal/store"
	"medical-agenda/internal/store/memory"
)

// Store is implemented by both the postgres and the in-memory store.
type Store interface {
	service.AppointmentRepository
	service.UserRepository
	service.Catalog
}

// OpenStore connects to postgres and applies the service migration, or
// returns a fresh memory store. The returned func releases resources.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, func(), error) {
	if cfg.DB.Driver == config.StoreMemory {
		log.Warn("store.memory", "message", "using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DB.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	log.Info("db.connected")

	switch err := store.Migrate(ctx, pool, cfg.DB.MigrationFile); {
	case errors.Is(err, store.ErrNoMigration):
		log.Warn("db.migration.skipped", "file", cfg.DB.MigrationFile)
	case err != nil:
		log.Warn("db.migration.failed", "error", err.Error())
	default:
		log.Info("db.migration.applied", "file", cfg.DB.MigrationFile)
	}
	return store.New(pool), pool.Close, nil
}

// Run serves router over HTTP, plus the grpc health endpoint when a port is
// configured, until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, router http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)

	var hs *health.Server
	if cfg.GRPC.Port != "" {
		lis, err := net.Listen("tcp", net.JoinHostPort(cfg.HTTP.Host, cfg.GRPC.Port))
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		hs = health.New(cfg.App.Name, log)
		go func() {
			if err := hs.Serve(lis); err != nil {
				errc <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http.listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()
	if hs != nil {
		hs.SetServing(true)
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errc:
		log.Error("server.failed", "error", runErr.Error())
	}

	if hs != nil {
		hs.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http.shutdown", "error", err.Error())
	}
	if hs != nil {
		hs.Stop()
	}
	return runErr
}
