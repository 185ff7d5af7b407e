// Package cli holds the ledger command tree and the bootstrap helpers shared
// by cmd/ledger and cmd/ledger-server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ledger/internal/config"
	apphttp "ledger/internal/http"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the optional YAML file, applies environment
// overrides and validates the result.
func LoadAndValidateConfig(path string, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger at the configured level and makes it
// the slog default so packages logging through slog share its handler.
func SetupLogger(cfg *config.Config, debug bool, out io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}

	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// InitSQLite opens the entry store at the configured path and time zone.
func InitSQLite(logger *log.Logger, cfg *config.Config, opts ...storage.Option) (*storage.SQLiteRepository, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts = append([]storage.Option{storage.WithLocation(loc)}, opts...)

	repo, err := storage.NewSQLiteRepository(cfg.DBPath, opts...)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			log.FieldError, err.Error(),
			log.FieldDBPath, cfg.DBPath,
			log.FieldOperation, log.OpInitStore)
		return nil, fmt.Errorf("open ledger %s: %w", cfg.DBPath, err)
	}
	logger.Debug("Ledger store opened", log.FieldDBPath, cfg.DBPath)
	return repo, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// RunServer serves until ctx is cancelled or the listener fails, then shuts
// the server down within timeout.
func RunServer(ctx context.Context, srv *apphttp.Server, logger *log.Logger, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting ledger server", "addr", srv.Addr, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Server shutdown error", log.FieldError, err.Error())
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
