// Package cli holds the command definitions for fintrack-cli and the
// initialization shared by both binaries.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/ledger"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger() *applog.Logger {
	// Logs go to stderr so CLI output stays pipeable.
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits on validation
// failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenLedger opens the configured blob store and restores the persisted
// ledger into a fresh service.
func OpenLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*services.LedgerService, storage.CleanupFunc) {
	store, cleanup, err := storage.Open(cfg.StorageConfig())
	if err != nil {
		logger.Error("Failed to open storage backend",
			"error", err,
			"backend", cfg.DataBackend)
		os.Exit(1)
	}

	svc := services.NewLedgerService(ledger.NewBook(), store)
	svc.Load(ctx)
	return svc, cleanup
}
