// Package cli provides the speselog commands and their shared initialization.
package cli

import (
	"io"
	"log/slog"

	"speselog/internal/config"
	"speselog/internal/log"
	"speselog/internal/storage"
)

// SetupLogger initializes structured logging from the configuration.
// debug forces the debug level. Returns the configured logger and sets it
// as the default logger.
func SetupLogger(cfg *config.Config, debug bool, out io.Writer) *log.Logger {
	level := log.ParseLevel(cfg.LogLevel, log.DefaultConfig().Level)
	if debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{
		Level:     level,
		JSON:      cfg.JSONLogs(),
		Component: log.ComponentCLI,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads the optional env file, reads the configuration
// and validates it. A non-empty dataFile overrides EXPENSES_FILE.
func LoadAndValidateConfig(envFile, dataFile string) (*config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg := config.Load()
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore builds the record store and loads existing expenses.
// An unreadable file degrades to an empty, read-only store with a warning:
// reports show nothing and adds fail until the file can be read.
func OpenStore(cfg *config.Config, logger *log.Logger) *storage.FileStore {
	storeLogger := logger.WithComponent(log.ComponentStorage)
	store := storage.New(cfg.DataFile,
		storage.WithLogger(storeLogger),
		storage.WithRetry(cfg.SaveAttempts, cfg.SaveRetryDelay),
	)
	if err := store.Load(); err != nil {
		storeLogger.Warn("expenses file unreadable, saving disabled",
			log.NewFields().WithOperation(log.OpStartup).WithPath(cfg.DataFile).WithError(err).ToSlice()...)
	}
	if skipped := store.Skipped(); len(skipped) > 0 {
		storeLogger.Warn("malformed lines will be dropped on the next save",
			log.NewFields().WithPath(cfg.DataFile).WithCount(len(skipped)).ToSlice()...)
	}
	return store
}
