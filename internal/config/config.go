package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDataFile is the persistence file used when EXPENSES_FILE is unset.
// It is resolved relative to the working directory.
const DefaultDataFile = "expenses.txt"

type Config struct {
	// Storage
	DataFile string

	// Logging
	LogLevel  string
	LogFormat string

	// Save retries
	SaveAttempts   int
	SaveRetryDelay time.Duration
}

// LoadEnvFile loads variables from a .env file without overriding the
// environment. With no path, a missing ./.env is silently ignored; an
// explicit path must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func Load() *Config {
	return &Config{
		DataFile: getEnv("EXPENSES_FILE", DefaultDataFile),

		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		SaveAttempts:   getEnvInt("SAVE_ATTEMPTS", 3),
		SaveRetryDelay: getEnvDuration("SAVE_RETRY_DELAY", 50*time.Millisecond),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DataFile) == "" {
		errors = append(errors, "expenses file path cannot be empty")
	} else if info, err := os.Stat(c.DataFile); err == nil && info.IsDir() {
		errors = append(errors, fmt.Sprintf("expenses file '%s' is a directory", c.DataFile))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(c.LogLevel)
	if level == "warning" {
		level = "warn"
	}
	if !contains(validLevels, level) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	validFormats := []string{"text", "json"}
	if !contains(validFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if c.SaveAttempts < 1 {
		errors = append(errors, fmt.Sprintf("invalid save attempts %d: must be at least 1", c.SaveAttempts))
	} else if c.SaveAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid save attempts %d: must be at most 10", c.SaveAttempts))
	}

	if c.SaveRetryDelay < 0 {
		errors = append(errors, fmt.Sprintf("invalid save retry delay %v: cannot be negative", c.SaveRetryDelay))
	} else if c.SaveRetryDelay > 5*time.Second {
		errors = append(errors, fmt.Sprintf("invalid save retry delay %v: must be at most 5s", c.SaveRetryDelay))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// JSONLogs reports whether logs should be emitted as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
