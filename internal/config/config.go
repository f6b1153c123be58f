package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/storage"
)

type Config struct {
	// HTTP server
	Port string

	// Persistence backend: memory, file or sqlite
	DataBackend string

	// file backend
	DataDir string

	// sqlite backend
	SQLiteDBPath string

	// Summary cache
	SummaryCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DataBackend:     getEnv("DATA_BACKEND", "file"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		SummaryCacheTTL: getEnvDuration("SUMMARY_CACHE_TTL", 30*time.Second),
	}
}

// Validate checks the configuration and returns an error naming every
// invalid field.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !storage.BackendType(c.DataBackend).IsValid() {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [memory file sqlite]", c.DataBackend))
	}

	switch storage.BackendType(c.DataBackend) {
	case storage.FileBackend:
		if strings.TrimSpace(c.DataDir) == "" {
			problems = append(problems, "data dir is required for the file backend")
		}
	case storage.SQLiteBackend:
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			problems = append(problems, "sqlite db path is required for the sqlite backend")
		}
	}

	if c.SummaryCacheTTL <= 0 {
		problems = append(problems, "summary cache ttl must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// StorageConfig maps the env configuration onto the storage factory.
func (c *Config) StorageConfig() storage.Config {
	return storage.Config{
		Type:         storage.BackendType(c.DataBackend),
		DataDir:      c.DataDir,
		SQLiteDBPath: c.SQLiteDBPath,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
