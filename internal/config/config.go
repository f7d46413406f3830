package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"campuscraft/internal/media"
	"campuscraft/internal/storage"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort        string
	StorageBackend string
	DBPath         string
	BoltPath       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	SeedDefaults   bool
	MaxUploadBytes int64
	LogLevel       slog.Level
	LogFormat      string
}

// StorageOptions returns the settings for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:        c.StorageBackend,
		DBPath:         c.DBPath,
		BoltPath:       c.BoltPath,
		RedisAddr:      c.RedisAddr,
		RedisPassword:  c.RedisPassword,
		RedisDB:        c.RedisDB,
		RedisKeyPrefix: c.RedisKeyPrefix,
	}
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and rejects invalid values.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", storage.BackendSQLite)),
		DBPath:         getEnv("DB_PATH", "./data/campuscraft.db"),
		BoltPath:       getEnv("BOLT_PATH", "./data/campuscraft.bolt"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "campuscraft:"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	switch cfg.StorageBackend {
	case storage.BackendSQLite, storage.BackendBolt, storage.BackendRedis, storage.BackendMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be one of sqlite, bolt, redis, memory; got %q", cfg.StorageBackend)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB must be a non-negative integer")
	}
	cfg.RedisDB = redisDB

	seed, err := strconv.ParseBool(getEnv("SEED_DEFAULTS", "false"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DEFAULTS must be a boolean: %w", err)
	}
	cfg.SeedDefaults = seed

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", strconv.FormatInt(media.DefaultMaxBytes, 10)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a valid integer: %w", err)
	}
	if maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be greater than 0")
	}
	cfg.MaxUploadBytes = maxUpload

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json; got %q", cfg.LogFormat)
	}

	// Create the data directory for the sqlite file
	if cfg.StorageBackend == storage.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
