package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"campuscraft/internal/storage"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"API_PORT", "STORAGE_BACKEND", "DB_PATH", "BOLT_PATH",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
	"SEED_DEFAULTS", "MAX_UPLOAD_BYTES", "LOG_LEVEL", "LOG_FORMAT",
}

// isolateEnv clears the config variables and moves into an empty directory so no .env is loaded.
func isolateEnv(t *testing.T) {
	t.Helper()
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	originalWd, _ := os.Getwd()
	_ = os.Chdir(t.TempDir())

	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "defaults",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.StorageBackend == storage.BackendSQLite &&
					cfg.DBPath == "./data/campuscraft.db" &&
					cfg.BoltPath == "./data/campuscraft.bolt" &&
					cfg.RedisAddr == "localhost:6379" &&
					cfg.RedisDB == 0 &&
					cfg.RedisKeyPrefix == "campuscraft:" &&
					!cfg.SeedDefaults &&
					cfg.MaxUploadBytes == 10<<20 &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("API_PORT", "8080")
				setEnv("STORAGE_BACKEND", "Redis")
				setEnv("REDIS_ADDR", "cache:6380")
				setEnv("REDIS_DB", "2")
				setEnv("SEED_DEFAULTS", "true")
				setEnv("MAX_UPLOAD_BYTES", "1024")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8080" &&
					cfg.StorageBackend == storage.BackendRedis &&
					cfg.RedisAddr == "cache:6380" &&
					cfg.RedisDB == 2 &&
					cfg.SeedDefaults &&
					cfg.MaxUploadBytes == 1024 &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json"
			},
		},
		{
			name:     "unknown backend",
			setupEnv: func(t *testing.T) { setEnv("STORAGE_BACKEND", "postgres") },
			wantErr:  true,
		},
		{
			name:     "invalid REDIS_DB",
			setupEnv: func(t *testing.T) { setEnv("REDIS_DB", "-1") },
			wantErr:  true,
		},
		{
			name:     "invalid SEED_DEFAULTS",
			setupEnv: func(t *testing.T) { setEnv("SEED_DEFAULTS", "sometimes") },
			wantErr:  true,
		},
		{
			name:     "invalid MAX_UPLOAD_BYTES",
			setupEnv: func(t *testing.T) { setEnv("MAX_UPLOAD_BYTES", "0") },
			wantErr:  true,
		},
		{
			name:     "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) { setEnv("LOG_LEVEL", "verbose") },
			wantErr:  true,
		},
		{
			name:     "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) { setEnv("LOG_FORMAT", "xml") },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_DotEnvInParent(t *testing.T) {
	isolateEnv(t)

	root, _ := os.Getwd()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("API_PORT=7070\nSEED_DEFAULTS=true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "cmd", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	_ = os.Chdir(nested)
	// Set values win over the file.
	setEnv("SEED_DEFAULTS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "7070" {
		t.Errorf("APIPort = %q, want 7070 from .env", cfg.APIPort)
	}
	if cfg.SeedDefaults {
		t.Error("SeedDefaults = true, want environment value false")
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolateEnv(t)

	dbPath := filepath.Join(t.TempDir(), "test", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestConfig_StorageOptions(t *testing.T) {
	cfg := &Config{StorageBackend: storage.BackendBolt, BoltPath: "/tmp/x.bolt", RedisDB: 3, RedisKeyPrefix: "p:"}
	opts := cfg.StorageOptions()
	if opts.Backend != storage.BackendBolt || opts.BoltPath != "/tmp/x.bolt" || opts.RedisDB != 3 || opts.RedisKeyPrefix != "p:" {
		t.Errorf("StorageOptions() = %+v", opts)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}
