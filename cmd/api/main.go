package main

import (
	"context"
	_ "embed"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"campuscraft/internal/config"
	"campuscraft/internal/http"
	"campuscraft/internal/service"
	"campuscraft/internal/storage"
)

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Open the key-value backend that holds the four collections
	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer func() {
		_ = kv.Close()
	}()
	slog.Info("Storage initialized", "backend", cfg.StorageBackend)

	adapter := storage.NewAdapter(kv)

	seed := service.Seed{}
	if cfg.SeedDefaults {
		seed = service.DefaultSeed(time.Now())
		slog.Info("Using default sample data for empty collections")
	}
	stores := service.NewStores(ctx, adapter, seed)
	slog.Info("Stores loaded",
		"assignments", len(stores.Assignments.List()),
		"subjects", len(stores.Subjects.List()),
		"notes", len(stores.Notes.List()),
		"resources", len(stores.Resources.List()),
	)

	// Create router with dependencies
	deps := &http.Deps{
		Stores:         stores,
		Storage:        adapter,
		Backend:        cfg.StorageBackend,
		MaxUploadBytes: cfg.MaxUploadBytes,
		IndexHTML:      indexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
