package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"campuscraft/internal/contextutil"
)

// Adapter serializes collections to JSON and reads them back with defaults.
// It owns no data; every Save is a full overwrite of the key.
type Adapter struct {
	kv KVStore
}

// NewAdapter creates an Adapter over the given backend.
func NewAdapter(kv KVStore) *Adapter {
	return &Adapter{kv: kv}
}

// Ping reports whether the backend is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	if a == nil || a.kv == nil {
		return errors.New("no storage backend configured")
	}
	return a.kv.Ping(ctx)
}

// Save encodes value as JSON and stores it under key.
// Callers treat a returned error as a warning: the write is best-effort.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	if a == nil || a.kv == nil {
		return errors.New("no storage backend configured")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := a.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadOrDefault returns the value stored under key, or def when the key is absent,
// the stored bytes do not decode, or the backend fails. It never returns an error.
func LoadOrDefault[T any](ctx context.Context, a *Adapter, key string, def T) T {
	logger := contextutil.LoggerFromContext(ctx)

	if a == nil || a.kv == nil {
		return def
	}

	raw, err := a.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		logger.WarnContext(ctx, "storage unavailable, using defaults", "key", key, "error", err)
		return def
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.WarnContext(ctx, "stored value is corrupt, using defaults", slog.String("key", key), "error", err)
		return def
	}
	return out
}
