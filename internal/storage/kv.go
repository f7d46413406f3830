package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_kv_store.go -package=mocks campuscraft/internal/storage KVStore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("record not found")
)

// KVStore defines the interface for the key/value backends the persistence adapter writes to.
type KVStore interface {
	// Get returns the raw value stored under key.
	// Returns nil and ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, fully replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend.
	Close() error
}
