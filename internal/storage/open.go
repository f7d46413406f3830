package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend        string
	DBPath         string
	BoltPath       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
}

// Open creates the backend named by opts.Backend and verifies it is reachable.
func Open(ctx context.Context, opts Options) (KVStore, error) {
	var kv KVStore

	switch opts.Backend {
	case BackendSQLite, "":
		db, err := New(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		kv = NewSQLiteKV(db)
	case BackendBolt:
		b, err := NewBoltKV(opts.BoltPath)
		if err != nil {
			return nil, err
		}
		kv = b
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		kv = NewRedisKV(client, opts.RedisKeyPrefix)
	case BackendMemory:
		kv = NewMemoryKV()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}

	if err := kv.Ping(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("storage backend %s unreachable: %w", opts.Backend, err)
	}
	return kv, nil
}
