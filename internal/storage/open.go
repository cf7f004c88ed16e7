package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/gallery/internal/service"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	Redis   RedisOptions
}

// Open constructs the configured backend. SQLite databases are migrated
// before they are returned.
func Open(ctx context.Context, opts Options) (service.KVStore, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		store, err := NewSQLiteStorage(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return store, nil
	case BackendRedis:
		return NewRedisStorage(ctx, opts.Redis)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
