// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-client/internal/config"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence substrate for client state. It is a durable
// key-value store that survives restarts, the same contract the browser
// storefront gets from localStorage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Open creates the storage backend selected by the configuration.
// The returned close function is a no-op for backends without connections.
func Open(cfg *config.Config) (Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case config.StorageBackendFile:
		st, err := NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	case config.StorageBackendRedis:
		st, err := NewRedisStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case config.StorageBackendPostgres:
		st, err := NewSQLStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
