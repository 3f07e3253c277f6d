package db

import (
	"fmt"
	"path/filepath"

	"github.com/seededlabs/seedpool/config"
)

// NewProvider builds a DatabaseProvider from storage configuration
func NewProvider(cfg *config.StorageConfig) (DatabaseProvider, error) {
	switch cfg.Backend {
	case "leveldb", "":
		return NewLevelDBProvider(filepath.Join(cfg.Directory, "leveldb"))
	case "bolt":
		return NewBoltProvider(filepath.Join(cfg.Directory, "seedpool.db"))
	case "redis":
		return NewRedisProvider(cfg.RedisAddr)
	case "memory":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
