package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Store is a flat key-value store holding serialized blobs.
type Store interface {
	// Get returns the value under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	KindMemory   = "memory"
	KindPostgres = "postgres"
	KindRedis    = "redis"
)

type StoreOptions struct {
	Kind          string
	PostgresURL   string
	PostgresTable string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open connects the store selected by opts.Kind.
func Open(ctx context.Context, opts StoreOptions, log *logrus.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", KindMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return NewMemoryStore(), nil
	case KindPostgres:
		if opts.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required for the postgres store")
		}
		s, err := OpenPostgres(ctx, opts.PostgresURL, opts.PostgresTable, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindRedis:
		s, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
