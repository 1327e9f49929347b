package store

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/i474232898/pogo-weather/internal/weather"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Backend is a weather.Store that owns a connection.
type Backend interface {
	weather.Store
	io.Closer
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	PageLimit   int
	MaxAge      time.Duration
	Redis       RedisOptions
	DatabaseDSN string
	SQLitePath  string
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemoryStore(opts.PageLimit, opts.MaxAge), nil
	case BackendRedis:
		ro := opts.Redis
		ro.PageLimit = opts.PageLimit
		if ro.TTL == 0 {
			ro.TTL = opts.MaxAge
		}
		st, err := NewRedisStore(ctx, ro)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendPostgres:
		st, err := OpenPostgres(opts.DatabaseDSN, opts.PageLimit)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendSQLite:
		st, err := OpenSQLite(opts.SQLitePath, opts.PageLimit)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
