package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string
	Dir      string // file backend; default [DefaultDir]
	RedisURL string // redis backend
	Prefix   string // redis backend
}

// Open returns the configured backend. An empty Backend means file.
func Open(ctx context.Context, o Options) (Cache, error) {
	switch o.Backend {
	case "", BackendFile:
		dir := o.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, RedisOptions{URL: o.RedisURL, Prefix: o.Prefix})
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (want file, redis or none)", o.Backend)
}
