package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/workdesk/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.CacheConfig) (Backend, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryBackend(), nil
	case "file", "":
		return NewFileBackend(cfg.Dir)
	case "sqlite":
		return NewSQLiteBackend(cfg.SQLitePath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisBackend(client, cfg.RedisPrefix, 0), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
