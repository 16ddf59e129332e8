// Package cache is the local persistence region of the client store: one JSON
// value per key, surviving process restarts. Reads never fail and writes never
// propagate errors; both degrade to logging.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// Keys held in the local cache.
const (
	KeyCurrentUser      = "current-user"
	KeyCompanyInfo      = "company-info"
	KeyProjectTemplates = "project-templates"
	KeyWorkspaces       = "workspaces"
)

// ErrNotFound is returned by backends for keys that were never written.
var ErrNotFound = errors.New("cache: key not found")

// Backend stores raw serialized values.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Cache struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps backend. A nil backend yields a cache whose reads always fall back
// and whose writes are dropped, which is what an unavailable medium looks like.
func New(backend Backend, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{backend: backend, logger: logger.With("component", "cache")}
}

// Read decodes the value stored under key into a T. Missing keys, an
// unavailable backend and undecodable payloads all return fallback.
func Read[T any](ctx context.Context, c *Cache, key string, fallback T) T {
	if c == nil || c.backend == nil {
		return fallback
	}

	data, err := c.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback
	}
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return fallback
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("cache entry is not decodable", "key", key, "error", err)
		return fallback
	}
	return v
}

// Write serializes value and overwrites the entry under key. Errors are logged,
// leaving memory ahead of the persisted copy until the next successful write.
func (c *Cache) Write(ctx context.Context, key string, value any) {
	if c == nil || c.backend == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("cache value is not serializable", "key", key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, key, data); err != nil {
		c.logger.Error("cache write failed", "key", key, "error", err)
	}
}

// Remove deletes key; a missing key is not an error.
func (c *Cache) Remove(ctx context.Context, key string) {
	if c == nil || c.backend == nil {
		return
	}
	if err := c.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		c.logger.Error("cache delete failed", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}
