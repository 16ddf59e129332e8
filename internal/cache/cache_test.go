package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr
}

func backends(t *testing.T) map[string]Backend {
	fileBackend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	sqliteBackend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteBackend.Close() })

	client, _ := setupTestRedis(t)

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   fileBackend,
		"sqlite": sqliteBackend,
		"redis":  NewRedisBackend(client, "test:", 0),
	}
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := New(backend, nil)
			want := sample{Name: "templates", Tags: []string{"a", "b"}, Count: 3}

			c.Write(ctx, "k", want)
			got := Read(ctx, c, "k", sample{})
			assert.Equal(t, want, got)

			// overwrite replaces the entry as a whole
			c.Write(ctx, "k", sample{Name: "other"})
			assert.Equal(t, sample{Name: "other"}, Read(ctx, c, "k", sample{}))

			c.Remove(ctx, "k")
			assert.Equal(t, sample{Name: "fallback"}, Read(ctx, c, "k", sample{Name: "fallback"}))
		})
	}
}

func TestCache_ReadFallsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("untouched key", func(t *testing.T) {
		c := New(NewMemoryBackend(), nil)
		assert.Equal(t, []string{"x"}, Read(ctx, c, "missing", []string{"x"}))
	})

	t.Run("nil backend", func(t *testing.T) {
		c := New(nil, nil)
		c.Write(ctx, "k", 42)
		assert.Equal(t, 7, Read(ctx, c, "k", 7))
	})

	t.Run("nil cache", func(t *testing.T) {
		var c *Cache
		assert.Equal(t, "fb", Read(ctx, c, "k", "fb"))
	})

	t.Run("corrupt entry", func(t *testing.T) {
		backend := NewMemoryBackend()
		require.NoError(t, backend.Set(ctx, "k", []byte("{not json")))
		c := New(backend, nil)
		assert.Equal(t, sample{Name: "fb"}, Read(ctx, c, "k", sample{Name: "fb"}))
	})

	t.Run("backend unavailable", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		c := New(NewRedisBackend(client, "", 0), nil)
		c.Write(ctx, "k", 1)
		mr.Close()
		assert.Equal(t, 9, Read(ctx, c, "k", 9))
	})

	t.Run("null participant pointer", func(t *testing.T) {
		c := New(NewMemoryBackend(), nil)
		c.Write(ctx, KeyCurrentUser, nil)
		got := Read[*sample](ctx, c, KeyCurrentUser, &sample{Name: "fb"})
		assert.Nil(t, got)
	})
}

func TestCache_WriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryBackend(), nil)

	c.Write(ctx, "k", "first")
	assert.NotPanics(t, func() { c.Write(ctx, "k", make(chan int)) })
	assert.Equal(t, "first", Read(ctx, c, "k", ""), "failed write leaves the previous entry")
}

func TestFileBackend_AtomicReplace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, backend.Set(ctx, "project-templates", []byte(`[1]`)))
	require.NoError(t, backend.Set(ctx, "project-templates", []byte(`[1,2]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "project-templates.json", entries[0].Name())

	data, err := backend.Get(ctx, "project-templates")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(data))

	_, err = backend.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisBackend_Prefix(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	backend := NewRedisBackend(client, "", 0)

	require.NoError(t, backend.Set(ctx, KeyWorkspaces, []byte(`[]`)))
	assert.True(t, mr.Exists("workdesk:cache:workspaces"))
}
