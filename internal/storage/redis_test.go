package storage

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

// newMiniRedis starts an in-process Redis and connects an adapter to it.
func newMiniRedis(t *testing.T, prefix string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	store, err := NewRedisStorage(context.Background(), RedisOptions{
		Addr:      srv.Addr(),
		KeyPrefix: prefix,
	})
	if err != nil {
		t.Fatalf("NewRedisStorage failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store, srv
}

func TestRedisStorage_KVContract(t *testing.T) {
	store, _ := newMiniRedis(t, "gallery:")
	kvContract(t, store)
}

func TestRedisStorage_PrefixesKeysOnTheServer(t *testing.T) {
	store, srv := newMiniRedis(t, "gallery:")
	ctx := context.Background()

	if err := store.Set(ctx, "favorites", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := srv.Get("gallery:favorites")
	if err != nil {
		t.Fatalf("server has no prefixed key: %v", err)
	}
	if got != `[{"id":"1"}]` {
		t.Errorf("server value = %q", got)
	}
	if srv.Exists("favorites") {
		t.Error("unprefixed key written")
	}

	if err := store.Remove(ctx, "favorites"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if srv.Exists("gallery:favorites") {
		t.Error("key still on the server after Remove")
	}
}

func TestRedisStorage_ServerDown(t *testing.T) {
	store, srv := newMiniRedis(t, "")
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, _, err := store.Get(ctx, "favorites"); err == nil {
		t.Error("Get against a stopped server should fail")
	}
	if err := store.Set(ctx, "favorites", "[]"); err == nil {
		t.Error("Set against a stopped server should fail")
	}
}

func TestNewRedisStorage_Errors(t *testing.T) {
	if _, err := NewRedisStorage(context.Background(), RedisOptions{}); err == nil {
		t.Error("empty address should fail")
	}

	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisStorage(ctx, RedisOptions{Addr: addr})
	if err == nil || !strings.Contains(err.Error(), "failed to connect to redis") {
		t.Errorf("unreachable server error = %v", err)
	}
}

// TestRedisStorage_LiveServer runs the same contract against a real server
// when GALLERY_TEST_REDIS_ADDR is set.
func TestRedisStorage_LiveServer(t *testing.T) {
	addr := os.Getenv("GALLERY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GALLERY_TEST_REDIS_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewRedisStorage(ctx, RedisOptions{
		Addr:      addr,
		KeyPrefix: "gallery-test:" + uuid.NewString() + ":",
	})
	if err != nil {
		t.Fatalf("NewRedisStorage failed: %v", err)
	}
	defer store.Close()

	kvContract(t, store)
}

func TestRedisStorage_KeyPrefix(t *testing.T) {
	store := newRedisStorage(nil, "gallery:")
	if got := store.key("favorites"); got != "gallery:favorites" {
		t.Errorf("key() = %q, want gallery:favorites", got)
	}
}
