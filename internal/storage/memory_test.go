package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorage_KVContract(t *testing.T) {
	kvContract(t, NewMemoryStorage())
}

func TestMemoryStorage_Closed(t *testing.T) {
	store := NewMemoryStorage()
	_ = store.Close()

	if err := store.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
	if _, _, err := store.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := store.(*MemoryStorage); !ok {
		t.Errorf("Open(memory) returned %T", store)
	}

	if _, err := Open(ctx, Options{Backend: "etcd"}); err == nil {
		t.Error("Open with unknown backend should fail")
	}
	if _, err := Open(ctx, Options{Backend: BackendRedis}); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Open(redis) without addr error = %v, want ErrEmptyString", err)
	}
}
