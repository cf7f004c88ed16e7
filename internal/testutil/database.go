// Package testutil provides shared fakes and fixtures for gallery tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/gallery/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store that is closed when
// the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
