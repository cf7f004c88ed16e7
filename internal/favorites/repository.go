// Package favorites owns the persisted favorite set and the refresh contract
// every screen uses to render favorite state.
package favorites

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/service"
	"github.com/shopspring/decimal"
)

// DefaultKey is the store key holding the favorites blob.
const DefaultKey = "favorites"

// Repository is the single source of truth for which items are favorited.
//
// Every operation reads the blob fresh from the store; nothing is cached
// between calls. Read-modify-write cycles issued through the same Repository
// are serialized, so screens sharing one instance cannot lose each other's
// updates. Writers in other processes still race at whole-blob granularity.
type Repository struct {
	store service.KVStore
	key   string
	mu    sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides the store key.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRepository creates a repository over store.
func NewRepository(store service.KVStore, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		key:   DefaultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the persisted favorites. A missing key, an unreadable store or
// a corrupt blob all yield the empty set; the last two are logged.
func (r *Repository) Load(ctx context.Context) model.FavoriteSet {
	set, err := r.read(ctx)
	if err != nil {
		common.LogError(err, "Failed to read favorites, showing none", common.Fields{
			"key": r.key,
		})
		return model.FavoriteSet{}
	}
	return set
}

// Contains reports whether id is currently favorited.
func (r *Repository) Contains(ctx context.Context, id string) bool {
	return r.Load(ctx).Contains(id)
}

// Toggle removes the entry with the same identifier if present, otherwise
// appends entry. The full set is written back and returned.
func (r *Repository) Toggle(ctx context.Context, entry model.FavoriteEntry) (model.FavoriteSet, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", common.ErrInvalidEntry)
	}

	return r.mutate(ctx, "toggle", func(set model.FavoriteSet) (model.FavoriteSet, bool, error) {
		if idx := set.Index(entry.ID); idx >= 0 {
			next := make(model.FavoriteSet, 0, len(set)-1)
			next = append(next, set[:idx]...)
			next = append(next, set[idx+1:]...)
			return next, true, nil
		}
		if err := validateEntry(entry); err != nil {
			return nil, false, err
		}
		next := make(model.FavoriteSet, 0, len(set)+1)
		next = append(next, set...)
		next = append(next, entry)
		return next, true, nil
	})
}

// Add appends entry unless its identifier is already present. It reports
// whether the set changed; an existing favorite is left untouched.
func (r *Repository) Add(ctx context.Context, entry model.FavoriteEntry) (model.FavoriteSet, bool, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return nil, false, fmt.Errorf("%w: missing id", common.ErrInvalidEntry)
	}
	if err := validateEntry(entry); err != nil {
		return nil, false, err
	}

	added := false
	set, err := r.mutate(ctx, "add", func(set model.FavoriteSet) (model.FavoriteSet, bool, error) {
		if set.Contains(entry.ID) {
			return set, false, nil
		}
		added = true
		next := make(model.FavoriteSet, 0, len(set)+1)
		next = append(next, set...)
		next = append(next, entry)
		return next, true, nil
	})
	if err != nil {
		return nil, false, err
	}
	return set, added, nil
}

// RemoveByID drops one identifier. An absent identifier is a no-op success.
func (r *Repository) RemoveByID(ctx context.Context, id string) (model.FavoriteSet, error) {
	return r.RemoveMany(ctx, []string{id})
}

// RemoveMany drops every identifier in ids with a single store write, so the
// batch either lands completely or not at all.
func (r *Repository) RemoveMany(ctx context.Context, ids []string) (model.FavoriteSet, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	return r.mutate(ctx, "remove", func(set model.FavoriteSet) (model.FavoriteSet, bool, error) {
		next, removed := set.Without(drop)
		return next, removed > 0, nil
	})
}

// Clear deletes the persisted key, returning to the initial empty state.
func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Remove(ctx, r.key); err != nil {
		return common.OperationFailed("clear", fmt.Errorf("%w: %w", common.ErrStorageWrite, err))
	}

	common.LogDebug("Cleared favorites", common.Fields{"key": r.key})
	return nil
}

// mutate runs one read-modify-write cycle. apply reports whether the set
// changed; unchanged sets are returned without a write.
func (r *Repository) mutate(
	ctx context.Context,
	op string,
	apply func(model.FavoriteSet) (model.FavoriteSet, bool, error),
) (model.FavoriteSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.readForWrite(ctx)
	if err != nil {
		return nil, common.OperationFailed(op, err)
	}

	next, changed, err := apply(current)
	if err != nil {
		return nil, err
	}
	if !changed {
		return current, nil
	}

	blob, err := encode(next)
	if err != nil {
		return nil, common.OperationFailed(op, err)
	}
	if err := r.store.Set(ctx, r.key, blob); err != nil {
		return nil, common.OperationFailed(op, fmt.Errorf("%w: %w", common.ErrStorageWrite, err))
	}

	common.LogDebug("Saved favorites", common.Fields{
		"op":    op,
		"key":   r.key,
		"count": len(next),
	})
	return next, nil
}

// read loads and decodes the blob. Missing keys are the empty set.
func (r *Repository) read(ctx context.Context) (model.FavoriteSet, error) {
	blob, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	if !found {
		return model.FavoriteSet{}, nil
	}
	return decode(blob)
}

// readForWrite is read for mutations. A corrupt blob is treated as empty so
// the next write replaces it; an adapter failure aborts the mutation because
// writing without knowing the current state would discard favorites.
func (r *Repository) readForWrite(ctx context.Context) (model.FavoriteSet, error) {
	blob, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	if !found {
		return model.FavoriteSet{}, nil
	}

	set, err := decode(blob)
	if err != nil {
		common.LogWarn("Favorites blob is corrupt, it will be replaced", common.Fields{
			"key":   r.key,
			"error": err.Error(),
		})
		return model.FavoriteSet{}, nil
	}
	return set, nil
}

func validateEntry(e model.FavoriteEntry) error {
	if e.Price.IsNegative() {
		return fmt.Errorf("%w: negative price for %s", common.ErrInvalidEntry, e.ID)
	}
	if e.Discount.Valid {
		d := e.Discount.Decimal
		if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: discount %s outside [0,1) for %s", common.ErrInvalidEntry, d, e.ID)
		}
	}
	return nil
}
