package catalog

import (
	"context"
	"encoding/json"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/service"
)

// CacheKey is the store key holding the last fetched catalog.
const CacheKey = "catalog"

// CachedSource keeps the last successful List in the key/value store and
// serves it when the remote feed cannot be reached.
type CachedSource struct {
	source service.CatalogSource
	store  service.KVStore
}

// NewCachedSource decorates source with a store-backed fallback.
func NewCachedSource(source service.CatalogSource, store service.KVStore) *CachedSource {
	return &CachedSource{source: source, store: store}
}

// List fetches the catalog, falling back to the cached copy on failure.
func (c *CachedSource) List(ctx context.Context) ([]model.Item, error) {
	items, err := c.source.List(ctx)
	if err == nil {
		c.save(ctx, items)
		return items, nil
	}

	cached, ok := c.load(ctx)
	if !ok {
		return nil, err
	}
	common.LogWarn("Serving cached catalog", common.Fields{
		"items": len(cached),
		"error": err.Error(),
	})
	return cached, nil
}

// Get fetches one item, falling back to the cached catalog.
func (c *CachedSource) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := c.source.Get(ctx, id)
	if err == nil {
		return item, nil
	}

	cached, ok := c.load(ctx)
	if !ok {
		return nil, err
	}
	if found, ok := Find(cached, id); ok {
		return &found, nil
	}
	return nil, err
}

func (c *CachedSource) save(ctx context.Context, items []model.Item) {
	data, err := json.Marshal(items)
	if err != nil {
		common.LogError(err, "Failed to encode catalog cache", nil)
		return
	}
	if err := c.store.Set(ctx, CacheKey, string(data)); err != nil {
		common.LogError(err, "Failed to write catalog cache", nil)
	}
}

func (c *CachedSource) load(ctx context.Context) ([]model.Item, bool) {
	blob, found, err := c.store.Get(ctx, CacheKey)
	if err != nil || !found {
		return nil, false
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		common.LogWarn("Catalog cache is corrupt", common.Fields{"error": err.Error()})
		return nil, false
	}
	return items, true
}
