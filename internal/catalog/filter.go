// Package catalog provides the remote catalog client and the pure filters
// applied to it on every keystroke.
package catalog

import (
	"strings"

	"github.com/Veraticus/gallery/internal/model"
)

// Visible returns the items whose name contains query, case-insensitively,
// and whose brand equals brand when brand is non-nil. Input order is kept.
func Visible(items []model.Item, query string, brand *string) []model.Item {
	needle := strings.ToLower(query)
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.ArtName), needle) {
			continue
		}
		if brand != nil && item.Brand != *brand {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Brands returns the distinct brands in first-seen order.
func Brands(items []model.Item) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, item := range items {
		if _, ok := seen[item.Brand]; ok {
			continue
		}
		seen[item.Brand] = struct{}{}
		brands = append(brands, item.Brand)
	}
	return brands
}

// SearchFavorites filters favorites by case-insensitive name match.
func SearchFavorites(set model.FavoriteSet, query string) model.FavoriteSet {
	if query == "" {
		return set
	}
	needle := strings.ToLower(query)
	out := make(model.FavoriteSet, 0, len(set))
	for _, e := range set {
		if strings.Contains(strings.ToLower(e.ArtName), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the item with id.
func Find(items []model.Item, id string) (model.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return model.Item{}, false
}
