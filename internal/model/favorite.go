package model

import "github.com/shopspring/decimal"

// FavoriteEntry is a denormalized snapshot of a catalog item taken when it was
// favorited. It stays renderable after the item leaves the remote feed.
type FavoriteEntry struct {
	Discount decimal.NullDecimal `json:"limitedTimeDeal"`
	Price    decimal.Decimal     `json:"price"`
	ID       string              `json:"id"`
	ArtName  string              `json:"artName"`
	Image    string              `json:"image"`
}

// Deal returns the discount fraction, or zero when none was recorded.
func (e FavoriteEntry) Deal() decimal.Decimal {
	if !e.Discount.Valid {
		return decimal.Zero
	}
	return e.Discount.Decimal
}

// DiscountedPrice returns the snapshot price after the recorded discount.
func (e FavoriteEntry) DiscountedPrice() decimal.Decimal {
	return applyDeal(e.Price, e.Deal())
}

// FavoriteSet is the ordered collection of favorites. Insertion order is
// display order and identifiers are unique.
type FavoriteSet []FavoriteEntry

// IDs returns the identifiers in display order.
func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for _, e := range s {
		ids = append(ids, e.ID)
	}
	return ids
}

// Index returns the position of id, or -1.
func (s FavoriteSet) Index(id string) int {
	for i, e := range s {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is in the set.
func (s FavoriteSet) Contains(id string) bool {
	return s.Index(id) >= 0
}

// Without returns a copy of the set minus every identifier in ids, and how
// many entries were dropped.
func (s FavoriteSet) Without(ids map[string]struct{}) (FavoriteSet, int) {
	out := make(FavoriteSet, 0, len(s))
	for _, e := range s {
		if _, drop := ids[e.ID]; drop {
			continue
		}
		out = append(out, e)
	}
	return out, len(s) - len(out)
}

// Dedupe keeps the first occurrence of every identifier.
func (s FavoriteSet) Dedupe() (FavoriteSet, int) {
	seen := make(map[string]struct{}, len(s))
	out := make(FavoriteSet, 0, len(s))
	for _, e := range s {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out, len(s) - len(out)
}
