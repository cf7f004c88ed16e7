package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Feedback is a single customer review attached to a catalog item.
type Feedback struct {
	Date    string  `json:"date"`
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// PostedAt parses the feedback date. The feed is not strict about the format.
func (f Feedback) PostedAt() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, f.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Item is a catalog record as served by the remote art feed.
type Item struct {
	LimitedTimeDeal decimal.NullDecimal `json:"limitedTimeDeal"`
	Price           decimal.Decimal     `json:"price"`
	ID              string              `json:"id"`
	ArtName         string              `json:"artName"`
	Description     string              `json:"description,omitempty"`
	Image           string              `json:"image"`
	Brand           string              `json:"brand"`
	Feedbacks       []Feedback          `json:"feedbacks,omitempty"`
	GlassSurface    bool                `json:"glassSurface,omitempty"`
}

// Displayable reports whether the item carries enough data to be rendered.
// Items without a name or image are skipped by the presentation layer.
func (i Item) Displayable() bool {
	return i.ArtName != "" && i.Image != ""
}

// Deal returns the discount fraction, or zero when the item is not on sale.
func (i Item) Deal() decimal.Decimal {
	if !i.LimitedTimeDeal.Valid {
		return decimal.Zero
	}
	return i.LimitedTimeDeal.Decimal
}

// DiscountedPrice returns the price after the limited time deal is applied.
func (i Item) DiscountedPrice() decimal.Decimal {
	return applyDeal(i.Price, i.Deal())
}

// Savings is what the deal takes off the list price.
func (i Item) Savings() decimal.Decimal {
	return i.Price.Sub(i.DiscountedPrice())
}

// AverageRating returns the mean feedback rating and whether any rating exists.
func (i Item) AverageRating() (float64, bool) {
	if len(i.Feedbacks) == 0 {
		return 0, false
	}
	var sum float64
	for _, fb := range i.Feedbacks {
		sum += fb.Rating
	}
	return sum / float64(len(i.Feedbacks)), true
}

// ToFavorite snapshots the item into a favorite entry.
func (i Item) ToFavorite() FavoriteEntry {
	return FavoriteEntry{
		ID:       i.ID,
		ArtName:  i.ArtName,
		Price:    i.Price,
		Discount: i.LimitedTimeDeal,
		Image:    i.Image,
	}
}
