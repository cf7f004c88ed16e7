package testutil

import (
	"fmt"
	"sync"

	"github.com/Veraticus/gallery/internal/model"
	"github.com/shopspring/decimal"
)

// Item builds a catalog item with a predictable name, image and price.
func Item(id, name, brand string) model.Item {
	return model.Item{
		ID:      id,
		ArtName: name,
		Brand:   brand,
		Price:   decimal.NewFromInt(100),
		Image:   fmt.Sprintf("https://img.example/%s.jpg", id),
	}
}

// Entry builds a favorite entry for id.
func Entry(id, name string) model.FavoriteEntry {
	return Item(id, name, "").ToFavorite()
}

// Catalog returns a small catalog spanning two brands.
func Catalog() []model.Item {
	deal := Item("2", "Starry Night", "Arteza")
	deal.LimitedTimeDeal = decimal.NewNullDecimal(decimal.RequireFromString("0.25"))
	deal.Feedbacks = []model.Feedback{
		{Author: "ana", Rating: 5, Comment: "lovely", Date: "2024-03-01T10:00:00Z"},
		{Author: "bo", Rating: 4, Comment: "good", Date: "2024-03-02"},
	}

	return []model.Item{
		Item("1", "Water Lilies", "Winsor"),
		deal,
		Item("3", "The Scream", "Winsor"),
		Item("4", "Night Watch", "Arteza"),
	}
}

// Notifications records notifier messages.
type Notifications struct {
	messages []string
	mu       sync.Mutex
}

// Notify implements service.Notifier.
func (n *Notifications) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Messages returns a copy of everything notified so far.
func (n *Notifications) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// Last returns the latest message or "".
func (n *Notifications) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}
