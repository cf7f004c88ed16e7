// Package selection implements multi-select and batch removal for the
// favorites list.
package selection

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/service"
)

// Mode is the controller state.
type Mode int

const (
	// ModeNormal means taps navigate to the detail screen.
	ModeNormal Mode = iota
	// ModeSelecting means taps toggle membership in the selection.
	ModeSelecting
)

func (m Mode) String() string {
	if m == ModeSelecting {
		return "selecting"
	}
	return "normal"
}

// Remover is the slice of the favorites repository the controller drives.
type Remover interface {
	RemoveByID(ctx context.Context, id string) (model.FavoriteSet, error)
	RemoveMany(ctx context.Context, ids []string) (model.FavoriteSet, error)
	Clear(ctx context.Context) error
}

// Controller tracks the selection for one mounted favorites screen. The
// selection is always a subset of the last observed favorite identifiers.
// Deletes may run on a command goroutine while the UI keeps reading state,
// so every method takes the controller lock; the lock is never held across
// a repository call.
type Controller struct {
	repo     Remover
	notifier service.Notifier
	selected map[string]struct{}
	known    map[string]struct{}
	order    []string
	mu       sync.Mutex
	mode     Mode
}

// New creates a controller in normal mode with an empty selection.
func New(repo Remover, notifier service.Notifier) *Controller {
	if notifier == nil {
		notifier = service.NotifierFunc(func(string) {})
	}
	return &Controller{
		repo:     repo,
		notifier: notifier,
		selected: make(map[string]struct{}),
		known:    make(map[string]struct{}),
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Observe records the favorite identifiers currently on screen. When rows
// only went away, the selection is pruned to the survivors and selecting
// mode lasts while anything is still selected. Any addition drops the
// selection.
func (c *Controller) Observe(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe(ids)
}

func (c *Controller) observe(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}

	added := false
	for id := range next {
		if _, ok := c.known[id]; !ok {
			added = true
			break
		}
	}
	shrunk := len(next) < len(c.known)

	c.known = next
	c.order = append(c.order[:0], ids...)

	switch {
	case added:
		c.reset()
	case shrunk:
		for id := range c.selected {
			if _, ok := next[id]; !ok {
				delete(c.selected, id)
			}
		}
		if len(c.selected) == 0 {
			c.reset()
		}
	}
}

// LongPress enters selecting mode with id pre-selected. It reports false if
// id is not an observed favorite.
func (c *Controller) LongPress(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.known[id]; !ok {
		return false
	}
	c.mode = ModeSelecting
	c.selected[id] = struct{}{}
	return true
}

// Tap handles a tap on id. In normal mode it returns id as the navigation
// target; in selecting mode it toggles membership and returns "".
func (c *Controller) Tap(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeNormal {
		return id
	}
	if _, ok := c.known[id]; !ok {
		return ""
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
	return ""
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selected[id]
	return ok
}

// Count returns the number of selected identifiers.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selected)
}

// Selected returns the selection in display order.
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Controller) selectedLocked() []string {
	out := make([]string, 0, len(c.selected))
	for _, id := range c.order {
		if _, ok := c.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Cancel leaves selecting mode without touching favorites.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// DeleteSelected removes the selection in one write and returns to normal
// mode. The selection is cleared even when the write fails.
func (c *Controller) DeleteSelected(ctx context.Context) (model.FavoriteSet, error) {
	c.mu.Lock()
	ids := c.selectedLocked()
	c.reset()
	c.mu.Unlock()

	if len(ids) == 0 {
		return nil, nil
	}

	set, err := c.repo.RemoveMany(ctx, ids)
	if err != nil {
		common.LogError(err, "Batch delete failed", common.Fields{"count": len(ids)})
		c.notifier.Notify(common.UserMessage(err, "Could not delete the selected favorites"))
		return nil, err
	}

	c.Observe(set.IDs())
	c.notifier.Notify(fmt.Sprintf("Deleted %d %s", len(ids), plural(len(ids), "favorite", "favorites")))
	return set, nil
}

// DeleteAll clears every favorite and returns to normal mode.
func (c *Controller) DeleteAll(ctx context.Context) error {
	c.Cancel()

	if err := c.repo.Clear(ctx); err != nil {
		common.LogError(err, "Clearing favorites failed", nil)
		c.notifier.Notify(common.UserMessage(err, "Could not delete all favorites"))
		return err
	}

	c.Observe(nil)
	c.notifier.Notify("All favorites deleted")
	return nil
}

// SwipeDelete removes a single row. It is valid in either mode and leaves
// the marks on other rows alone.
func (c *Controller) SwipeDelete(ctx context.Context, id string) (model.FavoriteSet, error) {
	set, err := c.repo.RemoveByID(ctx, id)
	if err != nil {
		common.LogError(err, "Delete failed", common.Fields{"id": id})
		c.notifier.Notify(common.UserMessage(err, "Could not delete favorite"))
		return nil, err
	}

	c.Observe(set.IDs())
	c.notifier.Notify("Removed from favorites")
	return set, nil
}

func (c *Controller) reset() {
	c.mode = ModeNormal
	clear(c.selected)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
