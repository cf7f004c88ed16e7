package tui

import (
	"context"

	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/selection"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Commands run on bubbletea's goroutines and capture everything they need
// up front. They use the program context rather than a per-screen one, so a
// write issued by a screen completes even if that screen closes.

// loadCatalog fetches the catalog.
func (m Model) loadCatalog() tea.Cmd {
	source := m.config.Catalog
	ctx, timeout := m.ctx, m.config.OperationTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		items, err := source.List(ctx)
		return catalogLoadedMsg{items: items, err: err}
	}
}

// loadItem fetches one item for the detail screen identified by mount.
func (m Model) loadItem(mount uint64, id string) tea.Cmd {
	source := m.config.Catalog
	ctx, timeout := m.ctx, m.config.OperationTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		item, err := source.Get(ctx, id)
		return itemLoadedMsg{item: item, err: err, mount: mount}
	}
}

// refresh re-reads favorite state for view. The sequence number is taken
// now so a slower, older refresh cannot overwrite this one.
func (m Model) refresh(screen Screen, mount uint64, view *favorites.View, trigger favorites.Trigger) tea.Cmd {
	seq := view.Begin(trigger)
	sync := m.sync
	ctx, timeout := m.ctx, m.config.OperationTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return favoritesRefreshedMsg{
			snapshot: sync.Snapshot(ctx),
			screen:   screen,
			seq:      seq,
			mount:    mount,
		}
	}
}

// toggle flips entry and reports the confirmed state back to screen.
func (m Model) toggle(screen Screen, mount uint64, entry model.FavoriteEntry) tea.Cmd {
	sync := m.sync
	ctx, timeout := m.ctx, m.config.OperationTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		snap, err := sync.Toggle(ctx, entry)
		return favoriteToggledMsg{
			snapshot: snap,
			err:      err,
			screen:   screen,
			mount:    mount,
		}
	}
}

// deleteWith runs one of the selection controller's removals.
func (m Model) deleteWith(run func(context.Context, *selection.Controller) error) tea.Cmd {
	ctrl := m.favs.ctrl
	ctx, timeout := m.ctx, m.config.OperationTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return favoritesDeletedMsg{err: run(ctx, ctrl)}
	}
}

func deleteSelected(ctx context.Context, c *selection.Controller) error {
	_, err := c.DeleteSelected(ctx)
	return err
}

func deleteAll(ctx context.Context, c *selection.Controller) error {
	return c.DeleteAll(ctx)
}

func swipeDelete(id string) func(context.Context, *selection.Controller) error {
	return func(ctx context.Context, c *selection.Controller) error {
		_, err := c.SwipeDelete(ctx, id)
		return err
	}
}

func matches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
