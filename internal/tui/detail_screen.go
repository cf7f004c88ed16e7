package tui

import (
	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// detailScreen shows one item. Each opening gets a new mount number so
// results addressed to an earlier opening can be told apart.
type detailScreen struct {
	err     error
	item    *model.Item
	view    *favorites.View
	id      string
	mount   uint64
	loading bool
}

func newDetailScreen(id string, mount uint64) *detailScreen {
	return &detailScreen{
		id:    id,
		mount: mount,
		view:  favorites.NewView(ScreenDetail.String()),
	}
}

func (d *detailScreen) loaded(item *model.Item, err error) {
	d.loading = false
	if err != nil {
		d.err = err
		common.LogWarn("Failed to load item", common.Fields{"id": d.id, "error": err.Error()})
		return
	}
	d.err = nil
	d.item = item
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail

	switch {
	case matches(msg, m.keymap.Back):
		return m, m.closeDetail()
	case matches(msg, m.keymap.Favorite):
		if d.item != nil {
			return m, m.toggle(ScreenDetail, d.mount, d.item.ToFavorite())
		}
	case matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
