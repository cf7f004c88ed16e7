package tui

import (
	"github.com/Veraticus/gallery/internal/catalog"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/selection"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmRemoveRow
	confirmDeleteAll
)

// confirmation is a pending destructive action waiting for y/n.
type confirmation struct {
	id   string
	name string
	kind confirmKind
}

// favoritesScreen is the favorites list with its own search and the
// selection controller for batch removal.
type favoritesScreen struct {
	view    *favorites.View
	ctrl    *selection.Controller
	confirm confirmation
	search  textinput.Model
	cursor  int
}

func newFavoritesScreen(ctrl *selection.Controller) favoritesScreen {
	search := textinput.New()
	search.Placeholder = "Search favorites..."
	search.Prompt = "/ "
	search.CharLimit = 64
	_ = search.Cursor.SetMode(cursor.CursorStatic)

	return favoritesScreen{
		view:   favorites.NewView(ScreenFavorites.String()),
		ctrl:   ctrl,
		search: search,
	}
}

// rows is the searched favorites in display order.
func (f favoritesScreen) rows() model.FavoriteSet {
	return catalog.SearchFavorites(f.view.Snapshot().Entries, f.search.Value())
}

func (f favoritesScreen) current() (model.FavoriteEntry, bool) {
	rows := f.rows()
	if f.cursor < 0 || f.cursor >= len(rows) {
		return model.FavoriteEntry{}, false
	}
	return rows[f.cursor], true
}

// observe hands a freshly applied snapshot to the selection controller.
func (f *favoritesScreen) observe(snap favorites.Snapshot) {
	f.ctrl.Observe(snap.IDs())
	f.cursor = clamp(f.cursor, len(f.rows()))
	if f.confirm.kind == confirmRemoveRow && !snap.IsFavorite(f.confirm.id) {
		f.confirm = confirmation{}
	}
}

func (m Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.favs

	if f.confirm.kind != confirmNone {
		return m.updateConfirm(msg)
	}

	if f.search.Focused() {
		if matches(msg, m.keymap.Back) || matches(msg, m.keymap.Open) {
			f.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		f.search, cmd = f.search.Update(msg)
		f.cursor = clamp(f.cursor, len(f.rows()))
		return m, cmd
	}

	if cmd, ok := m.handleGlobalKeys(msg); ok {
		return m, cmd
	}

	rows := f.rows()
	selecting := f.ctrl.Mode() == selection.ModeSelecting

	switch {
	case matches(msg, m.keymap.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case matches(msg, m.keymap.Down):
		if f.cursor < len(rows)-1 {
			f.cursor++
		}
	case matches(msg, m.keymap.Home):
		f.cursor = 0
	case matches(msg, m.keymap.End):
		f.cursor = clamp(len(rows)-1, len(rows))
	case matches(msg, m.keymap.Search):
		return m, f.search.Focus()

	case matches(msg, m.keymap.Open):
		entry, ok := f.current()
		if !ok {
			break
		}
		if target := f.ctrl.Tap(entry.ID); target != "" {
			return m, m.openDetail(target, &entry)
		}
	case matches(msg, m.keymap.ToggleMark):
		if entry, ok := f.current(); ok && selecting {
			f.ctrl.Tap(entry.ID)
		}
	case matches(msg, m.keymap.SelectMode):
		if entry, ok := f.current(); ok {
			f.ctrl.LongPress(entry.ID)
		}
	case matches(msg, m.keymap.Back):
		if selecting {
			f.ctrl.Cancel()
		} else if f.search.Value() != "" {
			f.search.SetValue("")
			f.cursor = clamp(f.cursor, len(f.rows()))
		}

	case matches(msg, m.keymap.DeleteMarks):
		if selecting && f.ctrl.Count() > 0 {
			return m, m.deleteWith(deleteSelected)
		}
	case matches(msg, m.keymap.DeleteRow):
		if entry, ok := f.current(); ok {
			f.confirm = confirmation{kind: confirmRemoveRow, id: entry.ID, name: entry.ArtName}
		}
	case matches(msg, m.keymap.DeleteAll):
		if f.view.Snapshot().Len() > 0 {
			f.confirm = confirmation{kind: confirmDeleteAll}
		}
	case matches(msg, m.keymap.Favorite):
		if entry, ok := f.current(); ok {
			return m, m.toggle(ScreenFavorites, 0, entry)
		}
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.favs
	pending := f.confirm

	switch {
	case matches(msg, m.keymap.Confirm):
		f.confirm = confirmation{}
		switch pending.kind {
		case confirmRemoveRow:
			return m, m.deleteWith(swipeDelete(pending.id))
		case confirmDeleteAll:
			return m, m.deleteWith(deleteAll)
		}
	case matches(msg, m.keymap.Deny):
		f.confirm = confirmation{}
	}
	return m, nil
}
