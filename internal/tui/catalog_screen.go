package tui

import (
	"github.com/Veraticus/gallery/internal/catalog"
	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const cardWidth = 28

// catalogScreen is the browsable grid.
type catalogScreen struct {
	err     error
	view    *favorites.View
	brand   *string
	items   []model.Item
	visible []model.Item
	brands  []string
	search  textinput.Model
	cursor  int
	loading bool
}

func newCatalogScreen() catalogScreen {
	search := textinput.New()
	search.Placeholder = "Search art..."
	search.Prompt = "/ "
	search.CharLimit = 64
	_ = search.Cursor.SetMode(cursor.CursorStatic)

	return catalogScreen{
		view:    favorites.NewView(ScreenCatalog.String()),
		search:  search,
		loading: true,
	}
}

// loaded installs a fetched catalog. Items that cannot be rendered are skipped.
func (c *catalogScreen) loaded(items []model.Item, err error) {
	c.loading = false
	if err != nil {
		c.err = err
		return
	}
	c.err = nil

	c.items = make([]model.Item, 0, len(items))
	skipped := 0
	for _, item := range items {
		if !item.Displayable() {
			skipped++
			continue
		}
		c.items = append(c.items, item)
	}
	if skipped > 0 {
		common.LogDebug("Skipped catalog items without name or image", common.Fields{"skipped": skipped})
	}

	c.brands = catalog.Brands(c.items)
	if c.brand != nil && !contains(c.brands, *c.brand) {
		c.brand = nil
	}
	c.filter()
}

func (c *catalogScreen) filter() {
	c.visible = catalog.Visible(c.items, c.search.Value(), c.brand)
	c.cursor = clamp(c.cursor, len(c.visible))
}

// nextBrand cycles the brand filter through every brand and back to none.
func (c *catalogScreen) nextBrand() {
	switch {
	case len(c.brands) == 0:
		c.brand = nil
	case c.brand == nil:
		b := c.brands[0]
		c.brand = &b
	default:
		idx := indexOf(c.brands, *c.brand)
		if idx < 0 || idx == len(c.brands)-1 {
			c.brand = nil
		} else {
			b := c.brands[idx+1]
			c.brand = &b
		}
	}
	c.filter()
}

func (c *catalogScreen) resetBrand() {
	c.brand = nil
	c.filter()
}

func (c catalogScreen) current() (model.Item, bool) {
	if c.cursor < 0 || c.cursor >= len(c.visible) {
		return model.Item{}, false
	}
	return c.visible[c.cursor], true
}

func (c catalogScreen) find(id string) (model.Item, bool) {
	return catalog.Find(c.items, id)
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.catalog

	if c.search.Focused() {
		if matches(msg, m.keymap.Back) || matches(msg, m.keymap.Open) {
			c.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		c.search, cmd = c.search.Update(msg)
		c.filter()
		return m, cmd
	}

	if cmd, ok := m.handleGlobalKeys(msg); ok {
		return m, cmd
	}

	cols := m.columns()
	switch {
	case matches(msg, m.keymap.Up):
		if c.cursor-cols >= 0 {
			c.cursor -= cols
		}
	case matches(msg, m.keymap.Down):
		if c.cursor+cols < len(c.visible) {
			c.cursor += cols
		}
	case matches(msg, m.keymap.Left):
		if c.cursor > 0 {
			c.cursor--
		}
	case matches(msg, m.keymap.Right):
		if c.cursor < len(c.visible)-1 {
			c.cursor++
		}
	case matches(msg, m.keymap.Home):
		c.cursor = 0
	case matches(msg, m.keymap.End):
		c.cursor = clamp(len(c.visible)-1, len(c.visible))
	case matches(msg, m.keymap.Search):
		return m, c.search.Focus()
	case matches(msg, m.keymap.Back):
		if c.search.Value() != "" {
			c.search.SetValue("")
			c.filter()
		}
	case matches(msg, m.keymap.Brand):
		c.nextBrand()
	case matches(msg, m.keymap.Reset):
		c.resetBrand()
	case matches(msg, m.keymap.Refresh):
		c.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
	case matches(msg, m.keymap.Open):
		if item, ok := c.current(); ok {
			return m, m.openDetail(item.ID, nil)
		}
	case matches(msg, m.keymap.Favorite):
		if item, ok := c.current(); ok {
			return m, m.toggle(ScreenCatalog, 0, item.ToFavorite())
		}
	}

	return m, nil
}

// columns is how many cards fit side by side.
func (m Model) columns() int {
	return max(1, m.width/(cardWidth+2))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	return indexOf(list, s) >= 0
}
