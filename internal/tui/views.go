package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/selection"
	"github.com/Veraticus/gallery/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// cardHeight is a rendered card's height including its border.
const cardHeight = 5

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.Active() {
	case ScreenDetail:
		body = m.renderDetail()
	case ScreenFavorites:
		body = m.renderFavorites()
	default:
		body = m.renderCatalog()
	}

	parts := []string{m.renderTabs(), body}
	parts = append(parts, components.StatusBar{
		Theme:  m.theme,
		Notice: m.notice,
		Hint:   m.Active().String(),
		Width:  m.width,
	}.View())
	if m.config.ShowHelp {
		parts = append(parts, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTabs() string {
	catalogTab, favoritesTab := m.theme.Tab, m.theme.Tab
	if m.tab == ScreenCatalog {
		catalogTab = m.theme.TabActive
	} else {
		favoritesTab = m.theme.TabActive
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		catalogTab.Render("Catalog"),
		favoritesTab.Render(fmt.Sprintf("Favorites (%d)", m.favs.view.Snapshot().Len())),
	) + "\n"
}

// bodyHeight is what remains after tabs, status and help.
func (m Model) bodyHeight() int {
	reserved := 4
	if m.config.ShowHelp {
		reserved++
	}
	return max(cardHeight, m.height-reserved)
}

func (m Model) renderCatalog() string {
	c := m.catalog

	filters := c.search.View()
	if c.brand != nil {
		filters += "  " + m.theme.StatusInfo.Render("brand: "+*c.brand)
	}
	lines := []string{filters}

	switch {
	case c.loading && len(c.items) == 0:
		lines = append(lines, m.spinner.View()+" Loading catalog...")
		return strings.Join(lines, "\n")
	case c.err != nil && len(c.items) == 0:
		lines = append(lines,
			m.theme.StatusError.Render(common.UserMessage(c.err, "Could not load the catalog")),
			m.theme.Faint.Render("Press Ctrl+R to try again"),
		)
		return strings.Join(lines, "\n")
	case len(c.visible) == 0:
		lines = append(lines, m.theme.Faint.Render("No art matches your search"))
		return strings.Join(lines, "\n")
	}

	cols := m.columns()
	rows := max(1, (m.bodyHeight()-1)/cardHeight)
	cursorRow := c.cursor / cols
	first := max(0, cursorRow-rows+1)

	var grid []string
	for r := first; r < first+rows; r++ {
		start := r * cols
		if start >= len(c.visible) {
			break
		}
		end := min(start+cols, len(c.visible))

		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			item := c.visible[i]
			cards = append(cards, components.Card(m.theme, item, cardWidth, c.view.IsFavorite(item.ID), i == c.cursor))
		}
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	lines = append(lines, lipgloss.JoinVertical(lipgloss.Left, grid...))
	return strings.Join(lines, "\n")
}

func (m Model) renderFavorites() string {
	f := m.favs
	rows := f.rows()
	selecting := f.ctrl.Mode() == selection.ModeSelecting

	header := f.search.View()
	if selecting {
		header += "  " + m.theme.StatusInfo.Render(fmt.Sprintf("%d selected", f.ctrl.Count()))
	}
	lines := []string{header}

	if len(rows) == 0 {
		msg := "No favorites yet. Press f on any artwork to add it."
		if f.view.Snapshot().Len() > 0 {
			msg = "No favorites match your search"
		}
		lines = append(lines, m.theme.Faint.Render(msg))
	}

	visible := max(1, m.bodyHeight()-2)
	first := max(0, f.cursor-visible+1)
	for i := first; i < len(rows) && i < first+visible; i++ {
		e := rows[i]
		lines = append(lines, components.FavoriteRow(m.theme, e, m.width, i == f.cursor, selecting, f.ctrl.IsSelected(e.ID)))
	}

	if prompt := m.confirmPrompt(); prompt != "" {
		lines = append(lines, "", m.theme.StatusWarning.Render(prompt))
	}

	return strings.Join(lines, "\n")
}

func (m Model) confirmPrompt() string {
	switch m.favs.confirm.kind {
	case confirmRemoveRow:
		return fmt.Sprintf("Remove %s from favorites? (y/n)", m.favs.confirm.name)
	case confirmDeleteAll:
		return "Delete all favorites? (y/n)"
	default:
		return ""
	}
}

func (m Model) renderDetail() string {
	d := m.detail

	if d.item == nil {
		if d.err != nil {
			return m.theme.StatusError.Render(common.UserMessage(d.err, "Could not load this artwork"))
		}
		return m.spinner.View() + " Loading..."
	}

	view := components.ItemDetail{
		Theme:    m.theme,
		Item:     *d.item,
		Width:    m.width,
		Favorite: d.view.IsFavorite(d.id),
	}.View()

	if d.loading {
		view += "\n" + m.spinner.View() + m.theme.Faint.Render(" Refreshing details...")
	}
	return view
}
