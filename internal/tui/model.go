// Package tui is the interactive gallery: a catalog grid, an item detail
// screen and the favorites list, all reading favorite state through one
// shared repository.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/selection"
	"github.com/Veraticus/gallery/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state.
type Model struct {
	ctx      context.Context
	theme    themes.Theme
	sync     *favorites.Synchronizer
	notices  notifier
	detail   *detailScreen
	catalog  catalogScreen
	favs     favoritesScreen
	config   Config
	keymap   KeyMap
	notice   string
	help     help.Model
	spinner  spinner.Model
	mounts   uint64
	noticeID int
	width    int
	height   int
	tab      Screen
	quitting bool
}

// New builds the root model. Both a catalog source and a favorites
// repository are required.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Catalog == nil {
		return Model{}, errors.New("catalog source is required")
	}
	if cfg.Favorites == nil {
		return Model{}, errors.New("favorites repository is required")
	}

	notices := newNotifier()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:     ctx,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    h,
		spinner: sp,
		notices: notices,
		sync:    favorites.NewSynchronizer(cfg.Favorites, notices),
		catalog: newCatalogScreen(),
		favs:    newFavoritesScreen(selection.New(cfg.Favorites, notices)),
		tab:     ScreenCatalog,
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

// Init loads the catalog and the initial favorite state.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
		m.notices.wait(),
		m.refresh(ScreenCatalog, 0, m.catalog.view, favorites.TriggerFocus),
		m.refresh(ScreenFavorites, 0, m.favs.view, favorites.TriggerFocus),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.catalog.loaded(msg.items, msg.err)
		return m, nil

	case itemLoadedMsg:
		if m.detail == nil || m.detail.mount != msg.mount {
			common.LogDebug("Dropping item for closed detail screen", common.Fields{"mount": msg.mount})
			return m, nil
		}
		m.detail.loaded(msg.item, msg.err)
		return m, nil

	case favoritesRefreshedMsg:
		m.apply(msg.screen, msg.mount, msg.seq, msg.snapshot)
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			// The notice is already queued; the screen keeps its last confirmed state.
			return m, nil
		}
		if view := m.viewFor(msg.screen, msg.mount); view != nil {
			m.apply(msg.screen, msg.mount, view.Begin(favorites.TriggerMutation), msg.snapshot)
		}
		return m, nil

	case favoritesDeletedMsg:
		return m, m.refresh(ScreenFavorites, 0, m.favs.view, favorites.TriggerMutation)

	case notificationMsg:
		m.noticeID++
		m.notice = msg.text
		id := m.noticeID
		return m, tea.Batch(
			m.notices.wait(),
			tea.Tick(m.config.NoticeDuration, func(time.Time) tea.Msg {
				return clearNotificationMsg{id: id}
			}),
		)

	case clearNotificationMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// Active returns the screen that currently receives input.
func (m Model) Active() Screen {
	if m.detail != nil {
		return ScreenDetail
	}
	return m.tab
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.Active() {
	case ScreenDetail:
		return m.updateDetail(msg)
	case ScreenFavorites:
		return m.updateFavorites(msg)
	default:
		return m.updateCatalog(msg)
	}
}

// handleGlobalKeys handles keys shared by every screen that is not capturing
// text. It reports whether the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true
	case matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case matches(msg, m.keymap.SwitchTab):
		if m.tab == ScreenCatalog {
			m.tab = ScreenFavorites
			return m.refresh(ScreenFavorites, 0, m.favs.view, favorites.TriggerFocus), true
		}
		m.tab = ScreenCatalog
		return m.refresh(ScreenCatalog, 0, m.catalog.view, favorites.TriggerFocus), true
	}
	return nil, false
}

// apply installs a snapshot on the screen it was requested for. Results for
// a detail screen that has since closed are dropped.
func (m *Model) apply(screen Screen, mount, seq uint64, snap favorites.Snapshot) {
	view := m.viewFor(screen, mount)
	if view == nil {
		common.LogDebug("Dropping refresh for closed screen", common.Fields{
			"screen": screen.String(),
			"mount":  mount,
		})
		return
	}
	if !view.Apply(seq, snap) {
		return
	}
	if screen == ScreenFavorites {
		m.favs.observe(snap)
	}
}

func (m Model) viewFor(screen Screen, mount uint64) *favorites.View {
	switch screen {
	case ScreenCatalog:
		return m.catalog.view
	case ScreenFavorites:
		return m.favs.view
	case ScreenDetail:
		if m.detail != nil && m.detail.mount == mount {
			return m.detail.view
		}
	}
	return nil
}

// openDetail pushes a detail screen. The item is shown from the catalog when
// present, otherwise from fallback while the full record loads.
func (m *Model) openDetail(id string, fallback *model.FavoriteEntry) tea.Cmd {
	m.mounts++
	d := newDetailScreen(id, m.mounts)
	m.detail = d

	cmds := []tea.Cmd{m.refresh(ScreenDetail, d.mount, d.view, favorites.TriggerFocus)}
	if item, ok := m.catalog.find(id); ok {
		d.item = &item
	} else {
		if fallback != nil {
			d.item = itemFromEntry(*fallback)
		}
		d.loading = true
		cmds = append(cmds, m.loadItem(d.mount, id))
	}
	return tea.Batch(cmds...)
}

// closeDetail pops the detail screen and re-synchronizes the screen below.
func (m *Model) closeDetail() tea.Cmd {
	m.detail = nil
	if m.tab == ScreenFavorites {
		return m.refresh(ScreenFavorites, 0, m.favs.view, favorites.TriggerFocus)
	}
	return m.refresh(ScreenCatalog, 0, m.catalog.view, favorites.TriggerFocus)
}

func itemFromEntry(e model.FavoriteEntry) *model.Item {
	return &model.Item{
		ID:              e.ID,
		ArtName:         e.ArtName,
		Price:           e.Price,
		LimitedTimeDeal: e.Discount,
		Image:           e.Image,
	}
}
