package tui

import (
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
)

// Screen identifies a surface of the app.
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenFavorites
	ScreenDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenCatalog:
		return "catalog"
	case ScreenFavorites:
		return "favorites"
	case ScreenDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Data loading messages.
type catalogLoadedMsg struct {
	err   error
	items []model.Item
}

type itemLoadedMsg struct {
	err   error
	item  *model.Item
	mount uint64
}

// Favorite state messages. mount identifies the detail screen instance a
// result belongs to; it is zero for the tab screens, which never unmount.
type favoritesRefreshedMsg struct {
	snapshot favorites.Snapshot
	screen   Screen
	seq      uint64
	mount    uint64
}

type favoriteToggledMsg struct {
	err      error
	snapshot favorites.Snapshot
	screen   Screen
	seq      uint64
	mount    uint64
}

type favoritesDeletedMsg struct {
	err error
}

// Notification messages.
type notificationMsg struct {
	text string
}

type clearNotificationMsg struct {
	id int
}
