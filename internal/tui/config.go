package tui

import (
	"time"

	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/service"
	"github.com/Veraticus/gallery/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Catalog          service.CatalogSource
	Favorites        *favorites.Repository
	Width            int
	Height           int
	OperationTimeout time.Duration
	NoticeDuration   time.Duration
	ShowHelp         bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Width:            80,
		Height:           24,
		OperationTimeout: 30 * time.Second,
		NoticeDuration:   4 * time.Second,
		ShowHelp:         true,
	}
}

// WithCatalog sets the catalog source.
func WithCatalog(source service.CatalogSource) Option {
	return func(c *Config) {
		c.Catalog = source
	}
}

// WithFavorites sets the favorites repository shared by every screen.
func WithFavorites(repo *favorites.Repository) Option {
	return func(c *Config) {
		c.Favorites = repo
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeouts sets the per-operation timeout and how long notices stay up.
func WithTimeouts(operation, notice time.Duration) Option {
	return func(c *Config) {
		if operation > 0 {
			c.OperationTimeout = operation
		}
		if notice > 0 {
			c.NoticeDuration = notice
		}
	}
}

// WithHelp toggles the help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
