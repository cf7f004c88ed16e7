package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/gallery/internal/catalog"
	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/service"
	"github.com/Veraticus/gallery/internal/storage"
	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	Logging LoggingSettings
	Storage storage.Options
	FavKey  string
	Catalog catalog.Config
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", storage.BackendSQLite)
	v.SetDefault("storage.path", "~/.local/share/gallery/gallery.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.key_prefix", "gallery:")
	v.SetDefault("favorites.key", favorites.DefaultKey)
	v.SetDefault("catalog.url", catalog.DefaultURL)
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.retries", 3)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "~/.local/state/gallery/gallery.log")
}

// Load resolves settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		Storage: storage.Options{
			Backend: v.GetString("storage.backend"),
			Path:    ExpandPath(v.GetString("storage.path")),
			Redis: storage.RedisOptions{
				Addr:      v.GetString("storage.redis_addr"),
				Password:  v.GetString("storage.redis_password"),
				DB:        v.GetInt("storage.redis_db"),
				KeyPrefix: v.GetString("storage.key_prefix"),
			},
		},
		FavKey: v.GetString("favorites.key"),
		Catalog: catalog.Config{
			BaseURL: v.GetString("catalog.url"),
			Timeout: v.GetDuration("catalog.timeout"),
			Retry: service.RetryOptions{
				MaxAttempts:  v.GetInt("catalog.retries"),
				InitialDelay: 200 * time.Millisecond,
				MaxDelay:     5 * time.Second,
				Multiplier:   2,
			},
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings that would otherwise fail late.
func (s *Settings) Validate() error {
	switch s.Storage.Backend {
	case storage.BackendSQLite:
		if s.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
		}
	case storage.BackendRedis:
		if s.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: storage.redis_addr", common.ErrMissingConfig)
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("%w: storage.backend %q", common.ErrInvalidConfig, s.Storage.Backend)
	}

	if s.FavKey == "" {
		return fmt.Errorf("%w: favorites.key", common.ErrMissingConfig)
	}
	if s.Catalog.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: catalog.retries must be at least 1", common.ErrInvalidConfig)
	}
	return nil
}
