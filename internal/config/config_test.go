package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("GALLERY_TEST_DIR", "/tmp/gallery")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde only", in: "~", want: home},
		{name: "tilde prefix", in: "~/data/gallery.db", want: filepath.Join(home, "data/gallery.db")},
		{name: "env var", in: "$GALLERY_TEST_DIR/gallery.db", want: "/tmp/gallery/gallery.db"},
		{name: "absolute", in: "/var/lib/gallery.db", want: "/var/lib/gallery.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, storage.BackendSQLite, s.Storage.Backend)
	assert.Equal(t, "favorites", s.FavKey)
	assert.Equal(t, 30*time.Second, s.Catalog.Timeout)
	assert.Equal(t, 3, s.Catalog.Retry.MaxAttempts)
	assert.NotContains(t, s.Storage.Path, "~")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{name: "unknown backend", key: "storage.backend", value: "etcd", wantErr: common.ErrInvalidConfig},
		{name: "empty favorites key", key: "favorites.key", value: "", wantErr: common.ErrMissingConfig},
		{name: "zero retries", key: "catalog.retries", value: 0, wantErr: common.ErrInvalidConfig},
		{name: "redis without addr", key: "storage.redis_addr", value: "", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_RedisRequiresAddr(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("storage.backend", storage.BackendRedis)
	v.Set("storage.redis_addr", "")

	_, err := Load(v)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
