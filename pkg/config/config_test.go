package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const communityYAML = `edit_window: 12h
comment_max_length: 300
admin_emails:
  - ops@example.com
cities:
  - id: hcmc
    name: Ho Chi Minh City
    name_ko: 호치민
    apartments:
      - id: 6f1c2b7e-6a53-4a0e-9d43-3c8a4f1f6b10
        name: Vinhomes Central Park
        lat: 10.7946
        lng: 106.7218
`

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORAGE", "memory")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "jwt", cfg.AuthProvider)
		assert.Equal(t, "memory", cfg.Storage)
		assert.Equal(t, 24*time.Hour, cfg.Community.EditWindow)
		assert.Equal(t, 1000, cfg.Community.CommentMaxLength)
	})

	t.Run("yaml file then env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "community.yaml")
		require.NoError(t, os.WriteFile(path, []byte(communityYAML), 0o600))

		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORAGE", "memory")
		t.Setenv("COMMUNITY_CONFIG", path)
		t.Setenv("COMMENT_MAX_LENGTH", "500")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 12*time.Hour, cfg.Community.EditWindow)
		assert.Equal(t, 500, cfg.Community.CommentMaxLength)
		assert.Equal(t, []string{"ops@example.com"}, cfg.Community.AdminEmails)
		require.Len(t, cfg.Community.Cities, 1)
		assert.Equal(t, "hcmc", cfg.Community.Cities[0].ID)
		require.Len(t, cfg.Community.Cities[0].Apartments, 1)
		assert.InDelta(t, 10.7946, cfg.Community.Cities[0].Apartments[0].Latitude, 1e-9)
	})

	t.Run("postgres storage requires connection strings", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORAGE", "postgres")
		t.Setenv("POSTGRES_CONN_STR", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("firebase requires credentials", func(t *testing.T) {
		t.Setenv("STORAGE", "memory")
		t.Setenv("AUTH_PROVIDER", "firebase")
		t.Setenv("FIREBASE_CREDENTIALS_PATH", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORAGE", "memory")
		t.Setenv("EDIT_WINDOW", "a day")

		_, err := Load()
		assert.Error(t, err)
	})
}
