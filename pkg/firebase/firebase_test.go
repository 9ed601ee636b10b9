package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthClientRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path", func(t *testing.T) {
		_, err := NewAuthClient(ctx, "")
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewAuthClient(ctx, filepath.Join(t.TempDir(), "service-account.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewAuthClient(ctx, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}
