package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usleep/usleep-cli/internal/domain"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "token")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreTokenRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.APITokenSecretKey, "Bearer eyJhbGciOi.payload.sig\n"))

	value, err := store.Get(ctx, domain.APITokenSecretKey)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.payload.sig", value)

	info, err := os.Stat(filepath.Join(root, domain.APITokenSecretKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())
}

func TestStorePutTightensExistingFileMode(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, NewStore(root).Put(context.Background(), "token", "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())
}

func TestStorePutRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	err := NewStore(t.TempDir()).Put(context.Background(), domain.APITokenSecretKey, "  ")

	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestStoreGetMissingToken(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), domain.APITokenSecretKey)

	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, domain.APITokenSecretKey, "abc"))

	require.NoError(t, store.Delete(ctx, domain.APITokenSecretKey))
	require.NoError(t, store.Delete(ctx, domain.APITokenSecretKey))

	_, err := store.Get(ctx, domain.APITokenSecretKey)
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}
