package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/resep-nusantara/internal/fixtures"
	"github.com/pageza/resep-nusantara/internal/service"
	"github.com/pageza/resep-nusantara/internal/testhelpers"
)

type failingClipboard struct{}

func (failingClipboard) Name() string { return "clipboard" }

func (failingClipboard) Copy(ctx context.Context, text string) error {
	return errors.New("permission denied")
}

func setupEnv(t *testing.T) *fixtures.API {
	t.Helper()
	remote := fixtures.NewDefaultAPI()
	srv := testhelpers.NewRecipeAPIServer(t, remote)

	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("RECIPE_API_URL", srv.URL)
	t.Setenv("RECIPE_API_KEY", "")
	t.Setenv("PUBLIC_ORIGIN", "https://resep.example.com")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "resep.db"))
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("AVATAR_BUCKET", "")

	prev := clipboard
	clipboard = func() service.Copier { return failingClipboard{} }
	t.Cleanup(func() { clipboard = prev })
	return remote
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFavoritesToggleAndList(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Belum ada resep favorit.")

	out, err = run(t, "favorites", "toggle", "7")
	require.NoError(t, err)
	assert.Equal(t, "Rendang ditambahkan ke favorit (1)\n", out)

	out, err = run(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendang")
	assert.Contains(t, out, "Makanan")
	assert.Contains(t, out, "180 min")
	assert.Contains(t, out, "1 Resep Favorit")

	out, err = run(t, "favorites", "toggle", "7")
	require.NoError(t, err)
	assert.Equal(t, "Rendang dihapus dari favorit (0)\n", out)
}

func TestFavoritesToggleUnknown(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "favorites", "toggle", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tidak ditemukan")
}

func TestFavoritesToggleRemoteDown(t *testing.T) {
	remote := setupEnv(t)
	remote.SetFailing(true)

	_, err := run(t, "favorites", "toggle", "7")
	require.Error(t, err)
	assert.Equal(t, service.FetchErrorMessage, err.Error())
}

func TestSharePrintsPanel(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "share", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Share Rendang")
	assert.Contains(t, out, "https://resep.example.com/recipe/7")
	assert.Contains(t, out, "https://wa.me/?text=")
}

func TestShareCopyFallsBackToManual(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "share", "7", "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "Salin tautan ini:\nhttps://resep.example.com/recipe/7\n")
	assert.NotContains(t, out, "berhasil disalin")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resep dev\n", out)
}
