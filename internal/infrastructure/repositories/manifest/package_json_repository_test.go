//go:build unit

package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/manifest"
)

func TestPackageJSONRepositoryRead(t *testing.T) {
	t.Parallel()

	t.Run("should parse package.json from the project directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		content := `{"dependencies": {"studiocms": "^0.1.0"}, "devDependencies": {"astro": "^5.0.0"}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0o600))

		// when
		result, err := manifest.NewPackageJSONRepository().Read(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.DeclaredDependency{{Name: "studiocms", Version: "^0.1.0"}}, result.Dependencies)
		assert.Equal(t, []entities.DeclaredDependency{{Name: "astro", Version: "^5.0.0"}}, result.DevDependencies)
	})

	t.Run("should report a missing file as unreadable", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := manifest.NewPackageJSONRepository().Read(context.Background(), t.TempDir())

		// then
		require.ErrorIs(t, err, entities.ErrManifestUnreadable)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should report malformed JSON as unreadable", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(`{"dependencies":`), 0o600))

		// when
		_, err := manifest.NewPackageJSONRepository().Read(context.Background(), dir)

		// then
		require.ErrorIs(t, err, entities.ErrManifestUnreadable)
	})
}
