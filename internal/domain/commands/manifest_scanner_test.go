//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/commands"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	doubles "github.com/rios0rios0/studiocms-upgrade/test/infrastructure/repositorydoubles"
)

func TestManifestScannerScan(t *testing.T) {
	t.Parallel()

	t.Run("should return eligible records in declaration order", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := doubles.NewStubManifestRepository(`{
			"dependencies": {"studiocms": "^0.1.0", "@studiocms/blog": "^0.1.0", "react": "^19.0.0"},
			"devDependencies": {"astro": "^5.0.0"}
		}`)
		scanner := commands.NewManifestScanner(manifests)

		// when
		records, err := scanner.Scan(context.Background(), "/project", "latest", entities.DefaultPlatform())

		// then
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "studiocms", records[0].Name)
		assert.Equal(t, "@studiocms/blog", records[1].Name)
		assert.Equal(t, "astro", records[2].Name)
		assert.True(t, records[2].IsDevDependency)
		assert.Equal(t, "latest", records[0].TargetVersion)
		assert.Equal(t, []string{"/project"}, manifests.ReadDirs)
	})

	t.Run("should not recognize a project without eligible packages", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := doubles.NewStubManifestRepository(`{"dependencies": {"react": "^19.0.0"}}`)
		scanner := commands.NewManifestScanner(manifests)

		// when
		_, err := scanner.Scan(context.Background(), ".", "latest", entities.DefaultPlatform())

		// then
		require.ErrorIs(t, err, entities.ErrProjectNotRecognized)
	})

	t.Run("should not recognize a project that only declares framework packages", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := doubles.NewStubManifestRepository(`{"dependencies": {"astro": "^5.0.0"}}`)
		scanner := commands.NewManifestScanner(manifests)

		// when
		_, err := scanner.Scan(context.Background(), ".", "latest", entities.DefaultPlatform())

		// then
		require.ErrorIs(t, err, entities.ErrProjectNotRecognized)
	})

	t.Run("should not recognize a project whose main package is a workspace link", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := doubles.NewStubManifestRepository(`{"dependencies": {"studiocms": "workspace:*"}}`)
		scanner := commands.NewManifestScanner(manifests)

		// when
		_, err := scanner.Scan(context.Background(), ".", "latest", entities.DefaultPlatform())

		// then
		require.ErrorIs(t, err, entities.ErrProjectNotRecognized)
	})

	t.Run("should treat an unreadable manifest like an empty one", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &doubles.StubManifestRepository{
			Err: errors.Join(entities.ErrManifestUnreadable, errors.New("unexpected end of JSON input")),
		}
		scanner := commands.NewManifestScanner(manifests)

		// when
		_, err := scanner.Scan(context.Background(), ".", "latest", entities.DefaultPlatform())

		// then
		require.ErrorIs(t, err, entities.ErrProjectNotRecognized)
		assert.NotErrorIs(t, err, entities.ErrManifestUnreadable)
	})
}
