//go:build unit

package terminal_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/terminal"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func answer(value bool, err error) terminal.ConfirmFunc {
	return func(_ context.Context, _ string, target *bool) error {
		*target = value
		return err
	}
}

func TestRepositoryOutput(t *testing.T) {
	t.Parallel()

	t.Run("should prefix each level with its symbol", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		repo := terminal.NewRepositoryWith(&out, -1, false, answer(true, nil))

		// when
		repo.Info("studiocms is up to date on v1.0.0")
		repo.Warn("Be sure to follow the CHANGELOG.")
		repo.Error("Dependencies failed to install, please run the following command manually:\nnpm i astro@^5.0.0")
		repo.Success("done")

		// then
		assert.Equal(t, ""+
			"●  studiocms is up to date on v1.0.0\n"+
			"▲  Be sure to follow the CHANGELOG.\n"+
			"■  Dependencies failed to install, please run the following command manually:\n"+
			"│  npm i astro@^5.0.0\n"+
			"◆  done\n",
			out.String(),
		)
	})

	t.Run("should render notes under their title", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		repo := terminal.NewRepositoryWith(&out, -1, false, answer(true, nil))

		// when
		repo.Note("Skipping dependency installation", "--dry-run")

		// then
		assert.Equal(t, "◇  --dry-run\n│  Skipping dependency installation\n│\n", out.String())
	})

	t.Run("should print the plain label when colors are off", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		repo := terminal.NewRepositoryWith(&out, -1, false, answer(true, nil))

		// when
		repo.Intro("StudioCMS")

		// then
		assert.Equal(t, "StudioCMS\n│\n", out.String())
	})

	t.Run("should fall back to 80 columns without a terminal", func(t *testing.T) {
		t.Parallel()

		// given
		repo := terminal.NewRepositoryWith(&bytes.Buffer{}, -1, false, answer(true, nil))

		// when / then
		assert.Equal(t, 80, repo.Width())
	})

	t.Run("should print bare URLs instead of hyperlinks without a terminal", func(t *testing.T) {
		t.Parallel()

		// given
		repo := terminal.NewRepositoryWith(&bytes.Buffer{}, -1, false, answer(true, nil))

		// when
		rendered, visible := repo.Link("CHANGELOG", "https://example.com/CHANGELOG.md")

		// then
		assert.Equal(t, "https://example.com/CHANGELOG.md", rendered)
		assert.Equal(t, len(rendered), visible)
	})
}

func TestRepositoryConfirm(t *testing.T) {
	t.Parallel()

	t.Run("should return the answer", func(t *testing.T) {
		t.Parallel()

		// given
		repo := terminal.NewRepositoryWith(&bytes.Buffer{}, -1, true, answer(false, nil))

		// when
		accepted, err := repo.Confirm(context.Background(), "Continue?", true)

		// then
		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("should map an aborted prompt to a cancellation", func(t *testing.T) {
		t.Parallel()

		// given
		repo := terminal.NewRepositoryWith(&bytes.Buffer{}, -1, true, answer(false, huh.ErrUserAborted))

		// when
		_, err := repo.Confirm(context.Background(), "Continue?", true)

		// then
		require.ErrorIs(t, err, entities.ErrUpgradeCancelled)
	})

	t.Run("should refuse to prompt without a terminal", func(t *testing.T) {
		t.Parallel()

		// given
		called := false
		confirm := func(context.Context, string, *bool) error {
			called = true
			return nil
		}
		repo := terminal.NewRepositoryWith(&bytes.Buffer{}, -1, false, confirm)

		// when
		_, err := repo.Confirm(context.Background(), "Continue?", true)

		// then
		require.Error(t, err)
		assert.False(t, called)
		assert.False(t, errors.Is(err, entities.ErrUpgradeCancelled))
	})
}
