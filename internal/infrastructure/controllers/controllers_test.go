//go:build unit

package controllers_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/controllers"
	"github.com/rios0rios0/studiocms-upgrade/test/domain/commanddoubles"
)

func newCommand(t *testing.T, controller entities.Controller, flags ...string) *cobra.Command {
	t.Helper()

	config := filepath.Join(t.TempDir(), "studiocms-upgrade.yaml")
	require.NoError(t, os.WriteFile(config, []byte("assume_yes: true\n"), 0o600))

	bind := controller.GetBind()
	cmd := &cobra.Command{Use: bind.Use}
	controller.AddFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(append([]string{"--config", config}, flags...)))
	cmd.SetContext(context.Background())
	return cmd
}

func TestUpgradeControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass the version argument and flags to the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{}
		controller := controllers.NewUpgradeController(stub)
		project := t.TempDir()
		cmd := newCommand(t, controller, "--dry-run", "--cwd", project)

		// when
		err := controller.Execute(cmd, []string{"beta"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "beta", stub.LastOpts.Version)
		assert.True(t, stub.LastOpts.DryRun)
		assert.Equal(t, project, stub.LastOpts.ProjectDir)
		assert.True(t, stub.LastOpts.Settings.AssumeYes)
	})

	t.Run("should default to the latest dist-tag", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{}
		controller := controllers.NewUpgradeController(stub)
		cmd := newCommand(t, controller, "--cwd", t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.LatestTag, stub.LastOpts.Version)
		assert.False(t, stub.LastOpts.DryRun)
	})

	t.Run("should treat a cancelled upgrade as success", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{ExecuteErr: entities.ErrUpgradeCancelled}
		controller := controllers.NewUpgradeController(stub)
		cmd := newCommand(t, controller, "--cwd", t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
	})

	t.Run("should mark command failures as already reported", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{ExecuteErr: entities.ErrNetworkUnreachable}
		controller := controllers.NewUpgradeController(stub)
		cmd := newCommand(t, controller, "--cwd", t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		var reported *controllers.ReportedError
		require.ErrorAs(t, err, &reported)
		assert.ErrorIs(t, err, entities.ErrNetworkUnreachable)
	})

	t.Run("should fail before running when the config file is missing", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubUpgradeCommand{}
		controller := controllers.NewUpgradeController(stub)
		cmd := newCommand(t, controller, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		var reported *controllers.ReportedError
		assert.False(t, errors.As(err, &reported))
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestInspectControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should run the inspection in the given directory", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubInspectCommand{}
		controller := controllers.NewInspectController(stub)
		project := t.TempDir()
		cmd := newCommand(t, controller, "--cwd", project)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, project, stub.LastOpts.ProjectDir)
	})

	t.Run("should mark failures as already reported", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubInspectCommand{ExecuteErr: entities.ErrManifestUnreadable}
		controller := controllers.NewInspectController(stub)
		cmd := newCommand(t, controller, "--cwd", t.TempDir())

		// when
		err := controller.Execute(cmd, nil)

		// then
		var reported *controllers.ReportedError
		require.ErrorAs(t, err, &reported)
	})
}

func TestNewControllers(t *testing.T) {
	t.Parallel()

	// given
	inspect := controllers.NewInspectController(&commanddoubles.StubInspectCommand{})

	// when
	result := controllers.NewControllers(inspect)

	// then
	require.Len(t, *result, 1)
	assert.Equal(t, "inspect", (*result)[0].GetBind().Use)
}
