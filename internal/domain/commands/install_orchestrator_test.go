//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/commands"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/worktree"
	builders "github.com/rios0rios0/studiocms-upgrade/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/studiocms-upgrade/test/infrastructure/repositorydoubles"
)

type orchestratorFixture struct {
	terminal *doubles.SpyTerminalRepository
	runner   *doubles.SpyCommandRunner
	worktree *doubles.StubWorktreeRepository
	subject  *commands.InstallOrchestrator
}

func newOrchestratorFixture() *orchestratorFixture {
	fixture := &orchestratorFixture{
		terminal: doubles.NewSpyTerminalRepository(),
		runner:   doubles.NewSpyCommandRunner(),
		worktree: &doubles.StubWorktreeRepository{},
	}
	fixture.subject = commands.NewInstallOrchestrator(
		fixture.terminal,
		doubles.NewStubPackageManagerRepository(),
		fixture.runner,
		fixture.worktree,
	)
	return fixture
}

func installRequest(t *testing.T, pm entities.PackageManager) commands.InstallRequest {
	t.Helper()
	return commands.InstallRequest{
		Dependencies: []entities.PackageRecord{
			builders.NewPackageRecordBuilder().WithName("astro").WithTargetVersion("^5.2.0").BuildRecord(),
			builders.NewPackageRecordBuilder().WithName("studiocms").WithTargetVersion("0.2.0").BuildRecord(),
		},
		DevDependencies: []entities.PackageRecord{
			builders.NewPackageRecordBuilder().WithName("@astrojs/check").WithTargetVersion("^0.9.4").
				AsDevDependency().BuildRecord(),
		},
		PackageManager: pm,
		ProjectDir:     t.TempDir(),
	}
}

func TestInstallOrchestratorInstall(t *testing.T) {
	t.Parallel()

	t.Run("should never run a command in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.DefaultPackageManager())
		req.DryRun = true

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		assert.Empty(t, fixture.runner.Calls)
		require.Len(t, fixture.terminal.Lines, 1)
		assert.Equal(t, doubles.TerminalLine{
			Level: doubles.LevelNote, Message: "Skipping dependency installation", Title: "--dry-run",
		}, fixture.terminal.Lines[0])
	})

	t.Run("should run dependencies then devDependencies with exact versions", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.PackageManager{Name: "pnpm", Agent: "pnpm"})

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		require.Len(t, fixture.runner.Calls, 2)
		assert.Equal(t, "pnpm", fixture.runner.Calls[0].Name)
		assert.Equal(t, []string{"add", "astro@5.2.0", "studiocms@0.2.0"}, fixture.runner.Calls[0].Args)
		assert.Equal(t, []string{"add", "@astrojs/check@0.9.4"}, fixture.runner.Calls[1].Args)
		assert.Equal(t, req.ProjectDir, fixture.runner.Calls[0].Dir)
		assert.True(t, fixture.runner.Calls[0].Deadline)
		assert.Equal(t, []string{"Installing dependencies with pnpm..."}, fixture.terminal.Messages())
	})

	t.Run("should skip an empty group", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.DefaultPackageManager())
		req.Dependencies = nil

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		require.Len(t, fixture.runner.Calls, 1)
		assert.Equal(t, []string{"i", "@astrojs/check@0.9.4"}, fixture.runner.Calls[0].Args)
	})

	t.Run("should fail without running anything for an unknown agent", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.PackageManager{Name: "bun", Agent: "bun"})

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.ErrorIs(t, err, entities.ErrInstallCommandUnsupported)
		assert.Empty(t, fixture.runner.Calls)
		assert.Equal(t, []string{"Unable to find install command for bun."}, fixture.terminal.Messages(doubles.LevelError))
	})

	t.Run("should print the manual command with every package when the first install fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		fixture.runner.Err = errors.New("exit status 1")
		fixture.runner.FailAt = 0
		req := installRequest(t, entities.DefaultPackageManager())

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.ErrorIs(t, err, entities.ErrInstallExecutionFailed)
		assert.Len(t, fixture.runner.Calls, 1)
		assert.Equal(t, []string{
			"Dependencies failed to install, please run the following command manually:\n" +
				"npm i astro@^5.2.0 studiocms@0.2.0 @astrojs/check@^0.9.4",
		}, fixture.terminal.Messages(doubles.LevelError))
	})

	t.Run("should not retry when the devDependencies install fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		fixture.runner.Err = errors.New("signal: killed")
		fixture.runner.FailAt = 1
		req := installRequest(t, entities.DefaultPackageManager())

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.ErrorIs(t, err, entities.ErrInstallExecutionFailed)
		assert.Len(t, fixture.runner.Calls, 2)
		assert.Len(t, fixture.terminal.Messages(doubles.LevelError), 1)
	})

	t.Run("should create an empty yarn.lock for yarn projects", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.PackageManager{Name: "yarn", Agent: "yarn@berry"})

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(filepath.Join(req.ProjectDir, "yarn.lock"))
		require.NoError(t, readErr)
		assert.Empty(t, content)
	})

	t.Run("should leave an existing yarn.lock untouched", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.PackageManager{Name: "yarn", Agent: "yarn"})
		lockPath := filepath.Join(req.ProjectDir, "yarn.lock")
		require.NoError(t, os.WriteFile(lockPath, []byte("# yarn lockfile v1\n"), 0o600))

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(lockPath)
		require.NoError(t, readErr)
		assert.Equal(t, "# yarn lockfile v1\n", string(content))
	})

	t.Run("should not create a yarn.lock for other package managers", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		req := installRequest(t, entities.DefaultPackageManager())

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(req.ProjectDir, "yarn.lock"))
	})

	t.Run("should warn about uncommitted lock files", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newOrchestratorFixture()
		fixture.worktree.Dirty = []string{"package.json"}
		req := installRequest(t, entities.DefaultPackageManager())

		// when
		err := fixture.subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"package.json has uncommitted changes"}, fixture.terminal.Messages(doubles.LevelWarn))
	})

	t.Run("should not flag its own yarn.lock in a clean checkout", func(t *testing.T) {
		t.Parallel()

		// given
		req := installRequest(t, entities.PackageManager{Name: "yarn", Agent: "yarn"})
		commitManifest(t, req.ProjectDir)
		terminal := doubles.NewSpyTerminalRepository()
		subject := commands.NewInstallOrchestrator(
			terminal,
			doubles.NewStubPackageManagerRepository(),
			doubles.NewSpyCommandRunner(),
			worktree.NewGitWorktreeRepository(),
		)

		// when
		err := subject.Install(context.Background(), req)

		// then
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(req.ProjectDir, "yarn.lock"))
		assert.Empty(t, terminal.Messages(doubles.LevelWarn))
	})
}

func commitManifest(t *testing.T, dir string) {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies": {}}`), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("package.json")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}
