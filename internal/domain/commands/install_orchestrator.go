package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

const (
	yarnLockFile     = "yarn.lock"
	lockFileMode     = 0o644
	manifestFileName = "package.json"
)

// watchedFiles are checked for uncommitted changes before installing.
//
//nolint:gochecknoglobals // fixed list of lock files
var watchedFiles = []string{
	manifestFileName,
	"package-lock.json",
	"npm-shrinkwrap.json",
	yarnLockFile,
	"pnpm-lock.yaml",
	"bun.lock",
	"bun.lockb",
	"deno.lock",
}

// InstallRequest is everything the orchestrator needs for one install.
type InstallRequest struct {
	Dependencies    []entities.PackageRecord
	DevDependencies []entities.PackageRecord
	PackageManager  entities.PackageManager
	ProjectDir      string
	DryRun          bool
	Timeout         time.Duration
}

// InstallOrchestrator drives the package manager to install upgraded packages.
type InstallOrchestrator struct {
	terminal        repositories.TerminalRepository
	packageManagers repositories.PackageManagerRepository
	runner          repositories.CommandRunnerRepository
	worktree        repositories.WorktreeRepository
}

// NewInstallOrchestrator creates an InstallOrchestrator.
func NewInstallOrchestrator(
	terminal repositories.TerminalRepository,
	packageManagers repositories.PackageManagerRepository,
	runner repositories.CommandRunnerRepository,
	worktree repositories.WorktreeRepository,
) *InstallOrchestrator {
	return &InstallOrchestrator{
		terminal:        terminal,
		packageManagers: packageManagers,
		runner:          runner,
		worktree:        worktree,
	}
}

// Install runs at most two package manager invocations, dependencies first and
// devDependencies second. Nothing is executed in dry-run mode. A failed
// invocation is not retried: the manual command is printed instead and an
// error wrapping entities.ErrInstallExecutionFailed is returned.
func (it *InstallOrchestrator) Install(ctx context.Context, req InstallRequest) error {
	if req.DryRun {
		it.terminal.Note("Skipping dependency installation", "--dry-run")
		return nil
	}

	pm := req.PackageManager
	command, ok := it.packageManagers.AddCommand(pm.Agent)
	if !ok {
		it.terminal.Error(fmt.Sprintf("Unable to find install command for %s.", pm.Name))
		return fmt.Errorf("%w: %s", entities.ErrInstallCommandUnsupported, pm.Agent)
	}

	// the sentinel below is not a user change, so look before writing it
	it.warnAboutDirtyFiles(req.ProjectDir)

	if pm.Name == entities.PackageManagerYarn {
		if err := ensureYarnLock(req.ProjectDir); err != nil {
			logger.Warnf("[install] Failed to create %s: %v", yarnLockFile, err)
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = entities.DefaultInstallTimeout
	}

	it.terminal.Info(fmt.Sprintf("Installing dependencies with %s...", pm.Name))
	for _, group := range [][]entities.PackageRecord{req.Dependencies, req.DevDependencies} {
		if len(group) == 0 {
			continue
		}
		if err := it.run(ctx, req.ProjectDir, command, group, timeout); err != nil {
			logger.Debugf("[install] %s failed: %v", command.Command, err)
			it.terminal.Error(manualInstallMessage(command.ManualCommand(req.Dependencies, req.DevDependencies)))
			return errors.Join(entities.ErrInstallExecutionFailed, err)
		}
	}

	return nil
}

func (it *InstallOrchestrator) run(
	ctx context.Context,
	dir string,
	command entities.InstallCommand,
	group []entities.PackageRecord,
	timeout time.Duration,
) error {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := command.ArgsFor(group)
	logger.Debugf("[install] Running %s %v in %s", command.Command, args, dir)
	return it.runner.Run(runCtx, dir, command.Command, args)
}

// warnAboutDirtyFiles points out uncommitted manifest or lock file changes,
// since the install is about to rewrite them.
func (it *InstallOrchestrator) warnAboutDirtyFiles(dir string) {
	if it.worktree == nil {
		return
	}

	dirty, err := it.worktree.DirtyFiles(dir, watchedFiles)
	if err != nil {
		logger.Debugf("[install] Could not inspect worktree: %v", err)
		return
	}
	for _, path := range dirty {
		it.terminal.Warn(fmt.Sprintf("%s has uncommitted changes", path))
	}
}

// ensureYarnLock writes an empty yarn.lock when none exists. Yarn Berry refuses
// to install into a project without one; the install overwrites it right away.
func ensureYarnLock(dir string) error {
	path := filepath.Join(dir, yarnLockFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte{}, lockFileMode)
}
