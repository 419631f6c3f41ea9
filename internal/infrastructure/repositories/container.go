package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
	manifestRepo "github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/manifest"
	npmRepo "github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/npm"
	pmRepo "github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/packagemanager"
	terminalRepo "github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/terminal"
	worktreeRepo "github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/repositories/worktree"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the add command registry with every known agent
	if err := container.Provide(pmRepo.NewDefaultAddCommandRegistry); err != nil {
		return err
	}
	if err := container.Provide(pmRepo.NewDetector); err != nil {
		return err
	}

	// Bind ports to adapters
	providers := []any{
		func() domainRepos.RegistryRepository { return npmRepo.NewRegistryRepository() },
		func() domainRepos.ManifestRepository { return manifestRepo.NewPackageJSONRepository() },
		func(detector *pmRepo.Detector, commands *pmRepo.AddCommandRegistry) domainRepos.PackageManagerRepository {
			return pmRepo.NewPackageManagerRepository(detector, commands)
		},
		func() domainRepos.CommandRunnerRepository { return pmRepo.NewShellRunner() },
		func() domainRepos.TerminalRepository { return terminalRepo.NewRepository() },
		func() domainRepos.WorktreeRepository { return worktreeRepo.NewGitWorktreeRepository() },
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}

	return nil
}
