package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// Inspect is the interface for the inspect command.
type Inspect interface {
	Execute(ctx context.Context, opts entities.UpgradeOptions) error
}

// InspectCommand prints what an upgrade would work with (package manager,
// registry and eligible packages). It never contacts the registry or installs;
// registry discovery may still ask the package manager for its configured URL.
type InspectCommand struct {
	terminal        repositories.TerminalRepository
	packageManagers repositories.PackageManagerRepository
	registryContext *RegistryContext
	scanner         *ManifestScanner
}

// NewInspectCommand creates a new InspectCommand.
func NewInspectCommand(
	terminal repositories.TerminalRepository,
	packageManagers repositories.PackageManagerRepository,
	registryContext *RegistryContext,
	scanner *ManifestScanner,
) *InspectCommand {
	return &InspectCommand{
		terminal:        terminal,
		packageManagers: packageManagers,
		registryContext: registryContext,
		scanner:         scanner,
	}
}

// Execute lists the project's eligible packages in declaration order.
func (it *InspectCommand) Execute(ctx context.Context, opts entities.UpgradeOptions) error {
	settings := opts.Settings
	if settings == nil {
		settings = entities.DefaultSettings()
	}
	platform := settings.Platform

	pm := entities.DefaultPackageManager()
	if detected := it.packageManagers.Detect(ctx, opts.ProjectDir); detected != nil {
		pm = *detected
	}
	registry := it.registryContext.Resolve(ctx, pm, opts.ProjectDir, settings.Registry)

	it.terminal.Info(fmt.Sprintf("Package manager: %s (%s)", pm.Name, pm.Agent))
	it.terminal.Info(fmt.Sprintf("Registry: %s", registry.BaseURL))

	records, err := it.scanner.Scan(ctx, opts.ProjectDir, entities.LatestTag, platform)
	if err != nil {
		it.terminal.Error(fmt.Sprintf("%s installation not found in the current directory.", platform.DisplayName))
		return err
	}

	for _, record := range records {
		group := "dependencies"
		if record.IsDevDependency {
			group = "devDependencies"
		}
		it.terminal.Info(fmt.Sprintf("%s  %s %s", symbolMinor, record.Name, dimStyle.Sprintf("%s (%s)", record.CurrentVersion, group)))
	}
	return nil
}
