package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

const (
	releasesNoteTitle = "check"
	successMessage    = "Upgrade complete. Enjoy the new release!"
	upToDateMessage   = "Everything is already up to date."
)

// Upgrade is the interface for the upgrade command.
type Upgrade interface {
	Execute(ctx context.Context, opts entities.UpgradeOptions) error
}

// UpgradeCommand chains the upgrade stages in a forward-only order:
// scan -> resolve -> classify -> confirm -> install.
type UpgradeCommand struct {
	terminal        repositories.TerminalRepository
	registry        repositories.RegistryRepository
	packageManagers repositories.PackageManagerRepository
	registryContext *RegistryContext
	scanner         *ManifestScanner
	resolver        *VersionResolver
	gate            *ConfirmationGate
	orchestrator    *InstallOrchestrator
}

// NewUpgradeCommand creates a new UpgradeCommand.
func NewUpgradeCommand(
	terminal repositories.TerminalRepository,
	registry repositories.RegistryRepository,
	packageManagers repositories.PackageManagerRepository,
	registryContext *RegistryContext,
	scanner *ManifestScanner,
	resolver *VersionResolver,
	gate *ConfirmationGate,
	orchestrator *InstallOrchestrator,
) *UpgradeCommand {
	return &UpgradeCommand{
		terminal:        terminal,
		registry:        registry,
		packageManagers: packageManagers,
		registryContext: registryContext,
		scanner:         scanner,
		resolver:        resolver,
		gate:            gate,
		orchestrator:    orchestrator,
	}
}

// Execute runs one upgrade. Every fatal condition prints a single error line
// through the terminal before its error is returned. A declined confirmation
// returns entities.ErrUpgradeCancelled.
func (it *UpgradeCommand) Execute(ctx context.Context, opts entities.UpgradeOptions) error {
	settings := opts.Settings
	if settings == nil {
		settings = entities.DefaultSettings()
	}
	platform := settings.Platform
	requested := opts.Version
	if requested == "" {
		requested = entities.LatestTag
	}

	it.terminal.Intro(platform.DisplayName)

	pm := entities.DefaultPackageManager()
	if detected := it.packageManagers.Detect(ctx, opts.ProjectDir); detected != nil {
		pm = *detected
	}
	logger.Debugf("[upgrade] Package manager: %s (%s)", pm.Name, pm.Agent)

	registry := it.registryContext.Resolve(ctx, pm, opts.ProjectDir, settings.Registry)

	if !opts.DryRun && !it.registry.IsReachable(ctx, registry) {
		it.terminal.Error("Unable to connect to the internet.")
		return fmt.Errorf("%w: %s", entities.ErrNetworkUnreachable, registry.BaseURL)
	}

	records, err := it.scanner.Scan(ctx, opts.ProjectDir, requested, platform)
	if err != nil {
		it.terminal.Error(fmt.Sprintf("%s installation not found in the current directory.", platform.DisplayName))
		return err
	}

	err = it.resolver.Resolve(ctx, records, ResolveOptions{
		Registry:    registry,
		Platform:    platform,
		Concurrency: settings.Resolver.Concurrency,
	})
	if err != nil {
		it.terminal.Error(fmt.Sprintf("Version %s %s", requested, dimStyle.Sprint("could not be found!")))
		it.terminal.Note(platform.ReleasesURL, releasesNoteTitle)
		return err
	}

	classification := entities.Classify(records)
	it.report(classification, opts.DryRun)

	pending := classification.Pending()
	if len(pending) == 0 && !opts.DryRun {
		it.terminal.Success(upToDateMessage)
		return nil
	}

	if err = it.gate.Confirm(ctx, classification.Majors(), settings.AssumeYes); err != nil {
		if errors.Is(err, entities.ErrUpgradeCancelled) {
			logger.Debug("[upgrade] Breaking changes declined")
			return err
		}
		it.terminal.Error(err.Error())
		return err
	}

	err = it.orchestrator.Install(ctx, InstallRequest{
		Dependencies:    classification.Dependencies,
		DevDependencies: classification.DevDependencies,
		PackageManager:  pm,
		ProjectDir:      opts.ProjectDir,
		DryRun:          opts.DryRun,
		Timeout:         settings.Install.Timeout,
	})
	if err != nil {
		return err
	}

	if !opts.DryRun {
		it.terminal.Success(successMessage)
	}
	return nil
}

// report prints the current packages followed by every pending upgrade.
func (it *UpgradeCommand) report(classification entities.Classification, dryRun bool) {
	it.terminal.Note(boldStyle.Sprint("Package upgrade in progress."), "")
	reportCurrent(it.terminal, classification.Current)

	verb := "will be updated"
	if dryRun {
		verb = "can be updated"
	}
	for _, record := range classification.Pending() {
		reportUpgrade(it.terminal, record, verb)
	}
}
