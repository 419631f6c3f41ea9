package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register stage constructors
	for _, constructor := range []any{
		NewRegistryContext,
		NewManifestScanner,
		NewVersionResolver,
		NewConfirmationGate,
		NewInstallOrchestrator,
		NewUpgradeCommand,
		NewInspectCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *UpgradeCommand) Upgrade {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *InspectCommand) Inspect {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
