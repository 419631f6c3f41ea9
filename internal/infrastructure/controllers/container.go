package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewUpgradeController); err != nil {
		return err
	}
	if err := container.Provide(NewInspectController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers for the AppInternal.
// The upgrade controller is bound to the root command instead.
func NewControllers(
	inspectController *InspectController,
) *[]entities.Controller {
	return &[]entities.Controller{
		inspectController,
	}
}
