package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/studiocms-upgrade/internal"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/controllers"
)

func newContainer() *dig.Container {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}
	return container
}

func injectAppContext(container *dig.Container) *internal.AppInternal {
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectUpgradeController(container *dig.Container) *controllers.UpgradeController {
	var upgradeController *controllers.UpgradeController
	if err := container.Invoke(func(uc *controllers.UpgradeController) {
		upgradeController = uc
	}); err != nil {
		panic(err)
	}

	return upgradeController
}
