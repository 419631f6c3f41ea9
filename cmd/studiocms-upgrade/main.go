package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/studiocms-upgrade/internal"
	"github.com/rios0rios0/studiocms-upgrade/internal/infrastructure/controllers"
)

// version is overridden at build time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // build metadata
var version = "dev"

func buildRootCommand(upgradeController *controllers.UpgradeController) *cobra.Command {
	bind := upgradeController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          upgradeController.Execute,
	}
	cmd.Flags().BoolP("version", "v", false, "Print the version and exit")
	upgradeController.AddFlags(cmd)

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:           bind.Use,
			Short:         bind.Short,
			Long:          bind.Long,
			Args:          cobra.NoArgs,
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE:          controller.Execute,
		}
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	container := newContainer()
	cobraRoot := buildRootCommand(injectUpgradeController(container))
	addSubcommands(cobraRoot, injectAppContext(container))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		var reported *controllers.ReportedError
		if !errors.As(err, &reported) {
			logger.Errorf("Error executing 'studiocms-upgrade': %s", err)
		}
		stop()
		os.Exit(1)
	}
}
