package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/commands"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// InspectController handles the "inspect" subcommand.
type InspectController struct {
	command commands.Inspect
}

// NewInspectController creates a new InspectController.
func NewInspectController(command commands.Inspect) *InspectController {
	return &InspectController{command: command}
}

// GetBind returns the Cobra command metadata for the inspect controller.
func (it *InspectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "inspect",
		Short: "Show the packages an upgrade would touch",
		Long: `Print the detected package manager, the registry in use and every
StudioCMS or Astro package eligible for an upgrade. Nothing is fetched
from the registry and nothing is installed.`,
	}
}

// AddFlags registers the inspect flags.
func (it *InspectController) AddFlags(cmd *cobra.Command) {
	addSharedFlags(cmd)
}

// Execute runs the inspection.
func (it *InspectController) Execute(cmd *cobra.Command, _ []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	if err = it.command.Execute(cmd.Context(), opts); err != nil {
		return &ReportedError{Err: err}
	}
	return nil
}
