package controllers

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/commands"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// UpgradeController handles the root command: upgrade the project in the
// current directory to an optional version or dist-tag.
type UpgradeController struct {
	command commands.Upgrade
}

// NewUpgradeController creates a new UpgradeController.
func NewUpgradeController(command commands.Upgrade) *UpgradeController {
	return &UpgradeController{command: command}
}

// GetBind returns the Cobra command metadata for the upgrade controller.
func (it *UpgradeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "studiocms-upgrade [version]",
		Short: "Upgrade StudioCMS and its Astro integrations",
		Long: `Upgrade every StudioCMS and Astro package declared in package.json
to the given version or dist-tag ("latest" when omitted).

Breaking changes are listed with their CHANGELOG and need confirmation
before the package manager is run.`,
	}
}

// AddFlags registers the upgrade flags on the root command.
func (it *UpgradeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Walk through the upgrade without installing anything")
	addSharedFlags(cmd)
}

// Execute runs one upgrade. Errors already reported to the user are returned
// wrapped in ReportedError so main can exit without printing them twice.
func (it *UpgradeController) Execute(cmd *cobra.Command, arguments []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	if len(arguments) > 0 {
		opts.Version = arguments[0]
	}

	err = it.command.Execute(cmd.Context(), opts)
	if errors.Is(err, entities.ErrUpgradeCancelled) {
		return nil
	}
	if err != nil {
		return &ReportedError{Err: err}
	}
	return nil
}

// ReportedError marks a failure the terminal already explained.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// addSharedFlags registers the flags every controller understands.
func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to config file (default: auto-detect)")
	cmd.Flags().String("cwd", "", "Project directory (default: current directory)")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")
	cmd.Flags().Bool("color", false, "Force colored output")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")
}

// buildOptions loads settings and applies the shared flags.
func buildOptions(cmd *cobra.Command) (entities.UpgradeOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	projectDir, _ := cmd.Flags().GetString("cwd")
	verbose, _ := cmd.Flags().GetBool("verbose")
	forceColor, _ := cmd.Flags().GetBool("color")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	switch {
	case forceColor:
		color.NoColor = false
	case noColor:
		color.NoColor = true
	}

	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return entities.UpgradeOptions{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		projectDir = wd
	}

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return entities.UpgradeOptions{}, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debugf("[upgrade] Project directory: %s", projectDir)

	return entities.UpgradeOptions{
		Version:    entities.LatestTag,
		ProjectDir: projectDir,
		Verbose:    verbose,
		Settings:   settings,
	}, nil
}
