package repositories

import (
	"context"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// PackageManagerRepository wraps the external package manager.
type PackageManagerRepository interface {
	// Detect identifies the package manager of a project, or returns nil.
	Detect(ctx context.Context, projectDir string) *entities.PackageManager

	// AddCommand maps an agent to its "add" command template.
	AddCommand(agent string) (entities.InstallCommand, bool)

	// ConfiguredRegistry asks the package manager for its registry URL.
	ConfiguredRegistry(ctx context.Context, pm entities.PackageManager, projectDir string) (string, error)
}

// CommandRunnerRepository executes external commands.
type CommandRunnerRepository interface {
	// Run executes name with args in dir, discarding standard I/O.
	Run(ctx context.Context, dir, name string, args []string) error
}
