package packagemanager

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// OutputFunc runs a command and returns its standard output.
type OutputFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// PackageManagerRepository combines detection, the add-command registry and
// registry discovery through the package manager's own configuration.
type PackageManagerRepository struct {
	detector *Detector
	commands *AddCommandRegistry
	output   OutputFunc
}

// NewPackageManagerRepository creates a PackageManagerRepository that shells
// out to the real package manager.
func NewPackageManagerRepository(detector *Detector, commands *AddCommandRegistry) *PackageManagerRepository {
	return NewPackageManagerRepositoryWith(detector, commands, commandOutput)
}

// NewPackageManagerRepositoryWith creates a PackageManagerRepository using the
// given command runner for configuration queries.
func NewPackageManagerRepositoryWith(
	detector *Detector,
	commands *AddCommandRegistry,
	output OutputFunc,
) *PackageManagerRepository {
	return &PackageManagerRepository{detector: detector, commands: commands, output: output}
}

// Detect identifies the package manager of the project.
func (it *PackageManagerRepository) Detect(_ context.Context, projectDir string) *entities.PackageManager {
	return it.detector.Detect(projectDir)
}

// AddCommand returns the add command template of an agent.
func (it *PackageManagerRepository) AddCommand(agent string) (entities.InstallCommand, bool) {
	command, ok := it.commands.Get(agent)
	if !ok {
		logger.Debugf("[install] No add command for %q, known agents: %s",
			agent, strings.Join(it.commands.Agents(), ", "))
	}
	return command, ok
}

// ConfiguredRegistry runs "<pm> config get registry" and returns its output.
func (it *PackageManagerRepository) ConfiguredRegistry(
	ctx context.Context,
	pm entities.PackageManager,
	projectDir string,
) (string, error) {
	out, err := it.output(ctx, projectDir, pm.Name, "config", "get", "registry")
	if err != nil {
		return "", fmt.Errorf("failed to query %s registry: %w", pm.Name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func commandOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
