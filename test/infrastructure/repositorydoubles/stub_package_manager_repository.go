//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// StubPackageManagerRepository implements repositories.PackageManagerRepository.
type StubPackageManagerRepository struct {
	// --- Detect ---
	Detected *entities.PackageManager

	// --- AddCommand ---
	Commands map[string]entities.InstallCommand

	// --- ConfiguredRegistry ---
	RegistryURL string
	RegistryErr error
	// spy: how many times the package manager was asked for its registry
	ConfiguredRegistryCalls int
}

var _ repositories.PackageManagerRepository = (*StubPackageManagerRepository)(nil)

// NewStubPackageManagerRepository knows the npm, yarn and pnpm add commands.
func NewStubPackageManagerRepository() *StubPackageManagerRepository {
	return &StubPackageManagerRepository{
		Commands: map[string]entities.InstallCommand{
			entities.PackageManagerNpm:  {Command: "npm", Args: []string{"i"}},
			entities.PackageManagerYarn: {Command: "yarn", Args: []string{"add"}},
			entities.AgentYarnBerry:     {Command: "yarn", Args: []string{"add"}},
			entities.PackageManagerPnpm: {Command: "pnpm", Args: []string{"add"}},
		},
	}
}

func (s *StubPackageManagerRepository) Detect(_ context.Context, _ string) *entities.PackageManager {
	return s.Detected
}

func (s *StubPackageManagerRepository) AddCommand(agent string) (entities.InstallCommand, bool) {
	command, ok := s.Commands[agent]
	return command, ok
}

func (s *StubPackageManagerRepository) ConfiguredRegistry(
	_ context.Context,
	_ entities.PackageManager,
	_ string,
) (string, error) {
	s.ConfiguredRegistryCalls++
	return s.RegistryURL, s.RegistryErr
}

// RunCall records a single invocation of SpyCommandRunner.Run.
type RunCall struct {
	Dir      string
	Name     string
	Args     []string
	Deadline bool
}

// SpyCommandRunner implements repositories.CommandRunnerRepository and records
// every call. FailAt makes the n-th call (zero-based) return Err.
type SpyCommandRunner struct {
	Err    error
	FailAt int
	Calls  []RunCall
}

var _ repositories.CommandRunnerRepository = (*SpyCommandRunner)(nil)

// NewSpyCommandRunner creates a runner whose calls all succeed.
func NewSpyCommandRunner() *SpyCommandRunner {
	return &SpyCommandRunner{FailAt: -1}
}

func (s *SpyCommandRunner) Run(ctx context.Context, dir, name string, args []string) error {
	_, hasDeadline := ctx.Deadline()
	s.Calls = append(s.Calls, RunCall{Dir: dir, Name: name, Args: args, Deadline: hasDeadline})
	if s.FailAt == len(s.Calls)-1 {
		return s.Err
	}
	return nil
}

// StubWorktreeRepository implements repositories.WorktreeRepository.
type StubWorktreeRepository struct {
	Dirty []string
	Err   error
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) DirtyFiles(_ string, _ []string) ([]string, error) {
	return s.Dirty, s.Err
}
