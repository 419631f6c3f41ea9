//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// StubRegistryRepository implements repositories.RegistryRepository from
// in-memory tables. It is safe for concurrent use.
type StubRegistryRepository struct {
	// --- FetchMetadata ---
	Metadata    map[string]*entities.PackageMetadata
	MetadataErr map[string]error

	// --- FetchLatest ---
	Releases  map[string]*entities.PackageRelease
	LatestErr error

	// --- Probe ---
	ProbeStatus int
	ProbeErr    error

	// --- IsReachable ---
	Reachable bool

	mu sync.Mutex
	// spy: names passed to FetchMetadata and FetchLatest, and probed URLs
	FetchedNames []string
	LatestNames  []string
	ProbedURLs   []string
	Registries   []entities.Registry
}

var _ repositories.RegistryRepository = (*StubRegistryRepository)(nil)

// WithDistTags registers the dist-tags of a package.
func (s *StubRegistryRepository) WithDistTags(name string, tags map[string]string) *StubRegistryRepository {
	if s.Metadata == nil {
		s.Metadata = map[string]*entities.PackageMetadata{}
	}
	s.Metadata[name] = &entities.PackageMetadata{Name: name, DistTags: tags}
	return s
}

// WithRepository registers the repository served by the latest endpoint.
func (s *StubRegistryRepository) WithRepository(name string, repo *entities.RepositoryDescriptor) *StubRegistryRepository {
	if s.Releases == nil {
		s.Releases = map[string]*entities.PackageRelease{}
	}
	s.Releases[name] = &entities.PackageRelease{Name: name, Repository: repo}
	return s
}

func (s *StubRegistryRepository) FetchMetadata(
	_ context.Context,
	registry entities.Registry,
	name string,
) (*entities.PackageMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FetchedNames = append(s.FetchedNames, name)
	s.Registries = append(s.Registries, registry)

	if err, ok := s.MetadataErr[name]; ok {
		return nil, err
	}
	metadata, ok := s.Metadata[name]
	if !ok {
		return nil, fmt.Errorf("registry error (status 404): %s not found", name)
	}
	return metadata, nil
}

func (s *StubRegistryRepository) FetchLatest(
	_ context.Context,
	_ entities.Registry,
	name string,
) (*entities.PackageRelease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LatestNames = append(s.LatestNames, name)

	if s.LatestErr != nil {
		return nil, s.LatestErr
	}
	if release, ok := s.Releases[name]; ok {
		return release, nil
	}
	return &entities.PackageRelease{Name: name}, nil
}

func (s *StubRegistryRepository) Probe(_ context.Context, url string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProbedURLs = append(s.ProbedURLs, url)
	return s.ProbeStatus, s.ProbeErr
}

func (s *StubRegistryRepository) IsReachable(_ context.Context, _ entities.Registry) bool {
	return s.Reachable
}
