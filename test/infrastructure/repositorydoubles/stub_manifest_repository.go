//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// StubManifestRepository returns a fixed manifest or error.
type StubManifestRepository struct {
	Manifest *entities.Manifest
	Err      error

	// spy: directories read
	ReadDirs []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

// NewStubManifestRepository parses a package.json document into a stub.
func NewStubManifestRepository(document string) *StubManifestRepository {
	manifest, err := entities.ParseManifest([]byte(document))
	if err != nil {
		panic(err)
	}
	return &StubManifestRepository{Manifest: manifest}
}

func (s *StubManifestRepository) Read(_ context.Context, projectDir string) (*entities.Manifest, error) {
	s.ReadDirs = append(s.ReadDirs, projectDir)
	return s.Manifest, s.Err
}
