package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// FileName is the manifest file read from the project root.
const FileName = "package.json"

// PackageJSONRepository reads package.json from the local filesystem.
type PackageJSONRepository struct{}

// NewPackageJSONRepository creates a PackageJSONRepository.
func NewPackageJSONRepository() *PackageJSONRepository {
	return &PackageJSONRepository{}
}

// Read parses <projectDir>/package.json.
func (it *PackageJSONRepository) Read(_ context.Context, projectDir string) (*entities.Manifest, error) {
	path := filepath.Join(projectDir, FileName)
	logger.Debugf("[manifest] Reading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrManifestUnreadable, err)
	}

	manifest, err := entities.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrManifestUnreadable, path, err)
	}
	return manifest, nil
}
