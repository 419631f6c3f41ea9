package repositories

import (
	"context"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// ManifestRepository reads the project's dependency declaration document.
type ManifestRepository interface {
	// Read returns the manifest of the project rooted at projectDir. A missing
	// or unparsable file yields an error wrapping entities.ErrManifestUnreadable.
	Read(ctx context.Context, projectDir string) (*entities.Manifest, error)
}
