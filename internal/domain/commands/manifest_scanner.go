package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// ManifestScanner turns the project manifest into the initial package records.
type ManifestScanner struct {
	manifests repositories.ManifestRepository
}

// NewManifestScanner creates a ManifestScanner.
func NewManifestScanner(manifests repositories.ManifestRepository) *ManifestScanner {
	return &ManifestScanner{manifests: manifests}
}

// Scan reads the manifest and returns one record per eligible package, in
// declaration order. An unreadable manifest counts as an empty one, so it
// surfaces as ErrProjectNotRecognized like a manifest without family packages.
func (it *ManifestScanner) Scan(
	ctx context.Context,
	projectDir, requested string,
	platform entities.Platform,
) ([]entities.PackageRecord, error) {
	manifest, err := it.manifests.Read(ctx, projectDir)
	if err != nil {
		logger.Debugf("[upgrade] Treating manifest as empty: %v", err)
		manifest = &entities.Manifest{}
	}

	if !manifest.Declares(platform.MainPackage) {
		return nil, entities.ErrProjectNotRecognized
	}

	records := entities.CollectPackageRecords(manifest, requested, platform)
	if len(records) == 0 {
		return nil, entities.ErrProjectNotRecognized
	}

	logger.Debugf("[upgrade] Found %d eligible packages", len(records))
	return records, nil
}
