package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

const caretPrefix = "^"

// ResolveOptions configures one resolution batch.
type ResolveOptions struct {
	Registry    entities.Registry
	Platform    entities.Platform
	Concurrency int // 0 means unbounded
}

// VersionResolver resolves every record against the registry concurrently.
type VersionResolver struct {
	registry repositories.RegistryRepository
}

// NewVersionResolver creates a VersionResolver.
func NewVersionResolver(registry repositories.RegistryRepository) *VersionResolver {
	return &VersionResolver{registry: registry}
}

// Resolve launches one task per record and waits for all of them. Each task
// mutates only its own record. When any task fails the whole batch fails with a
// *entities.ResolutionError listing every failure; when every task succeeds but
// a record is left without a target version, ErrVersionNotFound is returned.
func (it *VersionResolver) Resolve(
	ctx context.Context,
	records []entities.PackageRecord,
	opts ResolveOptions,
) error {
	failures := make([]error, len(records))

	var group errgroup.Group
	if opts.Concurrency > 0 {
		group.SetLimit(opts.Concurrency)
	}

	for i := range records {
		group.Go(func() error {
			failures[i] = it.resolveRecord(ctx, &records[i], opts)
			return nil
		})
	}
	_ = group.Wait() // tasks report through failures

	resolutionErr := entities.NewResolutionError()
	for i, err := range failures {
		if err != nil {
			logger.Debugf("[registry] %s: %v", records[i].Name, err)
			resolutionErr.Add(records[i].Name, err)
		}
	}
	if resolutionErr.HasFailures() {
		return resolutionErr
	}

	for _, record := range records {
		if record.TargetVersion == "" {
			return fmt.Errorf("%w: %s has no published version", entities.ErrVersionNotFound, record.Name)
		}
	}
	return nil
}

// resolveRecord resolves a single record in place.
func (it *VersionResolver) resolveRecord(
	ctx context.Context,
	record *entities.PackageRecord,
	opts ResolveOptions,
) error {
	metadata, err := it.registry.FetchMetadata(ctx, opts.Registry, record.Name)
	if err != nil {
		return fmt.Errorf("unable to resolve %q: %w", record.Name, err)
	}

	requested := record.TargetVersion
	version, found := metadata.DistTags[requested]
	usedLatest := !found || version == ""
	if usedLatest {
		version = metadata.DistTags[entities.LatestTag]
		record.ResolvedTag = ""
	} else {
		record.ResolvedTag = requested
	}

	if version == "" {
		record.TargetVersion = ""
		return nil
	}

	if record.StrippedCurrentVersion() == entities.StripVersionPrefix(version) {
		record.TargetVersion = version
		record.ResolvedTag = ""
		return nil
	}

	if usedLatest {
		record.TargetVersion = caretPrefix + version
	} else {
		record.TargetVersion = version
	}

	from, ok := entities.CoerceVersion(record.CurrentVersion)
	if !ok {
		return fmt.Errorf("current version %q of %q is not a semantic version", record.CurrentVersion, record.Name)
	}
	to, parseErr := semver.NewVersion(version)
	if parseErr != nil {
		return fmt.Errorf("registry version %q of %q is not a semantic version: %w", version, record.Name, parseErr)
	}

	category := entities.DiffVersions(from, to)
	if !entities.IsMajorBump(category, to) {
		// compatibility bumps are reported without a dist-tag qualifier
		record.ResolvedTag = ""
		return nil
	}

	record.IsMajorBump = true
	return it.attachChangelog(ctx, record, opts, version, to, category)
}

// attachChangelog links a major bump to its upgrade guide or CHANGELOG entry.
func (it *VersionResolver) attachChangelog(
	ctx context.Context,
	record *entities.PackageRecord,
	opts ResolveOptions,
	version string,
	to *semver.Version,
	category entities.ChangeCategory,
) error {
	if record.Name == opts.Platform.Framework && opts.Platform.UpgradeGuideURL != "" {
		status, err := it.registry.Probe(ctx, opts.Platform.UpgradeGuideURL)
		if err == nil && status == http.StatusOK {
			record.ChangelogURL = opts.Platform.UpgradeGuideURL
			record.ChangelogTitle = opts.Platform.GuideTitle(to.Major())
			return nil
		}
		// a prerelease may not have a public guide yet
		logger.Debugf("[registry] Upgrade guide unavailable (status %d, err %v), deriving CHANGELOG", status, err)
	}

	release, err := it.registry.FetchLatest(ctx, opts.Registry, record.Name)
	if err != nil {
		return fmt.Errorf("unable to resolve %q: %w", record.Name, err)
	}

	if release.Repository == nil || release.Repository.URL == "" {
		record.ChangelogURL = opts.Platform.ReleasesURL
		record.ChangelogTitle = entities.ReleasesTitle
		return nil
	}

	record.ChangelogURL = entities.BuildChangelogURL(*release.Repository, version, entities.ChangelogBranch(category))
	record.ChangelogTitle = entities.ChangelogTitle
	return nil
}

// IsResolutionFailure reports whether err aborted the resolution batch.
func IsResolutionFailure(err error) bool {
	return errors.Is(err, entities.ErrPackageResolutionFailed) || errors.Is(err, entities.ErrVersionNotFound)
}
