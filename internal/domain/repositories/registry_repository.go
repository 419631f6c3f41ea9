package repositories

import (
	"context"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// RegistryRepository abstracts an npm-compatible package registry.
type RegistryRepository interface {
	// FetchMetadata returns the dist-tags (and repository, when served) of a package.
	// Any HTTP status >= 400 is an error.
	FetchMetadata(ctx context.Context, registry entities.Registry, name string) (*entities.PackageMetadata, error)

	// FetchLatest returns the manifest of the newest release of a package.
	FetchLatest(ctx context.Context, registry entities.Registry, name string) (*entities.PackageRelease, error)

	// Probe issues a GET against an arbitrary URL and returns the status code.
	Probe(ctx context.Context, url string) (int, error)

	// IsReachable reports whether the registry host resolves.
	IsReachable(ctx context.Context, registry entities.Registry) bool
}
