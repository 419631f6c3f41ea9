package commands

import (
	"context"
	"net/url"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// RegistryContext resolves the registry base URL once per run and memoizes it.
// Reset clears the memoized value so tests can start from a clean state.
type RegistryContext struct {
	packageManagers repositories.PackageManagerRepository

	mu       sync.Mutex
	resolved bool
	baseURL  string
}

// NewRegistryContext creates a RegistryContext backed by the package manager.
func NewRegistryContext(packageManagers repositories.PackageManagerRepository) *RegistryContext {
	return &RegistryContext{packageManagers: packageManagers}
}

// Resolve returns the registry for this run. A configured URL wins over the
// package manager's own configuration; anything that is not an http(s) URL
// with a host falls back to the public npm registry.
func (it *RegistryContext) Resolve(
	ctx context.Context,
	pm entities.PackageManager,
	projectDir string,
	settings entities.RegistrySettings,
) entities.Registry {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !it.resolved {
		it.baseURL = it.discover(ctx, pm, projectDir, settings.URL)
		it.resolved = true
		logger.Debugf("[registry] Using %s", it.baseURL)
	}

	return entities.Registry{BaseURL: it.baseURL, Token: settings.Token}
}

// Reset forgets the memoized registry URL.
func (it *RegistryContext) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.resolved = false
	it.baseURL = ""
}

func (it *RegistryContext) discover(
	ctx context.Context,
	pm entities.PackageManager,
	projectDir, override string,
) string {
	if override != "" {
		return normalizeRegistryURL(override)
	}

	configured, err := it.packageManagers.ConfiguredRegistry(ctx, pm, projectDir)
	if err != nil {
		logger.Debugf("[registry] %s config get registry failed: %v", pm.Name, err)
		return entities.DefaultRegistryURL
	}
	return normalizeRegistryURL(configured)
}

// normalizeRegistryURL trims whitespace and one trailing slash, and rejects
// values that are not http(s) URLs (e.g. a warning printed instead of a URL).
func normalizeRegistryURL(raw string) string {
	candidate := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if candidate == "" {
		return entities.DefaultRegistryURL
	}

	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return entities.DefaultRegistryURL
	}
	return candidate
}
