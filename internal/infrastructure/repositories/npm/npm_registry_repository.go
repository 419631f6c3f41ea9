package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

const (
	// metadataAccept asks for the abbreviated ("corgi") document, which still
	// carries dist-tags and is far smaller than the full packument.
	metadataAccept = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8, */*"
	jsonAccept     = "application/json"

	maxErrorBodyLen = 256
)

// Resolver is the subset of *net.Resolver used by the online check.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// RegistryRepository talks to an npm-compatible registry over HTTP.
type RegistryRepository struct {
	httpClient *http.Client
	resolver   Resolver
}

// NewRegistryRepository creates a RegistryRepository. Registry requests carry
// no timeout of their own; they are bound by the caller's context.
func NewRegistryRepository() *RegistryRepository {
	return NewRegistryRepositoryWith(&http.Client{}, net.DefaultResolver)
}

// NewRegistryRepositoryWith creates a RegistryRepository on top of the given
// HTTP client and DNS resolver.
func NewRegistryRepositoryWith(httpClient *http.Client, resolver Resolver) *RegistryRepository {
	return &RegistryRepository{httpClient: httpClient, resolver: resolver}
}

// FetchMetadata returns the dist-tags and repository descriptor of a package.
func (it *RegistryRepository) FetchMetadata(
	ctx context.Context,
	registry entities.Registry,
	name string,
) (*entities.PackageMetadata, error) {
	var metadata entities.PackageMetadata
	if err := it.getJSON(ctx, registry, packageURL(registry.BaseURL, name), metadataAccept, &metadata); err != nil {
		return nil, err
	}
	if metadata.DistTags == nil {
		metadata.DistTags = map[string]string{}
	}
	return &metadata, nil
}

// FetchLatest returns the manifest of the newest release of a package.
func (it *RegistryRepository) FetchLatest(
	ctx context.Context,
	registry entities.Registry,
	name string,
) (*entities.PackageRelease, error) {
	var release entities.PackageRelease
	endpoint := packageURL(registry.BaseURL, name) + "/" + entities.LatestTag
	if err := it.getJSON(ctx, registry, endpoint, jsonAccept, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// Probe issues an unauthenticated GET and reports the status code.
func (it *RegistryRepository) Probe(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// IsReachable resolves the registry host through DNS.
func (it *RegistryRepository) IsReachable(ctx context.Context, registry entities.Registry) bool {
	parsed, err := url.Parse(registry.BaseURL)
	if err != nil || parsed.Hostname() == "" {
		logger.Debugf("[registry] Invalid registry URL %q: %v", registry.BaseURL, err)
		return false
	}

	addrs, err := it.resolver.LookupHost(ctx, parsed.Hostname())
	if err != nil {
		logger.Debugf("[registry] Lookup of %s failed: %v", parsed.Hostname(), err)
		return false
	}
	return len(addrs) > 0
}

func (it *RegistryRepository) getJSON(
	ctx context.Context,
	registry entities.Registry,
	endpoint, accept string,
	target any,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if registry.Token != "" {
		req.Header.Set("Authorization", "Bearer "+registry.Token)
	}

	logger.Debugf("[registry] GET %s", endpoint)
	resp, err := it.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("registry error (status %d): %s", resp.StatusCode, truncate(string(body)))
	}

	if err = json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// packageURL joins the registry base and a (possibly scoped) package name.
// Scoped names are sent unescaped, which every npm-compatible registry accepts.
func packageURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + name
}

func truncate(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > maxErrorBodyLen {
		return body[:maxErrorBodyLen] + "..."
	}
	return body
}
