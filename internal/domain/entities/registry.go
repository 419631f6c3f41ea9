package entities

const (
	// DefaultRegistryURL is used whenever the package manager reports nothing usable.
	DefaultRegistryURL = "https://registry.npmjs.org"

	// LatestTag is the dist-tag every published package carries.
	LatestTag = "latest"
)

// Registry identifies the package registry a run resolves against.
type Registry struct {
	BaseURL string // without trailing slash
	Token   string // optional bearer token for private registries
}

// PackageMetadata is the subset of registry metadata the resolver needs.
type PackageMetadata struct {
	Name       string                `json:"name"`
	DistTags   map[string]string     `json:"dist-tags"`
	Repository *RepositoryDescriptor `json:"repository,omitempty"`
}

// PackageRelease is the manifest of a single published version.
type PackageRelease struct {
	Name       string                `json:"name"`
	Version    string                `json:"version"`
	Repository *RepositoryDescriptor `json:"repository,omitempty"`
}
