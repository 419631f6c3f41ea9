package entities

// UpgradeOptions holds runtime options for a single upgrade run.
type UpgradeOptions struct {
	Version    string // Requested dist-tag or version, "latest" by default
	ProjectDir string
	DryRun     bool
	Verbose    bool
	Settings   *Settings
}
