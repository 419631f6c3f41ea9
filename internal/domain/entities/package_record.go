package entities

import "strings"

// PackageRecord represents one in-scope package for a single upgrade run.
// It is created by the manifest scanner, mutated once by the version resolver,
// and treated as read-only afterwards.
type PackageRecord struct {
	Name            string // Package name, unique within a batch
	CurrentVersion  string // Raw specifier from the manifest (may carry a range prefix)
	TargetVersion   string // Requested tag before resolution, concrete version after
	ResolvedTag     string // Dist-tag that matched the request, empty otherwise
	IsDevDependency bool
	IsMajorBump     bool
	ChangelogURL    string // Set only for major bumps
	ChangelogTitle  string // Set only for major bumps
}

// StrippedCurrentVersion returns the current version without its range prefix.
func (r PackageRecord) StrippedCurrentVersion() string {
	return StripVersionPrefix(r.CurrentVersion)
}

// StrippedTargetVersion returns the target version without its range prefix.
func (r PackageRecord) StrippedTargetVersion() string {
	return StripVersionPrefix(r.TargetVersion)
}

// IsCurrent reports whether the record is already on its target version.
func (r PackageRecord) IsCurrent() bool {
	return r.StrippedCurrentVersion() == r.StrippedTargetVersion()
}

// InstallSpec is the `name@version` argument handed to the package manager.
// A caret added by the "latest" fallback is dropped so the exact version is installed.
func (r PackageRecord) InstallSpec() string {
	return r.Name + "@" + strings.TrimPrefix(r.TargetVersion, "^")
}

// ManualSpec is the `name@version` argument suggested to the user when the
// automatic install fails. It keeps the target version verbatim.
func (r PackageRecord) ManualSpec() string {
	return r.Name + "@" + r.TargetVersion
}
