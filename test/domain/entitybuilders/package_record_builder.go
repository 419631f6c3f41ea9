//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

// PackageRecordBuilder helps create package records with a fluent interface.
type PackageRecordBuilder struct {
	*testkit.BaseBuilder
	record entities.PackageRecord
}

// NewPackageRecordBuilder creates a builder for a minor studiocms upgrade.
func NewPackageRecordBuilder() *PackageRecordBuilder {
	return &PackageRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		record:      defaultPackageRecord(),
	}
}

func defaultPackageRecord() entities.PackageRecord {
	return entities.PackageRecord{
		Name:           "studiocms",
		CurrentVersion: "^1.0.0",
		TargetVersion:  "1.1.0",
	}
}

// WithName sets the package name.
func (b *PackageRecordBuilder) WithName(name string) *PackageRecordBuilder {
	b.record.Name = name
	return b
}

// WithCurrentVersion sets the declared version specifier.
func (b *PackageRecordBuilder) WithCurrentVersion(version string) *PackageRecordBuilder {
	b.record.CurrentVersion = version
	return b
}

// WithTargetVersion sets the requested tag or resolved version.
func (b *PackageRecordBuilder) WithTargetVersion(version string) *PackageRecordBuilder {
	b.record.TargetVersion = version
	return b
}

// WithResolvedTag sets the matched dist-tag.
func (b *PackageRecordBuilder) WithResolvedTag(tag string) *PackageRecordBuilder {
	b.record.ResolvedTag = tag
	return b
}

// AsDevDependency marks the record as a devDependency.
func (b *PackageRecordBuilder) AsDevDependency() *PackageRecordBuilder {
	b.record.IsDevDependency = true
	return b
}

// AsMajor marks the record as a breaking change with its changelog.
func (b *PackageRecordBuilder) AsMajor(url, title string) *PackageRecordBuilder {
	b.record.IsMajorBump = true
	b.record.ChangelogURL = url
	b.record.ChangelogTitle = title
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *PackageRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *PackageRecordBuilder) BuildRecord() entities.PackageRecord {
	return b.record
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.record = defaultPackageRecord()
	return b
}

// Clone creates a copy of the PackageRecordBuilder.
func (b *PackageRecordBuilder) Clone() testkit.Builder {
	return &PackageRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		record:      b.record,
	}
}
