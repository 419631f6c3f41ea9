package entities

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Classification partitions resolved records for reporting and installation.
// Every group is sorted with ComparePackageRecords.
type Classification struct {
	Current         []PackageRecord
	Dependencies    []PackageRecord
	DevDependencies []PackageRecord
}

// Classify splits records into already-current packages and the dependency
// and devDependency groups that need an upgrade.
func Classify(records []PackageRecord) Classification {
	var result Classification
	for _, record := range records {
		switch {
		case record.IsCurrent():
			result.Current = append(result.Current, record)
		case record.IsDevDependency:
			result.DevDependencies = append(result.DevDependencies, record)
		default:
			result.Dependencies = append(result.Dependencies, record)
		}
	}

	SortPackageRecords(result.Current)
	SortPackageRecords(result.Dependencies)
	SortPackageRecords(result.DevDependencies)
	return result
}

// Pending returns every record that needs an upgrade, sorted.
func (c Classification) Pending() []PackageRecord {
	pending := make([]PackageRecord, 0, len(c.Dependencies)+len(c.DevDependencies))
	pending = append(pending, c.Dependencies...)
	pending = append(pending, c.DevDependencies...)
	SortPackageRecords(pending)
	return pending
}

// Majors returns the pending records carrying a breaking change, sorted.
func (c Classification) Majors() []PackageRecord {
	var majors []PackageRecord
	for _, record := range c.Pending() {
		if record.IsMajorBump {
			majors = append(majors, record)
		}
	}
	return majors
}

// SortPackageRecords sorts in place: non-major records first, then majors,
// each run ordered by locale-aware name comparison.
func SortPackageRecords(records []PackageRecord) {
	collator := collate.New(language.Und)
	slices.SortStableFunc(records, func(a, b PackageRecord) int {
		return comparePackageRecords(collator, a, b)
	})
}

// ComparePackageRecords is the display comparator used for every group.
func ComparePackageRecords(a, b PackageRecord) int {
	return comparePackageRecords(collate.New(language.Und), a, b)
}

func comparePackageRecords(collator *collate.Collator, a, b PackageRecord) int {
	if a.IsMajorBump && !b.IsMajorBump {
		return 1
	}
	if b.IsMajorBump && !a.IsMajorBump {
		return -1
	}
	return collator.CompareString(a.Name, b.Name)
}
