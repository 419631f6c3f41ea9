//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
	builders "github.com/rios0rios0/studiocms-upgrade/test/domain/entitybuilders"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("should separate current packages from both upgrade groups", func(t *testing.T) {
		t.Parallel()

		// given
		records := []entities.PackageRecord{
			builders.NewPackageRecordBuilder().WithName("studiocms").
				WithCurrentVersion("^1.0.0").WithTargetVersion("1.0.0").BuildRecord(),
			builders.NewPackageRecordBuilder().WithName("astro").
				WithCurrentVersion("^5.0.0").WithTargetVersion("^5.1.0").BuildRecord(),
			builders.NewPackageRecordBuilder().WithName("@astrojs/check").
				WithCurrentVersion("0.9.0").WithTargetVersion("^0.9.4").AsDevDependency().BuildRecord(),
		}

		// when
		result := entities.Classify(records)

		// then
		assert.Equal(t, []string{"studiocms"}, recordNames(result.Current))
		assert.Equal(t, []string{"astro"}, recordNames(result.Dependencies))
		assert.Equal(t, []string{"@astrojs/check"}, recordNames(result.DevDependencies))
		assert.Len(t, result.Pending(), 2)
	})

	t.Run("should sort majors after non-majors within a group", func(t *testing.T) {
		t.Parallel()

		// given
		records := []entities.PackageRecord{
			builders.NewPackageRecordBuilder().WithName("a").
				WithCurrentVersion("1.0.0").WithTargetVersion("2.0.0").AsMajor("https://a", "CHANGELOG").BuildRecord(),
			builders.NewPackageRecordBuilder().WithName("z").
				WithCurrentVersion("1.0.0").WithTargetVersion("1.0.1").BuildRecord(),
			builders.NewPackageRecordBuilder().WithName("b").
				WithCurrentVersion("6.0.0").WithTargetVersion("7.0.0").AsMajor("https://b", "CHANGELOG").BuildRecord(),
		}

		// when
		result := entities.Classify(records)

		// then
		assert.Equal(t, []string{"z", "a", "b"}, recordNames(result.Dependencies))
		assert.Equal(t, []string{"a", "b"}, recordNames(result.Majors()))
	})
}

func TestSortPackageRecords(t *testing.T) {
	t.Parallel()

	t.Run("should compare names without regard to case", func(t *testing.T) {
		t.Parallel()

		// given
		records := []entities.PackageRecord{
			{Name: "Zed"},
			{Name: "beta"},
			{Name: "alpha"},
		}

		// when
		entities.SortPackageRecords(records)

		// then
		assert.Equal(t, []string{"alpha", "beta", "Zed"}, recordNames(records))
	})

	t.Run("should order by major flag before name", func(t *testing.T) {
		t.Parallel()

		// given
		major := entities.PackageRecord{Name: "a", IsMajorBump: true}
		minor := entities.PackageRecord{Name: "b"}

		// when / then
		assert.Positive(t, entities.ComparePackageRecords(major, minor))
		assert.Negative(t, entities.ComparePackageRecords(minor, major))
		assert.Zero(t, entities.ComparePackageRecords(minor, minor))
	})
}

func recordNames(records []entities.PackageRecord) []string {
	result := make([]string, 0, len(records))
	for _, record := range records {
		result = append(result, record.Name)
	}
	return result
}
