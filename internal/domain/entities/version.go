package entities

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ChangeCategory is the semantic-versioning classification of the difference
// between two versions.
type ChangeCategory string

const (
	ChangeNone       ChangeCategory = ""
	ChangeMajor      ChangeCategory = "major"
	ChangePreMajor   ChangeCategory = "premajor"
	ChangeMinor      ChangeCategory = "minor"
	ChangePreMinor   ChangeCategory = "preminor"
	ChangePatch      ChangeCategory = "patch"
	ChangePrePatch   ChangeCategory = "prepatch"
	ChangePrerelease ChangeCategory = "prerelease"

	preCategoryPrefix = "pre"
)

var (
	// coercePattern finds the first run of up to three dot-separated numbers
	// that is not glued to other digits.
	coercePattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,16})(?:\.(\d{1,16}))?(?:\.(\d{1,16}))?(?:$|[^\d])`)
	rangePrefix   = regexp.MustCompile(`^\D+`)

	// referenceProtocols point at something other than a registry release.
	referenceProtocols = []string{
		"workspace:", "link:", "file:", "portal:", "patch:", "npm:",
		"git:", "git+", "github:", "gitlab:", "bitbucket:", "gist:",
		"http://", "https://",
	}
)

// StripVersionPrefix removes any leading non-digit characters ("^", "~", ">=", "v").
func StripVersionPrefix(version string) string {
	return rangePrefix.ReplaceAllString(version, "")
}

// IsReferenceSpecifier reports whether a dependency specifier resolves outside
// the registry: workspace, link and file protocols, aliases, VCS and tarball
// URLs, local paths and "owner/repo#ref" shorthands. Semver ranges never
// contain a slash.
func IsReferenceSpecifier(raw string) bool {
	specifier := strings.ToLower(strings.TrimSpace(raw))
	for _, protocol := range referenceProtocols {
		if strings.HasPrefix(specifier, protocol) {
			return true
		}
	}
	return strings.Contains(specifier, "/")
}

// CoerceVersion extracts a semantic version out of a loose specifier such as
// "^1.2", "~3" or "1.0.0-beta.0". Prerelease and build data are dropped.
// It returns false when no number can be found; references that happen to
// carry digits are filtered by IsReferenceSpecifier.
func CoerceVersion(raw string) (*semver.Version, bool) {
	match := coercePattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, false
	}

	parts := [3]uint64{}
	for i := range parts {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.ParseUint(match[i+1], 10, 64)
		if err != nil {
			return nil, false
		}
		parts[i] = n
	}

	return semver.New(parts[0], parts[1], parts[2], "", ""), true
}

// DiffVersions classifies the change between v1 and v2. The result follows
// the npm semver rules: a change towards a prerelease carries the "pre" prefix,
// and leaving a prerelease of the same main version counts as the smallest
// bump that reaches it.
func DiffVersions(v1, v2 *semver.Version) ChangeCategory {
	comparison := v1.Compare(v2)
	if comparison == 0 {
		return ChangeNone
	}

	high, low := v2, v1
	if comparison > 0 {
		high, low = v1, v2
	}
	highHasPre := high.Prerelease() != ""
	lowHasPre := low.Prerelease() != ""

	if lowHasPre && !highHasPre {
		if low.Patch() == 0 && low.Minor() == 0 {
			return ChangeMajor
		}
		if compareMain(low, high) == 0 {
			if low.Minor() != 0 && low.Patch() == 0 {
				return ChangeMinor
			}
			return ChangePatch
		}
	}

	prefix := ""
	if highHasPre {
		prefix = preCategoryPrefix
	}

	switch {
	case v1.Major() != v2.Major():
		return ChangeCategory(prefix + string(ChangeMajor))
	case v1.Minor() != v2.Minor():
		return ChangeCategory(prefix + string(ChangeMinor))
	case v1.Patch() != v2.Patch():
		return ChangeCategory(prefix + string(ChangePatch))
	default:
		return ChangePrerelease
	}
}

// IsMajorBump reports whether a change is breaking: a stable major bump, or
// any premajor.
func IsMajorBump(category ChangeCategory, target *semver.Version) bool {
	return (category == ChangeMajor && target.Prerelease() == "") || category == ChangePreMajor
}

// compareMain compares only the major.minor.patch triple.
func compareMain(a, b *semver.Version) int {
	for _, pair := range [][2]uint64{
		{a.Major(), b.Major()},
		{a.Minor(), b.Minor()},
		{a.Patch(), b.Patch()},
	} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}
