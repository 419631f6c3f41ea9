package entities

import (
	"encoding/json"
	"strings"
)

const (
	// ChangelogTitle labels a derived CHANGELOG.md link.
	ChangelogTitle = "CHANGELOG"
	// ReleasesTitle labels the releases page used when no repository is published.
	ReleasesTitle = "Releases"

	changelogFile    = "CHANGELOG.md"
	branchMain       = "main"
	branchNext       = "next"
	vcsURLPrefix     = "git+"
	vcsURLSuffix     = ".git"
	blobPathSegment  = "/blob/"
	anchorSeparators = "."
)

// RepositoryDescriptor is the "repository" field of a published package.
// The registry serves it either as an object or as a bare URL string.
type RepositoryDescriptor struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Directory string `json:"directory"`
}

// UnmarshalJSON accepts both the object and the string forms.
func (r *RepositoryDescriptor) UnmarshalJSON(data []byte) error {
	var shorthand string
	if err := json.Unmarshal(data, &shorthand); err == nil {
		*r = RepositoryDescriptor{URL: shorthand}
		return nil
	}

	type plain RepositoryDescriptor
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = RepositoryDescriptor(decoded)
	return nil
}

// ChangelogBranch returns the branch that carries the changelog for a change:
// prereleases of the next major live on "next", everything else on "main".
func ChangelogBranch(category ChangeCategory) string {
	if category == ChangePreMajor {
		return branchNext
	}
	return branchMain
}

// BuildChangelogURL derives a navigable changelog link:
//
//	{repo url without "git+" and ".git"}/blob/{branch}/{directory}/CHANGELOG.md#{version without dots}
//
// The directory segment is omitted when the package lives at the repository root.
func BuildChangelogURL(repo RepositoryDescriptor, version, branch string) string {
	base := strings.TrimSuffix(strings.TrimPrefix(repo.URL, vcsURLPrefix), vcsURLSuffix)

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(blobPathSegment)
	sb.WriteString(branch)
	sb.WriteString("/")
	if dir := strings.Trim(repo.Directory, "/"); dir != "" {
		sb.WriteString(dir)
		sb.WriteString("/")
	}
	sb.WriteString(changelogFile)
	sb.WriteString("#")
	sb.WriteString(strings.ReplaceAll(version, anchorSeparators, ""))
	return sb.String()
}
