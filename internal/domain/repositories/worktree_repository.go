package repositories

// WorktreeRepository inspects the version-control state of a project.
type WorktreeRepository interface {
	// DirtyFiles returns the subset of paths (relative to projectDir) that carry
	// uncommitted changes. Projects outside version control report none.
	DirtyFiles(projectDir string, paths []string) ([]string, error)
}
