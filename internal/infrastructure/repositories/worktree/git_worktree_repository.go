package worktree

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"
)

// GitWorktreeRepository inspects the git status of a project checkout.
type GitWorktreeRepository struct{}

// NewGitWorktreeRepository creates a GitWorktreeRepository.
func NewGitWorktreeRepository() *GitWorktreeRepository {
	return &GitWorktreeRepository{}
}

// DirtyFiles returns the paths, relative to projectDir, that are modified,
// staged or untracked. A directory outside any git repository has none.
func (it *GitWorktreeRepository) DirtyFiles(projectDir string, paths []string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(projectDir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logger.Debugf("[install] %s is not a git checkout", projectDir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", projectDir, err)
	}
	prefix, err := filepath.Rel(wt.Filesystem.Root(), absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s in worktree: %w", projectDir, err)
	}

	var dirty []string
	for _, path := range paths {
		key := filepath.ToSlash(filepath.Join(prefix, path))
		fileStatus, ok := status[key]
		if !ok {
			continue
		}
		if fileStatus.Worktree != git.Unmodified || fileStatus.Staging != git.Unmodified {
			dirty = append(dirty, path)
		}
	}
	return dirty, nil
}
