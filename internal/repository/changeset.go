package repository

import (
	"path/filepath"
	"strings"

	"github.com/apiarycd/release-manager/internal/git"
	"github.com/samber/lo"
)

// ChangeSet is the ordered list of worktree-relative paths that need staging.
type ChangeSet []string

func (c ChangeSet) IsEmpty() bool { return len(c) == 0 }

// ComputeChangeSet keeps the candidates that status reports as modified or
// untracked. Candidates may be absolute or relative to root; those outside root
// are ignored.
func ComputeChangeSet(root string, candidates []string, status git.Status) ChangeSet {
	relative := lo.FilterMap(candidates, func(candidate string, _ int) (string, bool) {
		return relativePath(root, candidate)
	})

	return lo.Filter(lo.Uniq(relative), func(path string, _ int) bool {
		return status.IsModified(path) || status.IsUntracked(path)
	})
}

func relativePath(root, candidate string) (string, bool) {
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}

	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return filepath.ToSlash(rel), true
}
