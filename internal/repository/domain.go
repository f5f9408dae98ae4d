package repository

import (
	"context"

	"github.com/apiarycd/release-manager/internal/git"
)

// VCS is the version-control capability the orchestrator drives.
type VCS interface {
	// ListRemoteBranches returns the full names of the remote heads.
	ListRemoteBranches(ctx context.Context, url string, creds git.Credentials) ([]string, error)
	// Clone clones one reference into an empty directory.
	Clone(ctx context.Context, req git.CloneRequest) (*git.Repository, error)
	// CreateBranch creates a local branch at HEAD.
	CreateBranch(ctx context.Context, path, name string) error
	// Checkout switches the worktree to a local branch.
	Checkout(ctx context.Context, path, name string) error
	// Status returns modified and untracked paths.
	Status(ctx context.Context, path string) (git.Status, error)
	// Add stages worktree-relative paths.
	Add(ctx context.Context, path string, files []string) error
	// Commit records staged changes and returns the commit id.
	Commit(ctx context.Context, path, message string) (string, error)
	// Push pushes a refspec to origin.
	Push(ctx context.Context, req git.PushRequest) error
}

var _ VCS = (*git.Service)(nil)

// Mutation writes or updates one file below root and returns its absolute path.
// written holds the paths returned by the mutations that ran before it.
type Mutation func(ctx context.Context, root string, written []string) (string, error)

// Result describes the outcome of a commit/push transaction.
type Result struct {
	ChangeSet ChangeSet
	CommitID  string
	RefSpec   string
	NoOp      bool
}
