package git

import "errors"

var (
	ErrRepositoryNotFound   = errors.New("repository not found")
	ErrListFailed           = errors.New("failed to list remote references")
	ErrCloneFailed          = errors.New("failed to clone repository")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrBranchCreateFailed   = errors.New("failed to create branch")
	ErrCheckoutFailed       = errors.New("failed to checkout branch")
	ErrStatusFailed         = errors.New("failed to read worktree status")
	ErrAddFailed            = errors.New("failed to stage files")
	ErrCommitFailed         = errors.New("failed to commit")
	ErrPushFailed           = errors.New("failed to push")
	ErrInvalidRepository    = errors.New("invalid repository")
	ErrRepositoryNotEmpty   = errors.New("clone directory is not empty")
	ErrAuthenticationFailed = errors.New("authentication failed")
)
