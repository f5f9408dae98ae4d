package repository

import "errors"

var (
	ErrMalformedReference     = errors.New("malformed repository reference")
	ErrRepositoryAccess       = errors.New("repository access failed")
	ErrNotInitialized         = errors.New("repository not initialized")
	ErrRepositoryTransaction  = errors.New("repository transaction failed")
	ErrUnsupportedBranchMatch = errors.New("unsupported branch match mode")
)
