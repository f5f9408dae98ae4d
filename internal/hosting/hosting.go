// Package hosting reads single files of a repository target through the hosting
// provider API, without cloning.
//
// Reader is implemented for GitHub and GitLab in sub-packages. Readers selects
// the implementation matching a target's provider kind.
package hosting

import (
	"context"
	"errors"
	"fmt"

	"github.com/apiarycd/release-manager/internal/repository"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// Reader fetches the content of path on the given branch.
type Reader interface {
	ReadFile(ctx context.Context, org, repo, branch, path string) ([]byte, error)
}

// Readers selects a Reader per provider kind.
type Readers map[repository.Kind]Reader

// ReadFile reads path from the branch of target.
func (r Readers) ReadFile(ctx context.Context, target repository.Target, path string) ([]byte, error) {
	reader, ok := r[target.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, target.Kind())
	}

	return reader.ReadFile(ctx, target.Org(), target.Repo(), target.Branch(), path)
}
