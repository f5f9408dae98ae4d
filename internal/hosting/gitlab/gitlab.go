// Package gitlab reads repository files through the GitLab repository files API.
package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/hosting"
)

// Config holds the settings needed to create a GitLab reader.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
}

// Reader reads files from GitLab projects.
type Reader struct {
	client *gl.Client
	logger *zap.Logger
}

// NewReader validates cfg and returns a Reader.
func NewReader(cfg Config, logger *zap.Logger) (*Reader, error) {
	const errCtx = "creating gitlab reader"

	host := cfg.Host
	if host == "" {
		host = "https://gitlab.com"
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: new client: %w", errCtx, err)
	}

	return &Reader{
		client: client,
		logger: logger,
	}, nil
}

// ReadFile implements hosting.Reader.
func (r *Reader) ReadFile(ctx context.Context, org, repo, branch, path string) ([]byte, error) {
	const errCtx = "reading gitlab file"

	project := org + "/" + repo
	r.logger.Debug("reading file",
		zap.String("project", project),
		zap.String("branch", branch),
		zap.String("path", path))

	content, resp, err := r.client.RepositoryFiles.GetRawFile(
		project,
		strings.TrimPrefix(path, "/"),
		&gl.GetRawFileOptions{Ref: &branch},
		gl.WithContext(ctx),
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w: %s@%s:%s", errCtx, hosting.ErrFileNotFound, project, branch, path)
		}
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return content, nil
}

var _ hosting.Reader = (*Reader)(nil)
