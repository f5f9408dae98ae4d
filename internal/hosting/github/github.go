// Package github reads repository files through the GitHub contents API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/hosting"
)

// Config holds the settings needed to create a GitHub reader.
type Config struct {
	// AccessToken is a personal access token. Public repositories can be read
	// without one.
	AccessToken string
	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL string
}

// Reader reads files from GitHub repositories.
type Reader struct {
	client *gh.Client
	logger *zap.Logger
}

// NewReader validates cfg and returns a Reader.
func NewReader(cfg Config, logger *zap.Logger) (*Reader, error) {
	const errCtx = "creating github reader"

	client := gh.NewClient(nil)
	if cfg.AccessToken != "" {
		client = client.WithAuthToken(cfg.AccessToken)
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%s: base url: %w", errCtx, err)
		}
		client.BaseURL = base
	}

	return &Reader{
		client: client,
		logger: logger,
	}, nil
}

// ReadFile implements hosting.Reader.
func (r *Reader) ReadFile(ctx context.Context, org, repo, branch, path string) ([]byte, error) {
	const errCtx = "reading github file"

	r.logger.Debug("reading file",
		zap.String("repo", org+"/"+repo),
		zap.String("branch", branch),
		zap.String("path", path))

	file, _, resp, err := r.client.Repositories.GetContents(
		ctx, org, repo, path,
		&gh.RepositoryContentGetOptions{Ref: branch},
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w: %s/%s@%s:%s", errCtx, hosting.ErrFileNotFound, org, repo, branch, path)
		}
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if file == nil {
		return nil, fmt.Errorf("%s: %w: %s is a directory", errCtx, hosting.ErrFileNotFound, path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", errCtx, err)
	}

	return []byte(content), nil
}

var _ hosting.Reader = (*Reader)(nil)
