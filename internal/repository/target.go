package repository

import (
	"fmt"
	"strings"

	"github.com/apiarycd/release-manager/internal/git"
)

// Key identifies a repository target. It is comparable and used as the registry key.
type Key struct {
	Org    string
	Repo   string
	Branch string
	Kind   Kind
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Org + "/" + k.Repo + "@" + k.Branch
}

// Target is an immutable repository coordinate plus the provider used to reach it.
type Target struct {
	key      Key
	provider Provider
}

// NewTarget builds a target from already validated coordinates.
func NewTarget(org, repo, branch string, provider Provider) Target {
	return Target{
		key: Key{
			Org:    org,
			Repo:   repo,
			Branch: branch,
			Kind:   provider.Kind(),
		},
		provider: provider,
	}
}

// ParseGitHub parses an <org>/<repo>/<branch> reference.
func ParseGitHub(ref, token string) (Target, error) {
	parts, err := splitReference(ref, 3, "organization/repository/branch")
	if err != nil {
		return Target{}, err
	}

	return NewTarget(parts[0], parts[1], parts[2], NewGitHubProvider(token)), nil
}

// ParseGitLab parses an <org>/<repo> reference and derives the branch from the release.
func ParseGitLab(ref, release, host, username, token string) (Target, error) {
	parts, err := splitReference(ref, 2, "organization/repository")
	if err != nil {
		return Target{}, err
	}

	release = strings.TrimSpace(release)
	if release == "" {
		return Target{}, fmt.Errorf("%w: %q: release identifier is required", ErrMalformedReference, ref)
	}

	return NewTarget(parts[0], parts[1], ReleaseBranch(release), NewGitLabProvider(host, username, token)), nil
}

// ReleaseBranch returns the branch name used to persist the given release.
func ReleaseBranch(release string) string {
	return releaseBranchBase + release
}

func splitReference(ref string, segments int, format string) ([]string, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != segments {
		return nil, fmt.Errorf("%w: %q: must follow %s format", ErrMalformedReference, ref, format)
	}

	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: %q: empty segment", ErrMalformedReference, ref)
		}
	}

	return parts, nil
}

func (t Target) Key() Key           { return t.key }
func (t Target) Org() string        { return t.key.Org }
func (t Target) Repo() string       { return t.key.Repo }
func (t Target) Branch() string     { return t.key.Branch }
func (t Target) Kind() Kind         { return t.key.Kind }
func (t Target) Provider() Provider { return t.provider }

func (t Target) String() string { return t.key.String() }

// CloneURL returns the remote URL used for listing, cloning and pushing.
func (t Target) CloneURL() string {
	return t.provider.CloneURL(t.key.Org, t.key.Repo)
}

// RawURL returns the URL serving relativePath of the target branch without cloning.
func (t Target) RawURL(relativePath string) string {
	return t.provider.RawURL(t.key.Org, t.key.Repo, t.key.Branch, relativePath)
}

func (t Target) Credentials() git.Credentials {
	return t.provider.Credentials()
}

// RefSpec returns the push refspec; source and destination are always the same branch.
func (t Target) RefSpec() string {
	ref := "refs/heads/" + t.key.Branch
	return ref + ":" + ref
}
