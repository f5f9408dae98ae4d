package repository

import (
	"strings"

	"github.com/apiarycd/release-manager/internal/git"
)

type Kind string

const (
	KindGitHub Kind = "github"
	KindGitLab Kind = "gitlab"
)

const (
	defaultBranch     = "main"
	defaultGitLabHost = "gitlab.com"
	gitHubRawHost     = "raw.githubusercontent.com"
	releaseBranchBase = "release-manager-"
)

// Provider addresses and authenticates repositories of one hosting provider.
type Provider interface {
	Kind() Kind
	CloneURL(org, repo string) string
	RawURL(org, repo, branch, relativePath string) string
	Credentials() git.Credentials
	DirectoryPrefix(org, repo string) string
	DefaultBranch() string
}

type gitHubProvider struct {
	token string
}

// NewGitHubProvider returns the token authenticated github.com provider.
func NewGitHubProvider(token string) Provider {
	return gitHubProvider{token: token}
}

func (gitHubProvider) Kind() Kind { return KindGitHub }

func (gitHubProvider) CloneURL(org, repo string) string {
	return "https://github.com/" + org + "/" + repo + ".git"
}

func (gitHubProvider) RawURL(org, repo, branch, relativePath string) string {
	return "https://" + gitHubRawHost + "/" + org + "/" + repo + "/" + branch + "/" + strings.TrimPrefix(relativePath, "/")
}

func (p gitHubProvider) Credentials() git.Credentials {
	return git.Credentials{Username: p.token}
}

func (gitHubProvider) DirectoryPrefix(org, repo string) string {
	return "release-manager-github-" + org + "-" + repo + "-"
}

func (gitHubProvider) DefaultBranch() string { return defaultBranch }

type gitLabProvider struct {
	host     string
	username string
	token    string
}

// NewGitLabProvider returns a provider for a GitLab instance. An empty host means gitlab.com.
func NewGitLabProvider(host, username, token string) Provider {
	host = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://"), "/")
	if host == "" {
		host = defaultGitLabHost
	}

	return gitLabProvider{host: host, username: username, token: token}
}

func (gitLabProvider) Kind() Kind { return KindGitLab }

func (p gitLabProvider) CloneURL(org, repo string) string {
	return "https://" + p.host + "/" + org + "/" + repo + ".git"
}

func (p gitLabProvider) RawURL(org, repo, branch, relativePath string) string {
	return "https://" + p.host + "/" + org + "/" + repo + "/-/raw/" + branch + "/" + strings.TrimPrefix(relativePath, "/")
}

func (p gitLabProvider) Credentials() git.Credentials {
	return git.Credentials{Username: p.username, Password: p.token}
}

func (gitLabProvider) DirectoryPrefix(org, repo string) string {
	return "release-manager-gitlab-" + org + "-" + repo + "-"
}

func (gitLabProvider) DefaultBranch() string { return defaultBranch }

