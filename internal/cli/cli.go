// Package cli holds the command line interface of release-manager.
package cli

import (
	"github.com/alecthomas/kong"
)

// CLI is the root of the command tree.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Config      string `help:"Path to a YAML configuration file (overrides $CONFIG_PATH)" type:"existingfile" short:"c"`
	GitHubToken string `help:"GitHub API token (overrides github.token)" env:"GITHUB_TOKEN" name:"github-token"`
	GitLabToken string `help:"GitLab access token (overrides gitlab.token)" env:"GITLAB_TOKEN" name:"gitlab-token"`

	StartRelease StartReleaseCmd `cmd:"start-release" help:"Schedule a release and push its definition to the release repositories"`
	Status       StatusCmd       `cmd:"status" help:"Show the release definition stored on a release branch"`
	History      HistoryCmd      `cmd:"history" help:"List recorded commit/push transactions"`
}
