package config

import (
	"go.uber.org/fx"

	"github.com/apiarycd/release-manager/internal/cli"
	"github.com/apiarycd/release-manager/internal/git"
	"github.com/apiarycd/release-manager/internal/hosting/github"
	"github.com/apiarycd/release-manager/internal/hosting/gitlab"
	"github.com/apiarycd/release-manager/internal/metrics"
	"github.com/apiarycd/release-manager/internal/release"
	"github.com/apiarycd/release-manager/internal/repository"
	"github.com/apiarycd/release-manager/pkg/badgerfx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(gitConfigFrom),
		fx.Provide(repositoryConfigFrom),
		fx.Provide(func(cfg Config) release.Config {
			return release.Config{
				CommitMessage: cfg.Git.CommitMessage,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:      cfg.Storage.DataDir,
				InMemory: cfg.Storage.InMemory,
			}
		}),
		fx.Provide(func(cfg Config) github.Config {
			return github.Config{
				AccessToken: cfg.GitHub.Token,
				BaseURL:     cfg.GitHub.BaseURL,
			}
		}),
		fx.Provide(func(cfg Config) gitlab.Config {
			return gitlab.Config{
				Host:        cfg.GitLab.Host,
				AccessToken: cfg.GitLab.Token,
			}
		}),
		fx.Provide(func(cfg Config) metrics.Config {
			return metrics.Config{
				Textfile: cfg.Metrics.Textfile,
			}
		}),
		fx.Provide(func(cfg Config) cli.Settings {
			return cli.Settings{
				GitHubToken:    cfg.GitHub.Token,
				GitLabHost:     cfg.GitLab.Host,
				GitLabUsername: cfg.GitLab.Username,
				GitLabToken:    cfg.GitLab.Token,
			}
		}),
	)
}

// gitConfigFrom bounds every single network operation by git.timeout.
func gitConfigFrom(cfg Config) git.Config {
	return git.Config{
		Timeout: cfg.Git.Timeout,
		Author: git.AuthorConfig{
			Name:  cfg.Git.Author.Name,
			Email: cfg.Git.Author.Email,
		},
	}
}

// repositoryConfigFrom bounds a whole initialization by git.init_timeout.
func repositoryConfigFrom(cfg Config) repository.Config {
	return repository.Config{
		WorkDir:     cfg.Git.WorkDir,
		Timeout:     cfg.Git.InitTimeout,
		BranchMatch: repository.BranchMatch(cfg.Git.BranchMatch),
	}
}
