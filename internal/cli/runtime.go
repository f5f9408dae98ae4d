package cli

import (
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/history"
	"github.com/apiarycd/release-manager/internal/hosting"
	"github.com/apiarycd/release-manager/internal/release"
	"github.com/apiarycd/release-manager/internal/repository"
)

// Settings are the provider coordinates and credentials used to build targets.
type Settings struct {
	GitHubToken    string
	GitLabHost     string
	GitLabUsername string
	GitLabToken    string
}

// Runtime bundles the services the commands run against.
type Runtime struct {
	settings Settings

	registry     *repository.Registry
	orchestrator *repository.Orchestrator
	releases     *release.Service
	journal      *history.Service
	readers      hosting.Readers

	logger *zap.Logger
}

func NewRuntime(
	settings Settings,
	registry *repository.Registry,
	orchestrator *repository.Orchestrator,
	releases *release.Service,
	journal *history.Service,
	readers hosting.Readers,
	logger *zap.Logger,
) *Runtime {
	return &Runtime{
		settings: settings,

		registry:     registry,
		orchestrator: orchestrator,
		releases:     releases,
		journal:      journal,
		readers:      readers,

		logger: logger,
	}
}

func (r *Runtime) gitHubTarget(ref string) (repository.Target, error) {
	return repository.ParseGitHub(ref, r.settings.GitHubToken)
}

func (r *Runtime) gitLabTarget(ref, releaseID string) (repository.Target, error) {
	return repository.ParseGitLab(
		ref,
		releaseID,
		r.settings.GitLabHost,
		r.settings.GitLabUsername,
		r.settings.GitLabToken,
	)
}
