package cli

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"

	"github.com/apiarycd/release-manager/internal/hosting"
	"github.com/apiarycd/release-manager/internal/hosting/github"
	"github.com/apiarycd/release-manager/internal/hosting/gitlab"
	"github.com/apiarycd/release-manager/internal/repository"
)

func Module() fx.Option {
	return fx.Module(
		"cli",
		logger.WithNamedLogger("cli"),
		fx.Provide(github.NewReader, fx.Private),
		fx.Provide(gitlab.NewReader, fx.Private),
		fx.Provide(func(gh *github.Reader, gl *gitlab.Reader) hosting.Readers {
			return hosting.Readers{
				repository.KindGitHub: gh,
				repository.KindGitLab: gl,
			}
		}, fx.Private),
		fx.Provide(NewRuntime),
	)
}
