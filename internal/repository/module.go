package repository

import (
	"context"

	"github.com/apiarycd/release-manager/internal/git"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"repository",
		logger.WithNamedLogger("repository"),
		fx.Provide(
			func(svc *git.Service) VCS { return svc },
			fx.Private,
		),
		fx.Provide(NewMetrics, fx.Private),
		fx.Provide(NewResolver, fx.Private),
		fx.Provide(NewRegistry),
		fx.Provide(NewOrchestrator),
		fx.Invoke(func(registry *Registry, logger *zap.Logger, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					logger.Info("removing working copies")
					return registry.Close(ctx)
				},
			})
		}),
	)
}
