package release

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"release",
		logger.WithNamedLogger("release"),
		fx.Provide(NewService),
	)
}
