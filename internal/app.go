package internal

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/apiarycd/release-manager/internal/cli"
	"github.com/apiarycd/release-manager/internal/config"
	"github.com/apiarycd/release-manager/internal/git"
	"github.com/apiarycd/release-manager/internal/history"
	"github.com/apiarycd/release-manager/internal/metrics"
	"github.com/apiarycd/release-manager/internal/release"
	"github.com/apiarycd/release-manager/internal/repository"
	"github.com/apiarycd/release-manager/pkg/badgerfx"
)

const (
	name    = "release-manager"
	version = "0.1.0"

	stopTimeout = 30 * time.Second
)

func Run() {
	var root cli.CLI
	kctx := kong.Parse(&root,
		kong.Name(name),
		kong.Description("Persists release state into GitHub and GitLab release repositories"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var runtime *cli.Runtime
	app := fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		metrics.Module(),
		validator.Module,
		//
		// APP MODULES
		fx.Supply(config.Overrides{
			Path:        root.Config,
			GitHubToken: root.GitHubToken,
			GitLabToken: root.GitLabToken,
		}),
		config.Module(),
		git.Module(),
		//
		// BUSINESS MODULES
		repository.Module(),
		release.Module(),
		history.Module(),
		cli.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("release-manager starting", zap.String("command", kctx.Command()))
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("release-manager shutting down")
					return nil
				},
			})
		}),
		fx.Populate(&runtime),
	)

	if err := app.Start(ctx); err != nil {
		kctx.FatalIfErrorf(err)
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	runErr := kctx.Run(runtime)

	stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer stopCancel()

	kctx.FatalIfErrorf(errors.Join(runErr, app.Stop(stopCtx)))
}
