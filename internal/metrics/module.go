// Package metrics owns the Prometheus registry of the process. A CLI run is too
// short-lived to be scraped, so the collected values are exported to a textfile
// on shutdown.
package metrics

import (
	"context"
	"fmt"

	"github.com/go-core-fx/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"metrics",
		logger.WithNamedLogger("metrics"),
		fx.Provide(prometheus.NewRegistry),
		fx.Provide(func(r *prometheus.Registry) prometheus.Registerer { return r }),
		fx.Provide(func(r *prometheus.Registry) prometheus.Gatherer { return r }),
		fx.Invoke(func(gatherer prometheus.Gatherer, config Config, logger *zap.Logger, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					return Export(gatherer, config, logger)
				},
			})
		}),
	)
}

// Export writes the gathered metrics to the configured textfile.
func Export(gatherer prometheus.Gatherer, config Config, logger *zap.Logger) error {
	if config.Textfile == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(config.Textfile, gatherer); err != nil {
		logger.Error("failed to export metrics", zap.String("path", config.Textfile), zap.Error(err))
		return fmt.Errorf("failed to export metrics: %w", err)
	}

	logger.Info("metrics exported", zap.String("path", config.Textfile))

	return nil
}
