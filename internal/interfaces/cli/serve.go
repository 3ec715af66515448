package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/prometheus"
	httpiface "github.com/aquaboard/aquaboard/internal/interfaces/http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			log, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			logging.SetDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			source, closeSource, err := buildSource(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer closeSource()

			metrics := prometheus.NewMetrics()
			coord := dashboard.NewCoordinator(source, log,
				dashboard.WithObserver(metrics))
			coord.Init(ctx)

			gin.SetMode(cfg.Server.Mode)
			router := httpiface.NewRouter(httpiface.RouterDeps{
				Coordinator: coord,
				Logger:      log,
				Version:     Version,
				Metrics:     metrics,
			})
			server := httpiface.NewServer(cfg.Server, router, log)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutdown signal received")
			return server.Stop(context.Background())
		},
	}
}
