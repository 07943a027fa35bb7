package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/internal/api"
	"github.com/sartorproj/gofreq/internal/cache"
	"github.com/sartorproj/gofreq/internal/metrics"
)

// serveCmd starts the HTTP analysis service
func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decomposition over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger := newLogger()
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			defaults, err := cfg.PipelineOptions()
			if err != nil {
				return err
			}
			ttl, err := cfg.CacheTTL()
			if err != nil {
				return err
			}
			results, err := cache.NewLRUWithTTL[string, []byte](cfg.Cache.Size, ttl)
			if err != nil {
				return fmt.Errorf("failed to create cache: %w", err)
			}

			server := api.NewServer(api.Options{
				Analyzer: freq.New(cfg.AnalyzerConfig()),
				Defaults: defaults,
				Cache:    results,
				Metrics:  metrics.New(prometheus.DefaultRegisterer),
				Logger:   logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port), cfg.ShutdownTimeout())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on, overrides server.port")

	return cmd
}
