package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/gofreq/internal/config"
	"github.com/sartorproj/gofreq/internal/logging"
)

var (
	// Global flags
	configFile string
	logLevel   string

	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "freq",
		Short: "Decompose groundwater time series into trend, harmonic and autoregressive parts",
		Long: `freq resamples an irregular groundwater record onto a regular grid and
removes a step or linear trend, the dominant harmonics and an autoregressive
structure, leaving a stationary residual.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel = logLevel
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

// newLogger logs to stderr so that stdout carries only command output.
func newLogger() *logrus.Logger {
	return logging.NewWithOutput(cfg.LogLevel, cfg.Environment, os.Stderr)
}
