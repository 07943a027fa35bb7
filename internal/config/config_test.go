package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/timeseries"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, freq.DefaultMinSamples, config.Analysis.MinSamples)
	assert.Equal(t, 0.05, config.Analysis.Alpha)
	assert.Equal(t, 3, config.Analysis.Harmonics)
	assert.Equal(t, 12, config.Analysis.Lags)
	assert.Equal(t, 2, config.Analysis.Order)
	assert.Equal(t, 256, config.Cache.Size)
	assert.False(t, config.IsProduction())
	assert.Equal(t, 10*time.Second, config.ShutdownTimeout())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
environment: Production
log_level: debug
server:
  port: 9090
analysis:
  frequency: W
  interpolation: nearest
  harmonics: 5
  criterion: bic
cache:
  ttl: 0s
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 5, config.Analysis.Harmonics)
	assert.Equal(t, 12, config.Analysis.Lags, "unset keys keep their defaults")

	ttl, err := config.CacheTTL()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "analysis:\n  harmonics: 5\n")
	t.Setenv("FREQ_ANALYSIS_HARMONICS", "7")
	t.Setenv("FREQ_SERVER_PORT", "7000")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, config.Analysis.Harmonics)
	assert.Equal(t, 7000, config.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port", "server:\n  port: 0\n"},
		{"alpha", "analysis:\n  alpha: 1.5\n"},
		{"frequency", "analysis:\n  frequency: fortnightly\n"},
		{"interpolation", "analysis:\n  interpolation: cubic\n"},
		{"criterion", "analysis:\n  criterion: hqic\n"},
		{"cache size", "cache:\n  size: 0\n"},
		{"cache ttl", "cache:\n  ttl: soon\n"},
		{"min samples", "analysis:\n  min_samples: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestConfig_PipelineOptions(t *testing.T) {
	config := Config{
		Analysis: AnalysisConfig{
			MinSamples:    50,
			Alpha:         0.01,
			Frequency:     "Q",
			Interpolation: "time",
			Harmonics:     4,
			Lags:          8,
			Order:         3,
			AutoOrder:     true,
			MaxOrder:      6,
			Criterion:     "BIC",
		},
	}

	opts, err := config.PipelineOptions()
	require.NoError(t, err)

	assert.Equal(t, timeseries.Quarterly, opts.Resample.Frequency)
	assert.Equal(t, timeseries.Time, opts.Resample.Interpolation)
	assert.Equal(t, freq.TrendNone, opts.Trend.Kind)
	assert.Equal(t, 0.01, opts.Trend.Alpha)
	assert.Equal(t, 4, opts.Harmonics)
	assert.Equal(t, 8, opts.Lags)
	assert.Equal(t, 3, opts.Order)
	assert.True(t, opts.AutoOrder)
	assert.Equal(t, 6, opts.MaxOrder)
	assert.Equal(t, ar.BIC, opts.Criterion)

	assert.Equal(t, freq.Config{MinSamples: 50}, config.AnalyzerConfig())
}
