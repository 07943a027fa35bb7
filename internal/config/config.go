package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/timeseries"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Server      ServerConfig   `mapstructure:"server"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	Cache       CacheConfig    `mapstructure:"cache"`
}

type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

// AnalysisConfig holds the defaults applied to every decomposition when a
// request does not override them.
type AnalysisConfig struct {
	MinSamples    int     `mapstructure:"min_samples"`
	Alpha         float64 `mapstructure:"alpha"`
	Frequency     string  `mapstructure:"frequency"`
	Interpolation string  `mapstructure:"interpolation"`
	Harmonics     int     `mapstructure:"harmonics"`
	Lags          int     `mapstructure:"lags"`
	Order         int     `mapstructure:"order"`
	AutoOrder     bool    `mapstructure:"auto_order"`
	MaxOrder      int     `mapstructure:"max_order"`
	Criterion     string  `mapstructure:"criterion"`
}

type CacheConfig struct {
	Size int    `mapstructure:"size"`
	TTL  string `mapstructure:"ttl"`
}

// Load reads configuration from path, or from config.yaml in ./configs or
// the working directory when path is empty. Environment variables prefixed
// with FREQ_ override file values, e.g. FREQ_ANALYSIS_HARMONICS=5.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("FREQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Without an explicit path a missing file means defaults and environment only.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	config.Environment = strings.ToLower(config.Environment)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("analysis.min_samples", freq.DefaultMinSamples)
	v.SetDefault("analysis.alpha", 0.05)
	v.SetDefault("analysis.frequency", "M")
	v.SetDefault("analysis.interpolation", "linear")
	v.SetDefault("analysis.harmonics", 3)
	v.SetDefault("analysis.lags", 12)
	v.SetDefault("analysis.order", 2)
	v.SetDefault("analysis.auto_order", false)
	v.SetDefault("analysis.max_order", 12)
	v.SetDefault("analysis.criterion", string(ar.AIC))

	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "10m")
}

// Validate checks every value that is parsed later on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if c.Analysis.MinSamples < 1 {
		return fmt.Errorf("min_samples must be positive, got %d", c.Analysis.MinSamples)
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %g", c.Analysis.Alpha)
	}
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AnalyzerConfig returns the limits shared by all analysis stages.
func (c *Config) AnalyzerConfig() freq.Config {
	return freq.Config{MinSamples: c.Analysis.MinSamples}
}

// PipelineOptions converts the analysis section into pipeline defaults.
func (c *Config) PipelineOptions() (freq.Options, error) {
	opts := freq.DefaultOptions()

	f, err := timeseries.ParseFrequency(c.Analysis.Frequency)
	if err != nil {
		return opts, fmt.Errorf("invalid analysis frequency: %w", err)
	}
	m, err := timeseries.ParseInterpolation(c.Analysis.Interpolation)
	if err != nil {
		return opts, fmt.Errorf("invalid analysis interpolation: %w", err)
	}
	crit, err := ar.ParseCriterion(c.Analysis.Criterion)
	if err != nil {
		return opts, fmt.Errorf("invalid analysis criterion: %w", err)
	}

	opts.Resample.Frequency = f
	opts.Resample.Interpolation = m
	opts.Trend.Alpha = c.Analysis.Alpha
	opts.Harmonics = c.Analysis.Harmonics
	opts.Lags = c.Analysis.Lags
	opts.Order = c.Analysis.Order
	opts.AutoOrder = c.Analysis.AutoOrder
	opts.MaxOrder = c.Analysis.MaxOrder
	opts.Criterion = crit
	return opts, nil
}

// CacheTTL parses the cache entry lifetime. Zero disables expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl: %w", err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("cache ttl must not be negative, got %s", ttl)
	}
	return ttl, nil
}

// ShutdownTimeout parses the graceful shutdown deadline.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
