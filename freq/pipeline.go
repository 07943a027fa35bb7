package freq

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/stats"
	"github.com/sartorproj/gofreq/timeseries"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageResample       Stage = "resample"
	StageTrend          Stage = "trend"
	StageHarmonic       Stage = "harmonic"
	StageCorrelogram    Stage = "correlogram"
	StageAutoregressive Stage = "autoregressive"
	StageStationarity   Stage = "stationarity"
)

// Options parameterizes a full pipeline run.
type Options struct {
	Resample timeseries.ResampleOptions
	// SkipResample uses the input as the regular grid, for series that are
	// already regular or carry no timestamps.
	SkipResample bool

	Trend     TrendOptions
	Harmonics int
	Lags      int

	Order     int
	AutoOrder bool
	MaxOrder  int
	Criterion ar.Criterion
}

// DefaultOptions returns monthly resampling, mean removal, three harmonics,
// a 12-lag correlogram and an AR(2) fit.
func DefaultOptions() Options {
	return Options{
		Resample: timeseries.DefaultResampleOptions(),
		Trend: TrendOptions{
			Kind:          TrendNone,
			Alpha:         0.05,
			DetrendAnyway: true,
		},
		Harmonics: 3,
		Lags:      12,
		Order:     2,
		MaxOrder:  12,
		Criterion: ar.AIC,
	}
}

// Stationarity reports unit-root and stationarity tests of the final
// residual.
type Stationarity struct {
	KPSS        *stats.KPSSResult
	ADF         *stats.ADFResult
	Differences int // first differences needed for KPSS stationarity
}

// Report collects the result of every pipeline stage.
type Report struct {
	Resampled      *timeseries.Series
	Trend          *TrendResult
	Harmonic       *HarmonicResult
	Correlogram    *CorrelogramResult
	Autoregressive *AutoregressiveResult
	Stationarity   *Stationarity
}

// Residual returns the final stationary residual.
func (r *Report) Residual() *timeseries.Series {
	if r.Autoregressive == nil {
		return nil
	}
	return r.Autoregressive.Detrended
}

// StageObserver is notified after every stage with its duration and error.
type StageObserver func(stage Stage, elapsed time.Duration, err error)

// Pipeline chains resampling, trend removal, harmonic decomposition,
// correlogram, autoregressive fitting and stationarity diagnostics.
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	analyzer *Analyzer
	opts     Options
	logger   *logrus.Logger
	observer StageObserver
}

// NewPipeline creates a pipeline. A nil logger selects the standard logrus
// logger.
func NewPipeline(analyzer *Analyzer, opts Options, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{analyzer: analyzer, opts: opts, logger: logger}
}

// WithObserver returns a copy of the pipeline reporting to fn.
func (p *Pipeline) WithObserver(fn StageObserver) *Pipeline {
	cp := *p
	cp.observer = fn
	return &cp
}

// Options returns the pipeline options.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Run executes every stage on raw. Stage errors are returned unchanged.
// The context is checked between stages; a running stage is not
// interrupted.
func (p *Pipeline) Run(ctx context.Context, raw *timeseries.Series) (*Report, error) {
	report := &Report{}
	opts := p.opts
	a := p.analyzer

	err := p.stage(ctx, StageResample, func() (err error) {
		if opts.SkipResample {
			report.Resampled = raw.Copy()
			return nil
		}
		report.Resampled, err = timeseries.Resample(raw, opts.Resample)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageTrend, func() (err error) {
		report.Trend, err = a.RemoveTrend(report.Resampled, opts.Trend)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageHarmonic, func() (err error) {
		report.Harmonic, err = a.Harmonic(report.Trend.Detrended, opts.Harmonics)
		return err
	})
	if err != nil {
		return nil, err
	}

	residual := report.Harmonic.Detrended

	err = p.stage(ctx, StageCorrelogram, func() (err error) {
		report.Correlogram, err = a.Correlogram(residual, opts.Lags)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageAutoregressive, func() (err error) {
		if opts.AutoOrder {
			report.Autoregressive, err = a.AutoregressiveAuto(residual, opts.MaxOrder, opts.Criterion)
		} else {
			report.Autoregressive, err = a.Autoregressive(residual, opts.Order)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageStationarity, func() error {
		final := report.Autoregressive.Detrended.Values
		report.Stationarity = &Stationarity{
			KPSS:        stats.KPSS(final, stats.RegressionConstant, 0),
			ADF:         stats.ADF(final, 0),
			Differences: stats.NDiffs(final, 2),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"samples":   report.Resampled.Len(),
		"trend":     report.Trend.Kind.String(),
		"harmonics": len(report.Harmonic.Harmonics),
		"ar_order":  report.Autoregressive.Order,
	}).Info("Decomposition completed")

	return report, nil
}

func (p *Pipeline) stage(ctx context.Context, stage Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if p.observer != nil {
		p.observer(stage, elapsed, err)
	}

	entry := p.logger.WithFields(logrus.Fields{
		"stage":    string(stage),
		"duration": elapsed,
	})
	if err != nil {
		entry.WithError(err).Warn("Stage failed")
		return err
	}
	entry.Debug("Stage completed")
	return nil
}
