package freq

import (
	"bytes"
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/gofreq/timeseries"
)

// irregular returns roughly weekly observations over eight years with a
// yearly cycle and a step of 1.5 from 2014 on.
func irregular() *timeseries.Series {
	start := time.Date(2010, 1, 3, 0, 0, 0, 0, time.UTC)
	e := noise(420, 17)

	var ts []time.Time
	var values []float64
	at := start
	for i := 0; i < 420; i++ {
		at = at.Add(time.Duration(5+i%5) * 24 * time.Hour)
		if at.Year() >= 2018 {
			break
		}
		phase := float64(at.YearDay()) / 365.25
		v := 3 + math.Cos(2*math.Pi*phase) + 0.2*e[i]
		if at.Year() >= 2014 {
			v += 1.5
		}
		ts = append(ts, at)
		values = append(values, v)
	}
	// close the record on a period end so the last month is kept
	last := time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)
	if ts[len(ts)-1].Before(last) {
		ts = append(ts, last)
		values = append(values, 4.5+math.Cos(2*math.Pi*float64(last.YearDay())/365.25))
	}

	s, err := timeseries.NewWithTimestamps(ts, values)
	if err != nil {
		panic(err)
	}
	return s
}

func quietLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	return logger, buf
}

func TestPipeline_Run(t *testing.T) {
	logger, buf := quietLogger()
	opts := DefaultOptions()
	opts.Trend = TrendOptions{
		Kind:           TrendStep,
		BreakpointTime: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC),
		Alpha:          0.05,
	}

	report, err := NewPipeline(New(DefaultConfig()), opts, logger).Run(context.Background(), irregular())
	require.NoError(t, err)

	require.Equal(t, 96, report.Resampled.Len(), "eight years of months")
	assert.Equal(t, timeseries.Monthly, report.Resampled.Frequency)

	assert.Equal(t, 48, report.Trend.Breakpoint)
	assert.True(t, report.Trend.Significant)
	assert.InDelta(t, 1.5, report.Trend.MeanB-report.Trend.MeanA, 0.3)

	require.Len(t, report.Harmonic.Harmonics, 3)
	assert.Equal(t, 8, report.Harmonic.Harmonics[0].Bin, "yearly cycle")

	assert.Len(t, report.Correlogram.Values, 12)
	assert.Equal(t, 2, report.Autoregressive.Order)
	assert.Equal(t, report.Autoregressive.Detrended, report.Residual())

	require.NotNil(t, report.Stationarity)
	assert.NotNil(t, report.Stationarity.KPSS)
	assert.NotNil(t, report.Stationarity.ADF)

	assert.Contains(t, buf.String(), `"msg":"Decomposition completed"`)
	assert.Contains(t, buf.String(), `"stage":"harmonic"`)
}

func TestPipeline_AutoOrder(t *testing.T) {
	logger, _ := quietLogger()
	opts := DefaultOptions()
	opts.AutoOrder = true
	opts.MaxOrder = 4

	report, err := NewPipeline(New(DefaultConfig()), opts, logger).Run(context.Background(), irregular())
	require.NoError(t, err)
	assert.Len(t, report.Autoregressive.Candidates, 4)
}

func TestPipeline_Observer(t *testing.T) {
	logger, _ := quietLogger()

	var mu sync.Mutex
	var stages []Stage
	p := NewPipeline(New(DefaultConfig()), DefaultOptions(), logger).
		WithObserver(func(stage Stage, _ time.Duration, err error) {
			mu.Lock()
			defer mu.Unlock()
			assert.NoError(t, err)
			stages = append(stages, stage)
		})

	_, err := p.Run(context.Background(), irregular())
	require.NoError(t, err)

	assert.Equal(t, []Stage{
		StageResample, StageTrend, StageHarmonic,
		StageCorrelogram, StageAutoregressive, StageStationarity,
	}, stages)
}

func TestPipeline_ErrorsPropagateUnchanged(t *testing.T) {
	logger, buf := quietLogger()
	opts := DefaultOptions()
	opts.Resample.Start = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	opts.Resample.End = time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := NewPipeline(New(DefaultConfig()), opts, logger).Run(context.Background(), irregular())

	var ierr *InsufficientDataError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 24, ierr.Got)
	assert.Contains(t, buf.String(), "Stage failed")
}

func TestPipeline_Cancelled(t *testing.T) {
	logger, _ := quietLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(New(DefaultConfig()), DefaultOptions(), logger).Run(ctx, irregular())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_SkipResample(t *testing.T) {
	logger, _ := quietLogger()
	opts := DefaultOptions()
	opts.SkipResample = true

	raw := series(seasonal(60))
	report, err := NewPipeline(New(DefaultConfig()), opts, logger).Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, raw.Values, report.Resampled.Values)
	assert.NotSame(t, raw, report.Resampled)
}

func TestPipeline_ConcurrentRuns(t *testing.T) {
	logger, _ := quietLogger()
	p := NewPipeline(New(DefaultConfig()), DefaultOptions(), logger)
	raw := irregular()

	var wg sync.WaitGroup
	results := make([]*Report, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			report, err := p.Run(context.Background(), raw)
			assert.NoError(t, err)
			results[i] = report
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		require.NotNil(t, r)
		assert.Equal(t, results[0].Residual().Values, r.Residual().Values)
	}
}
