// Package gofreq decomposes groundwater level time series into a trend, a
// harmonic part, an autoregressive part and a stationary residual.
//
// Groundwater records are irregular: loggers fail, wells are read by hand
// and sampling intervals change over the years. gofreq first resamples a
// record onto a regular grid and then removes one structure after another,
// so that what remains can be studied as white noise.
//
// # Pipeline
//
//   - Resample: average observations per period and interpolate gaps.
//   - Trend: remove a step at a breakpoint or a linear trend, tested with a
//     two-sample t-test or a regression slope test.
//   - Harmonic: remove the k most powerful Fourier components.
//   - Correlogram: correlate the residual with itself at increasing lags.
//   - Autoregressive: fit an AR(p) model and remove its one-step predictions.
//   - Stationarity: KPSS and ADF tests of the final residual.
//
// # Quick Start
//
//	raw, _ := timeseries.LoadCSV("well.csv", nil)
//
//	opts := freq.DefaultOptions()
//	opts.Trend.Kind = freq.TrendLinear
//
//	report, err := freq.NewPipeline(freq.New(freq.DefaultConfig()), opts, nil).
//	    Run(ctx, raw)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Harmonic.Harmonics[0].Period, report.Autoregressive.AIC)
//
// # Packages
//
//   - timeseries: series type, CSV loading and resampling
//   - stats: t-test, regression, correlation and stationarity tests
//   - ar: autoregressive models and order selection
//   - freq: the decomposition stages and the pipeline
//   - cmd/freq: command line tool and HTTP service
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package gofreq
