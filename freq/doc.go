// Package freq decomposes regular groundwater-level series into a trend, a
// harmonic component, an autoregressive component and a stationary residual.
//
// Every stage is a method on Analyzer, which carries the minimum sample count
// all stages enforce:
//
//	a := freq.New(freq.DefaultConfig())
//
//	tr, err := a.Step(series, 24, 0.05, true)
//	h, err := a.Harmonic(tr.Detrended, 3)
//	c, err := a.Correlogram(h.Detrended, 12)
//	res, err := a.Autoregressive(h.Detrended, 2)
//
// Stages never modify their input. Parameter errors are reported as
// *ValidationError, short series as *InsufficientDataError, and an
// undetermined autoregressive fit as ErrDegenerate:
//
//	var short *freq.InsufficientDataError
//	if errors.As(err, &short) {
//	    fmt.Println(short.Got, short.Min)
//	}
//
// # Pipeline
//
// Pipeline chains resampling of the raw observations with all stages and
// stationarity diagnostics of the final residual:
//
//	p := freq.NewPipeline(a, freq.DefaultOptions(), logger)
//	report, err := p.Run(ctx, raw)
package freq
