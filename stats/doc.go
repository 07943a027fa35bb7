// Package stats provides the statistical building blocks of the
// decomposition pipeline.
//
// All functions operate on plain []float64 slices and never fail on
// degenerate input; instead they report NaN statistics or a nil result, as
// documented per function.
//
// # Hypothesis Tests
//
//	// Pooled two-sample t-test, two-sided
//	res := stats.TTestInd(before, after)
//
//	// Simple linear regression with slope significance
//	lr := stats.LinRegress(x, y)
//
// # Correlation
//
//	// Lag-matrix correlogram, one coefficient per lag
//	r := stats.Correlogram(residuals, 20)
//
//	// Classical ACF/PACF with ±1.96/sqrt(n) bounds
//	acf := stats.ACFWithConfidence(residuals, 20)
//	significant := stats.SignificantLags(acf.Values, acf.ConfBounds)
//
// # Stationarity and Residual Diagnostics
//
//	adf := stats.ADF(residuals, 0)                             // H0: unit root
//	kpss := stats.KPSS(residuals, stats.RegressionConstant, 0) // H0: stationary
//	lb := stats.LjungBox(residuals, 10, p)                     // H0: no autocorrelation
//	dw := stats.DurbinWatson(residuals)
//
// Regressions are solved with a QR factorization (see OLS). A rank deficient
// design falls back to the minimum norm solution from an SVD.
package stats
