package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Correlogram returns the correlation of a series with its own shifted copies
// for lags 0 to nLags-1.
//
// The series is laid out as a matrix of nLags columns, column i holding
// values[i : n-nLags+1+i], and each column is correlated with column 0 using
// the Pearson coefficient. Unlike ACF, every lag is normalized by the
// variance of its own window. Values are clamped to [-1, 1]; a constant
// window yields NaN. It returns nil when fewer than two rows remain.
func Correlogram(values []float64, nLags int) []float64 {
	if nLags <= 0 {
		return []float64{}
	}
	rows := len(values) - nLags + 1
	if rows < 2 {
		return nil
	}

	base := values[:rows]
	out := make([]float64, nLags)
	for i := 0; i < nLags; i++ {
		r := stat.Correlation(base, values[i:i+rows], nil)
		if !math.IsNaN(r) {
			r = math.Max(-1, math.Min(1, r))
		}
		out[i] = r
	}
	return out
}

// ACF calculates the sample autocorrelation function for lags 0 to maxLag,
// normalizing every lag by the full-sample variance.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(values, nil)
	variance := sumSquares(values, mean)
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// PACF calculates the partial autocorrelation function using the
// Durbin-Levinson recursion. Index 0 is always 1.
func PACF(values []float64, maxLag int) []float64 {
	if maxLag >= len(values) {
		maxLag = len(values) - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(values, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1
	pacf[1] = acf[1]

	prev := []float64{acf[1]}
	for k := 2; k <= maxLag; k++ {
		num, den := acf[k], 1.0
		for j := 1; j < k; j++ {
			num -= prev[j-1] * acf[k-j]
			den -= prev[j-1] * acf[j]
		}
		if den == 0 {
			break
		}

		phi := num / den
		pacf[k] = phi

		cur := make([]float64, k)
		for j := 1; j < k; j++ {
			cur[j-1] = prev[j-1] - phi*prev[k-j-1]
		}
		cur[k-1] = phi
		prev = cur
	}

	return pacf
}

// ACFResult represents autocorrelations with their 95% confidence bound.
type ACFResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // ±1.96/sqrt(n)
}

// ACFWithConfidence calculates the ACF together with its confidence bound.
func ACFWithConfidence(values []float64, maxLag int) *ACFResult {
	return withConfidence(ACF(values, maxLag), len(values))
}

// PACFWithConfidence calculates the PACF together with its confidence bound.
func PACFWithConfidence(values []float64, maxLag int) *ACFResult {
	return withConfidence(PACF(values, maxLag), len(values))
}

func withConfidence(values []float64, n int) *ACFResult {
	if values == nil {
		return nil
	}
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}
	return &ACFResult{
		Lags:       lags,
		Values:     values,
		ConfBounds: 1.96 / math.Sqrt(float64(n)),
	}
}

// SignificantLags returns the lags, excluding lag 0, whose values exceed the
// confidence bound.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
