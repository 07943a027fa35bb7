// Package ar implements autoregressive models fitted by conditional least squares.
package ar

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gofreq/stats"
)

var (
	// ErrSingular is returned when the lags carry no information beyond the
	// constant, for example when the series is constant.
	ErrSingular = stats.ErrSingular

	ErrInvalidOrder = errors.New("order must be non-negative")
	ErrNotFitted    = errors.New("model must be fitted first")
)

// Model represents an AR(p) model with a constant:
//
//	y_t = c + φ1·y_{t-1} + ... + φp·y_{t-p} + ε_t
type Model struct {
	Order     int
	Intercept float64
	Coeffs    []float64 // φ1..φp
	StdErrors []float64 // intercept first, then one per coefficient; nil for a rank deficient design
	Sigma2    float64   // innovation variance, SSR/NObs
	AIC       float64
	BIC       float64
	LogLik    float64
	NObs      int // observations used by the regression, n-p

	fitted     bool
	data       []float64
	residuals  []float64
	fittedVals []float64
}

// New creates an unfitted AR model of order p.
func New(p int) *Model {
	return &Model{Order: p}
}

// Fit estimates the model by regressing y_t on a constant and its p lags
// for t = p..n-1. The first p observations only serve as presample values.
func (m *Model) Fit(values []float64) error {
	p := m.Order
	if p < 0 {
		return ErrInvalidOrder
	}

	n := len(values)
	nobs := n - p
	k := p + 1
	if nobs <= k {
		return fmt.Errorf("AR(%d) needs more than %d observations, got %d", p, 2*p+1, n)
	}

	x := mat.NewDense(nobs, k, nil)
	y := make([]float64, nobs)
	for i := 0; i < nobs; i++ {
		t := p + i
		y[i] = values[t]
		x.Set(i, 0, 1)
		for j := 1; j <= p; j++ {
			x.Set(i, j, values[t-j])
		}
	}

	fit, err := stats.OLS(x, y)
	if err != nil {
		return fmt.Errorf("fitting AR(%d): %w", p, err)
	}
	if p > 0 && fit.Rank <= 1 {
		return fmt.Errorf("fitting AR(%d): %w", p, ErrSingular)
	}

	m.data = append([]float64(nil), values...)
	m.Intercept = fit.Coeffs[0]
	m.Coeffs = fit.Coeffs[1:]
	m.StdErrors = fit.StdErrors
	m.NObs = nobs
	m.fittedVals = fit.Fitted
	m.residuals = make([]float64, nobs)
	for i := range y {
		m.residuals[i] = y[i] - fit.Fitted[i]
	}

	m.calculateIC(fit.SSR)
	m.fitted = true
	return nil
}

// calculateIC sets the innovation variance and the information criteria,
// normalized by the number of observations as statsmodels' AR does.
func (m *Model) calculateIC(ssr float64) {
	nobs := float64(m.NObs)
	dfModel := float64(m.Order + 1)

	m.Sigma2 = ssr / nobs
	logSigma2 := math.Log(m.Sigma2)

	m.LogLik = -nobs / 2 * (math.Log(2*math.Pi) + logSigma2 + 1)
	m.AIC = logSigma2 + 2*(1+dfModel)/nobs
	m.BIC = logSigma2 + math.Log(nobs)*(1+dfModel)/nobs
}

// StdError returns the standard deviation of the innovations.
func (m *Model) StdError() float64 {
	return math.Sqrt(m.Sigma2)
}

// Params returns the intercept followed by the AR coefficients.
func (m *Model) Params() []float64 {
	return append([]float64{m.Intercept}, m.Coeffs...)
}

// Predict returns predictions for the indices start..end inclusive.
// In-sample indices are one-step-ahead predictions from observed values;
// indices at or past the end of the data are forecast recursively.
func (m *Model) Predict(start, end int) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if start < m.Order || end < start {
		return nil, fmt.Errorf("invalid prediction range [%d, %d] for AR(%d)", start, end, m.Order)
	}

	n := len(m.data)
	from := min(start, n)
	ext := make([]float64, max(n, end+1))
	copy(ext, m.data)

	out := make([]float64, 0, end-start+1)
	for t := from; t <= end; t++ {
		pred := m.Intercept
		for j, phi := range m.Coeffs {
			pred += phi * ext[t-j-1]
		}
		if t >= n {
			ext[t] = pred
		}
		if t >= start {
			out = append(out, pred)
		}
	}

	return out, nil
}

// Forecast generates forecasts for the given number of steps past the data.
func (m *Model) Forecast(steps int) ([]float64, error) {
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}
	if !m.fitted {
		return nil, ErrNotFitted
	}
	n := len(m.data)
	return m.Predict(n, n+steps-1)
}

// Residuals returns the in-sample residuals for t = p..n-1.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.residuals...)
}

// FittedValues returns the in-sample one-step predictions for t = p..n-1.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.fittedVals...)
}

// Summary describes a fitted model and the whiteness of its residuals.
type Summary struct {
	Order        int
	Intercept    float64
	Coeffs       []float64
	StdErrors    []float64
	Sigma2       float64
	AIC          float64
	BIC          float64
	LogLik       float64
	NObs         int
	ResidualMean float64
	DurbinWatson float64
	LjungBox     *stats.LjungBoxResult // nil when the residuals are too short
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	return &Summary{
		Order:        m.Order,
		Intercept:    m.Intercept,
		Coeffs:       m.Coeffs,
		StdErrors:    m.StdErrors,
		Sigma2:       m.Sigma2,
		AIC:          m.AIC,
		BIC:          m.BIC,
		LogLik:       m.LogLik,
		NObs:         m.NObs,
		ResidualMean: stat.Mean(m.residuals, nil),
		DurbinWatson: stats.DurbinWatson(m.residuals),
		LjungBox:     stats.LjungBox(m.residuals, 10, m.Order),
	}
}
