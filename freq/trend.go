package freq

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gofreq/stats"
	"github.com/sartorproj/gofreq/timeseries"
)

// TrendKind selects the trend model removed from a series.
type TrendKind int

const (
	TrendNone TrendKind = iota
	TrendStep
	TrendLinear
)

// ParseTrendKind parses "none", "step" or "linear".
func ParseTrendKind(s string) (TrendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TrendNone, nil
	case "step":
		return TrendStep, nil
	case "linear":
		return TrendLinear, nil
	default:
		return TrendNone, newValidationErrorf("trend", "unknown trend kind %q", s)
	}
}

func (k TrendKind) String() string {
	switch k {
	case TrendStep:
		return "step"
	case TrendLinear:
		return "linear"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TrendKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TrendKind) UnmarshalText(text []byte) error {
	parsed, err := ParseTrendKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TrendOptions selects and parameterizes a trend removal.
type TrendOptions struct {
	Kind TrendKind

	// Breakpoint is the index of the first sample after the step. When
	// BreakpointTime is set it takes precedence and is resolved against the
	// series timestamps.
	Breakpoint     int
	BreakpointTime time.Time

	Alpha         float64
	DetrendAnyway bool
}

// TrendResult holds the outcome of a trend removal. Whenever Removed is
// true, Detrended[i] + Trend[i] equals the input at every index.
type TrendResult struct {
	Kind      TrendKind
	Detrended *timeseries.Series
	Trend     *timeseries.Series

	// Step parameters.
	Breakpoint int
	MeanA      float64
	MeanB      float64

	// Linear parameters.
	Slope     float64
	Intercept float64
	R         float64

	PValue      float64
	TStatistic  float64
	Significant bool
	Removed     bool
	Explanation string
}

// RemoveTrend removes the trend selected by opts.Kind. TrendNone removes
// only the mean, exactly like a step with breakpoint 0.
func (a *Analyzer) RemoveTrend(s *timeseries.Series, opts TrendOptions) (*TrendResult, error) {
	switch opts.Kind {
	case TrendNone:
		return a.Step(s, 0, opts.Alpha, opts.DetrendAnyway)
	case TrendStep:
		bp := opts.Breakpoint
		if !opts.BreakpointTime.IsZero() {
			if bp = s.IndexAt(opts.BreakpointTime); bp < 0 {
				return nil, newValidationErrorf("breakpoint", "series has no timestamps to place %s", opts.BreakpointTime.Format(time.RFC3339))
			}
		}
		return a.Step(s, bp, opts.Alpha, opts.DetrendAnyway)
	case TrendLinear:
		return a.Linear(s, opts.Alpha, opts.DetrendAnyway)
	default:
		return nil, newValidationErrorf("trend", "unknown trend kind %d", opts.Kind)
	}
}

// Step removes a step trend at breakpoint bp, the index of the first sample
// of the second segment. Each segment is centered on its own mean and the
// difference of the means is tested with a pooled two-sample t-test.
//
// bp == 0 selects no step: the result has kind TrendNone, the trend is the
// overall mean and the test statistics are NaN. If the difference is not
// significant at level alpha and detrendAnyway is false, the input is
// returned unchanged as the detrended series; the computed trend is reported
// either way. bp == Len() leaves the second segment empty, so MeanB and the
// test statistics are NaN and the first segment is centered on MeanA.
func (a *Analyzer) Step(s *timeseries.Series, bp int, alpha float64, detrendAnyway bool) (*TrendResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	n := s.Len()
	if bp < 0 || bp > n {
		return nil, newValidationErrorf("breakpoint", "the breaking point has to be between 0 and %d", n)
	}
	if err := a.checkSamples(s); err != nil {
		return nil, err
	}

	res := &TrendResult{Kind: TrendStep, Breakpoint: bp}
	data := s.Values
	trend := make([]float64, n)
	detrended := make([]float64, n)

	if bp == 0 {
		res.Kind = TrendNone
		mean := stat.Mean(data, nil)
		res.MeanA, res.MeanB = mean, mean
		res.PValue, res.TStatistic = math.NaN(), math.NaN()
		res.Explanation = "No trend was selected"
		res.Removed = true

		for i, v := range data {
			trend[i] = mean
			detrended[i] = v - mean
		}
		return res.finish(s, trend, detrended), nil
	}

	before, after := data[:bp], data[bp:]
	res.MeanA = stat.Mean(before, nil)
	res.MeanB = math.NaN()
	if len(after) > 0 {
		res.MeanB = stat.Mean(after, nil)
	}

	for i, v := range data {
		m := res.MeanA
		if i >= bp {
			m = res.MeanB
		}
		trend[i] = m
		detrended[i] = v - m
	}

	tt := stats.TTestInd(before, after)
	res.applyTest(tt, alpha, detrendAnyway)
	if !res.Removed {
		copy(detrended, data)
	}

	return res.finish(s, trend, detrended), nil
}

// Linear removes a least squares line fitted against the sample index.
// Significance is judged by a t-test between the detrended and the input
// values, with the same detrendAnyway semantics as Step.
func (a *Analyzer) Linear(s *timeseries.Series, alpha float64, detrendAnyway bool) (*TrendResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if err := a.checkSamples(s); err != nil {
		return nil, err
	}

	n := s.Len()
	x := make([]float64, n)
	floats.Span(x, 0, float64(n-1))

	lr := stats.LinRegress(x, s.Values)
	res := &TrendResult{
		Kind:      TrendLinear,
		Slope:     lr.Slope,
		Intercept: lr.Intercept,
		R:         lr.R,
	}

	trend := make([]float64, n)
	detrended := make([]float64, n)
	for i, v := range s.Values {
		trend[i] = lr.Slope*x[i] + lr.Intercept
		detrended[i] = v - trend[i]
	}

	tt := stats.TTestInd(detrended, s.Values)
	res.applyTest(tt, alpha, detrendAnyway)
	if !res.Removed {
		copy(detrended, s.Values)
	}

	return res.finish(s, trend, detrended), nil
}

// applyTest records the t-test outcome. Only alpha <= p counts as no
// significant difference, so a NaN p-value is treated as significant.
func (r *TrendResult) applyTest(tt stats.TTestResult, alpha float64, detrendAnyway bool) {
	r.PValue = tt.PValue
	r.TStatistic = tt.Statistic
	notSignificant := alpha <= tt.PValue
	r.Significant = !notSignificant

	verdict := "no significant"
	if r.Significant {
		verdict = "a significant"
	}
	r.Explanation = fmt.Sprintf("There is %s difference at a %g level of confidence\np-value = %g\nt-test value %g",
		verdict, alpha, tt.PValue, tt.Statistic)
	r.Removed = r.Significant || detrendAnyway
}

func (r *TrendResult) finish(s *timeseries.Series, trend, detrended []float64) *TrendResult {
	r.Trend = s.Derive(trend, r.Kind.String()+" trend")
	r.Detrended = s.Derive(detrended, s.Name)
	return r
}

func validateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return newValidationErrorf("alpha", "alpha value has to be between 0 and 1")
	}
	return nil
}
