package freq

import (
	"github.com/sartorproj/gofreq/stats"
	"github.com/sartorproj/gofreq/timeseries"
)

// CorrelogramResult holds the lag-matrix correlogram of a series together
// with the classical ACF and PACF for diagnosis.
type CorrelogramResult struct {
	// Values[i] is the correlation at lag i; Values[0] is 1 for any
	// non-constant series.
	Values []float64

	ACF             *stats.ACFResult // nil when nLags is 0 or the series is constant
	PACF            *stats.ACFResult
	SignificantLags []int
}

// Correlogram correlates the series with itself at lags 0..nLags-1.
// nLags may be at most Len()-1 so that every lag window has two samples.
func (a *Analyzer) Correlogram(s *timeseries.Series, nLags int) (*CorrelogramResult, error) {
	if err := a.checkSamples(s); err != nil {
		return nil, err
	}
	if nLags < 0 || nLags > s.Len()-1 {
		return nil, newValidationErrorf("lags", "the number of lags has to be between 0 and %d", s.Len()-1)
	}

	res := &CorrelogramResult{Values: stats.Correlogram(s.Values, nLags)}
	if nLags == 0 {
		return res, nil
	}

	res.ACF = stats.ACFWithConfidence(s.Values, nLags-1)
	res.PACF = stats.PACFWithConfidence(s.Values, nLags-1)
	if res.ACF != nil {
		res.SignificantLags = stats.SignificantLags(res.ACF.Values, res.ACF.ConfBounds)
	}

	return res, nil
}
