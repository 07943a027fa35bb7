package freq

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/stats"
	"github.com/sartorproj/gofreq/timeseries"
)

// AutoregressiveResult holds the outcome of removing an AR(p) structure.
type AutoregressiveResult struct {
	Order     int
	Detrended *timeseries.Series
	Trend     *timeseries.Series

	Params   []float64 // intercept, then φ1..φp
	AIC      float64
	StdError float64 // innovation standard deviation

	LjungBox     *stats.LjungBoxResult // whiteness of Detrended; nil if too short
	DurbinWatson float64
	Candidates   []ar.Candidate // set by AutoregressiveAuto

	Model *ar.Model `json:"-" yaml:"-"`
}

// Autoregressive fits an AR(order) model with a constant and removes its
// predictions from the series.
//
// The trend at index i, for i >= order-1, is the model's prediction of
// sample i+1 from the observations up to i; the last value is therefore a
// one-step forecast. Indices below order-1 hold the series mean, as does the
// whole trend for order 0.
func (a *Analyzer) Autoregressive(s *timeseries.Series, order int) (*AutoregressiveResult, error) {
	if err := a.validateOrder(s, order, "order"); err != nil {
		return nil, err
	}

	model := ar.New(order)
	if err := model.Fit(s.Values); err != nil {
		return nil, wrapFitError(order, err)
	}

	return a.removeAutoregression(s, model)
}

// AutoregressiveAuto selects the order in 1..maxOrder minimizing the given
// criterion and removes the corresponding model like Autoregressive.
func (a *Analyzer) AutoregressiveAuto(s *timeseries.Series, maxOrder int, criterion ar.Criterion) (*AutoregressiveResult, error) {
	if err := a.validateOrder(s, maxOrder, "max_order"); err != nil {
		return nil, err
	}
	if maxOrder < 1 {
		return nil, newValidationErrorf("max_order", "the maximum order has to be at least 1")
	}

	sel, err := ar.SelectOrder(s.Values, ar.SelectConfig{MaxOrder: maxOrder, Criterion: criterion})
	if err != nil {
		return nil, wrapFitError(maxOrder, err)
	}

	res, err := a.removeAutoregression(s, sel.Model)
	if err != nil {
		return nil, err
	}
	res.Candidates = sel.Candidates
	return res, nil
}

func (a *Analyzer) validateOrder(s *timeseries.Series, order int, field string) error {
	if err := a.checkSamples(s); err != nil {
		return err
	}
	if order < 0 || float64(order) > 0.3*float64(s.Len()) {
		return newValidationErrorf(field, "too many periods, maximum number of periods is %d", int(0.3*float64(s.Len())))
	}
	return nil
}

func (a *Analyzer) removeAutoregression(s *timeseries.Series, model *ar.Model) (*AutoregressiveResult, error) {
	n := s.Len()
	p := model.Order
	trend := make([]float64, n)

	if p == 0 {
		mean := stat.Mean(s.Values, nil)
		for i := range trend {
			trend[i] = mean
		}
	} else {
		preds, err := model.Predict(p, n)
		if err != nil {
			return nil, err
		}
		mean := stat.Mean(s.Values, nil)
		for i := 0; i < p-1; i++ {
			trend[i] = mean
		}
		copy(trend[p-1:], preds)
	}

	detrended := make([]float64, n)
	for i, v := range s.Values {
		detrended[i] = v - trend[i]
	}

	return &AutoregressiveResult{
		Order:        p,
		Detrended:    s.Derive(detrended, s.Name),
		Trend:        s.Derive(trend, "autoregressive trend"),
		Params:       model.Params(),
		AIC:          model.AIC,
		StdError:     model.StdError(),
		LjungBox:     stats.LjungBox(detrended, 10, p),
		DurbinWatson: stats.DurbinWatson(detrended),
		Model:        model,
	}, nil
}

func wrapFitError(order int, err error) error {
	if errors.Is(err, ar.ErrSingular) {
		return fmt.Errorf("autoregressive order %d: %w: %w", order, ErrDegenerate, err)
	}
	return fmt.Errorf("autoregressive order %d: %w", order, err)
}
