// Package ar fits autoregressive models with a constant term.
//
// Models are estimated by conditional least squares: the first p observations
// are treated as fixed presample values and y_t is regressed on a constant
// and its p lags for the remaining n-p observations.
//
//	model := ar.New(3)
//	if err := model.Fit(values); err != nil {
//	    return err
//	}
//	fmt.Println(model.Params(), model.AIC, model.StdError())
//
//	// One-step predictions for indices p..n, the last being a forecast
//	trend, _ := model.Predict(3, len(values))
//
// # Order Selection
//
// SelectOrder compares candidate orders on a common estimation sample:
//
//	res, err := ar.SelectOrder(values, ar.SelectConfig{MaxOrder: 12, Criterion: ar.AIC})
//	fmt.Println(res.Order, res.Model.Coeffs)
package ar
