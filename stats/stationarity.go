package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Regression selects the deterministic terms of a stationarity test.
type Regression string

const (
	RegressionConstant Regression = "c"  // level stationarity
	RegressionTrend    Regression = "ct" // trend stationarity
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller unit root test with a constant.
// The null hypothesis is a unit root; a small p-value indicates
// stationarity. maxLag <= 0 selects floor((n-1)^(1/3)) lagged differences.
// It returns nil when the series is too short or the regression is singular.
func ADF(values []float64, maxLag int) *ADFResult {
	n := len(values)
	if n < 10 {
		return nil
	}
	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Cbrt(float64(n - 1))))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	nObs := n - maxLag - 1
	if nObs < 10 {
		return nil
	}

	diff := make([]float64, n-1)
	floats.SubTo(diff, values[1:], values[:n-1])

	// Δy_t = α + β·y_{t-1} + Σ γ_j·Δy_{t-j}
	k := 2 + maxLag
	x := mat.NewDense(nObs, k, nil)
	y := make([]float64, nObs)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff[t]
		x.Set(i, 0, 1)
		x.Set(i, 1, values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff[t-j])
		}
	}

	fit, err := OLS(x, y)
	if err != nil || fit.StdErrors == nil || fit.StdErrors[1] == 0 {
		return nil
	}

	tStat := fit.Coeffs[1] / fit.StdErrors[1]
	pValue := adfPValue(tStat)

	return &ADFResult{
		Statistic: tStat,
		PValue:    pValue,
		Lags:      maxLag,
		NObs:      nObs,
		CriticalVals: map[string]float64{
			"1%":  -3.43,
			"5%":  -2.86,
			"10%": -2.57,
		},
		IsStationary: pValue < 0.05,
	}
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	CriticalVals map[string]float64
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test. The null
// hypothesis is stationarity around a level (RegressionConstant) or a linear
// trend (RegressionTrend). nlags <= 0 selects ceil(12·(n/100)^(1/4)).
func KPSS(values []float64, regression Regression, nlags int) *KPSSResult {
	n := len(values)
	if n < 10 {
		return nil
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals := make([]float64, n)
	if regression == RegressionTrend {
		t := make([]float64, n)
		floats.Span(t, 0, float64(n-1))
		alpha, beta := stat.LinearRegression(t, values, nil, false)
		for i, v := range values {
			residuals[i] = v - alpha - beta*t[i]
		}
	} else {
		copy(residuals, values)
		floats.AddConst(-stat.Mean(values, nil), residuals)
	}

	// Newey-West long-run variance with Bartlett weights.
	nf := float64(n)
	s2 := floats.Dot(residuals, residuals) / nf
	for l := 1; l <= nlags; l++ {
		cov := floats.Dot(residuals[l:], residuals[:n-l]) / nf
		s2 += 2 * (1 - float64(l)/float64(nlags+1)) * cov
	}
	if s2 <= 0 {
		s2 = 1e-10
	}

	partial := make([]float64, n)
	floats.CumSum(partial, residuals)
	eta := floats.Dot(partial, partial) / (nf * nf)
	kpss := eta / s2

	crit := kpssCritical(regression)
	pValue := interpolatePValue(kpss, crit)

	return &KPSSResult{
		Statistic: kpss,
		PValue:    pValue,
		Lags:      nlags,
		CriticalVals: map[string]float64{
			"10%":  crit[0].stat,
			"5%":   crit[1].stat,
			"2.5%": crit[2].stat,
			"1%":   crit[3].stat,
		},
		IsStationary: pValue >= 0.05,
	}
}

type critPoint struct {
	stat, p float64
}

func kpssCritical(regression Regression) []critPoint {
	if regression == RegressionTrend {
		return []critPoint{{0.119, 0.10}, {0.146, 0.05}, {0.176, 0.025}, {0.216, 0.01}}
	}
	return []critPoint{{0.347, 0.10}, {0.463, 0.05}, {0.574, 0.025}, {0.739, 0.01}}
}

// interpolatePValue interpolates linearly between tabulated critical values
// sorted by statistic. Outside the table the nearest p-value is returned.
func interpolatePValue(s float64, table []critPoint) float64 {
	if s <= table[0].stat {
		return table[0].p
	}
	for i := 1; i < len(table); i++ {
		if s <= table[i].stat {
			lo, hi := table[i-1], table[i]
			w := (s - lo.stat) / (hi.stat - lo.stat)
			return lo.p + w*(hi.p-lo.p)
		}
	}
	return table[len(table)-1].p
}

var adfQuantiles = []critPoint{
	{-3.96, 0.001}, {-3.43, 0.01}, {-2.86, 0.05}, {-2.57, 0.10},
	{-1.94, 0.25}, {-1.62, 0.50}, {-0.44, 0.90}, {0.23, 0.99},
}

// adfPValue approximates the p-value of a constant-only ADF statistic from
// MacKinnon's asymptotic quantiles.
func adfPValue(s float64) float64 {
	return interpolatePValue(s, adfQuantiles)
}

// NDiffs returns the number of first differences, at most maxD, after which
// the KPSS level test no longer rejects stationarity.
func NDiffs(values []float64, maxD int) int {
	if maxD <= 0 {
		maxD = 2
	}

	current := values
	for d := 0; d < maxD; d++ {
		if res := KPSS(current, RegressionConstant, 0); res == nil || res.IsStationary {
			return d
		}
		next := make([]float64, len(current)-1)
		floats.SubTo(next, current[1:], current[:len(current)-1])
		current = next
	}
	return maxD
}
