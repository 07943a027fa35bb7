package stats

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func ar1(n int, phi float64) []float64 {
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + (float64(i%10)-5)/10
	}
	return values
}

func TestTTestInd(t *testing.T) {
	res := TTestInd([]float64{1, 2, 3}, []float64{4, 5, 6})

	if math.Abs(res.Statistic-(-3.6742346141747673)) > 1e-9 {
		t.Errorf("Expected t = -3.6742, got %f", res.Statistic)
	}
	if math.Abs(res.PValue-0.0213116411287750) > 1e-6 {
		t.Errorf("Expected p = 0.0213, got %f", res.PValue)
	}
	if res.DOF != 4 {
		t.Errorf("Expected 4 degrees of freedom, got %f", res.DOF)
	}
}

func TestTTestIndDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		infStat bool
		nanP    bool
	}{
		{"empty sample", nil, []float64{1, 2}, false, true},
		{"single observations", []float64{1}, []float64{2}, false, true},
		{"constant equal samples", []float64{2, 2, 2}, []float64{2, 2}, false, true},
		{"constant different samples", []float64{1, 1, 1}, []float64{3, 3}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := TTestInd(tc.a, tc.b)
			if tc.infStat && !math.IsInf(res.Statistic, -1) {
				t.Errorf("Expected -Inf statistic, got %f", res.Statistic)
			}
			if tc.infStat && res.PValue != 0 {
				t.Errorf("Expected p = 0, got %f", res.PValue)
			}
			if tc.nanP && !math.IsNaN(res.PValue) {
				t.Errorf("Expected NaN p-value, got %f", res.PValue)
			}
		})
	}
}

func TestTTestIndSingletonSegment(t *testing.T) {
	res := TTestInd([]float64{5}, []float64{1, 2, 3})
	if math.IsNaN(res.Statistic) || math.IsNaN(res.PValue) {
		t.Errorf("Expected finite result with one singleton sample, got %+v", res)
	}
}

func TestLinRegress(t *testing.T) {
	res := LinRegress([]float64{0, 1, 2, 3, 4}, []float64{1, 3, 2, 5, 4})

	if math.Abs(res.Slope-0.8) > 1e-12 {
		t.Errorf("Expected slope 0.8, got %f", res.Slope)
	}
	if math.Abs(res.Intercept-1.4) > 1e-12 {
		t.Errorf("Expected intercept 1.4, got %f", res.Intercept)
	}
	if math.Abs(res.R-0.8) > 1e-12 {
		t.Errorf("Expected r = 0.8, got %f", res.R)
	}
	if math.Abs(res.PValue-0.1040880386619) > 1e-6 {
		t.Errorf("Expected p = 0.1041, got %f", res.PValue)
	}
}

func TestLinRegressConstant(t *testing.T) {
	res := LinRegress([]float64{0, 1, 2, 3}, []float64{2, 2, 2, 2})
	if res.Slope != 0 || res.Intercept != 2 {
		t.Errorf("Expected flat line at 2, got slope %f intercept %f", res.Slope, res.Intercept)
	}
	if !math.IsNaN(res.R) {
		t.Errorf("Expected NaN correlation, got %f", res.R)
	}
}

func TestOLS(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	fit, err := OLS(x, []float64{1, 3, 5, 7})
	if err != nil {
		t.Fatalf("OLS failed: %v", err)
	}
	if math.Abs(fit.Coeffs[0]-1) > 1e-9 || math.Abs(fit.Coeffs[1]-2) > 1e-9 {
		t.Errorf("Expected coefficients [1 2], got %v", fit.Coeffs)
	}
	if fit.SSR > 1e-12 {
		t.Errorf("Expected perfect fit, got SSR %g", fit.SSR)
	}

	if fit.Rank != 2 {
		t.Errorf("Expected rank 2, got %d", fit.Rank)
	}

	zero := mat.NewDense(3, 2, nil)
	if _, err := OLS(zero, []float64{1, 2, 3}); err != ErrSingular {
		t.Errorf("Expected ErrSingular, got %v", err)
	}
}

func TestOLSRankDeficient(t *testing.T) {
	// the second column doubles the first: the minimum norm solution of
	// a + 2b = mean(y) is (0.4, 0.8)
	x := mat.NewDense(3, 2, []float64{1, 2, 1, 2, 1, 2})
	fit, err := OLS(x, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("OLS failed: %v", err)
	}
	if fit.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", fit.Rank)
	}
	if math.Abs(fit.Coeffs[0]-0.4) > 1e-9 || math.Abs(fit.Coeffs[1]-0.8) > 1e-9 {
		t.Errorf("Expected coefficients [0.4 0.8], got %v", fit.Coeffs)
	}
	if math.Abs(fit.SSR-2) > 1e-9 {
		t.Errorf("Expected SSR 2, got %g", fit.SSR)
	}
	if fit.StdErrors != nil {
		t.Errorf("Expected no standard errors, got %v", fit.StdErrors)
	}
}

func TestCorrelogram(t *testing.T) {
	line := make([]float64, 20)
	for i := range line {
		line[i] = float64(i)
	}

	r := Correlogram(line, 5)
	if len(r) != 5 {
		t.Fatalf("Expected 5 lags, got %d", len(r))
	}
	for i, v := range r {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("Lag %d: expected 1 for a straight line, got %f", i, v)
		}
	}

	if got := Correlogram(line, 0); got == nil || len(got) != 0 {
		t.Errorf("Expected empty result for zero lags, got %v", got)
	}
	if got := Correlogram(line, 20); got != nil {
		t.Errorf("Expected nil when fewer than two rows remain, got %v", got)
	}
}

func TestCorrelogramBounded(t *testing.T) {
	values := ar1(60, 0.6)
	for i, v := range Correlogram(values, 15) {
		if v < -1 || v > 1 {
			t.Errorf("Lag %d out of range: %f", i, v)
		}
	}

	constant := []float64{3, 3, 3, 3, 3, 3}
	if r := Correlogram(constant, 2); !math.IsNaN(r[0]) {
		t.Errorf("Expected NaN for a constant series, got %f", r[0])
	}
}

func TestACF(t *testing.T) {
	acf := ACF(ar1(100, 0.8), 10)
	if acf == nil {
		t.Fatal("ACF returned nil")
	}
	if math.Abs(acf[0]-1.0) > 1e-10 {
		t.Errorf("ACF at lag 0 should be 1, got %f", acf[0])
	}
	if acf[1] <= 0 {
		t.Errorf("Expected positive lag-1 autocorrelation, got %f", acf[1])
	}

	if ACF([]float64{1, 1, 1}, 2) != nil {
		t.Error("Expected nil ACF for a constant series")
	}
}

func TestPACF(t *testing.T) {
	values := ar1(200, 0.7)
	pacf := PACF(values, 5)
	acf := ACF(values, 5)

	if pacf[0] != 1 {
		t.Errorf("PACF at lag 0 should be 1, got %f", pacf[0])
	}
	if math.Abs(pacf[1]-acf[1]) > 1e-12 {
		t.Errorf("PACF and ACF should agree at lag 1: %f vs %f", pacf[1], acf[1])
	}
}

func TestACFWithConfidence(t *testing.T) {
	res := ACFWithConfidence(ar1(100, 0.8), 10)
	if res == nil {
		t.Fatal("ACFWithConfidence returned nil")
	}
	if math.Abs(res.ConfBounds-0.196) > 1e-12 {
		t.Errorf("Expected bound 0.196, got %f", res.ConfBounds)
	}
	if len(res.Lags) != 11 || res.Lags[10] != 10 {
		t.Errorf("Unexpected lags: %v", res.Lags)
	}

	sig := SignificantLags(res.Values, res.ConfBounds)
	if len(sig) == 0 || sig[0] != 1 {
		t.Errorf("Expected lag 1 to be significant, got %v", sig)
	}
}
