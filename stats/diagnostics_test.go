package stats

import (
	"math"
	"testing"
)

// lcg gives a reproducible, roughly white sequence in [-0.5, 0.5).
func lcg(n int, seed uint32) []float64 {
	out := make([]float64, n)
	s := seed
	for i := range out {
		s = s*1664525 + 1013904223
		out[i] = float64(s)/float64(1<<32) - 0.5
	}
	return out
}

func TestLjungBox(t *testing.T) {
	res := LjungBox(lcg(200, 7), 10, 0)
	if res == nil {
		t.Fatal("LjungBox returned nil")
	}
	if res.DOF != 10 {
		t.Errorf("Expected 10 degrees of freedom, got %d", res.DOF)
	}
	if res.PValue < 0.01 {
		t.Errorf("White noise should not be flagged, p = %f", res.PValue)
	}

	trended := ar1(200, 0.95)
	if res := LjungBox(trended, 10, 0); res == nil || res.PValue > 0.05 {
		t.Errorf("Expected significant autocorrelation, got %+v", res)
	}

	if LjungBox([]float64{1, 2, 3}, 2, 0) != nil {
		t.Error("Expected nil for short input")
	}
}

func TestLjungBoxFitDF(t *testing.T) {
	res := LjungBox(lcg(100, 3), 5, 8)
	if res.DOF != 1 {
		t.Errorf("Degrees of freedom should be floored at 1, got %d", res.DOF)
	}
}

func TestDurbinWatson(t *testing.T) {
	tests := []struct {
		name      string
		residuals []float64
		expected  float64
	}{
		{"alternating", []float64{1, -1, 1, -1}, 3},
		{"constant", []float64{1, 1, 1, 1}, 0},
		{"zeros", []float64{0, 0, 0}, 0},
		{"too short", []float64{1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DurbinWatson(tc.residuals); math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestADF(t *testing.T) {
	stationary := lcg(200, 11)
	res := ADF(stationary, 0)
	if res == nil {
		t.Fatal("ADF returned nil")
	}
	if !res.IsStationary {
		t.Errorf("Expected white noise to be stationary, stat=%f p=%f", res.Statistic, res.PValue)
	}
	if res.Lags != 5 {
		t.Errorf("Expected 5 lags for n=200, got %d", res.Lags)
	}

	walk := make([]float64, 200)
	noise := lcg(200, 5)
	for i := 1; i < len(walk); i++ {
		walk[i] = walk[i-1] + noise[i] + 0.5
	}
	if res := ADF(walk, 0); res == nil || res.IsStationary {
		t.Errorf("Expected a trending random walk to have a unit root, got %+v", res)
	}

	if ADF([]float64{1, 2, 3}, 0) != nil {
		t.Error("Expected nil for short input")
	}
}

func TestKPSS(t *testing.T) {
	res := KPSS(lcg(200, 13), RegressionConstant, 0)
	if res == nil {
		t.Fatal("KPSS returned nil")
	}
	if !res.IsStationary {
		t.Errorf("Expected white noise to be level stationary, stat=%f", res.Statistic)
	}

	trend := make([]float64, 200)
	noise := lcg(200, 17)
	for i := range trend {
		trend[i] = 0.1*float64(i) + noise[i]
	}
	if res := KPSS(trend, RegressionConstant, 0); res.IsStationary {
		t.Errorf("Expected a trend to reject level stationarity, stat=%f", res.Statistic)
	}
	if res := KPSS(trend, RegressionTrend, 0); !res.IsStationary {
		t.Errorf("Expected a trend to be trend stationary, stat=%f", res.Statistic)
	}
}

func TestInterpolatePValue(t *testing.T) {
	table := kpssCritical(RegressionConstant)

	tests := []struct {
		stat, expected float64
	}{
		{0.1, 0.10},
		{0.347, 0.10},
		{0.405, 0.075},
		{0.739, 0.01},
		{2.0, 0.01},
	}

	for _, tc := range tests {
		if got := interpolatePValue(tc.stat, table); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("interpolatePValue(%f): expected %f, got %f", tc.stat, tc.expected, got)
		}
	}
}

func TestNDiffs(t *testing.T) {
	if d := NDiffs(lcg(200, 19), 2); d != 0 {
		t.Errorf("Expected 0 differences for white noise, got %d", d)
	}

	trend := make([]float64, 200)
	noise := lcg(200, 23)
	for i := range trend {
		trend[i] = 0.1*float64(i) + noise[i]
	}
	if d := NDiffs(trend, 2); d != 1 {
		t.Errorf("Expected 1 difference for a linear trend, got %d", d)
	}
}
