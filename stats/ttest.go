package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult represents the result of a two-sample t-test.
type TTestResult struct {
	Statistic float64
	PValue    float64 // two-sided
	DOF       float64
}

// TTestInd performs a two-sided Student t-test for the means of two
// independent samples, assuming equal variances (pooled variance).
//
// Degenerate inputs do not fail: an empty sample or zero degrees of freedom
// give NaN results, and two zero-variance samples give an infinite statistic
// with p = 0 when their means differ and NaN when they do not.
func TTestInd(a, b []float64) TTestResult {
	na, nb := float64(len(a)), float64(len(b))
	dof := na + nb - 2
	if len(a) == 0 || len(b) == 0 || dof <= 0 {
		return TTestResult{Statistic: math.NaN(), PValue: math.NaN(), DOF: dof}
	}

	meanA, meanB := stat.Mean(a, nil), stat.Mean(b, nil)
	pooled := (sumSquares(a, meanA) + sumSquares(b, meanB)) / dof
	se := math.Sqrt(pooled * (1/na + 1/nb))
	t := (meanA - meanB) / se

	return TTestResult{Statistic: t, PValue: studentsTTwoSided(t, dof), DOF: dof}
}

// studentsTTwoSided returns P(|T| >= |t|) for a Student t with dof degrees of
// freedom.
func studentsTTwoSided(t, dof float64) float64 {
	switch {
	case math.IsNaN(t):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	return math.Min(1, 2*dist.Survival(math.Abs(t)))
}

func sumSquares(x []float64, mean float64) float64 {
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss
}
