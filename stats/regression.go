package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LinRegressResult represents a simple linear regression of y on x.
type LinRegressResult struct {
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation coefficient
	PValue    float64 // two-sided test of zero slope
	StdErr    float64 // standard error of the slope
}

// LinRegress fits y = Slope*x + Intercept by ordinary least squares.
// A constant y gives R = NaN.
func LinRegress(x, y []float64) LinRegressResult {
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r := stat.Correlation(x, y, nil)

	res := LinRegressResult{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		PValue:    math.NaN(),
		StdErr:    math.NaN(),
	}

	dof := float64(len(x) - 2)
	if dof <= 0 || math.IsNaN(r) {
		return res
	}

	meanX, meanY := stat.Mean(x, nil), stat.Mean(y, nil)
	ssx, ssy := sumSquares(x, meanX), sumSquares(y, meanY)
	res.StdErr = math.Sqrt((1 - r*r) * ssy / ssx / dof)

	if math.Abs(r) >= 1 {
		res.PValue = 0
		return res
	}
	t := r * math.Sqrt(dof/((1-r)*(1+r)))
	res.PValue = studentsTTwoSided(t, dof)
	return res
}
