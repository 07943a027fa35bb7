package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a regression design matrix has rank zero or
// fewer rows than columns.
var ErrSingular = errors.New("design matrix is singular")

// OLSResult holds an ordinary least squares fit.
type OLSResult struct {
	Coeffs    []float64
	StdErrors []float64 // nil without residual degrees of freedom or full rank
	Fitted    []float64
	SSR       float64 // sum of squared residuals
	NObs      int
	Rank      int // effective rank of x
}

// OLS regresses y on the columns of x. A rank deficient x falls back to the
// minimum norm least squares solution, as a pseudo-inverse fit would give;
// standard errors are then not reported.
func OLS(x *mat.Dense, y []float64) (*OLSResult, error) {
	n, k := x.Dims()
	if n != len(y) {
		return nil, errors.New("design matrix and response have different lengths")
	}
	if n < k {
		return nil, ErrSingular
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	rank := k
	if rankDeficient(x, &qr) {
		var err error
		if rank, err = minNorm(&beta, x, y); err != nil {
			return nil, err
		}
	} else if err := qr.SolveTo(&beta, false, mat.NewDense(n, 1, y)); err != nil {
		return nil, ErrSingular
	}

	res := &OLSResult{
		Coeffs: mat.Col(nil, 0, &beta),
		Fitted: make([]float64, n),
		NObs:   n,
		Rank:   rank,
	}

	var fitted mat.VecDense
	fitted.MulVec(x, beta.ColView(0))
	for i := 0; i < n; i++ {
		res.Fitted[i] = fitted.AtVec(i)
		r := y[i] - res.Fitted[i]
		res.SSR += r * r
	}

	if n <= k || rank < k {
		return res, nil
	}

	var xtx, inv mat.Dense
	xtx.Mul(x.T(), x)
	if err := inv.Inverse(&xtx); err != nil {
		return res, nil
	}
	s2 := res.SSR / float64(n-k)
	res.StdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		res.StdErrors[i] = math.Sqrt(s2 * inv.At(i, i))
	}

	return res, nil
}

// minNorm solves min |y - x·beta| with the smallest |beta| through a thin SVD
// and returns the effective rank of x.
func minNorm(dst *mat.Dense, x *mat.Dense, y []float64) (int, error) {
	n, k := x.Dims()

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return 0, ErrSingular
	}
	rank := svd.Rank(float64(max(n, k)) * epsilon)
	if rank == 0 {
		return 0, ErrSingular
	}
	svd.SolveTo(dst, mat.NewDense(n, 1, y), rank)
	return rank, nil
}

// rankDeficient reports whether a diagonal element of R is negligible
// relative to the largest column norm of x, using the matrix_rank tolerance.
func rankDeficient(x *mat.Dense, qr *mat.QR) bool {
	n, k := x.Dims()

	largest := 0.0
	for j := 0; j < k; j++ {
		largest = math.Max(largest, mat.Norm(x.ColView(j), 2))
	}
	tol := largest * float64(max(n, k)) * epsilon

	var r mat.Dense
	qr.RTo(&r)
	for i := 0; i < k; i++ {
		if math.Abs(r.At(i, i)) <= tol {
			return true
		}
	}
	return false
}

const epsilon = 2.220446049250313e-16
