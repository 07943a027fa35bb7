package freq

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gofreq/timeseries"
)

// Harmonic is one periodic component removed from a series.
type Harmonic struct {
	Bin    int     // frequency bin, cycles per series length
	Period float64 // in samples; +Inf for bin 0
	A      float64 // cosine amplitude
	B      float64 // sine amplitude
	Power  float64
}

// HarmonicResult holds the outcome of a harmonic decomposition.
type HarmonicResult struct {
	Detrended *timeseries.Series
	Trend     *timeseries.Series
	Harmonics []Harmonic // strongest first

	// Spectrum holds the power of bins 0..floor(n/2)-1, the last one halved.
	Spectrum []float64
	// CumulativePower is the running sum of Spectrum normalized by its total.
	CumulativePower []float64
	// EquivalentPeriod[i] is m/(i+1), with m = len(Spectrum).
	EquivalentPeriod []float64
}

// Harmonic removes the k most powerful periodic components of a series.
// The series is mean-centered and transformed with a real FFT; the
// coefficients of each bin are normalized by n, bins are ranked by power
// (ties keep the lower bin first) and the top k are summed back into a
// harmonic trend that is subtracted from the centered data.
//
// The reconstruction uses a·cos(2πft/n) + b·sin(2πft/n) with the raw
// normalized coefficients, so Detrended + Trend equals the centered input.
// k == 0 removes nothing but the mean. A constant series has zero total
// power and yields a NaN cumulative spectrum.
func (a *Analyzer) Harmonic(s *timeseries.Series, k int) (*HarmonicResult, error) {
	if err := a.checkSamples(s); err != nil {
		return nil, err
	}
	n := s.Len()
	m := n / 2
	if k < 0 || k > m {
		return nil, newValidationErrorf("harmonics", "the number of harmonics has to be between 0 and %d", m)
	}

	centered := make([]float64, n)
	copy(centered, s.Values)
	floats.AddConst(-stat.Mean(centered, nil), centered)

	coeffs := fourier.NewFFT(n).Coefficients(nil, centered)
	nf := float64(n)
	af := make([]float64, m)
	bf := make([]float64, m)
	spectrum := make([]float64, m)
	for i := 0; i < m; i++ {
		af[i] = real(coeffs[i]) / nf
		bf[i] = imag(coeffs[i]) / nf
		spectrum[i] = af[i]*af[i] + bf[i]*bf[i]
	}
	spectrum[m-1] /= 2

	total := floats.Sum(spectrum)
	cumulative := make([]float64, m)
	floats.CumSum(cumulative, spectrum)
	floats.Scale(1/total, cumulative)

	equivalent := make([]float64, m)
	for i := range equivalent {
		equivalent[i] = float64(m) / float64(i+1)
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return spectrum[order[i]] > spectrum[order[j]]
	})

	trend := make([]float64, n)
	harmonics := make([]Harmonic, 0, k)
	for _, bin := range order[:k] {
		w := 2 * math.Pi * float64(bin) / nf
		for t := range trend {
			trend[t] += af[bin]*math.Cos(w*float64(t)) + bf[bin]*math.Sin(w*float64(t))
		}
		harmonics = append(harmonics, Harmonic{
			Bin:    bin,
			Period: nf / float64(bin),
			A:      af[bin],
			B:      bf[bin],
			Power:  spectrum[bin],
		})
	}

	detrended := make([]float64, n)
	floats.SubTo(detrended, centered, trend)

	return &HarmonicResult{
		Detrended:        s.Derive(detrended, s.Name),
		Trend:            s.Derive(trend, "harmonic trend"),
		Harmonics:        harmonics,
		Spectrum:         spectrum,
		CumulativePower:  cumulative,
		EquivalentPeriod: equivalent,
	}, nil
}
