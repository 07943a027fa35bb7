package freq

import (
	"time"

	"github.com/sartorproj/gofreq/timeseries"
)

// noise returns a reproducible sequence in [-0.5, 0.5).
func noise(n int, seed uint32) []float64 {
	out := make([]float64, n)
	s := seed
	for i := range out {
		s = s*1664525 + 1013904223
		out[i] = float64(s)/float64(1<<32) - 0.5
	}
	return out
}

func series(values []float64) *timeseries.Series {
	return timeseries.New(values)
}

// monthly builds a regular month-end series starting January 2000.
func monthly(values []float64) *timeseries.Series {
	ts := make([]time.Time, len(values))
	for i := range ts {
		ts[i] = time.Date(2000, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC)
	}
	s, err := timeseries.NewWithTimestamps(ts, values)
	if err != nil {
		panic(err)
	}
	s.Frequency = timeseries.Monthly
	return s
}

func linspace(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}
