// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNotIncreasing is returned when timestamps are not strictly increasing.
var ErrNotIncreasing = errors.New("timestamps must be strictly increasing")

// Series represents a time series with timestamps and values.
//
// An irregular series (as received from a data source) has a zero Frequency.
// A regular series produced by Resample carries the grid frequency and has
// one value per grid step, without gaps.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Frequency  Frequency
}

// New creates a series from values only. The values are copied and the
// series has no timestamps; chart output falls back to the index.
func New(values []float64) *Series {
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{Values: v}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, ErrNotIncreasing
		}
	}
	ts := make([]time.Time, len(timestamps))
	copy(ts, timestamps)
	v := make([]float64, len(values))
	copy(v, values)
	return &Series{Timestamps: ts, Values: v}, nil
}

// Point is one raw observation as delivered by a data source: a timestamp in
// milliseconds since the Unix epoch and a value.
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// FromPoints builds an irregular series from raw points. Points are sorted by
// timestamp; duplicated timestamps are kept and later averaged by Resample.
// NaN values are dropped.
func FromPoints(points []Point) *Series {
	sorted := make([]Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) {
			continue
		}
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	s := &Series{
		Timestamps: make([]time.Time, len(sorted)),
		Values:     make([]float64, len(sorted)),
	}
	for i, p := range sorted {
		s.Timestamps[i] = time.UnixMilli(p.Timestamp).UTC()
		s.Values[i] = p.Value
	}
	return s
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether every value has a timestamp.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) == len(s.Values) && len(s.Values) > 0
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the unbiased sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Diff calculates the first difference of the series.
func (s *Series) Diff() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}, Name: s.Name + "_diff"}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		result[i-1] = s.Values[i] - s.Values[i-1]
	}

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[1:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_diff",
		Frequency:  s.Frequency,
	}
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name, Frequency: s.Frequency}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if s.HasTimestamps() {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Frequency:  s.Frequency,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return s.Derive(s.Values, s.Name)
}

// Derive returns a new series on the same time axis with the given values,
// which are copied. It panics if the lengths differ.
func (s *Series) Derive(values []float64, name string) *Series {
	if len(values) != len(s.Values) {
		panic("timeseries: derived values do not match series length")
	}

	v := make([]float64, len(values))
	copy(v, values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     v,
		Name:       name,
		Frequency:  s.Frequency,
	}
}

// IndexAt returns the index of the first sample at or after t. It returns
// Len() when t is after the last sample and -1 when the series has no
// timestamps.
func (s *Series) IndexAt(t time.Time) int {
	if !s.HasTimestamps() {
		return -1
	}
	return sort.Search(len(s.Timestamps), func(i int) bool {
		return !s.Timestamps[i].Before(t)
	})
}
