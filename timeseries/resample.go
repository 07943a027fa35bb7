package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

var (
	// ErrEmptySeries is returned when there is nothing to resample.
	ErrEmptySeries = errors.New("series has no observations")
	// ErrInvalidRange is returned when the requested start is after the end.
	ErrInvalidRange = errors.New("start date must not be after end date")
)

// Frequency is the step of a regular grid.
type Frequency int

const (
	// Irregular marks a series that has not been resampled.
	Irregular Frequency = iota
	Daily
	Weekly // weeks ending on Sunday
	Monthly
	Quarterly
	Yearly
)

var frequencyAliases = map[string]Frequency{
	"d": Daily, "day": Daily, "daily": Daily,
	"w": Weekly, "w-sun": Weekly, "week": Weekly, "weekly": Weekly,
	"m": Monthly, "me": Monthly, "month": Monthly, "monthly": Monthly,
	"q": Quarterly, "qe": Quarterly, "quarter": Quarterly, "quarterly": Quarterly,
	"a": Yearly, "y": Yearly, "ye": Yearly, "year": Yearly, "yearly": Yearly, "annual": Yearly,
}

// ParseFrequency parses a pandas-style alias ("D", "W", "M", "Q", "A") or a
// plain name ("monthly").
func ParseFrequency(s string) (Frequency, error) {
	f, ok := frequencyAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Irregular, fmt.Errorf("unknown frequency %q", s)
	}
	return f, nil
}

// String returns the pandas alias of the frequency.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "D"
	case Weekly:
		return "W"
	case Monthly:
		return "M"
	case Quarterly:
		return "Q"
	case Yearly:
		return "A"
	default:
		return "irregular"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(text []byte) error {
	if string(text) == "irregular" || len(text) == 0 {
		*f = Irregular
		return nil
	}
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// bucketStart returns the start of the bucket containing t.
func (f Frequency) bucketStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch f {
	case Weekly:
		sinceMonday := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -sinceMonday)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		m := ((int(t.Month())-1)/3)*3 + 1
		return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// next returns the start of the bucket following the one starting at start.
func (f Frequency) next(start time.Time) time.Time {
	switch f {
	case Weekly:
		return start.AddDate(0, 0, 7)
	case Monthly:
		return start.AddDate(0, 1, 0)
	case Quarterly:
		return start.AddDate(0, 3, 0)
	case Yearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// label returns the period-end label of the bucket starting at start.
func (f Frequency) label(start time.Time) time.Time {
	if f == Daily {
		return start
	}
	return f.next(start).AddDate(0, 0, -1)
}

// Interpolation selects how empty buckets are filled.
type Interpolation int

const (
	Linear Interpolation = iota
	// Time interpolates linearly in elapsed time rather than grid index.
	Time
	Nearest
	// Previous carries the last observed bucket forward.
	Previous
)

// ParseInterpolation parses an interpolation method name.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "time":
		return Time, nil
	case "nearest":
		return Nearest, nil
	case "previous", "pad", "ffill", "zero":
		return Previous, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation method %q", s)
	}
}

func (m Interpolation) String() string {
	switch m {
	case Time:
		return "time"
	case Nearest:
		return "nearest"
	case Previous:
		return "previous"
	default:
		return "linear"
	}
}

// ResampleOptions controls Resample. Zero Start and End default to the first
// and last observation.
type ResampleOptions struct {
	Start         time.Time
	End           time.Time
	Frequency     Frequency
	Interpolation Interpolation
}

// DefaultResampleOptions returns monthly buckets with linear interpolation.
func DefaultResampleOptions() ResampleOptions {
	return ResampleOptions{Frequency: Monthly, Interpolation: Linear}
}

// Resample converts an irregular series into a regular one. Values falling
// into the same bucket are averaged, empty buckets are interpolated and the
// grid is clipped to the labels inside [Start, End]. Labels are period ends,
// so a trailing bucket whose end lies past End is dropped even when it holds
// observations.
//
// Resample does not enforce a minimum length; callers that need one must
// check it themselves.
func Resample(s *Series, opts ResampleOptions) (*Series, error) {
	if s.Len() == 0 || !s.HasTimestamps() {
		return nil, ErrEmptySeries
	}
	freq := opts.Frequency
	if freq == Irregular {
		freq = Monthly
	}

	idx := make([]int, s.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return s.Timestamps[idx[a]].Before(s.Timestamps[idx[b]]) })

	first := s.Timestamps[idx[0]]
	last := s.Timestamps[idx[len(idx)-1]]
	start, end := opts.Start, opts.End
	if start.IsZero() {
		start = first
	}
	if end.IsZero() {
		end = last
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	var (
		starts []time.Time
		values []float64
	)
	j := 0
	for b := freq.bucketStart(first); !b.After(last); b = freq.next(b) {
		nb := freq.next(b)
		sum, count := 0.0, 0
		for j < len(idx) && s.Timestamps[idx[j]].Before(nb) {
			sum += s.Values[idx[j]]
			count++
			j++
		}
		starts = append(starts, b)
		if count == 0 {
			values = append(values, math.NaN())
		} else {
			values = append(values, sum/float64(count))
		}
	}

	labels := make([]time.Time, len(starts))
	for i, b := range starts {
		labels[i] = freq.label(b)
	}
	interpolate(values, labels, opts.Interpolation)

	out := &Series{Name: s.Name, Frequency: freq}
	for i, l := range labels {
		if l.Before(start) || l.After(end) {
			continue
		}
		out.Timestamps = append(out.Timestamps, l)
		out.Values = append(out.Values, values[i])
	}
	if out.Values == nil {
		out.Values = []float64{}
	}
	return out, nil
}

// interpolate fills NaN gaps in place. Leading and trailing gaps cannot occur
// because the first and last buckets always hold an observation.
func interpolate(values []float64, at []time.Time, method Interpolation) {
	prev := -1
	for i := 0; i < len(values); i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			fillGap(values, at, prev, i, method)
		}
		prev = i
	}
}

func fillGap(values []float64, at []time.Time, lo, hi int, method Interpolation) {
	for k := lo + 1; k < hi; k++ {
		switch method {
		case Previous:
			values[k] = values[lo]
		case Nearest:
			if k-lo <= hi-k {
				values[k] = values[lo]
			} else {
				values[k] = values[hi]
			}
		case Time:
			span := at[hi].Sub(at[lo]).Seconds()
			w := at[k].Sub(at[lo]).Seconds() / span
			values[k] = values[lo] + w*(values[hi]-values[lo])
		default:
			w := float64(k-lo) / float64(hi-lo)
			values[k] = values[lo] + w*(values[hi]-values[lo])
		}
	}
}
