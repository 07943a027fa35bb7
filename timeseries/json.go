package timeseries

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 that survives JSON encoding: NaN and infinities are
// written as the strings "NaN", "Infinity" and "-Infinity".
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "Infinity":
			*f = Float(math.Inf(1))
		case "-Infinity":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid float sentinel %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// MarshalYAML renders the same sentinels for YAML output.
func (f Float) MarshalYAML() (interface{}, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN", nil
	case math.IsInf(v, 1):
		return "Infinity", nil
	case math.IsInf(v, -1):
		return "-Infinity", nil
	}
	return v, nil
}

// Floats converts a slice for encoding.
func Floats(values []float64) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}

// XY is one chart point. X is milliseconds since the Unix epoch, or the
// sample index when the series has no timestamps.
type XY struct {
	X int64 `json:"x" yaml:"x"`
	Y Float `json:"y" yaml:"y"`
}

// XY converts the series into chart points.
func (s *Series) XY() []XY {
	out := make([]XY, len(s.Values))
	stamped := s.HasTimestamps()
	for i, v := range s.Values {
		x := int64(i)
		if stamped {
			x = s.Timestamps[i].UnixMilli()
		}
		out[i] = XY{X: x, Y: Float(v)}
	}
	return out
}
