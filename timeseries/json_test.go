package timeseries

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{1.5, `1.5`},
		{0, `0`},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"Infinity"`},
		{math.Inf(-1), `"-Infinity"`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(Float(tt.in))
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != tt.expected {
			t.Errorf("Marshal(%v): expected %s, got %s", tt.in, tt.expected, data)
		}
	}

	var f Float
	if err := json.Unmarshal([]byte(`"NaN"`), &f); err != nil || !math.IsNaN(float64(f)) {
		t.Errorf("Expected NaN, got %v (%v)", f, err)
	}
	if err := json.Unmarshal([]byte(`2.25`), &f); err != nil || f != 2.25 {
		t.Errorf("Expected 2.25, got %v (%v)", f, err)
	}
	if err := json.Unmarshal([]byte(`"big"`), &f); err == nil {
		t.Error("Expected error for unknown sentinel")
	}
}

func TestXY(t *testing.T) {
	s := New([]float64{1, math.NaN()})
	points := s.XY()
	if points[1].X != 1 {
		t.Errorf("Expected index fallback for X, got %d", points[1].X)
	}

	data, err := json.Marshal(points)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `[{"x":0,"y":1},{"x":1,"y":"NaN"}]` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	stamped, _ := NewWithTimestamps([]time.Time{time.UnixMilli(86400000).UTC()}, []float64{3})
	if stamped.XY()[0].X != 86400000 {
		t.Errorf("Expected epoch milliseconds, got %d", stamped.XY()[0].X)
	}
}
