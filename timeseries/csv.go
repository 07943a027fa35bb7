package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimestampColumn string // Column name for timestamps (default: "timestamp")
	ValueColumn     string // Column name for values (default: "value")
	DateFormat      string // Preferred layout, tried before the built-in ones
	Delimiter       rune   // Field delimiter (default: ';')
	SkipRows        int    // Number of rows to skip before the header
}

// DefaultCSVOptions returns options for the FREQ export format:
// a "timestamp;value" header followed by one observation per row.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimestampColumn: "timestamp",
		ValueColumn:     "value",
		Delimiter:       ';',
	}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
}

// LoadCSV loads an irregular series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads an irregular series from an io.Reader. Rows with an
// empty, "NA" or "NaN" value are skipped; a row with an unparseable timestamp
// or value is an error.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	tsIdx, valIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.Trim(h, "\"")) {
		case opts.TimestampColumn:
			tsIdx = i
		case opts.ValueColumn:
			valIdx = i
		}
	}
	if tsIdx < 0 || valIdx < 0 {
		return nil, fmt.Errorf("header must contain %q and %q columns", opts.TimestampColumn, opts.ValueColumn)
	}

	var (
		timestamps []time.Time
		values     []float64
	)
	for line := 2 + opts.SkipRows; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if tsIdx >= len(record) || valIdx >= len(record) {
			return nil, fmt.Errorf("line %d: missing columns", line)
		}

		valStr := strings.TrimSpace(record[valIdx])
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q", line, valStr)
		}
		ts, err := parseTimestamp(strings.TrimSpace(record[tsIdx]), opts.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		timestamps = append(timestamps, ts)
		values = append(values, val)
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	return &Series{Timestamps: timestamps, Values: values}, nil
}

// parseTimestamp accepts the preferred layout, common ISO layouts and
// integer milliseconds since the Unix epoch.
func parseTimestamp(s, preferred string) (time.Time, error) {
	if preferred != "" {
		if t, err := time.Parse(preferred, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
