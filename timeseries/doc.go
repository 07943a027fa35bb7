// Package timeseries provides time series data structures and utilities.
//
// A Series holds timestamps and values. Raw groundwater observations arrive
// irregularly spaced; Resample turns them into a regular grid that the
// analysis stages in package freq operate on.
//
// # Creating a Series
//
// From raw points (milliseconds since the epoch):
//
//	raw := timeseries.FromPoints([]timeseries.Point{
//	    {Timestamp: 946684800000, Value: 12.3},
//	    {Timestamp: 949363200000, Value: 12.1},
//	})
//
// From the FREQ CSV format ("timestamp;value"):
//
//	raw, err := timeseries.LoadCSV("001.csv", nil)
//
// # Resampling
//
// Average observations per month and interpolate empty months:
//
//	opts := timeseries.DefaultResampleOptions()
//	opts.Interpolation = timeseries.Nearest
//	monthly, err := timeseries.Resample(raw, opts)
//
// Frequencies and interpolation methods can be parsed from their usual
// names with ParseFrequency ("M", "monthly") and ParseInterpolation
// ("linear", "time", "nearest", "previous").
//
// # Chart Output
//
// XY converts a series into {x, y} points where x is epoch milliseconds.
// The Float type encodes NaN and infinities as JSON strings so results can
// be consumed by JavaScript clients.
package timeseries
