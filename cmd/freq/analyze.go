package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/internal/api"
	"github.com/sartorproj/gofreq/timeseries"
)

type analyzeOptions struct {
	file            string
	delimiter       string
	timestampColumn string
	valueColumn     string
	dateFormat      string

	frequency     string
	interpolation string
	start         string
	end           string

	trend         string
	breakpoint    string
	alpha         float64
	detrendAnyway bool

	harmonics int
	lags      int
	order     int
	autoOrder bool
	maxOrder  int
	criterion string

	output string
}

// analyzeCmd runs the full decomposition of a CSV record
func analyzeCmd() *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Decompose a time series read from a CSV file",
		Long: `Reads a "timestamp;value" CSV file, resamples it and runs trend removal,
harmonic decomposition, correlogram and autoregressive fitting in order.
Flags override the analysis defaults of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := o.pipelineOptions(cmd)
			if err != nil {
				return err
			}

			csvOpts := timeseries.DefaultCSVOptions()
			csvOpts.TimestampColumn = o.timestampColumn
			csvOpts.ValueColumn = o.valueColumn
			csvOpts.DateFormat = o.dateFormat
			if o.delimiter != "" {
				csvOpts.Delimiter = []rune(o.delimiter)[0]
			}

			raw, err := timeseries.LoadCSV(o.file, csvOpts)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", o.file, err)
			}
			raw.Name = o.file

			logger := newLogger()
			logger.WithField("file", o.file).WithField("observations", raw.Len()).Info("Loaded time series")

			pipeline := freq.NewPipeline(freq.New(cfg.AnalyzerConfig()), opts, logger)
			report, err := pipeline.Run(cmd.Context(), raw)
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), o.output, api.NewAnalyzeResponse(report))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.file, "file", "f", "", "CSV file to analyze")
	f.StringVar(&o.delimiter, "delimiter", ";", "CSV field delimiter")
	f.StringVar(&o.timestampColumn, "timestamp-column", "timestamp", "Name of the timestamp column")
	f.StringVar(&o.valueColumn, "value-column", "value", "Name of the value column")
	f.StringVar(&o.dateFormat, "date-format", "", "Go time layout tried before the built-in ones")

	f.StringVar(&o.frequency, "frequency", "M", "Resampling frequency (D, W, M, Q, A)")
	f.StringVar(&o.interpolation, "interpolation", "linear", "Gap filling (linear, time, nearest, previous)")
	f.StringVar(&o.start, "start", "", "First date of the analysis window (YYYY-MM-DD)")
	f.StringVar(&o.end, "end", "", "Last date of the analysis window (YYYY-MM-DD)")

	f.StringVar(&o.trend, "trend", "none", "Trend to remove (none, step, linear)")
	f.StringVar(&o.breakpoint, "breakpoint", "", "Date of the step for --trend step (YYYY-MM-DD)")
	f.Float64Var(&o.alpha, "alpha", 0.05, "Significance level of the trend test")
	f.BoolVar(&o.detrendAnyway, "detrend-anyway", true, "Remove the trend even when it is not significant")

	f.IntVar(&o.harmonics, "harmonics", 3, "Number of harmonics to remove")
	f.IntVar(&o.lags, "lags", 12, "Number of correlogram lags")
	f.IntVar(&o.order, "order", 2, "Autoregressive order")
	f.BoolVar(&o.autoOrder, "auto-order", false, "Select the autoregressive order by information criterion")
	f.IntVar(&o.maxOrder, "max-order", 12, "Largest order considered by --auto-order")
	f.StringVar(&o.criterion, "criterion", "aic", "Order selection criterion (aic, bic)")

	f.StringVarP(&o.output, "output", "o", "text", "Output format (text, json, yaml)")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// pipelineOptions starts from the configured defaults and applies every
// flag the user set explicitly.
func (o *analyzeOptions) pipelineOptions(cmd *cobra.Command) (freq.Options, error) {
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return opts, err
	}
	changed := cmd.Flags().Changed

	if changed("frequency") {
		if opts.Resample.Frequency, err = timeseries.ParseFrequency(o.frequency); err != nil {
			return opts, err
		}
	}
	if changed("interpolation") {
		if opts.Resample.Interpolation, err = timeseries.ParseInterpolation(o.interpolation); err != nil {
			return opts, err
		}
	}
	if opts.Resample.Start, err = parseDate("start", o.start); err != nil {
		return opts, err
	}
	if opts.Resample.End, err = parseDate("end", o.end); err != nil {
		return opts, err
	}

	if opts.Trend.Kind, err = freq.ParseTrendKind(o.trend); err != nil {
		return opts, err
	}
	if opts.Trend.BreakpointTime, err = parseDate("breakpoint", o.breakpoint); err != nil {
		return opts, err
	}
	if opts.Trend.Kind == freq.TrendStep && opts.Trend.BreakpointTime.IsZero() {
		return opts, fmt.Errorf("--breakpoint is required for a step trend")
	}
	if changed("alpha") {
		opts.Trend.Alpha = o.alpha
	}
	opts.Trend.DetrendAnyway = o.detrendAnyway

	if changed("harmonics") {
		opts.Harmonics = o.harmonics
	}
	if changed("lags") {
		opts.Lags = o.lags
	}
	if changed("order") {
		opts.Order = o.order
	}
	if changed("auto-order") {
		opts.AutoOrder = o.autoOrder
	}
	if changed("max-order") {
		opts.MaxOrder = o.maxOrder
	}
	if changed("criterion") {
		if opts.Criterion, err = ar.ParseCriterion(o.criterion); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", flag, value, err)
	}
	return t, nil
}
