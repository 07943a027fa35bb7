package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gofreq/internal/api"
	"github.com/sartorproj/gofreq/timeseries"
)

func writeReport(w io.Writer, format string, resp *api.AnalyzeResponse) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return writeText(w, resp)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, resp *api.AnalyzeResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Samples:\t%d (%s)\n", len(resp.Resampled), resp.Frequency)

	t := resp.Trend
	fmt.Fprintf(tw, "Trend:\t%s\tremoved=%t\tsignificant=%t\n", t.Kind, t.Removed, t.Significant)
	switch t.Kind {
	case "step":
		fmt.Fprintf(tw, "\tbreakpoint=%d\tmean before=%s\tmean after=%s\n", t.Breakpoint, num(t.MeanA), num(t.MeanB))
	case "linear":
		fmt.Fprintf(tw, "\tslope=%s\tintercept=%s\tr=%s\n", num(t.Slope), num(t.Intercept), num(t.R))
	}
	for _, line := range strings.Split(t.Explanation, "\n") {
		fmt.Fprintf(tw, "\t%s\n", line)
	}

	fmt.Fprintln(tw, "Harmonics:\tbin\tperiod\tpower")
	for _, h := range resp.Harmonic.Harmonics {
		fmt.Fprintf(tw, "\t%d\t%s\t%s\n", h.Bin, num(h.Period), num(h.Power))
	}

	values := make([]string, len(resp.Correlogram.Values))
	for i, v := range resp.Correlogram.Values {
		values[i] = num(v)
	}
	fmt.Fprintf(tw, "Correlogram:\t%s\n", strings.Join(values, " "))
	if len(resp.Correlogram.SignificantLags) > 0 {
		fmt.Fprintf(tw, "\tsignificant lags %v\n", resp.Correlogram.SignificantLags)
	}

	a := resp.Autoregressive
	params := make([]string, len(a.Params))
	for i, p := range a.Params {
		params[i] = num(p)
	}
	fmt.Fprintf(tw, "Autoregressive:\tAR(%d)\tparams=[%s]\n", a.Order, strings.Join(params, " "))
	fmt.Fprintf(tw, "\taic=%s\tstd error=%s\tdurbin-watson=%s\n", num(a.AIC), num(a.StdError), num(a.DurbinWatson))
	if a.LjungBox != nil {
		fmt.Fprintf(tw, "\tljung-box Q=%s\tp=%s\n", num(a.LjungBox.Statistic), num(a.LjungBox.PValue))
	}

	if s := resp.Stationarity; s != nil {
		fmt.Fprintf(tw, "Stationarity:\tdifferences=%d\n", s.Differences)
		if s.KPSS != nil {
			fmt.Fprintf(tw, "\tkpss=%s\tp=%s\n", num(s.KPSS.Statistic), num(s.KPSS.PValue))
		}
		if s.ADF != nil {
			fmt.Fprintf(tw, "\tadf=%s\tp=%s\n", num(s.ADF.Statistic), num(s.ADF.PValue))
		}
	}

	return tw.Flush()
}

func num(f timeseries.Float) string {
	return fmt.Sprintf("%.4g", float64(f))
}
