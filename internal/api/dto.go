package api

import (
	"math"
	"time"

	"github.com/sartorproj/gofreq/ar"
	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/timeseries"
)

// SeriesInput carries a series either as timestamped points or as plain
// values on an implicit regular grid.
type SeriesInput struct {
	Points []timeseries.Point `json:"points,omitempty"`
	Values []float64          `json:"values,omitempty"`
}

func (in SeriesInput) series() (*timeseries.Series, error) {
	switch {
	case len(in.Points) > 0:
		return timeseries.FromPoints(in.Points), nil
	case len(in.Values) > 0:
		return timeseries.New(in.Values), nil
	default:
		return nil, timeseries.ErrEmptySeries
	}
}

// ResampleParams selects the regular grid. Start and End are milliseconds
// since the Unix epoch; zero means the first and last observation.
type ResampleParams struct {
	Start         int64  `json:"start,omitempty"`
	End           int64  `json:"end,omitempty"`
	Frequency     string `json:"frequency,omitempty"`
	Interpolation string `json:"interpolation,omitempty"`
}

func (p ResampleParams) apply(opts *timeseries.ResampleOptions) error {
	if p.Start != 0 {
		opts.Start = time.UnixMilli(p.Start).UTC()
	}
	if p.End != 0 {
		opts.End = time.UnixMilli(p.End).UTC()
	}
	if p.Frequency != "" {
		f, err := timeseries.ParseFrequency(p.Frequency)
		if err != nil {
			return invalidParam("frequency", err)
		}
		opts.Frequency = f
	}
	if p.Interpolation != "" {
		m, err := timeseries.ParseInterpolation(p.Interpolation)
		if err != nil {
			return invalidParam("interpolation", err)
		}
		opts.Interpolation = m
	}
	return nil
}

// TrendParams selects the trend removal. BreakpointTime is milliseconds
// since the Unix epoch and takes precedence over Breakpoint.
type TrendParams struct {
	Kind           string   `json:"kind,omitempty"`
	Breakpoint     *int     `json:"breakpoint,omitempty"`
	BreakpointTime int64    `json:"breakpoint_time,omitempty"`
	Alpha          *float64 `json:"alpha,omitempty"`
	DetrendAnyway  *bool    `json:"detrend_anyway,omitempty"`
}

func (p TrendParams) apply(opts *freq.TrendOptions) error {
	if p.Kind != "" {
		k, err := freq.ParseTrendKind(p.Kind)
		if err != nil {
			return invalidParam("kind", err)
		}
		opts.Kind = k
	}
	if p.Breakpoint != nil {
		opts.Breakpoint = *p.Breakpoint
	}
	if p.BreakpointTime != 0 {
		opts.BreakpointTime = time.UnixMilli(p.BreakpointTime).UTC()
	}
	if p.Alpha != nil {
		opts.Alpha = *p.Alpha
	}
	if p.DetrendAnyway != nil {
		opts.DetrendAnyway = *p.DetrendAnyway
	}
	return nil
}

// AutoregressiveParams selects the AR order, or an order search when
// AutoOrder is set.
type AutoregressiveParams struct {
	Order     *int   `json:"order,omitempty"`
	AutoOrder bool   `json:"auto_order,omitempty"`
	MaxOrder  *int   `json:"max_order,omitempty"`
	Criterion string `json:"criterion,omitempty"`
}

func (p AutoregressiveParams) apply(opts *freq.Options) error {
	if p.Order != nil {
		opts.Order = *p.Order
	}
	if p.AutoOrder {
		opts.AutoOrder = true
	}
	if p.MaxOrder != nil {
		opts.MaxOrder = *p.MaxOrder
	}
	if p.Criterion != "" {
		c, err := ar.ParseCriterion(p.Criterion)
		if err != nil {
			return invalidParam("criterion", err)
		}
		opts.Criterion = c
	}
	return nil
}

type ResampleRequest struct {
	SeriesInput
	ResampleParams
}

type TrendRequest struct {
	SeriesInput
	TrendParams
}

type HarmonicRequest struct {
	SeriesInput
	Harmonics *int `json:"harmonics,omitempty"`
}

type CorrelogramRequest struct {
	SeriesInput
	Lags *int `json:"lags,omitempty"`
}

type AutoregressiveRequest struct {
	SeriesInput
	AutoregressiveParams
}

// AnalyzeRequest runs the whole decomposition. Omitted parameters fall back
// to the server defaults.
type AnalyzeRequest struct {
	SeriesInput
	ResampleParams
	SkipResample   bool                 `json:"skip_resample,omitempty"`
	Trend          TrendParams          `json:"trend"`
	Harmonics      *int                 `json:"harmonics,omitempty"`
	Lags           *int                 `json:"lags,omitempty"`
	Autoregressive AutoregressiveParams `json:"autoregressive"`
}

// Options merges the request into defaults.
func (r AnalyzeRequest) Options(defaults freq.Options) (freq.Options, error) {
	opts := defaults
	if err := r.ResampleParams.apply(&opts.Resample); err != nil {
		return opts, err
	}
	opts.SkipResample = r.SkipResample || len(r.Points) == 0
	if err := r.Trend.apply(&opts.Trend); err != nil {
		return opts, err
	}
	if r.Harmonics != nil {
		opts.Harmonics = *r.Harmonics
	}
	if r.Lags != nil {
		opts.Lags = *r.Lags
	}
	if err := r.Autoregressive.apply(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

type TrendResponse struct {
	Kind        string           `json:"kind" yaml:"kind"`
	Detrended   []timeseries.XY  `json:"detrended" yaml:"detrended"`
	Trend       []timeseries.XY  `json:"trend" yaml:"trend"`
	Breakpoint  int              `json:"breakpoint" yaml:"breakpoint"`
	MeanA       timeseries.Float `json:"mean_a" yaml:"mean_a"`
	MeanB       timeseries.Float `json:"mean_b" yaml:"mean_b"`
	Slope       timeseries.Float `json:"slope" yaml:"slope"`
	Intercept   timeseries.Float `json:"intercept" yaml:"intercept"`
	R           timeseries.Float `json:"r" yaml:"r"`
	PValue      timeseries.Float `json:"p_value" yaml:"p_value"`
	TStatistic  timeseries.Float `json:"t_statistic" yaml:"t_statistic"`
	Significant bool             `json:"significant" yaml:"significant"`
	Removed     bool             `json:"removed" yaml:"removed"`
	Explanation string           `json:"explanation" yaml:"explanation"`
}

func NewTrendResponse(r *freq.TrendResult) *TrendResponse {
	return &TrendResponse{
		Kind:        r.Kind.String(),
		Detrended:   r.Detrended.XY(),
		Trend:       r.Trend.XY(),
		Breakpoint:  r.Breakpoint,
		MeanA:       timeseries.Float(r.MeanA),
		MeanB:       timeseries.Float(r.MeanB),
		Slope:       timeseries.Float(r.Slope),
		Intercept:   timeseries.Float(r.Intercept),
		R:           timeseries.Float(r.R),
		PValue:      timeseries.Float(r.PValue),
		TStatistic:  timeseries.Float(r.TStatistic),
		Significant: r.Significant,
		Removed:     r.Removed,
		Explanation: r.Explanation,
	}
}

type HarmonicComponent struct {
	Bin    int              `json:"bin" yaml:"bin"`
	Period timeseries.Float `json:"period" yaml:"period"`
	A      timeseries.Float `json:"a" yaml:"a"`
	B      timeseries.Float `json:"b" yaml:"b"`
	Power  timeseries.Float `json:"power" yaml:"power"`
}

type HarmonicResponse struct {
	Detrended        []timeseries.XY     `json:"detrended" yaml:"detrended"`
	Trend            []timeseries.XY     `json:"trend" yaml:"trend"`
	Harmonics        []HarmonicComponent `json:"harmonics" yaml:"harmonics"`
	Spectrum         []timeseries.Float  `json:"spectrum" yaml:"spectrum"`
	CumulativePower  []timeseries.Float  `json:"cumulative_power" yaml:"cumulative_power"`
	EquivalentPeriod []timeseries.Float  `json:"equivalent_period" yaml:"equivalent_period"`
}

func NewHarmonicResponse(r *freq.HarmonicResult) *HarmonicResponse {
	components := make([]HarmonicComponent, len(r.Harmonics))
	for i, h := range r.Harmonics {
		components[i] = HarmonicComponent{
			Bin:    h.Bin,
			Period: timeseries.Float(h.Period),
			A:      timeseries.Float(h.A),
			B:      timeseries.Float(h.B),
			Power:  timeseries.Float(h.Power),
		}
	}
	return &HarmonicResponse{
		Detrended:        r.Detrended.XY(),
		Trend:            r.Trend.XY(),
		Harmonics:        components,
		Spectrum:         timeseries.Floats(r.Spectrum),
		CumulativePower:  timeseries.Floats(r.CumulativePower),
		EquivalentPeriod: timeseries.Floats(r.EquivalentPeriod),
	}
}

type CorrelogramResponse struct {
	Values          []timeseries.Float `json:"values" yaml:"values"`
	ACF             []timeseries.Float `json:"acf,omitempty" yaml:"acf,omitempty"`
	PACF            []timeseries.Float `json:"pacf,omitempty" yaml:"pacf,omitempty"`
	ConfidenceBound timeseries.Float   `json:"confidence_bound" yaml:"confidence_bound"`
	SignificantLags []int              `json:"significant_lags" yaml:"significant_lags"`
}

func NewCorrelogramResponse(r *freq.CorrelogramResult) *CorrelogramResponse {
	resp := &CorrelogramResponse{
		Values:          timeseries.Floats(r.Values),
		ConfidenceBound: timeseries.Float(math.NaN()),
		SignificantLags: r.SignificantLags,
	}
	if resp.SignificantLags == nil {
		resp.SignificantLags = []int{}
	}
	if r.ACF != nil {
		resp.ACF = timeseries.Floats(r.ACF.Values)
		resp.ConfidenceBound = timeseries.Float(r.ACF.ConfBounds)
	}
	if r.PACF != nil {
		resp.PACF = timeseries.Floats(r.PACF.Values)
	}
	return resp
}

type TestStatistic struct {
	Statistic timeseries.Float `json:"statistic" yaml:"statistic"`
	PValue    timeseries.Float `json:"p_value" yaml:"p_value"`
	Lags      int              `json:"lags" yaml:"lags"`
}

type OrderCandidate struct {
	Order     int              `json:"order" yaml:"order"`
	Criterion timeseries.Float `json:"criterion" yaml:"criterion"`
}

type AutoregressiveResponse struct {
	Order        int                `json:"order" yaml:"order"`
	Detrended    []timeseries.XY    `json:"detrended" yaml:"detrended"`
	Trend        []timeseries.XY    `json:"trend" yaml:"trend"`
	Params       []timeseries.Float `json:"params" yaml:"params"`
	AIC          timeseries.Float   `json:"aic" yaml:"aic"`
	StdError     timeseries.Float   `json:"std_error" yaml:"std_error"`
	DurbinWatson timeseries.Float   `json:"durbin_watson" yaml:"durbin_watson"`
	LjungBox     *TestStatistic     `json:"ljung_box,omitempty" yaml:"ljung_box,omitempty"`
	Candidates   []OrderCandidate   `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

func NewAutoregressiveResponse(r *freq.AutoregressiveResult) *AutoregressiveResponse {
	resp := &AutoregressiveResponse{
		Order:        r.Order,
		Detrended:    r.Detrended.XY(),
		Trend:        r.Trend.XY(),
		Params:       timeseries.Floats(r.Params),
		AIC:          timeseries.Float(r.AIC),
		StdError:     timeseries.Float(r.StdError),
		DurbinWatson: timeseries.Float(r.DurbinWatson),
	}
	if r.LjungBox != nil {
		resp.LjungBox = &TestStatistic{
			Statistic: timeseries.Float(r.LjungBox.Statistic),
			PValue:    timeseries.Float(r.LjungBox.PValue),
			Lags:      r.LjungBox.Lags,
		}
	}
	for _, c := range r.Candidates {
		resp.Candidates = append(resp.Candidates, OrderCandidate{Order: c.Order, Criterion: timeseries.Float(c.Criterion)})
	}
	return resp
}

type StationarityResponse struct {
	KPSS        *TestStatistic `json:"kpss,omitempty" yaml:"kpss,omitempty"`
	ADF         *TestStatistic `json:"adf,omitempty" yaml:"adf,omitempty"`
	Differences int            `json:"differences" yaml:"differences"`
}

func newStationarityResponse(s *freq.Stationarity) *StationarityResponse {
	if s == nil {
		return nil
	}
	resp := &StationarityResponse{Differences: s.Differences}
	if s.KPSS != nil {
		resp.KPSS = &TestStatistic{
			Statistic: timeseries.Float(s.KPSS.Statistic),
			PValue:    timeseries.Float(s.KPSS.PValue),
			Lags:      s.KPSS.Lags,
		}
	}
	if s.ADF != nil {
		resp.ADF = &TestStatistic{
			Statistic: timeseries.Float(s.ADF.Statistic),
			PValue:    timeseries.Float(s.ADF.PValue),
			Lags:      s.ADF.Lags,
		}
	}
	return resp
}

// AnalyzeResponse is the full decomposition of one series.
type AnalyzeResponse struct {
	Resampled      []timeseries.XY         `json:"resampled" yaml:"resampled"`
	Frequency      string                  `json:"frequency" yaml:"frequency"`
	Trend          *TrendResponse          `json:"trend" yaml:"trend"`
	Harmonic       *HarmonicResponse       `json:"harmonic" yaml:"harmonic"`
	Correlogram    *CorrelogramResponse    `json:"correlogram" yaml:"correlogram"`
	Autoregressive *AutoregressiveResponse `json:"autoregressive" yaml:"autoregressive"`
	Stationarity   *StationarityResponse   `json:"stationarity,omitempty" yaml:"stationarity,omitempty"`
	Residual       []timeseries.XY         `json:"residual" yaml:"residual"`
}

// NewAnalyzeResponse converts a pipeline report for encoding.
func NewAnalyzeResponse(r *freq.Report) *AnalyzeResponse {
	return &AnalyzeResponse{
		Resampled:      r.Resampled.XY(),
		Frequency:      r.Resampled.Frequency.String(),
		Trend:          NewTrendResponse(r.Trend),
		Harmonic:       NewHarmonicResponse(r.Harmonic),
		Correlogram:    NewCorrelogramResponse(r.Correlogram),
		Autoregressive: NewAutoregressiveResponse(r.Autoregressive),
		Stationarity:   newStationarityResponse(r.Stationarity),
		Residual:       r.Residual().XY(),
	}
}

// SeriesResponse is a resampled series.
type SeriesResponse struct {
	Frequency string          `json:"frequency" yaml:"frequency"`
	Points    []timeseries.XY `json:"points" yaml:"points"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
