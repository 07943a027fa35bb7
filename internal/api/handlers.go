package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/internal/cache"
	"github.com/sartorproj/gofreq/timeseries"
)

type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Version   string      `json:"version"`
	Cache     interface{} `json:"cache,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
	if s.cache != nil {
		resp.Cache = s.cache.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) resample(c *gin.Context) {
	var req ResampleRequest
	s.serve(c, "resample", &req, func(context.Context) (interface{}, error) {
		raw, err := req.series()
		if err != nil {
			return nil, err
		}
		opts := s.defaults.Resample
		if err := req.ResampleParams.apply(&opts); err != nil {
			return nil, err
		}

		var out *timeseries.Series
		err = s.observe(freq.StageResample, func() (err error) {
			out, err = timeseries.Resample(raw, opts)
			return err
		})
		if err != nil {
			return nil, err
		}
		return &SeriesResponse{Frequency: out.Frequency.String(), Points: out.XY()}, nil
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	s.serve(c, "analyze", &req, func(ctx context.Context) (interface{}, error) {
		raw, err := req.series()
		if err != nil {
			return nil, err
		}
		opts, err := req.Options(s.defaults)
		if err != nil {
			return nil, err
		}

		pipeline := freq.NewPipeline(s.analyzer, opts, s.logger).WithObserver(s.metrics.ObserveStage)
		report, err := pipeline.Run(ctx, raw)
		if err != nil {
			return nil, err
		}
		return NewAnalyzeResponse(report), nil
	})
}

func (s *Server) trend(c *gin.Context) {
	var req TrendRequest
	s.serve(c, "trend", &req, func(context.Context) (interface{}, error) {
		series, err := req.series()
		if err != nil {
			return nil, err
		}
		opts := s.defaults.Trend
		if err := req.TrendParams.apply(&opts); err != nil {
			return nil, err
		}

		var res *freq.TrendResult
		err = s.observe(freq.StageTrend, func() (err error) {
			res, err = s.analyzer.RemoveTrend(series, opts)
			return err
		})
		if err != nil {
			return nil, err
		}
		return NewTrendResponse(res), nil
	})
}

func (s *Server) harmonic(c *gin.Context) {
	var req HarmonicRequest
	s.serve(c, "harmonic", &req, func(context.Context) (interface{}, error) {
		series, err := req.series()
		if err != nil {
			return nil, err
		}
		k := s.defaults.Harmonics
		if req.Harmonics != nil {
			k = *req.Harmonics
		}

		var res *freq.HarmonicResult
		err = s.observe(freq.StageHarmonic, func() (err error) {
			res, err = s.analyzer.Harmonic(series, k)
			return err
		})
		if err != nil {
			return nil, err
		}
		return NewHarmonicResponse(res), nil
	})
}

func (s *Server) correlogram(c *gin.Context) {
	var req CorrelogramRequest
	s.serve(c, "correlogram", &req, func(context.Context) (interface{}, error) {
		series, err := req.series()
		if err != nil {
			return nil, err
		}
		lags := s.defaults.Lags
		if req.Lags != nil {
			lags = *req.Lags
		}

		var res *freq.CorrelogramResult
		err = s.observe(freq.StageCorrelogram, func() (err error) {
			res, err = s.analyzer.Correlogram(series, lags)
			return err
		})
		if err != nil {
			return nil, err
		}
		return NewCorrelogramResponse(res), nil
	})
}

func (s *Server) autoregressive(c *gin.Context) {
	var req AutoregressiveRequest
	s.serve(c, "autoregressive", &req, func(context.Context) (interface{}, error) {
		series, err := req.series()
		if err != nil {
			return nil, err
		}
		opts := s.defaults
		if err := req.AutoregressiveParams.apply(&opts); err != nil {
			return nil, err
		}

		var res *freq.AutoregressiveResult
		err = s.observe(freq.StageAutoregressive, func() (err error) {
			if opts.AutoOrder {
				res, err = s.analyzer.AutoregressiveAuto(series, opts.MaxOrder, opts.Criterion)
			} else {
				res, err = s.analyzer.Autoregressive(series, opts.Order)
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		return NewAutoregressiveResponse(res), nil
	})
}

// serve decodes the body into req, answers from the cache when the same
// request was computed before and otherwise runs compute.
func (s *Server) serve(c *gin.Context, endpoint string, req interface{}, compute func(context.Context) (interface{}, error)) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		s.fail(c, endpoint, &bodyError{err: err})
		return
	}

	var key string
	if s.cache != nil {
		body, _ := c.Get(gin.BodyBytesKey)
		raw, _ := body.([]byte)
		key = cache.Key([]byte(endpoint), raw)

		cached, ok := s.cache.Get(key)
		s.metrics.RecordCache(ok)
		if ok {
			s.metrics.RecordRequest(endpoint, "ok")
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	result, err := compute(c.Request.Context())
	if err != nil {
		s.fail(c, endpoint, err)
		return
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		s.fail(c, endpoint, err)
		return
	}
	if s.cache != nil {
		s.cache.Set(key, encoded)
		c.Header("X-Cache", "MISS")
	}
	s.metrics.RecordRequest(endpoint, "ok")
	c.Data(http.StatusOK, "application/json; charset=utf-8", encoded)
}

func (s *Server) fail(c *gin.Context, endpoint string, err error) {
	status, message, outcome := classify(err)
	s.metrics.RecordRequest(endpoint, outcome)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Detail:    err.Error(),
		RequestID: c.GetString(requestIDKey),
	})
}

// observe times a single analysis stage for the metrics.
func (s *Server) observe(stage freq.Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveStage(stage, time.Since(start), err)
	return err
}
