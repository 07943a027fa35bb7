package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sartorproj/gofreq/freq"
	"github.com/sartorproj/gofreq/timeseries"
)

const (
	msgInsufficientData = "Too little data points to calculate"
	msgOutOfRange       = "Value out of range"
	msgDegenerate       = "Series cannot be decomposed"
	msgBadRequest       = "Invalid request body"
	msgCancelled        = "Request cancelled"
	msgInternal         = "Internal server error"
)

// bodyError reports a request body that could not be decoded.
type bodyError struct {
	err error
}

func (e *bodyError) Error() string {
	return "decoding request: " + e.err.Error()
}

func (e *bodyError) Unwrap() error {
	return e.err
}

// paramError reports a request parameter that could not be parsed.
type paramError struct {
	field string
	err   error
}

func (e *paramError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (e *paramError) Unwrap() error {
	return e.err
}

func invalidParam(field string, err error) error {
	return &paramError{field: field, err: err}
}

// classify maps an analysis error to an HTTP status, a user facing message
// and a metrics outcome label.
func classify(err error) (int, string, string) {
	var insufficient *freq.InsufficientDataError
	var validation *freq.ValidationError
	var param *paramError
	var body *bodyError

	switch {
	case errors.As(err, &body):
		return http.StatusBadRequest, msgBadRequest, "bad_request"
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity, msgInsufficientData, "insufficient_data"
	case errors.As(err, &validation), errors.As(err, &param),
		errors.Is(err, timeseries.ErrInvalidRange), errors.Is(err, timeseries.ErrEmptySeries):
		return http.StatusBadRequest, msgOutOfRange, "invalid"
	case errors.Is(err, freq.ErrDegenerate):
		return http.StatusUnprocessableEntity, msgDegenerate, "degenerate"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, msgCancelled, "cancelled"
	default:
		return http.StatusInternalServerError, msgInternal, "error"
	}
}
