package ar

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Criterion is the information criterion used to compare orders.
type Criterion string

const (
	AIC Criterion = "aic"
	BIC Criterion = "bic"
)

// ParseCriterion parses "aic" or "bic", case-insensitively.
func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(strings.ToLower(strings.TrimSpace(s))); c {
	case "", AIC:
		return AIC, nil
	case BIC:
		return BIC, nil
	default:
		return "", fmt.Errorf("unknown criterion %q", s)
	}
}

// SelectConfig holds configuration for order selection.
type SelectConfig struct {
	MinOrder  int       // Minimum order considered (default: 1)
	MaxOrder  int       // Maximum order considered
	Criterion Criterion // Default: AIC
}

// Candidate is one evaluated order.
type Candidate struct {
	Order     int
	Criterion float64
}

// SelectResult represents the outcome of an order search.
type SelectResult struct {
	Model      *Model // best order refitted on the full series
	Order      int
	Criterion  float64
	Candidates []Candidate
}

// SelectOrder fits every order in [MinOrder, MaxOrder] and keeps the one with
// the lowest criterion. All candidates are estimated on the same sample, the
// last n-MaxOrder observations, so their criteria are comparable; the winner
// is then refitted on the full series. Orders whose fit fails are skipped.
func SelectOrder(values []float64, cfg SelectConfig) (*SelectResult, error) {
	if cfg.MinOrder <= 0 {
		cfg.MinOrder = 1
	}
	if cfg.Criterion == "" {
		cfg.Criterion = AIC
	}
	if cfg.MaxOrder < cfg.MinOrder {
		return nil, fmt.Errorf("max order %d is below min order %d", cfg.MaxOrder, cfg.MinOrder)
	}
	if cfg.MaxOrder >= len(values) {
		return nil, fmt.Errorf("max order %d needs more than %d observations", cfg.MaxOrder, len(values))
	}

	res := &SelectResult{Order: -1, Criterion: math.Inf(1)}
	var lastErr error

	for p := cfg.MinOrder; p <= cfg.MaxOrder; p++ {
		model := New(p)
		if err := model.Fit(values[cfg.MaxOrder-p:]); err != nil {
			lastErr = err
			continue
		}

		score := model.AIC
		if cfg.Criterion == BIC {
			score = model.BIC
		}
		res.Candidates = append(res.Candidates, Candidate{Order: p, Criterion: score})

		if score < res.Criterion {
			res.Criterion = score
			res.Order = p
		}
	}

	if res.Order < 0 {
		if lastErr == nil {
			lastErr = errors.New("no candidate order could be evaluated")
		}
		return nil, fmt.Errorf("selecting AR order: %w", lastErr)
	}

	res.Model = New(res.Order)
	if err := res.Model.Fit(values); err != nil {
		return nil, err
	}

	return res, nil
}
