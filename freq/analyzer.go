package freq

import (
	"github.com/sartorproj/gofreq/timeseries"
)

// DefaultMinSamples is the MinSamples that DefaultConfig and New fall back
// to. The stages only ever check Config.MinSamples of their Analyzer.
const DefaultMinSamples = 40

// Config holds the limits shared by every analysis stage.
type Config struct {
	MinSamples int
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{MinSamples: DefaultMinSamples}
}

// Analyzer runs the individual decomposition stages. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer. A non-positive MinSamples selects the default.
func New(cfg Config) *Analyzer {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = DefaultMinSamples
	}
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

func (a *Analyzer) checkSamples(s *timeseries.Series) error {
	if s.Len() < a.cfg.MinSamples {
		return &InsufficientDataError{Got: s.Len(), Min: a.cfg.MinSamples}
	}
	return nil
}
