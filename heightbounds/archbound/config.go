package archbound

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Config collects the accuracy and diagnostic knobs of the bound computation.
// It is always passed explicitly; there is no global state. Start from
// [DefaultConfig] rather than a zero value (a zero Epsilon or Precision is rejected).
//
// Epsilon and Precision are accuracy knobs, not performance knobs: raising
// Precision makes every arithmetic operation proportionally more expensive.
type Config struct {
	// Epsilon is the refinement stopping tolerance. The refinement loop stops
	// once an iteration improves the bound by less than Epsilon. Must be > 0.
	Epsilon float64

	// Precision is the working precision in decimal digits. It must be large
	// enough for the two-torsion cubic's three roots to be resolved distinctly;
	// otherwise the computation fails with [ErrPrecisionInsufficient] and
	// should be retried with a larger value. Must be > 0.
	Precision int

	// Geometric requests a bound that remains valid at complex points lying
	// over a real place. The geometric bound is weaker (never smaller) than
	// the default real-place bound.
	Geometric bool

	// Log receives diagnostic traces when Verbosity is positive. Tracing is
	// purely observational and never affects returned values.
	Log zerolog.Logger

	// Verbosity selects the trace detail: 0 disables tracing, 1 reports
	// per-embedding results, 2 additionally reports the roots and coefficient
	// matrices, 3 additionally reports every iterate of the refinement.
	Verbosity int
}

// DefaultConfig returns the documented defaults: Epsilon 1e-3, Precision 30
// decimal digits, non-geometric, tracing disabled.
func DefaultConfig() Config {
	return Config{Epsilon: 1e-3, Precision: 30, Log: zerolog.Nop()}
}

// precisionGuardBits is added on top of the requested decimal precision to
// absorb rounding in the matrix construction and refinement arithmetic.
const precisionGuardBits = 16

const log2Of10 = 3.321928094887362

func (cfg *Config) validate() error {
	if !(cfg.Epsilon > 0) || math.IsInf(cfg.Epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be positive and finite, got %v", ErrInvalidInput, cfg.Epsilon)
	}
	if cfg.Precision <= 0 {
		return fmt.Errorf("%w: precision must be a positive number of decimal digits, got %v", ErrInvalidInput, cfg.Precision)
	}
	return nil
}

// precBits converts the configured decimal precision to bits of mantissa.
func (cfg *Config) precBits() uint {
	return uint(math.Ceil(float64(cfg.Precision)*log2Of10)) + precisionGuardBits
}
