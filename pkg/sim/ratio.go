package sim

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// Built-in ratio windows, stored as exact rationals so the window
// comparison never touches floating point.
var (
	goldenLower  = rational.New(3, 2)
	goldenUpper  = rational.New(17, 10)
	sqrt2Lower   = rational.New(13, 10)
	sqrt2Upper   = rational.New(3, 2)
	plasticLower = rational.New(6, 5)
	plasticUpper = rational.New(7, 5)
)

// ratioWindow returns the (lower, upper) bounds for the configured trigger
// mode, and false if the mode is NONE (or CUSTOM without the feature flag).
func ratioWindow(cfg Config) (lower, upper rational.Rational, ok bool) {
	switch cfg.RatioTrigger {
	case RatioGolden:
		return goldenLower, goldenUpper, true
	case RatioSqrt2:
		return sqrt2Lower, sqrt2Upper, true
	case RatioPlastic:
		return plasticLower, plasticUpper, true
	case RatioCustom:
		if !cfg.RatioCustomRange {
			return rational.Rational{}, rational.Rational{}, false
		}
		return cfg.RatioCustomLower, cfg.RatioCustomUpper, true
	default:
		return rational.Rational{}, rational.Rational{}, false
	}
}

// ratioInRange is false if β is zero; otherwise r = υ/β (unreduced) is
// compared against the configured window using exact rational comparison.
func ratioInRange(cfg Config, s *State) bool {
	if s.Beta.NumZero() {
		return false
	}
	lower, upper, ok := ratioWindow(cfg)
	if !ok {
		return false
	}
	r, divOK := rational.Div(s.Upsilon, s.Beta)
	if !divOK {
		return false
	}
	return rational.Cmp(lower, r) < 0 && rational.Cmp(r, upper) < 0
}

// ratioThresholdOutside is the single place a float may be formed, used
// only as a transient classification value that is never written back
// into State.
func ratioThresholdOutside(cfg Config, s *State) bool {
	if !cfg.RatioThresholdPsi {
		return false
	}
	if s.Beta.NumZero() {
		return false
	}
	r, ok := rational.Div(s.Upsilon, s.Beta)
	if !ok {
		return false
	}
	snapshot := ratioToFloat(r)
	abs := snapshot
	if abs < 0 {
		abs = -abs
	}
	return abs < 0.5 || abs > 2.0
}

// ratioToFloat converts a Rational to a float64 for the transient threshold
// check only. The result must never be stored back into State.
func ratioToFloat(r rational.Rational) float64 {
	num := new(big.Float).SetInt(r.Num)
	den := new(big.Float).SetInt(r.Den)
	quot := new(big.Float).Quo(num, den)
	f, _ := quot.Float64()
	return f
}
