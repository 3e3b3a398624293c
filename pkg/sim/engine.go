package sim

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// engineStep selects a track mode (or the delta-add path) per component,
// computes the next (υ, β), and applies the optional
// cascade/gating/sign-flip/triangle/wrap adjustments. It returns false,
// leaving State entirely unchanged, when the chosen arithmetic would divide
// by a zero-numerator ϙ.
func engineStep(cfg Config, s *State, microtick int) bool {
	upsPre := s.Upsilon.Copy()
	betaPre := s.Beta.Copy()

	var newUps, newBeta rational.Rational

	if cfg.EngineMode == TrackDeltaAdd && !cfg.DualTrack {
		dUps := rational.Delta(s.Upsilon, s.PrevUpsilon)
		dBeta := rational.Delta(s.Beta, s.PrevBeta)
		newUps = rational.Add(s.Upsilon, dUps)
		newBeta = rational.Add(s.Beta, dBeta)
	} else {
		upsMode, betaMode, computeBeta := selectModes(cfg, s, microtick)
		u, okU := trackResult(upsMode, s.Upsilon, s.Beta, s.Koppa)
		if !okU {
			return false
		}
		newUps = u
		if computeBeta {
			b, okB := trackResult(betaMode, s.Beta, s.Upsilon, s.Koppa)
			if !okB {
				return false
			}
			newBeta = b
		} else {
			newBeta = s.Beta.Copy()
		}
	}

	if cfg.DeltaCrossPropagation {
		newUps = rational.Add(newUps, s.DeltaBeta)
		newBeta = rational.Add(newBeta, s.DeltaUpsilon)
		if cfg.DeltaKoppaOffset {
			newUps = rational.Add(newUps, s.Koppa)
			newBeta = rational.Add(newBeta, s.Koppa)
		}
	}

	switch cfg.SignFlipMode {
	case SignFlipAlways:
		newUps = rational.Negate(newUps)
		newBeta = rational.Negate(newBeta)
	case SignFlipAlternate:
		if !s.SignFlipPolarity {
			newUps = rational.Negate(newUps)
			newBeta = rational.Negate(newBeta)
		}
		s.SignFlipPolarity = !s.SignFlipPolarity
	case SignFlipNone:
		s.SignFlipPolarity = false
	}

	if cfg.EpsilonPhiTriangle {
		updateTriangle(s)
	}

	if cfg.ModularWrap {
		applyModularWrap(cfg, s)
	}

	s.PrevUpsilon = upsPre
	s.PrevBeta = betaPre
	s.Upsilon = newUps
	s.Beta = newBeta
	s.DeltaUpsilon = rational.Delta(s.Upsilon, s.PrevUpsilon)
	s.DeltaBeta = rational.Delta(s.Beta, s.PrevBeta)
	s.DualEngineLastStep = cfg.DualTrack

	return true
}

// selectModes runs the mode-selection pipeline: base mode, then
// asymmetric-cascade, stack-depth, and koppa-magnitude overrides, each
// replacing whatever the previous stage chose. computeBeta reports whether
// beta actually gets its own engine-step update this microtick: under a
// bare (single) engine_mode with none of those overrides active, only
// upsilon runs through the track formula and beta passes through
// unchanged for the step — it only moves via ψ, dual-track, or one of the
// override stages below, each of which engages both components in
// earnest.
func selectModes(cfg Config, s *State, microtick int) (upsMode, betaMode TrackMode, computeBeta bool) {
	if cfg.DualTrack {
		upsMode, betaMode = cfg.EngineUpsilon, cfg.EngineBeta
		computeBeta = true
	} else {
		m := cfg.EngineMode
		if m == TrackDeltaAdd {
			m = TrackAdd
		}
		upsMode, betaMode = m, m
	}

	if cfg.AsymmetricCascade {
		switch microtick {
		case 1:
			upsMode, betaMode = TrackMulti, TrackAdd
		case 4:
			upsMode, betaMode = TrackAdd, TrackSlide
		case 7:
			upsMode, betaMode = TrackSlide, TrackMulti
		case 10:
			upsMode, betaMode = TrackAdd, TrackAdd
		}
		computeBeta = true
	}

	if cfg.StackDepthModes {
		depthMode := stackDepthTrackMode(s.KoppaStackSize)
		upsMode, betaMode = depthMode, depthMode
		computeBeta = true
	}

	if cfg.KoppaGatedEngine {
		gateMode := koppaMagnitudeTrackMode(s.Koppa.AbsNum())
		upsMode, betaMode = gateMode, gateMode
		computeBeta = true
	}

	return upsMode, betaMode, computeBeta
}

func stackDepthTrackMode(depth int) TrackMode {
	switch {
	case depth <= 1:
		return TrackAdd
	case depth <= 3:
		return TrackMulti
	case depth == 4:
		return TrackSlide
	default:
		return TrackAdd
	}
}

func koppaMagnitudeTrackMode(absNum *big.Int) TrackMode {
	switch {
	case absNum.Cmp(big.NewInt(10)) < 0:
		return TrackSlide
	case absNum.Cmp(big.NewInt(100)) < 0:
		return TrackMulti
	default:
		return TrackAdd
	}
}

// trackResult applies one of {ADD, MULTI, SLIDE} to a component. SLIDE
// fails (ok=false) when koppa's numerator is zero.
func trackResult(mode TrackMode, current, counterpart, koppa rational.Rational) (result rational.Rational, ok bool) {
	switch mode {
	case TrackMulti:
		return rational.Mul(current, rational.Add(counterpart, koppa)), true
	case TrackSlide:
		sum := rational.Add(current, counterpart)
		return rational.Div(sum, koppa)
	default: // TrackAdd
		return rational.Add(rational.Add(current, counterpart), koppa), true
	}
}

// updateTriangle recomputes the ε–φ triangle ratios from the state's
// current φ, ε, and previous_υ. Each ratio is 0/1 when its denominator is
// zero rather than failing the whole engine step.
func updateTriangle(s *State) {
	s.TrianglePhiOverEpsilon = safeDiv(s.Phi, s.Epsilon)
	s.TrianglePrevOverPhi = safeDiv(s.PrevUpsilon, s.Phi)
	s.TriangleEpsilonOverPrev = safeDiv(s.Epsilon, s.PrevUpsilon)
}

func safeDiv(a, b rational.Rational) rational.Rational {
	if b.NumZero() {
		return rational.New(0, 1)
	}
	v, ok := rational.Div(a, b)
	if !ok {
		return rational.New(0, 1)
	}
	return v
}

// applyModularWrap wraps ϙ modulo β once |numerator(ϙ)| exceeds the
// configured threshold; a no-op when β is zero rather than a failure.
func applyModularWrap(cfg Config, s *State) {
	threshold := new(big.Int).SetUint64(cfg.KoppaWrapThreshold)
	if s.Koppa.AbsNum().Cmp(threshold) <= 0 {
		return
	}
	if s.Beta.NumZero() {
		return
	}
	wrapped, ok := rational.Mod(s.Koppa, s.Beta)
	if ok {
		s.Koppa = wrapped
	}
}
