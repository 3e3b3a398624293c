package sim

import (
	"fmt"

	"github.com/rigbyspace/operation-pretzel/pkg/numeric"
	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// phaseOf classifies a microtick within the eleven-microtick schedule:
// E (Emission) at 1/4/7/10, M (Memory) at 2/5/8/11, R (Reset) at 3/6/9.
func phaseOf(microtick int) string {
	switch microtick {
	case 1, 4, 7, 10:
		return "E"
	case 2, 5, 8, 11:
		return "M"
	case 3, 6, 9:
		return "R"
	default:
		return ""
	}
}

// Simulate runs a configuration to completion without streaming any
// observations anywhere, for callers (such as `symsim validate`) that only
// care whether the run itself errors.
func Simulate(cfg Config) error {
	return SimulateStream(cfg, NoopObserver{})
}

// SimulateStream runs a whole simulation, emitting exactly one Observation
// per microtick to obs, in tick-then-microtick order. It stops and returns
// the observer's error the first time Observe fails.
func SimulateStream(cfg Config, obs Observer) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("sim: ticks must be positive, got %d", cfg.Ticks)
	}

	s := NewState(cfg)

	for tick := int64(1); tick <= int64(cfg.Ticks); tick++ {
		s.Tick = tick
		for mt := 1; mt <= 11; mt++ {
			s.clearMicrotickFlags()

			phase := phaseOf(mt)
			var psiFired, engineRan, engineOK, rhoEvent, forcedEmission bool
			var ratioTriggered, ratioThreshold bool

			switch phase {
			case "E":
				s.Epsilon = s.Upsilon.Copy()
				engineRan = true
				engineOK = engineStep(cfg, s, mt)

				target := s.Upsilon
				if cfg.PrimeTarget == PrimeOnMemory {
					target = s.Epsilon
				}
				rhoEvent = checkPattern(cfg, target)
				s.RhoPending = rhoEvent
				s.RhoLatched = rhoEvent

				if mt == 10 {
					forcedEmission = true
					if rhoEvent || cfg.Mt10Behavior == Mt10ForcedPsi {
						s.RhoPending = true
						s.RhoLatched = true
					}
				}

			case "M":
				allowStack := stackAllowsPsi(cfg, s)
				baseRequest := psiModeRequest(cfg, s, tick)
				ratioTriggered = ratioInRange(cfg, s)
				ratioThreshold = ratioThresholdOutside(cfg, s)
				if ratioTriggered {
					s.RatioTriggeredRecent = true
				}
				if ratioThreshold {
					s.RatioThresholdRecent = true
				}
				request := baseRequest || ratioTriggered || ratioThreshold

				if request && allowStack {
					psiFired = firePsi(cfg, s, tick)
				}

				koppaAccrue(cfg, s, psiFired, true, mt)
				s.RhoLatched = false

			case "R":
				koppaAccrue(cfg, s, false, false, mt)
				s.PsiRecent = false
				s.RhoLatched = false
			}

			o := Observation{
				Tick:                    tick,
				Microtick:               mt,
				Phase:                   phase,
				Upsilon:                 s.Upsilon.Copy(),
				Beta:                    s.Beta.Copy(),
				Koppa:                   s.Koppa.Copy(),
				Epsilon:                 s.Epsilon.Copy(),
				Phi:                     s.Phi.Copy(),
				PrevUpsilon:             s.PrevUpsilon.Copy(),
				PrevBeta:                s.PrevBeta.Copy(),
				DeltaUpsilon:            s.DeltaUpsilon.Copy(),
				DeltaBeta:               s.DeltaBeta.Copy(),
				KoppaSample:             s.KoppaSample.Copy(),
				KoppaSampleIndex:        s.KoppaSampleIndex,
				KoppaStack:              s.koppaStackSnapshot(),
				KoppaStackSize:          s.KoppaStackSize,
				TrianglePhiOverEpsilon:  s.TrianglePhiOverEpsilon.Copy(),
				TrianglePrevOverPhi:     s.TrianglePrevOverPhi.Copy(),
				TriangleEpsilonOverPrev: s.TriangleEpsilonOverPrev.Copy(),
				EngineRan:               engineRan,
				EngineSucceeded:         engineOK,
				PsiFired:                psiFired,
				PsiTriple:               s.PsiTripleRecent,
				RhoEvent:                rhoEvent,
				MuZero:                  s.Beta.NumZero(),
				ForcedEmission:          forcedEmission,
				RatioTriggered:          ratioTriggered,
				RatioThreshold:          ratioThreshold,
				RhoPending:              s.RhoPending,
				DualEngine:              s.DualEngineLastStep,
				PsiStrength:             s.PsiStrengthApplied,
				SignFlip:                cfg.SignFlipEnabled(),
			}

			if err := obs.Observe(o); err != nil {
				return fmt.Errorf("sim: observer rejected tick %d microtick %d: %w", tick, mt, err)
			}
		}
	}

	return nil
}

// checkPattern tests a single rational value's own numerator and
// denominator against the configured pattern predicates.
func checkPattern(cfg Config, value rational.Rational) bool {
	opts := numeric.PatternOptions{
		TwinPrime:    cfg.TwinPrimeTrigger,
		Fibonacci:    cfg.FibonacciTrigger,
		PerfectPower: cfg.PerfectPowerTrigger,
	}
	return numeric.HasPatternComponent(value.Num, value.Den, opts)
}
