package sim

import "github.com/rigbyspace/operation-pretzel/pkg/rational"

// koppaShouldTrigger decides whether the ϙ accumulator fires this microtick.
func koppaShouldTrigger(cfg Config, s *State, psiFired, isMemoryPhase bool) bool {
	switch cfg.KoppaTrigger {
	case KoppaTriggerOnPsi:
		return psiFired
	case KoppaTriggerOnMuAfterPsi:
		return isMemoryPhase && !psiFired && s.PsiRecent
	case KoppaTriggerOnAllMu:
		return isMemoryPhase
	default:
		return false
	}
}

// koppaAccrue runs the ϙ accumulator for one M or R phase. It always updates
// the recency bookkeeping and the observable ϙ_sample, whether or not the
// trigger condition held.
func koppaAccrue(cfg Config, s *State, psiFired, isMemoryPhase bool, microtick int) {
	trigger := koppaShouldTrigger(cfg, s, psiFired, isMemoryPhase)

	if trigger {
		if cfg.MultiLevelKoppa {
			s.koppaStackPush(s.Koppa.Copy())
		}

		switch cfg.KoppaMode {
		case KoppaModeDump:
			s.Koppa = rational.Zero()
		case KoppaModePop:
			s.Koppa = s.Epsilon.Copy()
		case KoppaModeAccumulate:
			s.Koppa = rational.Add(s.Koppa, s.Epsilon)
		}

		s.Koppa = rational.Add(s.Koppa, rational.Add(s.Upsilon, s.Beta))
	}

	if cfg.KoppaTrigger == KoppaTriggerOnMuAfterPsi {
		s.PsiRecent = false
	} else {
		s.PsiRecent = psiFired
	}

	sampleKoppa(cfg, s, microtick)
}

// sampleKoppa is observability-only: it never changes ϙ itself, only the
// KoppaSample/KoppaSampleIndex pair surfaced to observers.
func sampleKoppa(cfg Config, s *State, microtick int) {
	if cfg.MultiLevelKoppa {
		switch {
		case microtick == 11 && s.KoppaStackSize > 0:
			s.KoppaSample = s.koppaStack[0]
			s.KoppaSampleIndex = 0
			return
		case microtick == 5 && s.KoppaStackSize > 2:
			s.KoppaSample = s.koppaStack[2]
			s.KoppaSampleIndex = 2
			return
		}
	}
	s.KoppaSample = s.Koppa.Copy()
	s.KoppaSampleIndex = -1
}

// stackAllowsPsi is the stack-depth gate on ψ: when stack-depth-modes is
// enabled, ψ may only fire while the ϙ-stack holds exactly 2 or 4 entries.
func stackAllowsPsi(cfg Config, s *State) bool {
	if !cfg.StackDepthModes {
		return true
	}
	return s.KoppaStackSize == 2 || s.KoppaStackSize == 4
}
