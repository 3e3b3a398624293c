package sim

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/pkg/numeric"
	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// psiModeRequest is the mode-based half of the ψ firing condition
// (MSTEP/RHO_ONLY/MSTEP_RHO/INHIBIT_RHO), including the Fibonacci-tick gate
// applied to RHO_ONLY and MSTEP_RHO. It does not consider the ratio-window
// force-fire conditions; callers OR those in.
func psiModeRequest(cfg Config, s *State, tick int64) bool {
	gated := cfg.FibonacciGate && (cfg.PsiMode == PsiModeRhoOnly || cfg.PsiMode == PsiModeStepRho)
	if gated && !(s.RhoPending && numeric.IsFibonacciTick(tick)) {
		return false
	}

	switch cfg.PsiMode {
	case PsiModeStep, PsiModeStepRho:
		return true
	case PsiModeRhoOnly:
		return s.RhoPending
	case PsiModeInhibitRho:
		return !s.RhoPending
	default:
		return false
	}
}

// firePsi executes the ψ transform, assuming the caller has already decided
// to fire (request_psi ∧ allow_stack, decided during the M phase). It
// returns false without touching state when υ or β has a zero numerator.
func firePsi(cfg Config, s *State, tick int64) bool {
	if s.Upsilon.NumZero() || s.Beta.NumZero() {
		return false
	}

	rhoPendingAtStart := s.RhoPending

	strength := 1
	if cfg.PsiStrengthParameter && rhoPendingAtStart {
		if n := countPrimeComponents(s); n > strength {
			strength = n
		}
	}

	firedTriple := false
	for i := 0; i < strength; i++ {
		if s.Upsilon.NumZero() || s.Beta.NumZero() {
			break
		}

		allPrime := numeric.IsPrime(s.Upsilon.Num) && numeric.IsPrime(s.Beta.Num) && numeric.IsPrime(s.Koppa.Num)
		wantTriple := cfg.TriplePsi ||
			(cfg.ConditionalTriplePsi && allPrime) ||
			(strength >= 3 && i == strength-3)
		useTriple := wantTriple && !s.Koppa.NumZero() && !s.Upsilon.NumZero() && !s.Beta.NumZero()

		if useTriple {
			applyTripleTransform(s)
			firedTriple = true
		} else {
			applyStandardTransform(s)
		}
	}

	s.PsiRecent = true
	s.RhoPending = false
	s.RhoLatched = false
	s.PsiTripleRecent = firedTriple
	s.PsiStrengthApplied = strength > 1
	return true
}

// applyStandardTransform is the 2-way transform: φ ← υ, then υ ← β÷υ and
// β ← υ÷β, via raw cross-multiplication so no reduction occurs.
func applyStandardTransform(s *State) {
	oldUps, oldBeta := s.Upsilon, s.Beta
	s.Phi = oldUps.Copy()
	s.Upsilon = crossDivide(oldBeta, oldUps)
	s.Beta = crossDivide(oldUps, oldBeta)
}

// applyTripleTransform is the 3-way transform: (υ,β,ϙ) updated to
// (β÷ϙ, ϙ÷υ, ϙ÷β). It does not touch φ.
func applyTripleTransform(s *State) {
	oldUps, oldBeta, oldKoppa := s.Upsilon, s.Beta, s.Koppa
	s.Upsilon = crossDivide(oldBeta, oldKoppa)
	s.Beta = crossDivide(oldKoppa, oldUps)
	s.Koppa = crossDivide(oldKoppa, oldBeta)
}

// crossDivide computes a÷b by raw cross-multiplication ((a.Num*b.Den) /
// (a.Den*b.Num)), never reducing the result. Callers must ensure b's
// numerator is non-zero.
func crossDivide(a, b rational.Rational) rational.Rational {
	n := new(big.Int).Mul(a.Num, b.Den)
	d := new(big.Int).Mul(a.Den, b.Num)
	return rational.FromBig(n, d)
}

func countPrimeComponents(s *State) int {
	n := 0
	if numeric.IsPrime(s.Upsilon.Num) {
		n++
	}
	if numeric.IsPrime(s.Beta.Num) {
		n++
	}
	if numeric.IsPrime(s.Koppa.Num) {
		n++
	}
	return n
}
