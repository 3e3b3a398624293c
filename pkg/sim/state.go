package sim

import "github.com/rigbyspace/operation-pretzel/pkg/rational"

// koppaStackCapacity is the fixed size of the ϙ-stack ring.
const koppaStackCapacity = 4

// State holds everything the engine, ψ transform, ϙ accumulator, and ratio
// detectors read and mutate across a simulation. A State is owned
// exclusively by one simulation for its whole run; nothing outside pkg/sim
// ever holds a pointer to one past an Observer callback.
type State struct {
	Upsilon rational.Rational
	Beta    rational.Rational
	Koppa   rational.Rational

	Epsilon rational.Rational // υ snapshot at E start
	Phi     rational.Rational // υ snapshot just before ψ

	PrevUpsilon rational.Rational
	PrevBeta    rational.Rational

	DeltaUpsilon rational.Rational
	DeltaBeta    rational.Rational

	TrianglePhiOverEpsilon   rational.Rational
	TrianglePrevOverPhi      rational.Rational
	TriangleEpsilonOverPrev  rational.Rational

	koppaStack     [koppaStackCapacity]rational.Rational
	KoppaStackSize int

	KoppaSample      rational.Rational
	KoppaSampleIndex int // -1 sentinel

	RhoPending         bool
	RhoLatched         bool
	PsiRecent          bool
	RatioTriggeredRecent bool
	PsiTripleRecent    bool
	DualEngineLastStep bool
	RatioThresholdRecent bool
	PsiStrengthApplied bool
	SignFlipPolarity   bool

	Tick int64
}

// NewState creates fresh state seeded from the config's initial values.
func NewState(cfg Config) *State {
	s := &State{
		Upsilon:          cfg.InitialUpsilon.Copy(),
		Beta:             cfg.InitialBeta.Copy(),
		Koppa:            cfg.InitialKoppa.Copy(),
		Epsilon:          cfg.InitialUpsilon.Copy(),
		Phi:              cfg.InitialBeta.Copy(),
		PrevUpsilon:      cfg.InitialUpsilon.Copy(),
		PrevBeta:         cfg.InitialBeta.Copy(),
		DeltaUpsilon:     rational.Zero(),
		DeltaBeta:        rational.Zero(),
		TrianglePhiOverEpsilon:  rational.Zero(),
		TrianglePrevOverPhi:     rational.Zero(),
		TriangleEpsilonOverPrev: rational.Zero(),
		KoppaStackSize:   0,
		KoppaSample:      cfg.InitialKoppa.Copy(),
		KoppaSampleIndex: -1,
	}
	return s
}

// clearMicrotickFlags resets the per-microtick recency/sample flags at the
// top of every microtick.
func (s *State) clearMicrotickFlags() {
	s.RatioTriggeredRecent = false
	s.PsiTripleRecent = false
	s.DualEngineLastStep = false
	s.RatioThresholdRecent = false
	s.PsiStrengthApplied = false
	s.KoppaSample = s.Koppa.Copy()
	s.KoppaSampleIndex = -1
}

// koppaStackPush pushes v onto the bounded ring: if full, the oldest entry
// (index 0) is discarded and v lands at index 3; otherwise v is appended.
func (s *State) koppaStackPush(v rational.Rational) {
	if s.KoppaStackSize >= koppaStackCapacity {
		copy(s.koppaStack[:koppaStackCapacity-1], s.koppaStack[1:koppaStackCapacity])
		s.koppaStack[koppaStackCapacity-1] = v
		return
	}
	s.koppaStack[s.KoppaStackSize] = v
	s.KoppaStackSize++
}

// KoppaStackAt returns the value at index i (0 <= i < KoppaStackSize).
func (s *State) KoppaStackAt(i int) rational.Rational {
	return s.koppaStack[i]
}

// koppaStackSnapshot copies the full ring, with unused slots (beyond
// KoppaStackSize) as 0/1, for observation output.
func (s *State) koppaStackSnapshot() [koppaStackCapacity]rational.Rational {
	var out [koppaStackCapacity]rational.Rational
	for i := 0; i < koppaStackCapacity; i++ {
		if i < s.KoppaStackSize {
			out[i] = s.koppaStack[i].Copy()
		} else {
			out[i] = rational.Zero()
		}
	}
	return out
}
