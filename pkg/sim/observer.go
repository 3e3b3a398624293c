package sim

import "github.com/rigbyspace/operation-pretzel/pkg/rational"

// Observer is a polymorphic sink: the simulation core owns no notion of
// file formats or destinations, it only calls Observe once per microtick.
// Every Rational in an Observation is a fresh copy taken from State, so an
// implementation may keep it past the call without aliasing State.
type Observer interface {
	Observe(Observation) error
}

// Observation is the complete, self-contained snapshot emitted once per
// microtick. Its fields cover every events.csv and values.csv column, plus
// State's own rationals for callers that want more than the two canned
// CSVs.
type Observation struct {
	Tick      int64
	Microtick int
	Phase     string // "E", "M", or "R"

	Upsilon rational.Rational
	Beta    rational.Rational
	Koppa   rational.Rational
	Epsilon rational.Rational
	Phi     rational.Rational

	PrevUpsilon rational.Rational
	PrevBeta    rational.Rational

	DeltaUpsilon rational.Rational
	DeltaBeta    rational.Rational

	KoppaSample      rational.Rational
	KoppaSampleIndex int
	KoppaStack       [4]rational.Rational
	KoppaStackSize   int

	TrianglePhiOverEpsilon  rational.Rational
	TrianglePrevOverPhi     rational.Rational
	TriangleEpsilonOverPrev rational.Rational

	EngineRan       bool
	EngineSucceeded bool

	RhoEvent       bool
	PsiFired       bool
	MuZero         bool
	ForcedEmission bool
	RatioTriggered bool
	PsiTriple      bool
	DualEngine     bool
	RatioThreshold bool
	PsiStrength    bool
	SignFlip       bool
	RhoPending     bool
}

// NoopObserver discards every observation. Used by Simulate, which runs a
// configuration purely for its side effects on error (e.g. config
// validation) without needing a destination for the stream.
type NoopObserver struct{}

func (NoopObserver) Observe(Observation) error { return nil }
