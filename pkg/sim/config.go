package sim

import (
	"fmt"
	"math/big"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// PsiMode selects when the ψ transform is permitted to fire on an M
// microtick, before the ratio-window force-fire conditions are applied.
type PsiMode int

const (
	PsiModeStep PsiMode = iota
	PsiModeRhoOnly
	PsiModeStepRho
	PsiModeInhibitRho
)

func (m PsiMode) String() string {
	switch m {
	case PsiModeStep:
		return "MSTEP"
	case PsiModeRhoOnly:
		return "RHO_ONLY"
	case PsiModeStepRho:
		return "MSTEP_RHO"
	case PsiModeInhibitRho:
		return "INHIBIT_RHO"
	default:
		return "UNKNOWN"
	}
}

// ParsePsiMode parses a config string into a PsiMode.
func ParsePsiMode(s string) (PsiMode, error) {
	switch s {
	case "MSTEP":
		return PsiModeStep, nil
	case "RHO_ONLY":
		return PsiModeRhoOnly, nil
	case "MSTEP_RHO":
		return PsiModeStepRho, nil
	case "INHIBIT_RHO":
		return PsiModeInhibitRho, nil
	default:
		return 0, fmt.Errorf("sim: unknown psi_mode %q", s)
	}
}

// KoppaMode selects the base reset behavior applied to ϙ when an accrual
// trigger fires, before the (υ+β) post-accrual term is added.
type KoppaMode int

const (
	KoppaModeDump KoppaMode = iota
	KoppaModePop
	KoppaModeAccumulate
)

func (m KoppaMode) String() string {
	switch m {
	case KoppaModeDump:
		return "DUMP"
	case KoppaModePop:
		return "POP"
	case KoppaModeAccumulate:
		return "ACCUMULATE"
	default:
		return "UNKNOWN"
	}
}

// ParseKoppaMode parses a config string into a KoppaMode.
func ParseKoppaMode(s string) (KoppaMode, error) {
	switch s {
	case "DUMP":
		return KoppaModeDump, nil
	case "POP":
		return KoppaModePop, nil
	case "ACCUMULATE":
		return KoppaModeAccumulate, nil
	default:
		return 0, fmt.Errorf("sim: unknown koppa_mode %q", s)
	}
}

// TrackMode is the per-component arithmetic mode the engine step applies.
type TrackMode int

const (
	TrackAdd TrackMode = iota
	TrackMulti
	TrackSlide
	TrackDeltaAdd // only valid as engine_mode, never as a per-track override
)

func (m TrackMode) String() string {
	switch m {
	case TrackAdd:
		return "ADD"
	case TrackMulti:
		return "MULTI"
	case TrackSlide:
		return "SLIDE"
	case TrackDeltaAdd:
		return "DELTA_ADD"
	default:
		return "UNKNOWN"
	}
}

// ParseTrackMode parses a config string into a TrackMode.
func ParseTrackMode(s string) (TrackMode, error) {
	switch s {
	case "ADD":
		return TrackAdd, nil
	case "MULTI":
		return TrackMulti, nil
	case "SLIDE":
		return TrackSlide, nil
	case "DELTA_ADD":
		return TrackDeltaAdd, nil
	default:
		return 0, fmt.Errorf("sim: unknown track mode %q", s)
	}
}

// KoppaTrigger selects when the ϙ accumulator accrues.
type KoppaTrigger int

const (
	KoppaTriggerOnPsi KoppaTrigger = iota
	KoppaTriggerOnMuAfterPsi
	KoppaTriggerOnAllMu
)

func (t KoppaTrigger) String() string {
	switch t {
	case KoppaTriggerOnPsi:
		return "ON_PSI"
	case KoppaTriggerOnMuAfterPsi:
		return "ON_MU_AFTER_PSI"
	case KoppaTriggerOnAllMu:
		return "ON_ALL_MU"
	default:
		return "UNKNOWN"
	}
}

// ParseKoppaTrigger parses a config string into a KoppaTrigger.
func ParseKoppaTrigger(s string) (KoppaTrigger, error) {
	switch s {
	case "ON_PSI":
		return KoppaTriggerOnPsi, nil
	case "ON_MU_AFTER_PSI":
		return KoppaTriggerOnMuAfterPsi, nil
	case "ON_ALL_MU":
		return KoppaTriggerOnAllMu, nil
	default:
		return 0, fmt.Errorf("sim: unknown koppa_trigger %q", s)
	}
}

// PrimeTarget selects which υ snapshot the prime/pattern detector examines.
type PrimeTarget int

const (
	PrimeOnMemory PrimeTarget = iota
	PrimeOnNewUpsilon
)

func (t PrimeTarget) String() string {
	switch t {
	case PrimeOnMemory:
		return "PRIME_ON_MEMORY"
	case PrimeOnNewUpsilon:
		return "PRIME_ON_NEW_UPSILON"
	default:
		return "UNKNOWN"
	}
}

// ParsePrimeTarget parses a config string into a PrimeTarget.
func ParsePrimeTarget(s string) (PrimeTarget, error) {
	switch s {
	case "PRIME_ON_MEMORY":
		return PrimeOnMemory, nil
	case "PRIME_ON_NEW_UPSILON":
		return PrimeOnNewUpsilon, nil
	default:
		return 0, fmt.Errorf("sim: unknown prime_target %q", s)
	}
}

// Mt10Behavior selects what microtick 10's E phase does when its pattern
// check is negative.
type Mt10Behavior int

const (
	Mt10ForcedEmissionOnly Mt10Behavior = iota
	Mt10ForcedPsi
)

func (b Mt10Behavior) String() string {
	switch b {
	case Mt10ForcedEmissionOnly:
		return "FORCED_EMISSION_ONLY"
	case Mt10ForcedPsi:
		return "FORCED_PSI"
	default:
		return "UNKNOWN"
	}
}

// ParseMt10Behavior parses a config string into a Mt10Behavior.
func ParseMt10Behavior(s string) (Mt10Behavior, error) {
	switch s {
	case "FORCED_EMISSION_ONLY":
		return Mt10ForcedEmissionOnly, nil
	case "FORCED_PSI":
		return Mt10ForcedPsi, nil
	default:
		return 0, fmt.Errorf("sim: unknown mt10_behavior %q", s)
	}
}

// RatioTriggerMode selects the built-in or custom ratio window used by the
// ratio-in-range detector.
type RatioTriggerMode int

const (
	RatioNone RatioTriggerMode = iota
	RatioGolden
	RatioSqrt2
	RatioPlastic
	RatioCustom
)

func (m RatioTriggerMode) String() string {
	switch m {
	case RatioNone:
		return "NONE"
	case RatioGolden:
		return "GOLDEN"
	case RatioSqrt2:
		return "SQRT2"
	case RatioPlastic:
		return "PLASTIC"
	case RatioCustom:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// ParseRatioTriggerMode parses a config string into a RatioTriggerMode.
func ParseRatioTriggerMode(s string) (RatioTriggerMode, error) {
	switch s {
	case "NONE":
		return RatioNone, nil
	case "GOLDEN":
		return RatioGolden, nil
	case "SQRT2":
		return RatioSqrt2, nil
	case "PLASTIC":
		return RatioPlastic, nil
	case "CUSTOM":
		return RatioCustom, nil
	default:
		return 0, fmt.Errorf("sim: unknown ratio_trigger_mode %q", s)
	}
}

// SignFlipMode selects the sign-flip behavior applied at the end of an
// engine step.
type SignFlipMode int

const (
	SignFlipNone SignFlipMode = iota
	SignFlipAlways
	SignFlipAlternate
)

func (m SignFlipMode) String() string {
	switch m {
	case SignFlipNone:
		return "NONE"
	case SignFlipAlways:
		return "ALWAYS"
	case SignFlipAlternate:
		return "ALTERNATE"
	default:
		return "UNKNOWN"
	}
}

// ParseSignFlipMode parses a config string into a SignFlipMode.
func ParseSignFlipMode(s string) (SignFlipMode, error) {
	switch s {
	case "NONE":
		return SignFlipNone, nil
	case "ALWAYS":
		return SignFlipAlways, nil
	case "ALTERNATE":
		return SignFlipAlternate, nil
	default:
		return 0, fmt.Errorf("sim: unknown sign_flip_mode %q", s)
	}
}

// Config holds every recognized simulation option. The config loader
// (pkg/configio) is the only place that constructs one from untrusted
// input; the core never second-guesses a Config it is handed.
type Config struct {
	PsiMode         PsiMode
	KoppaMode       KoppaMode
	EngineMode      TrackMode // ADD, MULTI, SLIDE, or DELTA_ADD
	EngineUpsilon   TrackMode // used only when DualTrack is set
	EngineBeta      TrackMode
	KoppaTrigger    KoppaTrigger
	PrimeTarget     PrimeTarget
	Mt10Behavior    Mt10Behavior
	RatioTrigger    RatioTriggerMode
	SignFlipMode    SignFlipMode

	DualTrack               bool
	TriplePsi               bool
	MultiLevelKoppa         bool
	AsymmetricCascade       bool
	ConditionalTriplePsi    bool
	KoppaGatedEngine        bool
	DeltaCrossPropagation   bool
	DeltaKoppaOffset        bool
	RatioThresholdPsi       bool
	StackDepthModes         bool
	EpsilonPhiTriangle      bool
	ModularWrap             bool
	PsiStrengthParameter    bool
	RatioSnapshotLogging    bool
	FeedbackOscillator      bool
	FibonacciGate           bool
	RatioCustomRange        bool
	TwinPrimeTrigger        bool
	FibonacciTrigger        bool
	PerfectPowerTrigger     bool

	Ticks               int
	InitialUpsilon      rational.Rational
	InitialBeta         rational.Rational
	InitialKoppa        rational.Rational
	RatioCustomLower    rational.Rational
	RatioCustomUpper    rational.Rational
	KoppaWrapThreshold  uint64
	ModulusBound        *big.Int // carried from the config; no simulation step reads it
}

// SignFlipEnabled reports whether sign flipping is active, derived from
// SignFlipMode != NONE.
func (c Config) SignFlipEnabled() bool {
	return c.SignFlipMode != SignFlipNone
}

// patternFlags reports the optional pattern toggles this config enables:
// twin-prime, Fibonacci, and perfect-power.
func (c Config) patternFlags() (twin, fib, pp bool) {
	return c.TwinPrimeTrigger, c.FibonacciTrigger, c.PerfectPowerTrigger
}
