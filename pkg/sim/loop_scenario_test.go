package sim

import (
	"testing"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

// collectingObserver records every Observation it sees, in order.
type collectingObserver struct {
	rows []Observation
}

func (c *collectingObserver) Observe(o Observation) error {
	c.rows = append(c.rows, o)
	return nil
}

func TestScenarioPlainAddDump(t *testing.T) {
	cfg := Config{
		PsiMode:        PsiModeStep,
		KoppaMode:      KoppaModeDump,
		EngineMode:     TrackAdd,
		KoppaTrigger:   KoppaTriggerOnPsi,
		PrimeTarget:    PrimeOnMemory,
		Mt10Behavior:   Mt10ForcedEmissionOnly,
		RatioTrigger:   RatioNone,
		SignFlipMode:   SignFlipNone,
		Ticks:          1,
		InitialUpsilon: rational.New(3, 5),
		InitialBeta:    rational.New(5, 7),
		InitialKoppa:   rational.New(1, 1),
	}
	obs := &collectingObserver{}
	if err := SimulateStream(cfg, obs); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if len(obs.rows) != 11 {
		t.Fatalf("expected 11 microtick rows, got %d", len(obs.rows))
	}

	// mt=1 (E): upsilon = 3/5 + 5/7 + 1/1 = (3*7*1 + 5*5*1 + 1*5*7)/(5*7*1)
	// = 81/35, cross-multiplied with no reduction.
	mt1 := obs.rows[0]
	wantMt1Upsilon := rational.New(81, 35)
	if !rational.SameRepr(mt1.Upsilon, wantMt1Upsilon) {
		t.Fatalf("mt=1 upsilon = %s, want %s", mt1.Upsilon, wantMt1Upsilon)
	}
	if !rational.SameRepr(mt1.Epsilon, rational.New(3, 5)) {
		t.Fatalf("mt=1 epsilon = %s, want 3/5", mt1.Epsilon)
	}

	// mt=2 (M): psi fires on phi=81/35 (the upsilon carried into the M
	// phase) against the still-untouched beta=5/7, producing
	// upsilon = (5*35)/(7*81) = 175/567 and beta = (81*7)/(35*5) = 567/175.
	mt2 := obs.rows[1]
	if !mt2.PsiFired {
		t.Fatalf("mt=2 should fire psi under MSTEP")
	}
	if !rational.SameRepr(mt2.Phi, wantMt1Upsilon) {
		t.Fatalf("mt=2 phi = %s, want %s", mt2.Phi, wantMt1Upsilon)
	}
	wantMt2Upsilon := rational.New(175, 567)
	wantMt2Beta := rational.New(567, 175)
	if !rational.SameRepr(mt2.Upsilon, wantMt2Upsilon) {
		t.Fatalf("mt=2 upsilon = %s, want %s", mt2.Upsilon, wantMt2Upsilon)
	}
	if !rational.SameRepr(mt2.Beta, wantMt2Beta) {
		t.Fatalf("mt=2 beta = %s, want %s", mt2.Beta, wantMt2Beta)
	}

	var psiCount, koppaAccrualCount int
	for _, row := range obs.rows {
		if row.PsiFired {
			psiCount++
		}
		if row.Phase == "M" && !rational.SameRepr(row.Koppa, rational.Zero()) {
			koppaAccrualCount++
		}
	}
	// MSTEP requests psi on every M microtick, and nothing in this config
	// blocks the stack-depth gate (multi_level_koppa is off), so all 4 M
	// microticks fire.
	if psiCount != 4 {
		t.Fatalf("expected psi to fire on all 4 M microticks under MSTEP, got %d", psiCount)
	}
	if koppaAccrualCount == 0 {
		t.Fatalf("DUMP+ON_PSI should have accrued koppa on at least one M microtick")
	}
}

func TestScenarioSlideDivideByZeroKoppa(t *testing.T) {
	cfg := Config{
		PsiMode:        PsiModeStep,
		KoppaMode:      KoppaModeDump,
		EngineMode:     TrackSlide,
		KoppaTrigger:   KoppaTriggerOnPsi,
		PrimeTarget:    PrimeOnMemory,
		Mt10Behavior:   Mt10ForcedEmissionOnly,
		RatioTrigger:   RatioNone,
		SignFlipMode:   SignFlipNone,
		Ticks:          1,
		InitialUpsilon: rational.New(2, 3),
		InitialBeta:    rational.New(5, 7),
		InitialKoppa:   rational.New(0, 9), // zero numerator -> SLIDE fails at mt=1
	}
	obs := &collectingObserver{}
	if err := SimulateStream(cfg, obs); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	// Only the mt=1 step sees the zero koppa: the mt=2 psi and its ON_PSI
	// accrual leave koppa non-zero, so later SLIDE steps can succeed.
	for _, row := range obs.rows {
		if row.Phase != "E" || row.Microtick != 1 {
			continue
		}
		if row.EngineSucceeded {
			t.Fatalf("tick %d mt %d: engine step should not succeed under SLIDE with zero koppa", row.Tick, row.Microtick)
		}
		if !rational.SameRepr(row.Upsilon, cfg.InitialUpsilon) || !rational.SameRepr(row.Beta, cfg.InitialBeta) {
			t.Fatalf("upsilon/beta must stay unchanged when the engine step is a no-op")
		}
	}
}

func TestScenarioStackDepthGating(t *testing.T) {
	cfg := Config{
		PsiMode:         PsiModeStep,
		KoppaMode:       KoppaModeAccumulate,
		EngineMode:      TrackAdd,
		KoppaTrigger:    KoppaTriggerOnAllMu,
		PrimeTarget:     PrimeOnMemory,
		Mt10Behavior:    Mt10ForcedEmissionOnly,
		RatioTrigger:    RatioNone,
		SignFlipMode:    SignFlipNone,
		StackDepthModes: true,
		Ticks:           1,
		InitialUpsilon:  rational.New(2, 3),
		InitialBeta:     rational.New(5, 7),
		InitialKoppa:    rational.New(1, 1),
	}
	obs := &collectingObserver{}
	if err := SimulateStream(cfg, obs); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	for _, row := range obs.rows {
		if row.Phase != "M" {
			continue
		}
		if row.PsiFired && row.KoppaStackSize != 2 && row.KoppaStackSize != 4 {
			t.Fatalf("tick %d mt %d: psi fired at disallowed stack depth %d", row.Tick, row.Microtick, row.KoppaStackSize)
		}
	}
}

func TestScenarioPrimeOnMemory(t *testing.T) {
	cfg := Config{
		PsiMode:        PsiModeRhoOnly,
		KoppaMode:      KoppaModeDump,
		EngineMode:     TrackAdd,
		KoppaTrigger:   KoppaTriggerOnPsi,
		PrimeTarget:    PrimeOnMemory,
		Mt10Behavior:   Mt10ForcedEmissionOnly,
		RatioTrigger:   RatioNone,
		SignFlipMode:   SignFlipNone,
		Ticks:          1,
		InitialUpsilon: rational.New(7, 1), // 7 is prime: epsilon snapshot will flag rho
		InitialBeta:    rational.New(1, 1),
		InitialKoppa:   rational.New(1, 1),
	}
	obs := &collectingObserver{}
	if err := SimulateStream(cfg, obs); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	var sawRho bool
	for _, row := range obs.rows {
		if row.Phase == "E" && row.RhoEvent {
			sawRho = true
			if !rational.SameRepr(row.Epsilon, rational.New(7, 1)) {
				t.Fatalf("PRIME_ON_MEMORY should test epsilon, got %s", row.Epsilon)
			}
		}
	}
	if !sawRho {
		t.Fatalf("expected at least one rho event against a prime upsilon snapshot")
	}
}

func TestScenarioConditionalTriple(t *testing.T) {
	cfg := Config{
		PsiMode:              PsiModeStep,
		KoppaMode:            KoppaModeDump,
		EngineMode:           TrackDeltaAdd,
		KoppaTrigger:         KoppaTriggerOnPsi,
		PrimeTarget:          PrimeOnMemory,
		Mt10Behavior:         Mt10ForcedEmissionOnly,
		RatioTrigger:         RatioNone,
		SignFlipMode:         SignFlipNone,
		ConditionalTriplePsi: true,
		Ticks:                1,
		// upsilon, beta, and koppa numerators are all prime -> conditional
		// triple should engage on the first psi fire. DELTA_ADD keeps the
		// seeds intact through mt=1 (previous == seed, so both deltas are
		// 0/1), whereas an ADD step would turn upsilon into 10/1 first.
		InitialUpsilon: rational.New(2, 1),
		InitialBeta:    rational.New(3, 1),
		InitialKoppa:   rational.New(5, 1),
	}
	obs := &collectingObserver{}
	if err := SimulateStream(cfg, obs); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	var sawTriple bool
	for _, row := range obs.rows {
		if row.PsiTriple {
			sawTriple = true
		}
	}
	if !sawTriple {
		t.Fatalf("expected conditional_triple_psi to engage when all three numerators are prime")
	}
}
