package sim

import (
	"testing"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
)

func baseConfig() Config {
	return Config{
		PsiMode:        PsiModeStep,
		KoppaMode:      KoppaModeDump,
		EngineMode:     TrackAdd,
		KoppaTrigger:   KoppaTriggerOnPsi,
		PrimeTarget:    PrimeOnMemory,
		Mt10Behavior:   Mt10ForcedEmissionOnly,
		RatioTrigger:   RatioNone,
		SignFlipMode:   SignFlipNone,
		Ticks:          1,
		InitialUpsilon: rational.New(2, 3),
		InitialBeta:    rational.New(5, 7),
		InitialKoppa:   rational.New(1, 1),
	}
}

func TestEngineStepAddSumsBothComponentsAndKoppa(t *testing.T) {
	cfg := baseConfig()
	s := NewState(cfg)
	ok := engineStep(cfg, s, 1)
	if !ok {
		t.Fatalf("engine step should succeed under ADD")
	}
	// new_upsilon = upsilon + beta + koppa = 2/3 + 5/7 + 1/1
	want := rational.Add(rational.Add(rational.New(2, 3), rational.New(5, 7)), rational.New(1, 1))
	if !rational.SameRepr(s.Upsilon, want) {
		t.Fatalf("upsilon = %s, want %s", s.Upsilon, want)
	}
}

func TestEngineStepSlideFailsOnZeroKoppaNumerator(t *testing.T) {
	cfg := baseConfig()
	cfg.EngineMode = TrackSlide
	cfg.InitialKoppa = rational.New(0, 5)
	s := NewState(cfg)
	preUps := s.Upsilon
	ok := engineStep(cfg, s, 1)
	if ok {
		t.Fatalf("engine step should fail when koppa numerator is 0 under SLIDE")
	}
	if !rational.SameRepr(s.Upsilon, preUps) {
		t.Fatalf("state must be unchanged on engine-step failure")
	}
}

func TestEngineStepCommitUpdatesPreviousAndDeltas(t *testing.T) {
	cfg := baseConfig()
	s := NewState(cfg)
	preUps := s.Upsilon
	engineStep(cfg, s, 1)
	if !rational.SameRepr(s.PrevUpsilon, preUps) {
		t.Fatalf("previous_upsilon should be the pre-step upsilon")
	}
	wantDelta := rational.Delta(s.Upsilon, s.PrevUpsilon)
	if !rational.SameRepr(s.DeltaUpsilon, wantDelta) {
		t.Fatalf("delta_upsilon = %s, want %s", s.DeltaUpsilon, wantDelta)
	}
}

func TestAsymmetricCascadeOverridesModeByMicrotick(t *testing.T) {
	cfg := baseConfig()
	cfg.AsymmetricCascade = true
	ups, beta, _ := selectModes(cfg, &State{}, 7)
	if ups != TrackSlide || beta != TrackMulti {
		t.Fatalf("mt7 cascade = (%s,%s), want (SLIDE,MULTI)", ups, beta)
	}
}

func TestStackDepthOverrideByDepth(t *testing.T) {
	cfg := baseConfig()
	cfg.StackDepthModes = true
	s := &State{KoppaStackSize: 3}
	ups, beta, _ := selectModes(cfg, s, 2)
	if ups != TrackMulti || beta != TrackMulti {
		t.Fatalf("depth 3 should select MULTI, got (%s,%s)", ups, beta)
	}
}

func TestModularWrapNoOpWhenBetaZero(t *testing.T) {
	cfg := baseConfig()
	cfg.ModularWrap = true
	cfg.KoppaWrapThreshold = 1
	s := NewState(cfg)
	s.Beta = rational.New(0, 1)
	s.Koppa = rational.New(100, 1)
	applyModularWrap(cfg, s)
	if !rational.SameRepr(s.Koppa, rational.New(100, 1)) {
		t.Fatalf("modular wrap must no-op when beta is zero, got %s", s.Koppa)
	}
}

func TestDeltaAddPathUsesStoredDeltas(t *testing.T) {
	cfg := baseConfig()
	cfg.EngineMode = TrackDeltaAdd
	s := NewState(cfg)
	s.PrevUpsilon = rational.New(1, 3)
	s.PrevBeta = rational.New(1, 7)
	ok := engineStep(cfg, s, 1)
	if !ok {
		t.Fatalf("delta-add step should succeed")
	}
	dUps := rational.Delta(rational.New(2, 3), rational.New(1, 3))
	want := rational.Add(rational.New(2, 3), dUps)
	if !rational.SameRepr(s.Upsilon, want) {
		t.Fatalf("delta-add upsilon = %s, want %s", s.Upsilon, want)
	}
}
