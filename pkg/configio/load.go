// Package configio is the out-of-core-scope collaborator whose job is
// turning a JSON file into a sim.Config. pkg/sim never imports this
// package — it only ever receives an already-validated sim.Config.
package configio

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
	"github.com/rigbyspace/operation-pretzel/pkg/sim"
)

// document mirrors the recognized Config I/O JSON keys. Every field is a
// string or plain JSON scalar; document.toConfig does the parsing and enum
// validation.
type document struct {
	PsiMode            string `json:"psi_mode"`
	KoppaMode          string `json:"koppa_mode"`
	EngineMode         string `json:"engine_mode"`
	UpsilonTrack       string `json:"upsilon_track"`
	BetaTrack          string `json:"beta_track"`
	DualTrackSymmetry  bool   `json:"dual_track_symmetry"`
	TriplePsi          bool   `json:"triple_psi"`
	MultiLevelKoppa    bool   `json:"multi_level_koppa"`
	KoppaTrigger       string `json:"koppa_trigger"`
	Mt10Behavior       string `json:"mt10_behavior"`
	RatioTriggerMode   string `json:"ratio_trigger_mode"`
	PrimeTarget        string `json:"prime_target"`
	SignFlipMode       string `json:"sign_flip_mode"`
	TickCount          int    `json:"tick_count"`
	KoppaWrapThreshold uint64 `json:"koppa_wrap_threshold"`
	UpsilonSeed        string `json:"upsilon_seed"`
	BetaSeed           string `json:"beta_seed"`
	KoppaSeed          string `json:"koppa_seed"`
	RatioCustomLower   string `json:"ratio_custom_lower"`
	RatioCustomUpper   string `json:"ratio_custom_upper"`
	ModulusBound       string `json:"modulus_bound"`

	EnableAsymmetricCascade    bool `json:"enable_asymmetric_cascade"`
	EnableConditionalTriplePsi bool `json:"enable_conditional_triple_psi"`
	EnableKoppaGatedEngine     bool `json:"enable_koppa_gated_engine"`
	EnableDeltaCrossPropagation bool `json:"enable_delta_cross_propagation"`
	EnableDeltaKoppaOffset     bool `json:"enable_delta_koppa_offset"`
	EnableRatioThresholdPsi    bool `json:"enable_ratio_threshold_psi"`
	EnableStackDepthModes      bool `json:"enable_stack_depth_modes"`
	EnableEpsilonPhiTriangle   bool `json:"enable_epsilon_phi_triangle"`
	EnableModularWrap          bool `json:"enable_modular_wrap"`
	EnablePsiStrengthParameter bool `json:"enable_psi_strength_parameter"`
	EnableRatioSnapshotLogging bool `json:"enable_ratio_snapshot_logging"`
	EnableFeedbackOscillator   bool `json:"enable_feedback_oscillator"`
	EnableFibonacciGate        bool `json:"enable_fibonacci_gate"`
	EnableRatioCustomRange     bool `json:"enable_ratio_custom_range"`
	EnableTwinPrimeTrigger     bool `json:"enable_twin_prime_trigger"`
	EnableFibonacciTrigger     bool `json:"enable_fibonacci_trigger"`
	EnablePerfectPowerTrigger  bool `json:"enable_perfect_power_trigger"`
}

// Load reads and validates a JSON config file, returning a ready-to-run
// sim.Config. The core is never entered on a configuration failure.
func Load(path string) (sim.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("configio: opening %s: %w", path, err)
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return sim.Config{}, fmt.Errorf("configio: parsing %s: %w", path, err)
	}

	return doc.toConfig()
}

func (doc document) toConfig() (sim.Config, error) {
	var cfg sim.Config
	var err error

	if cfg.PsiMode, err = sim.ParsePsiMode(doc.PsiMode); err != nil {
		return sim.Config{}, err
	}
	if cfg.KoppaMode, err = sim.ParseKoppaMode(doc.KoppaMode); err != nil {
		return sim.Config{}, err
	}
	if cfg.EngineMode, err = sim.ParseTrackMode(doc.EngineMode); err != nil {
		return sim.Config{}, err
	}
	if doc.UpsilonTrack != "" {
		if cfg.EngineUpsilon, err = sim.ParseTrackMode(doc.UpsilonTrack); err != nil {
			return sim.Config{}, err
		}
	}
	if doc.BetaTrack != "" {
		if cfg.EngineBeta, err = sim.ParseTrackMode(doc.BetaTrack); err != nil {
			return sim.Config{}, err
		}
	}
	if cfg.KoppaTrigger, err = sim.ParseKoppaTrigger(doc.KoppaTrigger); err != nil {
		return sim.Config{}, err
	}
	if cfg.Mt10Behavior, err = sim.ParseMt10Behavior(doc.Mt10Behavior); err != nil {
		return sim.Config{}, err
	}
	if cfg.RatioTrigger, err = sim.ParseRatioTriggerMode(doc.RatioTriggerMode); err != nil {
		return sim.Config{}, err
	}
	if cfg.PrimeTarget, err = sim.ParsePrimeTarget(doc.PrimeTarget); err != nil {
		return sim.Config{}, err
	}
	if cfg.SignFlipMode, err = sim.ParseSignFlipMode(doc.SignFlipMode); err != nil {
		return sim.Config{}, err
	}

	cfg.DualTrack = doc.DualTrackSymmetry
	cfg.TriplePsi = doc.TriplePsi
	cfg.MultiLevelKoppa = doc.MultiLevelKoppa
	cfg.AsymmetricCascade = doc.EnableAsymmetricCascade
	cfg.ConditionalTriplePsi = doc.EnableConditionalTriplePsi
	cfg.KoppaGatedEngine = doc.EnableKoppaGatedEngine
	cfg.DeltaCrossPropagation = doc.EnableDeltaCrossPropagation
	cfg.DeltaKoppaOffset = doc.EnableDeltaKoppaOffset
	cfg.RatioThresholdPsi = doc.EnableRatioThresholdPsi
	cfg.StackDepthModes = doc.EnableStackDepthModes
	cfg.EpsilonPhiTriangle = doc.EnableEpsilonPhiTriangle
	cfg.ModularWrap = doc.EnableModularWrap
	cfg.PsiStrengthParameter = doc.EnablePsiStrengthParameter
	cfg.RatioSnapshotLogging = doc.EnableRatioSnapshotLogging
	cfg.FeedbackOscillator = doc.EnableFeedbackOscillator
	cfg.FibonacciGate = doc.EnableFibonacciGate
	cfg.RatioCustomRange = doc.EnableRatioCustomRange
	cfg.TwinPrimeTrigger = doc.EnableTwinPrimeTrigger
	cfg.FibonacciTrigger = doc.EnableFibonacciTrigger
	cfg.PerfectPowerTrigger = doc.EnablePerfectPowerTrigger

	cfg.Ticks = doc.TickCount
	cfg.KoppaWrapThreshold = doc.KoppaWrapThreshold

	if cfg.InitialUpsilon, err = parseSeed("upsilon_seed", doc.UpsilonSeed); err != nil {
		return sim.Config{}, err
	}
	if cfg.InitialBeta, err = parseSeed("beta_seed", doc.BetaSeed); err != nil {
		return sim.Config{}, err
	}
	if cfg.InitialKoppa, err = parseSeed("koppa_seed", doc.KoppaSeed); err != nil {
		return sim.Config{}, err
	}

	if cfg.RatioCustomRange {
		if cfg.RatioCustomLower, err = parseSeed("ratio_custom_lower", doc.RatioCustomLower); err != nil {
			return sim.Config{}, err
		}
		if cfg.RatioCustomUpper, err = parseSeed("ratio_custom_upper", doc.RatioCustomUpper); err != nil {
			return sim.Config{}, err
		}
	}

	if doc.ModulusBound != "" {
		bound, ok := new(big.Int).SetString(doc.ModulusBound, 10)
		if !ok {
			return sim.Config{}, fmt.Errorf("configio: invalid modulus_bound %q", doc.ModulusBound)
		}
		cfg.ModulusBound = bound
	}

	if cfg.Ticks <= 0 {
		return sim.Config{}, fmt.Errorf("configio: tick_count must be positive, got %d", cfg.Ticks)
	}

	return cfg, nil
}

// parseSeed turns a "num/den" string into a rational.Rational.
func parseSeed(field, s string) (rational.Rational, error) {
	if s == "" {
		return rational.Zero(), nil
	}
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return rational.Rational{}, fmt.Errorf("configio: %s %q is not \"num/den\"", field, s)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return rational.Rational{}, fmt.Errorf("configio: %s numerator: %w", field, err)
	}
	d, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return rational.Rational{}, fmt.Errorf("configio: %s denominator: %w", field, err)
	}
	if d == 0 {
		return rational.Rational{}, fmt.Errorf("configio: %s has zero denominator", field)
	}
	return rational.New(n, d), nil
}
