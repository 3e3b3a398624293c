// Package report implements the two canned CSV streams `simulate(config)`
// produces: events.csv and values.csv. It is the only place in this module
// that turns a sim.Observation into bytes.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/rigbyspace/operation-pretzel/pkg/rational"
	"github.com/rigbyspace/operation-pretzel/pkg/sim"
)

var eventsHeader = []string{
	"tick", "mt", "phase", "rho_event", "psi_fired", "mu_zero",
	"forced_emission", "ratio_triggered", "triple_psi", "dual_engine",
	"koppa_sample_index", "ratio_threshold", "psi_strength", "sign_flip",
}

var valuesHeader = []string{
	"tick", "mt",
	"upsilon_num", "upsilon_den",
	"beta_num", "beta_den",
	"koppa_num", "koppa_den",
	"koppa_sample_num", "koppa_sample_den",
	"prev_upsilon_num", "prev_upsilon_den",
	"prev_beta_num", "prev_beta_den",
	"koppa_stack0_num", "koppa_stack0_den",
	"koppa_stack1_num", "koppa_stack1_den",
	"koppa_stack2_num", "koppa_stack2_den",
	"koppa_stack3_num", "koppa_stack3_den",
	"koppa_stack_size",
	"delta_upsilon_num", "delta_upsilon_den",
	"delta_beta_num", "delta_beta_den",
	"triangle_phi_over_epsilon_num", "triangle_phi_over_epsilon_den",
	"triangle_prev_over_phi_num", "triangle_prev_over_phi_den",
	"triangle_epsilon_over_prev_num", "triangle_epsilon_over_prev_den",
}

// Writer implements sim.Observer by splitting every Observation across an
// events writer and a values writer, in their fixed column orders.
type Writer struct {
	events *csv.Writer
	values *csv.Writer
	row    []string // reused scratch buffer for the values row
}

// NewWriter wraps two already-open destinations. Callers own eventsDst and
// valuesDst and are responsible for closing them; Flush must be called
// before either is closed.
func NewWriter(eventsDst, valuesDst io.Writer) (*Writer, error) {
	w := &Writer{
		events: csv.NewWriter(eventsDst),
		values: csv.NewWriter(valuesDst),
	}
	if err := w.events.Write(eventsHeader); err != nil {
		return nil, fmt.Errorf("report: writing events header: %w", err)
	}
	if err := w.values.Write(valuesHeader); err != nil {
		return nil, fmt.Errorf("report: writing values header: %w", err)
	}
	return w, nil
}

// Observe implements sim.Observer.
func (w *Writer) Observe(o sim.Observation) error {
	eventsRow := []string{
		itoa64(o.Tick),
		itoa(o.Microtick),
		o.Phase,
		boolStr(o.RhoEvent),
		boolStr(o.PsiFired),
		boolStr(o.MuZero),
		boolStr(o.ForcedEmission),
		boolStr(o.RatioTriggered),
		boolStr(o.PsiTriple),
		boolStr(o.DualEngine),
		itoa(o.KoppaSampleIndex),
		boolStr(o.RatioThreshold),
		boolStr(o.PsiStrength),
		boolStr(o.SignFlip),
	}
	if err := w.events.Write(eventsRow); err != nil {
		return fmt.Errorf("report: writing events row: %w", err)
	}

	row := w.row[:0]
	row = append(row, itoa64(o.Tick), itoa(o.Microtick))
	row = appendPair(row, o.Upsilon)
	row = appendPair(row, o.Beta)
	row = appendPair(row, o.Koppa)
	row = appendPair(row, o.KoppaSample)
	row = appendPair(row, o.PrevUpsilon)
	row = appendPair(row, o.PrevBeta)
	for i := 0; i < 4; i++ {
		row = appendPair(row, o.KoppaStack[i])
	}
	row = append(row, itoa(o.KoppaStackSize))
	row = appendPair(row, o.DeltaUpsilon)
	row = appendPair(row, o.DeltaBeta)
	row = appendPair(row, o.TrianglePhiOverEpsilon)
	row = appendPair(row, o.TrianglePrevOverPhi)
	row = appendPair(row, o.TriangleEpsilonOverPrev)
	w.row = row

	if err := w.values.Write(row); err != nil {
		return fmt.Errorf("report: writing values row: %w", err)
	}
	return nil
}

// Flush flushes both underlying csv.Writers and returns the first error.
func (w *Writer) Flush() error {
	w.events.Flush()
	if err := w.events.Error(); err != nil {
		return fmt.Errorf("report: flushing events: %w", err)
	}
	w.values.Flush()
	if err := w.values.Error(); err != nil {
		return fmt.Errorf("report: flushing values: %w", err)
	}
	return nil
}

func appendPair(row []string, r rational.Rational) []string {
	return append(row, bigStr(r.Num), bigStr(r.Den))
}

func bigStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}

func itoa64(v int64) string {
	return fmt.Sprintf("%d", v)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// WriteFiles runs cfg to completion, writing events.csv and values.csv into
// dir, mirroring the file-writing `simulate(config)` entry point.
func WriteFiles(cfg sim.Config, dir string) error {
	eventsPath := dir + "/events.csv"
	valuesPath := dir + "/values.csv"

	eventsFile, err := os.Create(eventsPath)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", eventsPath, err)
	}
	defer eventsFile.Close()

	valuesFile, err := os.Create(valuesPath)
	if err != nil {
		return fmt.Errorf("report: creating %s: %w", valuesPath, err)
	}
	defer valuesFile.Close()

	w, err := NewWriter(eventsFile, valuesFile)
	if err != nil {
		return err
	}

	if err := sim.SimulateStream(cfg, w); err != nil {
		return err
	}
	return w.Flush()
}
