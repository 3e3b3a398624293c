// Command symsim runs the rational-dynamics simulator, writing its two
// canned CSV streams or printing observations as they're produced.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/rigbyspace/operation-pretzel/pkg/configio"
	"github.com/rigbyspace/operation-pretzel/pkg/report"
	"github.com/rigbyspace/operation-pretzel/pkg/sim"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "symsim",
		Short: "Deterministic rational-dynamics simulator",
	}

	var configPath string
	var outDir string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation to completion, writing events.csv and values.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configio.Load(configPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = "."
			}
			if err := report.WriteFiles(cfg, outDir); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			fmt.Printf("wrote %s/events.csv and %s/values.csv (%d ticks)\n", outDir, outDir, cfg.Ticks)
			return nil
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "path to the simulation config JSON")
	runCmd.Flags().StringVar(&outDir, "out", ".", "directory to write events.csv and values.csv into")
	_ = runCmd.MarkFlagRequired("config")

	var streamLimit int

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "Run a simulation, printing one line per microtick instead of writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configio.Load(configPath)
			if err != nil {
				return err
			}
			printer := &stdoutObserver{limit: streamLimit}
			if err := sim.SimulateStream(cfg, printer); err != nil && !errors.Is(err, errStreamLimitReached) {
				return fmt.Errorf("stream: %w", err)
			}
			return nil
		},
	}
	streamCmd.Flags().StringVar(&configPath, "config", "", "path to the simulation config JSON")
	streamCmd.Flags().IntVar(&streamLimit, "limit", 0, "stop after N microticks (0 = no limit)")
	_ = streamCmd.MarkFlagRequired("config")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a config and run it without writing any output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configio.Load(configPath)
			if err != nil {
				return err
			}
			if err := sim.Simulate(cfg); err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			fmt.Println("config OK")
			return nil
		},
	}
	validateCmd.Flags().StringVar(&configPath, "config", "", "path to the simulation config JSON")
	_ = validateCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(runCmd, streamCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// stdoutObserver implements sim.Observer by printing a compact line per
// microtick. It stops (returning a sentinel error, which the stream command
// treats as a normal end rather than a failure) once limit microticks have
// been seen, if limit > 0.
type stdoutObserver struct {
	seen  int
	limit int
}

func (o *stdoutObserver) Observe(obs sim.Observation) error {
	o.seen++
	fmt.Fprintf(os.Stdout, "tick=%d mt=%d phase=%s upsilon=%s beta=%s koppa=%s psi_fired=%t rho_event=%t\n",
		obs.Tick, obs.Microtick, obs.Phase,
		obs.Upsilon.String(), obs.Beta.String(), obs.Koppa.String(),
		obs.PsiFired, obs.RhoEvent,
	)
	if o.limit > 0 && o.seen >= o.limit {
		return errStreamLimitReached
	}
	return nil
}

var errStreamLimitReached = fmt.Errorf("symsim: stream limit reached")
