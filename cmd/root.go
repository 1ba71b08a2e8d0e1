package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/delta-sim/delta-sim/sim"
	"github.com/delta-sim/delta-sim/sim/trace"
)

var (
	// CLI flags for the simulation kernel
	seed              int64  // Seed for random stimulus processes
	simulationHorizon int64  // Simulated-time limit (in ticks, 0 = unbounded)
	logLevel          string // Log verbosity level
	strictMode        bool   // Escalate multiple-driver conflicts to fatal errors
	maxDeltaIters     int    // Divergence ceiling per time step
	traceLevel        string // Trace level (none, commits, all)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "delta-sim",
	Short: "Discrete-event simulation kernel for elaborated hardware models",
}

// kernelConfig assembles the kernel Config from CLI flags.
func kernelConfig() sim.Config {
	return sim.NewConfig(
		sim.NewSchedulerConfig(strictMode, maxDeltaIters),
		sim.NewRunConfig(simulationHorizon, seed),
	)
}

// loadAndRun elaborates the model file and runs it with an attached trace.
func loadAndRun(path string) (*trace.SimulationTrace, sim.Result, error) {
	spec, err := LoadModelSpec(path)
	if err != nil {
		return nil, sim.Result{}, err
	}
	s, err := spec.Elaborate(kernelConfig())
	if err != nil {
		return nil, sim.Result{}, err
	}

	if !trace.IsValidLevel(traceLevel) {
		logrus.Fatalf("Invalid trace level: %s", traceLevel)
	}
	tr := trace.NewSimulationTrace(trace.Config{Level: trace.Level(traceLevel)})
	s.SetTrace(tr)

	return tr, s.Run(), nil
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run <model.yaml>",
	Short: "Run a model file to quiescence, stop, or horizon",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		logrus.Infof("Starting simulation: model=%s horizon=%d ticks strict=%v seed=%d",
			args[0], simulationHorizon, strictMode, seed)
		startTime := time.Now()

		tr, result, err := loadAndRun(args[0])
		if err != nil {
			logrus.Fatalf("Simulation setup failed: %v", err)
		}
		printResult(tr, result, time.Since(startTime))
		if result.Err != nil {
			logrus.Fatalf("Simulation failed: %v", result.Err)
		}
	},
}

// observeCmd runs a model and dumps the commit trace as VCD text.
var observeCmd = &cobra.Command{
	Use:   "observe <model.yaml>",
	Short: "Run a model and write its commit trace as VCD",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		// VCD needs the commit stream regardless of the --trace flag.
		if traceLevel == string(trace.LevelNone) || traceLevel == "" {
			traceLevel = string(trace.LevelCommits)
		}
		tr, result, err := loadAndRun(args[0])
		if err != nil {
			logrus.Fatalf("Simulation setup failed: %v", err)
		}
		if result.Err != nil {
			logrus.Fatalf("Simulation failed: %v", result.Err)
		}

		out := os.Stdout
		if vcdOutput != "" {
			f, err := os.Create(vcdOutput)
			if err != nil {
				logrus.Fatalf("Cannot create output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := trace.WriteVCD(out, tr); err != nil {
			logrus.Fatalf("VCD write failed: %v", err)
		}
	},
}

var vcdOutput string // --output flag of observeCmd

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// printResult mirrors the run summary to stdout: status, final time,
// totals, and per-signal toggle counts in name order.
func printResult(tr *trace.SimulationTrace, result sim.Result, elapsed time.Duration) {
	summary := trace.Summarize(tr)

	fmt.Printf("status:        %s\n", result.Status)
	fmt.Printf("final time:    %d ticks\n", result.FinalTime)
	fmt.Printf("delta cycles:  %d\n", result.DeltaCycles)
	fmt.Printf("commits:       %d\n", result.Commits)
	fmt.Printf("hazards:       %d\n", summary.TotalHazards)
	fmt.Printf("wall clock:    %s\n", elapsed)

	names := make([]string, 0, len(summary.ToggleCounts))
	for name := range summary.ToggleCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %d toggles\n", name, summary.ToggleCounts[name])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for random stimulus processes")
	rootCmd.PersistentFlags().Int64Var(&simulationHorizon, "horizon", 0, "Simulated-time limit in ticks (0 = unbounded)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false, "Halt on multiple-driver conflicts")
	rootCmd.PersistentFlags().IntVar(&maxDeltaIters, "max-delta-iters", sim.DefaultMaxDeltaIterations, "Delta-cycle iteration ceiling per time step")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "none", "Trace level (none, commits, all)")

	observeCmd.Flags().StringVar(&vcdOutput, "output", "", "VCD output file (default stdout)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(observeCmd)
}
