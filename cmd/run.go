package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geosim/geosim/sim"
	"github.com/geosim/geosim/sim/trace"
)

var (
	seed        int64  // Seed override; 0 keeps the spec's seed
	outputPath  string // Realization output path ("" = stdout; .gz = gzipped)
	tracePath   string // Decision trace output path ("" disables tracing)
	runParallel bool   // Simulate variables on separate goroutines
)

// runCmd executes a simulation from a YAML problem spec
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sequential simulation",
	Long:  "Load a YAML problem spec, simulate one realization per variable, and write the ensemble as CSV (gzipped when the output path ends in .gz).",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := sim.LoadProblemSpec(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load problem spec: %v", err)
		}
		if seed != 0 {
			spec.Seed = seed
		}
		problem, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Invalid problem spec: %v", err)
		}

		opts := sim.SolverOptions{Parallel: runParallel}
		if tracePath != "" {
			opts.Trace = trace.Config{Level: trace.LevelDecisions}
		}

		logrus.Infof("Starting simulation: %d locations, %d variables, seed=%d",
			problem.Domain.Len(), len(problem.Variables), spec.Seed)
		startTime := time.Now()

		solver := sim.NewSolver(problem, sim.NewSimulationKey(spec.Seed), opts)
		ensemble, err := solver.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if err := writeEnsemble(outputPath, problem, ensemble); err != nil {
			logrus.Fatalf("Failed to write realizations: %v", err)
		}
		if tracePath != "" {
			if err := writeTrace(tracePath, solver.Trace()); err != nil {
				logrus.Fatalf("Failed to write trace: %v", err)
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML problem spec")
	_ = runCmd.MarkFlagRequired("config")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed override for reproducible runs (0 = use spec seed)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Realization CSV output path (default stdout; .gz compresses)")
	runCmd.Flags().StringVar(&tracePath, "trace", "", "Decision trace CSV output path (empty disables tracing)")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "Simulate variables on separate goroutines")

	rootCmd.AddCommand(runCmd)
}
