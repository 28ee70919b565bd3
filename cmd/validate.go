package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geosim/geosim/sim"
)

// validateCmd checks a problem spec without running the simulation
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a YAML problem spec",
	Long:  "Load a problem spec, run preprocessing-level validation, and report the problem dimensions. No simulation is performed.",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := sim.LoadProblemSpec(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load problem spec: %v", err)
		}
		problem, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Invalid problem spec: %v", err)
		}
		rows := 0
		if problem.Data != nil {
			rows = problem.Data.Len()
		}
		fmt.Printf("ok: %d locations (%dD), %d variables, %d hard data rows\n",
			problem.Domain.Len(), problem.Domain.Dims(), len(problem.Variables), rows)
	},
}

func init() {
	validateCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML problem spec")
	_ = validateCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(validateCmd)
}
