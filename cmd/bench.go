package main

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/hqcflow/internal/bench"
	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/spf13/cobra"
)

var (
	benchDataDir          string
	benchDomain           string
	benchHybridCost       float64
	benchHybridQuality    float64
	benchClassicalTime    float64
	benchClassicalCost    float64
	benchClassicalQuality float64
	benchClassicalIters   int
)

var benchCmd = &cobra.Command{
	Use:   "bench <result-id>",
	Short: "Benchmark a stored result against a classical baseline",
	Long: `Compares a stored workflow result against classical baseline figures
supplied via flags and prints the computed metrics as JSON. Execution time
and iteration count of the hybrid side come from the stored result.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchDataDir, "data-dir", "./data", "Base directory for result storage")
	benchCmd.Flags().StringVar(&benchDomain, "domain", "", "Application domain for KPI templates (pharmaceutical, financial, materials_science)")
	benchCmd.Flags().Float64Var(&benchHybridCost, "hybrid-cost", 0, "Cost of the hybrid run")
	benchCmd.Flags().Float64Var(&benchHybridQuality, "hybrid-quality", 0, "Solution quality of the hybrid run [0,1]")
	benchCmd.Flags().Float64Var(&benchClassicalTime, "classical-time", 0, "Execution time of the classical baseline in seconds")
	benchCmd.Flags().Float64Var(&benchClassicalCost, "classical-cost", 0, "Cost of the classical baseline")
	benchCmd.Flags().Float64Var(&benchClassicalQuality, "classical-quality", 0, "Solution quality of the classical baseline [0,1]")
	benchCmd.Flags().IntVar(&benchClassicalIters, "classical-iters", 0, "Iteration count of the classical baseline")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(benchDataDir)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}

	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	hybrid := bench.Measurement{
		ExecutionTime:   result.ElapsedSeconds,
		Cost:            benchHybridCost,
		SolutionQuality: benchHybridQuality,
		Iterations:      result.Evaluations,
	}
	classical := bench.Measurement{
		ExecutionTime:   benchClassicalTime,
		Cost:            benchClassicalCost,
		SolutionQuality: benchClassicalQuality,
		Iterations:      benchClassicalIters,
	}

	engine := bench.NewEngine()
	b, err := engine.Compare(hybrid, classical, benchDomain)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode benchmark: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
