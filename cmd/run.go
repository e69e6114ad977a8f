package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/hqcflow/internal/opt"
	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/cwbudde/hqcflow/internal/vqe"
	"github.com/spf13/cobra"
)

var (
	runQubits      int
	runParams      int
	runReps        int
	runBackend     string
	runSpecFile    string
	runMaxEvals    int
	runOptimizer   string
	runPopSize     int
	runSeed        int64
	runEvalTimeout time.Duration
	runDeadline    time.Duration
	runStrict      bool
	runRemoteURL   string
	runDataDir     string
	runNoSave      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single workflow execution",
	Long: `Builds the operator and ansatz for a problem spec, resolves the backend
and drives the classical optimizer against it, then stores the result.`,
	RunE: runWorkflow,
}

func init() {
	runCmd.Flags().IntVar(&runQubits, "qubits", vqe.DefaultQubits, "Number of qubits (operator dimension is 2^qubits)")
	runCmd.Flags().IntVar(&runParams, "params", vqe.DefaultParameters, "Number of optimization parameters")
	runCmd.Flags().IntVar(&runReps, "reps", vqe.DefaultReps, "Ansatz repetition count")
	runCmd.Flags().StringVar(&runBackend, "backend", vqe.DefaultBackend, "Backend identifier")
	runCmd.Flags().StringVar(&runSpecFile, "spec", "", "Problem spec YAML file (overrides spec flags)")
	runCmd.Flags().IntVar(&runMaxEvals, "max-evals", vqe.DefaultMaxEvaluations, "Hard cap on cost-function evaluations")
	runCmd.Flags().StringVar(&runOptimizer, "optimizer", "compass", "Optimizer: compass, mayfly")
	runCmd.Flags().IntVar(&runPopSize, "pop", 20, "Population size (mayfly only)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "Random seed")
	runCmd.Flags().DurationVar(&runEvalTimeout, "eval-timeout", 0, "Per-evaluation timeout (0 = none)")
	runCmd.Flags().DurationVar(&runDeadline, "deadline", 0, "Wall-clock deadline for the whole run (0 = none)")
	runCmd.Flags().BoolVar(&runStrict, "strict-backend", false, "Fail on unknown backend instead of falling back to the local simulator")
	runCmd.Flags().StringVar(&runRemoteURL, "remote-url", "", "Base URL of a remote evaluation service")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "./data", "Base directory for result storage")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Skip persisting the result")

	rootCmd.AddCommand(runCmd)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	var spec vqe.ProblemSpec
	var err error

	if runSpecFile != "" {
		spec, err = vqe.LoadSpec(runSpecFile)
		if err != nil {
			return err
		}
	} else {
		spec = vqe.ProblemSpec{
			Qubits:     runQubits,
			Parameters: runParams,
			Reps:       runReps,
			Backend:    runBackend,
		}
		if err := spec.Validate(); err != nil {
			return err
		}
	}

	var optimizer opt.Optimizer
	switch runOptimizer {
	case "compass":
		optimizer = opt.NewCompass()
	case "mayfly":
		optimizer = opt.NewMayfly(runPopSize, runSeed, 0, 1)
	default:
		return fmt.Errorf("unknown optimizer: %s", runOptimizer)
	}

	registry := buildRegistry(runStrict, runRemoteURL)
	orchestrator := vqe.NewOrchestrator(registry, nil)

	ctx := context.Background()
	if runDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runDeadline)
		defer cancel()
	}

	slog.Info("Starting workflow",
		"backend", spec.Backend,
		"qubits", spec.Qubits,
		"parameters", spec.Parameters,
		"max_evals", runMaxEvals,
		"optimizer", runOptimizer,
	)

	result, err := orchestrator.Execute(ctx, spec, vqe.Options{
		MaxEvaluations: runMaxEvals,
		EvalTimeout:    runEvalTimeout,
		Seed:           runSeed,
		Optimizer:      optimizer,
	})
	if err != nil {
		return err
	}

	if !runNoSave {
		resultStore, err := store.NewFSStore(runDataDir)
		if err != nil {
			return fmt.Errorf("failed to create result store: %w", err)
		}
		if err := resultStore.SaveResult(result); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
	}

	fmt.Printf("Workflow %s completed: energy %.6f in %d evaluations (converged: %v, %.2fs)\n",
		result.ID, result.MinimumEnergy, result.Evaluations, result.Converged, result.ElapsedSeconds)

	return nil
}
