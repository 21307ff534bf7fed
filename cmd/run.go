package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stackbench/stackbench/internal/bench"
	"github.com/stackbench/stackbench/internal/config"
	"github.com/stackbench/stackbench/internal/executor"
	"github.com/stackbench/stackbench/internal/report"
	"github.com/stackbench/stackbench/internal/result"
)

var (
	flagInnerRuns int
	flagOuterRuns int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <location> <stack_name> <api_name>",
		Short: "Run a benchmark suite and aggregate results across repetitions",
		Args:  cobra.ExactArgs(3),
		RunE:  runBenchmark,
	}
	cmd.Flags().IntVarP(&flagInnerRuns, "inner-runs", "r", 1, "times each test repeats within one suite execution (1-100)")
	cmd.Flags().IntVarP(&flagOuterRuns, "outer-runs", "R", 1, "times the whole suite repeats, for aggregation (1-100)")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	location, stackName, apiName := args[0], args[1], args[2]

	if err := validateRunCount("inner-runs", flagInnerRuns); err != nil {
		return err
	}
	if err := validateRunCount("outer-runs", flagOuterRuns); err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	startTime := time.Now().UTC()
	exec := executor.FromConfig(cfg.Executor, cfg.FindStack(stackName), newLogger())

	ctx := context.Background()
	runs := make([]bench.RunResult, 0, flagOuterRuns)
	for i := 1; i <= flagOuterRuns; i++ {
		fmt.Printf("Running %s against %s (round %d/%d)...\n", location, stackName, i, flagOuterRuns)
		run, err := exec.Run(ctx, location, flagInnerRuns)
		if err != nil {
			return fmt.Errorf("outer run %d: %w", i, err)
		}
		runs = append(runs, run)
	}

	aggregated := bench.Aggregate(runs, flagOuterRuns)

	fmt.Println("\n--- Results ---")
	if err := report.WriteTable(aggregated, os.Stdout); err != nil {
		return err
	}

	runDir, err := result.CreateRunDir(cfg.Results.Dir)
	if err != nil {
		return err
	}
	meta := &result.RunMeta{
		ID:        uuid.NewString(),
		Location:  location,
		StackName: stackName,
		APIName:   apiName,
		InnerRuns: flagInnerRuns,
		OuterRuns: flagOuterRuns,
		StartTime: startTime,
	}
	if err := result.WriteRun(runDir, meta, aggregated); err != nil {
		return err
	}
	fmt.Printf("\nStored results in %s\n", runDir)

	if cfg.Results.UploadURL != "" {
		if err := result.NewUploader(cfg.Results.UploadURL).Save(ctx, meta, aggregated); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		fmt.Printf("Uploaded results to %s\n", cfg.Results.UploadURL)
	}
	return nil
}

func validateRunCount(name string, v int) error {
	if v < 1 || v > 100 {
		return fmt.Errorf("%s must be between 1 and 100, got %d", name, v)
	}
	return nil
}
