package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stackbench",
		Short: "Benchmark suite runner with cross-run aggregation",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "stackbench.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	return root
}

// Diagnostics go to stderr so stdout stays parseable.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
