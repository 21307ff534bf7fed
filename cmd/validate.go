package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/stackbench/stackbench/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config and executor setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			problems := checkConfig(cfg)
			if len(problems) == 0 {
				fmt.Println("Config OK")
				return nil
			}
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		},
	}
}

func checkConfig(cfg *config.Config) []string {
	var problems []string
	if cfg.Executor.Image == "" {
		if _, err := exec.LookPath(cfg.Executor.Command); err != nil {
			problems = append(problems, fmt.Sprintf("executor command %q not found in PATH", cfg.Executor.Command))
		}
	}
	for _, s := range cfg.Stacks {
		if s.URL == "" {
			problems = append(problems, fmt.Sprintf("stack %q has no url; suites will run without STACK_URL", s.Name))
		}
	}
	if len(cfg.Stacks) == 0 {
		problems = append(problems, "no stacks registered; `list stacks` will print nothing")
	}
	if len(cfg.APIs) == 0 {
		problems = append(problems, "no api labels registered; `list apis` will print nothing")
	}
	return problems
}
