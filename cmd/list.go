package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackbench/stackbench/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list {apis|stacks}",
		Short: "List registered API labels or stack names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			items, err := listItems(cfg, args[0])
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Println(item)
			}
			return nil
		},
	}
}

func listItems(cfg *config.Config, scope string) ([]string, error) {
	switch scope {
	case "apis":
		return cfg.APIs, nil
	case "stacks":
		return cfg.StackNames(), nil
	default:
		return nil, fmt.Errorf("unknown scope %q (expected apis or stacks)", scope)
	}
}
