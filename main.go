package main

import (
	"os"

	"github.com/stackbench/stackbench/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
