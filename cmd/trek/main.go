// Package main provides the Trek CLI.
package main

import (
	"fmt"
	"os"

	"github.com/trek-rl/trek/a3c"
	"github.com/trek-rl/trek/internal/config"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Trek %s\n", version)
			return
		case "checkpoint":
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(a3c.CheckpointName(a3c.Checkpoint{
				Model:       cfg.ModelName,
				InputSize:   cfg.InputSize,
				MaxEpisodes: cfg.MaxEpisodes,
				TaskSteps:   cfg.TaskSteps,
			}))
			return
		}
	}

	fmt.Println("Trek - A3C Training Utilities for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version       Show version")
	fmt.Println("  checkpoint    Print the checkpoint filename for the configured run")
}
