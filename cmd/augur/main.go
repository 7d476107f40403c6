package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "augur",
		Usage:   "Architecture health analysis from extracted code facts",
		Version: version,
		Description: `Augur scores a codebase's architecture health from a structural fact
file: complexity, maintainability, duplication, class cohesion,
database coupling, dependency cycles, testability, and priced
technical debt, rolled up into one health score per module.`,
		Commands: []*cli.Command{
			analyzeCommand(),
			configCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
