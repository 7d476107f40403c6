package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/augur-analysis/augur/pkg/config"
	"github.com/augur-analysis/augur/pkg/engine"
	"github.com/augur-analysis/augur/pkg/facts"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Run the full analysis over a facts file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "facts",
				Usage:    "Path to the extracted facts JSON",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (YAML, TOML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format: table, json, yaml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	extraction, err := loadFacts(c.String("facts"))
	if err != nil {
		return err
	}

	var opts []engine.Option
	if !c.Bool("no-progress") && c.String("output") == "" && c.String("format") == "table" {
		bar := progressbar.NewOptions(len(engine.Stages),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("analyzing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		opts = append(opts, engine.WithProgress(func(stage string, completed, total int) {
			_ = bar.Add(1)
		}))
	}

	result, err := engine.New(cfg, opts...).Run(c.Context, *extraction)
	if err != nil {
		return err
	}

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch c.String("format") {
	case "json":
		return renderJSON(out, result)
	case "yaml":
		return renderYAML(out, result)
	case "table":
		return renderTable(out, result)
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", c.String("format"))
	}
}

func loadFacts(path string) (*facts.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading facts file: %w", err)
	}
	var extraction facts.Extraction
	if err := json.Unmarshal(data, &extraction); err != nil {
		return nil, fmt.Errorf("decoding facts file %s: %w", path, err)
	}
	return &extraction, nil
}
