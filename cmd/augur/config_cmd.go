package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// defaultConfigTemplate mirrors config.Default(), with the knobs people
// actually change up top.
const defaultConfigTemplate = `# augur configuration

# Map each module to the tables/collections it owns. The special module
# "shared" lists tables any module may touch. Tables not listed anywhere
# are reported as unknown and never scored.
table_ownership:
  # billing:
  #   - invoices
  #   - payments
  # shared:
  #   - settings

thresholds:
  complexity: 10
  maintainability: 20
  file_size: 500
  function_size: 50
  parameters: 5
  nesting: 4
  class_methods: 20
  class_wmc: 50
  class_lcom: 2
  comment_ratio: 5
  module_fan_out: 10
  module_fan_in: 20

# Hours to fix one instance of each issue kind.
remediation_costs:
  very_high_complexity: 1.0
  high_complexity: 0.5
  low_maintainability: 2.0
  god_class: 4.0
  god_method: 2.0
  long_method: 0.5
  long_parameter_list: 0.25
  deep_nesting: 0.5
  duplicate_code: 1.0
  other_table_write: 2.0
  other_table_read: 0.5
  low_cohesion: 3.0
  high_fan_out: 1.0

# Data-access classification. Defaults cover the common driver method
# names; writes are additionally matched by prefix (insert*, update*,
# delete*, replace*).
# coupling:
#   read_methods: [find, find_one, aggregate, count, select, query, get]
#   write_methods: [insert_one, update_one, delete_one, save, remove]
#   data_access_modules: [db]

duplicates:
  min_lines: 6
  similarity: 0.8
  max_comparisons: 250000

hours_per_line: 0.1

# 0 = twice the CPU count.
workers: 0
`

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Value: "augur.yaml",
						Usage: "Where to write the config",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.String("path")
					if _, err := os.Stat(path); err == nil && !c.Bool("force") {
						return fmt.Errorf("%s already exists (use --force to overwrite)", path)
					}
					if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
						return fmt.Errorf("writing config: %w", err)
					}
					color.Green("Wrote %s", path)
					return nil
				},
			},
		},
	}
}
