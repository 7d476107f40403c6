package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/augur-analysis/augur/pkg/analyzer/health"
	"github.com/augur-analysis/augur/pkg/engine"
)

func renderJSON(w io.Writer, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// renderYAML goes through JSON first so the YAML keys match the JSON
// field names instead of Go's lowercased struct names.
func renderYAML(w io.Writer, result *engine.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	return yaml.NewEncoder(w).Encode(generic)
}

func renderTable(w io.Writer, result *engine.Result) error {
	h := result.Health
	d := result.Debt

	title := fmt.Sprintf("Architecture Health: %.1f/100 (%s)",
		h.Summary.OverallHealth, h.Summary.Category)
	color.New(color.Bold).Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintf(w, "Files: %d  Modules: %d  Debt: %.1fh (%.1fd, rating %s)\n\n",
		result.Files, len(result.Modules),
		d.Summary.RemediationHours, d.Summary.RemediationDays, d.Summary.Rating)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)
	table.Header([]string{"Module", "Health", "Category", "Debt (h)", "Rating", "Severity", "Testability"})

	// Worst modules first, same order triage should follow.
	for _, entry := range h.Rankings.ByHealth {
		mh := h.Modules[entry.Module]
		var hours float64
		rating := "A"
		if md := d.Modules[entry.Module]; md != nil {
			hours = md.RemediationHours
			rating = md.Rating
		}
		severity := 0
		if m := result.Coupling.Modules[entry.Module]; m != nil {
			severity = m.Severity
		}
		testScore := 100.0
		if m := result.Testability.Modules[entry.Module]; m != nil {
			testScore = m.Score
		}
		table.Append([]string{
			entry.Module,
			colorScore(mh.Score),
			mh.Category,
			fmt.Sprintf("%.1f", hours),
			rating,
			fmt.Sprintf("%d", severity),
			fmt.Sprintf("%.1f", testScore),
		})
	}
	table.Render()
	fmt.Fprintln(w)

	if len(result.Graph.Cycles) > 0 {
		color.New(color.FgYellow).Fprintln(w, "Dependency cycles:")
		for _, cycle := range result.Graph.Cycles {
			fmt.Fprintf(w, "  %s\n", strings.Join(cycle, " <-> "))
		}
		fmt.Fprintln(w)
	}
	if len(result.Coupling.UnknownTables) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Tables without ownership (%d): %s\n\n",
			len(result.Coupling.UnknownTables), strings.Join(result.Coupling.UnknownTables, ", "))
	}
	if len(result.Skipped) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Skipped files: %d\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", s.Path, s.Reason)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func colorScore(score float64) string {
	text := fmt.Sprintf("%.1f", score)
	switch health.CategoryFor(score) {
	case health.CategoryExcellent, health.CategoryGood:
		return color.GreenString(text)
	case health.CategoryWarning:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
