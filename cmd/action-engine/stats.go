// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/action-engine/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats [workbook]",
	Short: "Recompute the category table from an existing workbook",
	Long: `Stats reads the Actions sheet of a previously written workbook and prints
the per-category counts and percentages. Useful for checking a past run
without re-querying the model.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	path := defaultOutput
	if len(args) > 0 {
		path = args[0]
	}

	records, err := report.ReadActions(path)
	if err != nil {
		return err
	}

	stats := report.Compute(records)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(os.Stdout, "%-20s  %6s  %10s\n", "Category", "Count", "Percentage")
	for _, cs := range stats.ByCategory {
		fmt.Fprintf(os.Stdout, "%-20s  %6d  %9.2f%%\n", cs.Category, cs.Count, cs.Percentage)
	}
	fmt.Fprintf(os.Stdout, "\n%d actions in %s\n", stats.Total, path)
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output the statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
