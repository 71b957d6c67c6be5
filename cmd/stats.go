// =============================================================================
// Catalog Order Mapper - Stats Command
// =============================================================================
//
// This file defines the 'stats' command, which summarizes the loaded
// catalog: total items, per-category counts, and the catalog metadata.
//
// COMMAND USAGE:
//   ordercsv stats [--format text|json] [--top N]
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

// statsFormat selects the output format: "text" or "json".
var statsFormat string

// statsTop limits the per-category listing to the N largest categories.
// Zero lists all of them.
var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `The stats command loads the catalog and prints item totals, category
counts, and the catalog metadata block.

Use --format json for machine-readable output.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(
		&statsFormat,
		"format",
		"text",
		"Output format: text or json",
	)

	statsCmd.Flags().IntVar(
		&statsTop,
		"top",
		0,
		"Show only the N categories with the most items (0 = all)",
	)
}

func runStats() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stats, err := openCatalog(cfg).Stats()
	if err != nil {
		return err
	}

	if statsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Println("=== Catalog Statistics ===")
	fmt.Printf("Total items:  %d\n", stats.TotalItems)
	fmt.Printf("Categories:   %d\n", len(stats.Categories))

	// Sort categories by item count, descending, for display.
	sorted := make([]string, len(stats.Categories))
	copy(sorted, stats.Categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return stats.CategoryCounts[sorted[i]] > stats.CategoryCounts[sorted[j]]
	})

	if statsTop > 0 && statsTop < len(sorted) {
		sorted = sorted[:statsTop]
		fmt.Printf("\nTop %d categories by item count:\n", statsTop)
	} else {
		fmt.Println("\nItems per category:")
	}

	for _, category := range sorted {
		fmt.Printf("  %-30s %d\n", category, stats.CategoryCounts[category])
	}

	if len(stats.Metadata) > 0 {
		fmt.Println("\nMetadata:")
		if v, ok := stats.Metadata["version"]; ok {
			fmt.Printf("  Version:      %v\n", v)
		}
		if v, ok := stats.Metadata["generated_at"]; ok {
			fmt.Printf("  Generated at: %v\n", v)
		}
	}

	return nil
}
