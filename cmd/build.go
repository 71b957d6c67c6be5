// =============================================================================
// Catalog Order Mapper - Build Command
// =============================================================================
//
// This file defines the 'build' command, which regenerates the catalog JSON
// document from supplier price-list XLSX workbooks. This is where each
// item's source_file provenance and the catalog metadata block come from.
//
// COMMAND USAGE:
//   ordercsv build --pricelists ./pricelists --out ./catalog/catalog.json
//
// Workbooks are imported in file-name order, so when two price lists carry
// the same item code the later workbook wins during order mapping, matching
// the last-write-wins rule the catalog index applies.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/desideliver/catalog-mapper/internal/catalog"
)

// priceListDir is the directory containing supplier XLSX price lists.
var priceListDir string

// buildOut is the path of the catalog document to write.
var buildOut string

// buildVersion is the version label recorded in the catalog metadata.
var buildVersion string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild catalog.json from supplier price-list workbooks",
	Long: `The build command reads supplier price-list XLSX workbooks and writes a
fresh catalog JSON document. Each imported item records the workbook it came
from, and the metadata block records the build version, timestamp, and the
categories encountered.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(
		&priceListDir,
		"pricelists",
		"./pricelists",
		"Directory containing supplier price-list XLSX workbooks",
	)

	buildCmd.Flags().StringVar(
		&buildOut,
		"out",
		"",
		"Output catalog path (defaults to the configured catalog location)",
	)

	buildCmd.Flags().StringVar(
		&buildVersion,
		"version-label",
		"1.0",
		"Version label recorded in the catalog metadata",
	)
}

func runBuild() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outPath := buildOut
	if outPath == "" {
		outPath = cfg.CatalogPath
	}

	files, err := catalog.DiscoverPriceLists(priceListDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no price-list workbooks found in %s", priceListDir)
	}

	fmt.Printf("Found %d price list(s)\n", len(files))

	var items []catalog.Item
	for _, file := range files {
		imported, err := catalog.ParsePriceList(file)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d item(s)\n", filepath.Base(file), len(imported))
		items = append(items, imported...)
	}

	doc := catalog.BuildDocument(items, buildVersion)
	if err := doc.WriteFile(outPath); err != nil {
		return err
	}

	fmt.Printf("\nWrote %d item(s) to %s\n", len(items), outPath)
	return nil
}
