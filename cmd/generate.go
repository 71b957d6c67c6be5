// =============================================================================
// Catalog Order Mapper - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which maps customer order text
// to CSV order files.
//
// COMMAND USAGE:
//   ordercsv generate [flags]
//
// MODES:
//   Single-file mode (--input): map one order file, writing either to
//   --output or to the configured output directory.
//
//   Batch mode (no --input): scan the configured orders directory for
//   order text files and process them concurrently. Successfully processed
//   order files are moved to the archive directory; failed files remain in
//   place for correction and resubmission.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/desideliver/catalog-mapper/internal/orders"
	"github.com/desideliver/catalog-mapper/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile is the path to a single order file to process.
var inputFile string

// outputFile is the explicit output path in single-file mode.
var outputFile string

// includeCategory adds the Category column to the generated CSV.
var includeCategory bool

// dryRun parses and maps without writing output files.
var dryRun bool

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate order CSVs from customer order text",
	Long: `The generate command maps customer order text against the catalog and
writes CSV order files.

With --input, a single order file is processed. Without it, the configured
orders directory is scanned and all order files are processed concurrently.

Per-line mapping problems (unknown items, bad quantities) are reported but
never abort an order: everything resolvable is still written. An order only
fails outright when nothing at all could be mapped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" {
			return runGenerateSingle()
		}
		return runGenerateBatch()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(
		&inputFile,
		"input",
		"i",
		"",
		"Order text file to process (omit to process the orders directory)",
	)

	generateCmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"Output CSV path (single-file mode only)",
	)

	generateCmd.Flags().BoolVar(
		&includeCategory,
		"include-category",
		false,
		"Include the Category column in the output CSV",
	)

	generateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and map without writing output files",
	)
}

// =============================================================================
// SINGLE-FILE MODE
// =============================================================================

// runGenerateSingle maps one order file. The output goes to --output when
// given, otherwise to the configured output directory under the configured
// naming format.
func runGenerateSingle() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if includeCategory {
		cfg.IncludeCategory = true
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read order file: %w", err)
	}

	lines := orders.ParseOrderText(string(data))
	if len(lines) == 0 {
		return fmt.Errorf("no valid order lines found in %s", inputFile)
	}

	fmt.Printf("Processing %d order line(s)...\n", len(lines))

	mapper := orders.NewMapper(openCatalog(cfg))
	csvContent, mappingErrors, err := mapper.GenerateCSV(lines, cfg.IncludeCategory)
	if err != nil {
		return err
	}

	if len(mappingErrors) > 0 {
		fmt.Printf("\nFound %d error(s):\n", len(mappingErrors))
		for _, me := range mappingErrors {
			fmt.Printf("  - %s\n", me.Error())
		}
	}

	if csvContent == "" {
		return fmt.Errorf("no order lines could be mapped to the catalog")
	}

	if dryRun {
		fmt.Printf("\nDry run: %d item(s) would be written\n", len(lines)-len(mappingErrors))
		return nil
	}

	outPath := outputFile
	if outPath == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		orderName := filepath.Base(inputFile)
		orderName = orderName[:len(orderName)-len(filepath.Ext(orderName))]
		outPath = filepath.Join(cfg.OutputDir, utils.GenerateOutputFileName(
			cfg.OutputNameFormat, map[string]string{"order": orderName}))
	}

	if err := os.WriteFile(outPath, []byte(csvContent), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("\nSuccessfully generated CSV: %s\n", outPath)
	fmt.Printf("Total items in CSV: %d\n", len(lines)-len(mappingErrors))

	return nil
}

// =============================================================================
// BATCH MODE
// =============================================================================

// runGenerateBatch processes every order file in the orders directory,
// concurrently up to the configured limit.
func runGenerateBatch() error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if includeCategory {
		cfg.IncludeCategory = true
	}

	fm := utils.NewFileManager(cfg.OrdersDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	orderFiles, err := fm.DiscoverOrderFiles("*.txt")
	if err != nil {
		return err
	}

	if len(orderFiles) == 0 {
		fmt.Println("No order files found in the orders directory.")
		return nil
	}

	fmt.Printf("Found %d order file(s) to process\n", len(orderFiles))

	// One mapper, and therefore one loaded catalog, shared by all workers.
	mapper := orders.NewMapper(openCatalog(cfg))
	processor := orders.NewProcessor(mapper, cfg, log)
	processor.DryRun = dryRun

	// Load eagerly so a bad catalog fails the run once, up front, instead
	// of once per file.
	if err := mapper.Catalog().Load(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	results := make(chan orders.Result, len(orderFiles))
	sem := make(chan struct{}, cfg.MaxConcurrency)

	for _, file := range orderFiles {
		wg.Add(1)
		go func(orderPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results <- processor.Run(orderPath)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var successCount, errorCount, mappingErrorCount int

	for result := range results {
		mappingErrorCount += len(result.MappingErrors)
		if result.Success {
			successCount++
			fmt.Printf("  ✓ %s -> %s\n", filepath.Base(result.OrderFile), result.OutputFile)
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.OrderFile), result.Error)
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:    %d\n", len(orderFiles))
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", errorCount)
	fmt.Printf("Line errors:    %d\n", mappingErrorCount)
	fmt.Printf("Time elapsed:   %s\n", time.Since(startTime))

	return nil
}
