// =============================================================================
// Catalog Order Mapper - Order File Processor
// =============================================================================
//
// This module orchestrates the pipeline for a single customer order file,
// from raw order text to a written CSV.
//
// PROCESSING PIPELINE:
//   1. Read the order text file
//   2. Parse it into order lines
//   3. Map the lines against the catalog
//   4. Serialize the mapped items to CSV
//   5. Write the output file
//   6. Archive the processed order file
//
// CONCURRENCY:
//   Each order file is processed in its own goroutine in batch mode. The
//   processor shares one Mapper (and therefore one loaded catalog) across
//   all files; mapping is read-only after the catalog loads.
//
// =============================================================================

package orders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/desideliver/catalog-mapper/internal/config"
	"github.com/desideliver/catalog-mapper/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result is the outcome of processing a single order file.
type Result struct {
	// OrderFile is the path to the input order file.
	OrderFile string

	// OutputFile is the path to the generated CSV. Empty if processing
	// failed or ran in dry-run mode.
	OutputFile string

	// Success indicates whether a CSV was produced.
	Success bool

	// Error is set when processing failed outright (unreadable input,
	// catalog load failure, nothing mappable, write failure).
	Error error

	// MappingErrors holds the per-line errors, if any. A run can succeed
	// with a non-empty error list; callers must inspect both.
	MappingErrors []*MappingError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one processing run.
type ProcessingStats struct {
	// LinesParsed is the number of order lines parsed from the text.
	LinesParsed int

	// ItemsMapped is the number of lines resolved against the catalog.
	ItemsMapped int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs the order-file pipeline. One Processor is shared across a
// batch; it is safe for concurrent Run calls.
type Processor struct {
	mapper *Mapper
	cfg    *config.MainConfig
	files  *utils.FileManager
	log    *logrus.Logger

	// DryRun parses and maps but writes and archives nothing.
	DryRun bool
}

// NewProcessor creates a Processor over a shared mapper and configuration.
func NewProcessor(mapper *Mapper, cfg *config.MainConfig, log *logrus.Logger) *Processor {
	return &Processor{
		mapper: mapper,
		cfg:    cfg,
		files:  utils.NewFileManager(cfg.OrdersDir, cfg.OutputDir, cfg.ArchiveDir),
		log:    log,
	}
}

// Run executes the pipeline for one order file.
//
// PARAMETERS:
//   - orderPath: The path to the order text file.
//
// RETURNS:
//   - A Result describing the outcome. Run never panics on bad input; all
//     failures are reported through the Result.
func (p *Processor) Run(orderPath string) Result {
	startTime := time.Now()
	result := Result{OrderFile: orderPath}

	p.log.WithField("order", orderPath).Info("Processing order file")

	// =========================================================================
	// STEP 1: READ ORDER TEXT
	// =========================================================================

	data, err := os.ReadFile(orderPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read order file: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: PARSE ORDER LINES
	// =========================================================================

	lines := ParseOrderText(string(data))
	result.Stats.LinesParsed = len(lines)

	if len(lines) == 0 {
		result.Error = fmt.Errorf("no valid order lines found in %s", filepath.Base(orderPath))
		return result
	}

	p.log.WithFields(logrus.Fields{
		"order": orderPath,
		"lines": len(lines),
	}).Debug("Parsed order text")

	// =========================================================================
	// STEP 3+4: MAP AGAINST CATALOG AND SERIALIZE
	// =========================================================================

	csvContent, mappingErrors, err := p.mapper.GenerateCSV(lines, p.cfg.IncludeCategory)
	if err != nil {
		result.Error = fmt.Errorf("failed to map order: %w", err)
		return result
	}

	result.MappingErrors = mappingErrors
	result.Stats.ItemsMapped = len(lines) - len(mappingErrors)

	for _, me := range mappingErrors {
		p.log.WithField("order", orderPath).Warn(me.Error())
	}

	// An empty CSV means nothing mapped; there is no order file to write.
	if csvContent == "" {
		result.Error = fmt.Errorf("no order lines could be mapped to the catalog")
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	if p.DryRun {
		p.log.WithField("order", orderPath).Info("Dry run; skipping output")
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	outputPath, err := p.writeOutput(orderPath, csvContent)
	if err != nil {
		result.Error = err
		return result
	}
	result.OutputFile = outputPath

	if p.cfg.WriteErrorLog && len(mappingErrors) > 0 {
		p.writeMappingErrorLog(orderPath, mappingErrors)
	}

	// =========================================================================
	// STEP 6: ARCHIVE ORDER FILE
	// =========================================================================

	if _, err := p.files.ArchiveOrderFile(orderPath); err != nil {
		// Archival failure does not invalidate the generated CSV.
		p.log.WithField("order", orderPath).Warnf("Failed to archive order file: %v", err)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	p.log.WithFields(logrus.Fields{
		"order":  orderPath,
		"output": outputPath,
		"mapped": result.Stats.ItemsMapped,
		"errors": len(mappingErrors),
	}).Info("Order file processed")

	return result
}

// writeOutput writes the CSV to the output directory, named according to
// the configured output name format.
func (p *Processor) writeOutput(orderPath, csvContent string) (string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	orderName := strings.TrimSuffix(filepath.Base(orderPath), filepath.Ext(orderPath))
	fileName := utils.GenerateOutputFileName(p.cfg.OutputNameFormat, map[string]string{
		"order": orderName,
	})

	outputPath := filepath.Join(p.cfg.OutputDir, fileName)
	if err := os.WriteFile(outputPath, []byte(csvContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}

	return outputPath, nil
}

// writeMappingErrorLog records the run's mapping errors in the output
// directory. Failures here are logged and otherwise ignored.
func (p *Processor) writeMappingErrorLog(orderPath string, mappingErrors []*MappingError) {
	entries := make([]utils.ErrorLogEntry, len(mappingErrors))
	now := time.Now()

	for i, me := range mappingErrors {
		entries[i] = utils.ErrorLogEntry{
			Timestamp:    now,
			OrderFile:    filepath.Base(orderPath),
			RowNumber:    me.Row,
			ErrorMessage: me.Error(),
		}
	}

	if _, err := utils.WriteErrorLog(entries, p.cfg.OutputDir); err != nil {
		p.log.Warnf("Failed to write error log: %v", err)
	}
}
