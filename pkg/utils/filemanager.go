// =============================================================================
// Catalog Order Mapper - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for batch order
// processing:
//   - Order file discovery
//   - Archival of processed order files
//   - Output file naming
//   - Error log generation
//
// ARCHIVAL STRATEGY:
//   - Order files are moved to the archive directory after successful
//     processing.
//   - Failed order files remain in place so a coordinator can fix and
//     resubmit them.
//   - Error logs are created in the output directory.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch order processing.
type FileManager struct {
	// OrdersDir is the directory where customer order files are placed.
	OrdersDir string

	// OutputDir is the directory where generated CSVs are placed.
	OutputDir string

	// ArchiveDir is the directory for archived order files.
	ArchiveDir string

	// ArchiveOnSuccess determines whether processed order files are moved
	// to the archive directory.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(ordersDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OrdersDir:        ordersDir,
		OutputDir:        outputDir,
		ArchiveDir:       archiveDir,
		ArchiveOnSuccess: true,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OrdersDir, fm.OutputDir, fm.ArchiveDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverOrderFiles scans the orders directory for files matching the
// pattern.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files. If empty, defaults to "*.txt".
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverOrderFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.txt"
	}

	matches, err := filepath.Glob(filepath.Join(fm.OrdersDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders directory: %w", err)
	}

	// Filter out directories.
	var files []string
	for _, file := range matches {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, file)
		}
	}

	return files, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveOrderFile moves a processed order file to the archive directory.
//
// PARAMETERS:
//   - filePath: The path to the file to archive.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveOrderFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Move the file. If rename fails (e.g., cross-device), fall back to
	// copy and delete.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output CSV file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//     {order}     - Order file name (without extension)
//   - params: Additional placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name, always with a .csv extension.
//
// EXAMPLE:
//   format: "{order}_{date}.csv"
//   params: {"order": "abc_store"}
//   output: "abc_store_20251114.csv"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".csv") {
		result += ".csv"
	}

	return result
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry is a single entry in a processing error log.
type ErrorLogEntry struct {
	Timestamp    time.Time
	OrderFile    string
	RowNumber    int
	ErrorMessage string
}

// WriteErrorLog writes mapping errors from a processing run to a log file
// in the output directory.
//
// RETURNS:
//   - The path to the error log file, or "" when there are no entries.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	logFileName := fmt.Sprintf("error_log_%s.txt", time.Now().Format("20060102_150405"))
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Catalog Order Mapper - Error Log\n")
	fmt.Fprintf(writer, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total Errors: %d\n", len(entries))
	fmt.Fprintf(writer, "%s\n\n", strings.Repeat("=", 80))

	for _, entry := range entries {
		fmt.Fprintf(writer, "%s  %s: %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.OrderFile,
			entry.ErrorMessage)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
