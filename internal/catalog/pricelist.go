// =============================================================================
// Catalog Order Mapper - Price List Builder
// =============================================================================
//
// This module rebuilds the catalog JSON document from supplier price-list
// XLSX workbooks. It is the provenance behind the source_file field on each
// catalog item and the metadata block of the catalog document.
//
// WORKBOOK STRUCTURE (Expected Columns):
//   The first sheet of each workbook must have a header row naming, in any
//   order and case:
//
//   | item_number (or item_code) | item_description (or item_name) | product_category (or category) |
//   | 10026                      | BLACK CARDAMOM PP               | Spices                         |
//
//   Rows missing a code or a description are skipped. When the workbook has
//   no category column, the sheet name stands in for the category, unless it
//   is Excel's default "Sheet1", in which case items stay uncategorized.
//
// =============================================================================

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column header aliases accepted in price-list workbooks. The first alias
// found in the header row wins.
var (
	codeHeaders     = []string{"item_number", "item_code", "code"}
	nameHeaders     = []string{"item_description", "item_name", "description"}
	categoryHeaders = []string{"product_category", "category"}
)

// =============================================================================
// WORKBOOK PARSING
// =============================================================================

// ParsePriceList reads catalog items from the first sheet of an XLSX
// price-list workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//
// RETURNS:
//   - The items found in the sheet, with SourceFile set to the workbook's
//     base name.
//   - An error if the workbook cannot be opened or has no usable header.
func ParsePriceList(path string) ([]Item, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price list %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("price list %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("price list %s is empty", path)
	}

	// Locate the code, name, and category columns from the header row.
	codeCol := findColumn(rows[0], codeHeaders)
	nameCol := findColumn(rows[0], nameHeaders)
	categoryCol := findColumn(rows[0], categoryHeaders)

	if codeCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("price list %s is missing an item code or description column", path)
	}

	// Suppliers often name the sheet after the product category instead of
	// carrying a category column. Excel's default sheet name carries no
	// information, so it is never used as a category.
	fallbackCategory := ""
	if categoryCol < 0 && !strings.EqualFold(sheets[0], "Sheet1") {
		fallbackCategory = sheets[0]
	}

	sourceFile := filepath.Base(path)
	var items []Item

	for _, row := range rows[1:] {
		code := strings.TrimSpace(cell(row, codeCol))
		name := strings.TrimSpace(cell(row, nameCol))

		// Rows without both essentials carry no sellable item.
		if code == "" || name == "" {
			continue
		}

		item := Item{
			ItemCode:   code,
			ItemName:   name,
			SourceFile: sourceFile,
		}
		if categoryCol >= 0 {
			item.Category = strings.TrimSpace(cell(row, categoryCol))
		} else {
			item.Category = fallbackCategory
		}

		items = append(items, item)
	}

	return items, nil
}

// findColumn returns the index of the first header cell matching any of the
// given aliases (case-insensitive), or -1 if none match.
func findColumn(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, field := range header {
			if strings.EqualFold(strings.TrimSpace(field), alias) {
				return i
			}
		}
	}
	return -1
}

// cell returns the value at index i, or "" when the row is short.
// XLSX rows omit trailing empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// =============================================================================
// DOCUMENT GENERATION
// =============================================================================

// BuildDocument assembles a catalog Document from imported items.
//
// PARAMETERS:
//   - items: The imported items, in price-list order.
//   - version: A version label recorded in the metadata block.
//
// The metadata block records the version, the generation timestamp, the
// distinct categories in first-encounter order, and the distinct source
// workbooks.
func BuildDocument(items []Item, version string) *Document {
	var categories []string
	seenCategories := make(map[string]bool)

	var sources []string
	seenSources := make(map[string]bool)

	for i := range items {
		if c := items[i].Category; c != "" && !seenCategories[c] {
			seenCategories[c] = true
			categories = append(categories, c)
		}
		if s := items[i].SourceFile; s != "" && !seenSources[s] {
			seenSources[s] = true
			sources = append(sources, s)
		}
	}

	return &Document{
		Metadata: map[string]any{
			"version":      version,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"categories":   categories,
			"source_files": sources,
			"total_items":  len(items),
		},
		Items: items,
	}
}

// WriteFile writes the catalog document as indented JSON.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}

	return nil
}

// DiscoverPriceLists finds XLSX workbooks in a directory, skipping Excel
// lock files ("~$...").
func DiscoverPriceLists(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan price-list directory: %w", err)
	}

	var files []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), "~$") {
			continue
		}
		files = append(files, m)
	}

	return files, nil
}
