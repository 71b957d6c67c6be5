// =============================================================================
// Catalog Order Mapper - CSV Serializer
// =============================================================================
//
// This module renders mapped order items as RFC 4180 CSV, the format the
// supplier's fulfillment system ingests. Fields containing commas, quotes,
// or newlines are quoted with embedded quotes doubled, courtesy of
// encoding/csv.
//
// An empty batch yields an empty string, NOT a header-only CSV: a header
// with no rows is not a valid order file, and downstream callers check for
// the empty string explicitly.
//
// =============================================================================

package orders

import (
	"encoding/csv"
	"strings"
)

// Header columns for generated order CSVs.
var (
	csvHeader         = []string{"Item Code", "Description", "Quantity"}
	csvHeaderCategory = []string{"Item Code", "Description", "Quantity", "Category"}
)

// WriteCSV serializes mapped items to CSV text.
//
// PARAMETERS:
//   - items: The mapped items, in order.
//   - includeCategory: Whether to append the Category column.
//
// RETURNS:
//   - The CSV text, or "" when items is empty.
//
// Quantities are rendered with decimal.String, so fractional quantities
// like 2.5 appear exactly as entered, without float artifacts.
func WriteCSV(items []MappedItem, includeCategory bool) string {
	if len(items) == 0 {
		return ""
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if includeCategory {
		w.Write(csvHeaderCategory)
	} else {
		w.Write(csvHeader)
	}

	for i := range items {
		record := []string{
			items[i].ItemCode,
			items[i].Description,
			items[i].Quantity.String(),
		}
		if includeCategory {
			record = append(record, items[i].Category)
		}
		w.Write(record)
	}

	w.Flush()
	return buf.String()
}
