// =============================================================================
// Catalog Order Mapper - Order Mapper
// =============================================================================
//
// This module maps parsed order lines to catalog items. Mapping is
// partial-failure tolerant: a customer's order text commonly mixes valid and
// invalid entries, and everything resolvable must still be extracted. Each
// input line therefore produces exactly one outcome (a mapped item or a
// mapping error) and processing never stops at a bad line.
//
// ERROR TIERS:
//   - Catalog load failures (missing or malformed catalog document) abort
//     the whole operation and are returned as an error.
//   - Per-line problems (missing identifier, non-positive quantity,
//     unresolvable identifier) are collected as MappingErrors and never
//     abort the batch.
//
// =============================================================================

package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/desideliver/catalog-mapper/internal/catalog"
)

// =============================================================================
// MAPPED ITEM
// =============================================================================

// MappedItem is an order line successfully resolved against the catalog.
type MappedItem struct {
	// ItemCode is the canonical item code from the catalog.
	ItemCode string

	// Description is the catalog item name.
	Description string

	// Quantity is carried over from the order line. It is not validated
	// against stock levels.
	Quantity decimal.Decimal

	// Category and SourceFile are carried from the catalog item.
	Category   string
	SourceFile string
}

// =============================================================================
// MAPPING ERRORS
// =============================================================================

// MappingReason classifies why an order line could not be mapped.
type MappingReason int

const (
	// ReasonMissingIdentifier: the line had no identifier after trimming.
	ReasonMissingIdentifier MappingReason = iota

	// ReasonInvalidQuantity: the quantity was zero or negative.
	ReasonInvalidQuantity

	// ReasonNotFound: no lookup strategy resolved the identifier.
	ReasonNotFound
)

// MappingError describes a single order line that could not be mapped.
type MappingError struct {
	// Row is the 1-based position of the line in the input batch.
	Row int

	// Identifier is the trimmed identifier from the line, if any.
	Identifier string

	// Reason classifies the failure.
	Reason MappingReason
}

// Error renders the error in the format shown to order coordinators, e.g.
//
//	Row 2: Item 'INVALID_ITEM' not found in catalog
func (e *MappingError) Error() string {
	switch e.Reason {
	case ReasonMissingIdentifier:
		return fmt.Sprintf("Row %d: Missing item identifier", e.Row)
	case ReasonInvalidQuantity:
		return fmt.Sprintf("Row %d: Invalid quantity for '%s'", e.Row, e.Identifier)
	case ReasonNotFound:
		return fmt.Sprintf("Row %d: Item '%s' not found in catalog", e.Row, e.Identifier)
	default:
		return fmt.Sprintf("Row %d: Unmappable line", e.Row)
	}
}

// =============================================================================
// MAPPER
// =============================================================================

// Mapper resolves order lines against a catalog and produces CSV-ready
// mapped items. The catalog is owned by the Mapper for its lifetime and is
// loaded lazily on first use.
//
// A Mapper is safe for concurrent use once the catalog has loaded; all
// mapping operations are read-only.
type Mapper struct {
	catalog *catalog.Catalog
}

// NewMapper creates a Mapper over the given catalog.
func NewMapper(cat *catalog.Catalog) *Mapper {
	return &Mapper{catalog: cat}
}

// Catalog returns the catalog this mapper resolves against.
func (m *Mapper) Catalog() *catalog.Catalog {
	return m.catalog
}

// MapItems maps a batch of order lines to catalog items.
//
// PARAMETERS:
//   - lines: The order lines, typically from ParseOrderText or supplied
//     directly by a caller.
//
// RETURNS:
//   - The successfully mapped items, in input order.
//   - One MappingError per failing line, in encounter order.
//   - An error only if the catalog could not be loaded.
//
// Every input line yields exactly one mapped item or exactly one mapping
// error, so len(mapped) + len(errors) always equals len(lines).
func (m *Mapper) MapItems(lines []OrderLine) ([]MappedItem, []*MappingError, error) {
	if err := m.catalog.Load(); err != nil {
		return nil, nil, err
	}

	mapped := make([]MappedItem, 0, len(lines))
	var mappingErrors []*MappingError

	for i, line := range lines {
		row := i + 1
		identifier := strings.TrimSpace(line.Identifier)

		if identifier == "" {
			mappingErrors = append(mappingErrors, &MappingError{
				Row:    row,
				Reason: ReasonMissingIdentifier,
			})
			continue
		}

		if line.Quantity.Sign() <= 0 {
			mappingErrors = append(mappingErrors, &MappingError{
				Row:        row,
				Identifier: identifier,
				Reason:     ReasonInvalidQuantity,
			})
			continue
		}

		item, err := m.catalog.FindItem(identifier)
		if err != nil {
			return nil, nil, err
		}
		if item == nil {
			mappingErrors = append(mappingErrors, &MappingError{
				Row:        row,
				Identifier: identifier,
				Reason:     ReasonNotFound,
			})
			continue
		}

		mapped = append(mapped, MappedItem{
			ItemCode:    item.ItemCode,
			Description: item.ItemName,
			Quantity:    line.Quantity,
			Category:    item.Category,
			SourceFile:  item.SourceFile,
		})
	}

	return mapped, mappingErrors, nil
}

// GenerateCSV maps a batch of order lines and serializes the mapped items
// to CSV in one step.
//
// RETURNS:
//   - The CSV text. Empty when no line mapped successfully; callers must
//     check for this before treating the result as a valid order file.
//   - The mapping errors, as from MapItems.
//   - An error only if the catalog could not be loaded.
func (m *Mapper) GenerateCSV(lines []OrderLine, includeCategory bool) (string, []*MappingError, error) {
	mapped, mappingErrors, err := m.MapItems(lines)
	if err != nil {
		return "", nil, err
	}

	return WriteCSV(mapped, includeCategory), mappingErrors, nil
}
