// =============================================================================
// Catalog Order Mapper - Order Text Parser
// =============================================================================
//
// This module parses freeform order text as customers actually send it:
// one entry per line, in either of two formats:
//
//   identifier: quantity
//   identifier, quantity
//
// The identifier may be an item code or an item name. The colon separator
// is checked before the comma so that names can contain commas when the
// colon form is used. Blank lines and lines starting with '#' are treated
// as comments and skipped.
//
// Lines that cannot be parsed (no recognized separator, or a quantity that
// is not a number) are dropped silently rather than reported. Unresolvable
// lines that DO parse are reported later by the mapper; keeping the parser
// permissive matches how the order intake has always behaved, and consumers
// depend on it.
//
// =============================================================================

package orders

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine is a single parsed order entry: an identifier (item code or
// item name) and a requested quantity. Quantities may be fractional, e.g.
// 2.5 cases.
type OrderLine struct {
	Identifier string
	Quantity   decimal.Decimal
}

// ParseOrderText parses order lines from freeform text.
//
// PARAMETERS:
//   - text: UTF-8 order text, one entry per line.
//
// RETURNS:
//   - The parsed order lines, in input order. Lines that are blank,
//     comments, or unparsable are omitted.
func ParseOrderText(text string) []OrderLine {
	var lines []OrderLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on the first ':' if present, else the first ','.
		// The colon is checked first so item names containing commas still
		// parse when the colon form is used.
		var identifier, quantityText string
		if i := strings.Index(line, ":"); i >= 0 {
			identifier, quantityText = line[:i], line[i+1:]
		} else if i := strings.Index(line, ","); i >= 0 {
			identifier, quantityText = line[:i], line[i+1:]
		} else {
			// No recognized separator; drop the line.
			continue
		}

		identifier = strings.TrimSpace(identifier)
		quantityText = strings.TrimSpace(quantityText)

		quantity, err := decimal.NewFromString(quantityText)
		if err != nil {
			// Not a numeric quantity; drop the line.
			continue
		}

		lines = append(lines, OrderLine{
			Identifier: identifier,
			Quantity:   quantity,
		})
	}

	return lines
}
