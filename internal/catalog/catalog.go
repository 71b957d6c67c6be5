// =============================================================================
// Catalog Order Mapper - Catalog Module
// =============================================================================
//
// This module is responsible for loading the canonical product catalog and
// resolving free-text identifiers against it. The catalog is the single
// source of truth for what can appear on a generated order CSV.
//
// CATALOG DOCUMENT:
//   The catalog is a JSON document with a metadata block and an items list:
//
//   {
//     "metadata": { "version": "...", "generated_at": "...", "categories": [...] },
//     "items": [
//       { "item_code": "10026", "item_name": "BLACK CARDAMOM PP",
//         "category": "Spices", "source_file": "spices_pricelist.xlsx" },
//       ...
//     ]
//   }
//
// RESOLUTION STRATEGY:
//   Identifiers are resolved against three derived indexes, in strict order:
//   1. Exact match on item code
//   2. Exact match on item name
//   3. Case-insensitive match on item name
//   Codes win over names because codes are unique and unambiguous; names may
//   collide case-insensitively.
//
// CONCURRENCY:
//   Load is guarded by a mutex and runs at most once per Catalog instance.
//   After a successful Load, the catalog and its indexes are never mutated,
//   so FindItem and Stats are safe for concurrent use.
//
// =============================================================================

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound indicates that the catalog document does not exist at the
// configured path.
var ErrNotFound = errors.New("catalog file not found")

// ErrMalformed indicates that the catalog document exists but could not be
// parsed as a catalog JSON document.
var ErrMalformed = errors.New("catalog file is malformed")

// =============================================================================
// CATALOG DATA STRUCTURES
// =============================================================================

// Item is a single product in the catalog.
type Item struct {
	// ItemCode is the supplier item code, e.g. "10026".
	// Codes are expected to be unique; duplicates are not rejected, and the
	// last occurrence in the document wins in the index.
	ItemCode string `json:"item_code"`

	// ItemName is the product description, e.g. "BLACK CARDAMOM PP".
	ItemName string `json:"item_name"`

	// Category is the product category. May be empty; statistics report
	// uncategorized items under "Unknown".
	Category string `json:"category,omitempty"`

	// SourceFile records which price list the item was imported from.
	SourceFile string `json:"source_file,omitempty"`
}

// Document is the on-disk shape of the catalog JSON file.
type Document struct {
	// Metadata is carried through verbatim from the catalog build.
	Metadata map[string]any `json:"metadata"`

	// Items is the full product list.
	Items []Item `json:"items"`
}

// index holds the three lookup maps derived from the item list.
// All keys are trimmed; byNameLower keys are additionally lowercased.
type index struct {
	byCode      map[string]*Item
	byName      map[string]*Item
	byNameLower map[string]*Item
}

// Catalog owns a lazily loaded catalog document and its lookup indexes.
type Catalog struct {
	// path is the location of the catalog JSON document.
	path string

	// mu guards the one-time load. A failed load is not cached, so a caller
	// may retry after fixing the underlying file.
	mu     sync.Mutex
	loaded bool

	metadata map[string]any
	items    []Item
	idx      *index
}

// New creates a Catalog backed by the JSON document at path.
// The document is not read until Load (or any operation that needs the
// catalog) is called.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Path returns the location of the backing catalog document.
func (c *Catalog) Path() string {
	return c.path
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and indexes the catalog document.
//
// RETURNS:
//   - An error wrapping ErrNotFound if the document does not exist.
//   - An error wrapping ErrMalformed if the document is not valid JSON.
//
// Load is idempotent: after the first successful call, subsequent calls
// return immediately without re-reading the file. On failure nothing is
// cached.
func (c *Catalog) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, c.path)
		}
		return fmt.Errorf("failed to read catalog %s: %w", c.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, c.path, err)
	}

	c.metadata = doc.Metadata
	c.items = doc.Items
	c.idx = buildIndex(c.items)
	c.loaded = true

	return nil
}

// buildIndex builds the three-way lookup index in a single pass.
// Later items overwrite earlier ones when codes or names collide.
func buildIndex(items []Item) *index {
	idx := &index{
		byCode:      make(map[string]*Item, len(items)),
		byName:      make(map[string]*Item, len(items)),
		byNameLower: make(map[string]*Item, len(items)),
	}

	for i := range items {
		item := &items[i]

		code := strings.TrimSpace(item.ItemCode)
		name := strings.TrimSpace(item.ItemName)

		if code != "" {
			idx.byCode[code] = item
		}

		if name != "" {
			idx.byName[name] = item
			idx.byNameLower[strings.ToLower(name)] = item
		}
	}

	return idx
}

// =============================================================================
// LOOKUP
// =============================================================================

// FindItem resolves an identifier (item code or item name) to a catalog item.
//
// PARAMETERS:
//   - identifier: The raw identifier. Leading and trailing whitespace is
//     ignored.
//
// RETURNS:
//   - The matched item, or nil if no lookup strategy matched.
//   - An error only if the catalog could not be loaded.
//
// The lookup strategies are evaluated short-circuit in the order described
// in the package comment: code, exact name, lowercased name.
func (c *Catalog) FindItem(identifier string) (*Item, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}

	identifier = strings.TrimSpace(identifier)

	if item, ok := c.idx.byCode[identifier]; ok {
		return item, nil
	}

	if item, ok := c.idx.byName[identifier]; ok {
		return item, nil
	}

	if item, ok := c.idx.byNameLower[strings.ToLower(identifier)]; ok {
		return item, nil
	}

	return nil, nil
}

// Items returns the full item list, loading the catalog if necessary.
// The returned slice must not be modified.
func (c *Catalog) Items() ([]Item, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c.items, nil
}

// Metadata returns the catalog metadata block, loading the catalog if
// necessary.
func (c *Catalog) Metadata() (map[string]any, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c.metadata, nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// UnknownCategory is the bucket used for items without a category.
const UnknownCategory = "Unknown"

// Stats summarizes the loaded catalog.
type Stats struct {
	// TotalItems is the number of items in the catalog.
	TotalItems int `json:"total_items"`

	// Categories lists the distinct categories in first-encounter order.
	Categories []string `json:"categories"`

	// CategoryCounts maps each category to its item count.
	CategoryCounts map[string]int `json:"category_counts"`

	// Metadata is the catalog metadata block, passed through verbatim.
	Metadata map[string]any `json:"metadata"`
}

// Stats computes catalog statistics in a single pass over the item list.
// Items without a category are tallied under UnknownCategory.
func (c *Catalog) Stats() (*Stats, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalItems:     len(c.items),
		Categories:     []string{},
		CategoryCounts: make(map[string]int),
		Metadata:       c.metadata,
	}

	for i := range c.items {
		category := c.items[i].Category
		if category == "" {
			category = UnknownCategory
		}

		if _, seen := stats.CategoryCounts[category]; !seen {
			stats.Categories = append(stats.Categories, category)
		}
		stats.CategoryCounts[category]++
	}

	return stats, nil
}
