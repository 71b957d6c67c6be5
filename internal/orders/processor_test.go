// =============================================================================
// Catalog Order Mapper - Order File Processor Tests
// =============================================================================

package orders

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desideliver/catalog-mapper/internal/catalog"
	"github.com/desideliver/catalog-mapper/internal/config"
)

// newTestProcessor wires a Processor over temp directories and a small
// catalog, returning the processor and its configuration.
func newTestProcessor(t *testing.T) (*Processor, *config.MainConfig) {
	t.Helper()

	root := t.TempDir()

	doc := catalog.Document{Items: testCatalogItems()}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	catalogPath := filepath.Join(root, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, data, 0644))

	cfg := &config.MainConfig{
		CatalogPath:      catalogPath,
		OrdersDir:        filepath.Join(root, "orders"),
		OutputDir:        filepath.Join(root, "output"),
		ArchiveDir:       filepath.Join(root, "archive"),
		OutputNameFormat: "{order}_{date}.csv",
	}
	require.NoError(t, os.MkdirAll(cfg.OrdersDir, 0755))

	log := logrus.New()
	log.SetOutput(io.Discard)

	mapper := NewMapper(catalog.New(cfg.CatalogPath))
	return NewProcessor(mapper, cfg, log), cfg
}

func writeOrderFile(t *testing.T, cfg *config.MainConfig, name, text string) string {
	t.Helper()
	path := filepath.Join(cfg.OrdersDir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestProcessorRun(t *testing.T) {
	p, cfg := newTestProcessor(t)
	orderPath := writeOrderFile(t, cfg, "abc_store.txt",
		"10026: 5\nINVALID_ITEM, 10\nBLACK CARDAMOM PP: 3\n")

	result := p.Run(orderPath)

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Stats.LinesParsed)
	assert.Equal(t, 2, result.Stats.ItemsMapped)
	require.Len(t, result.MappingErrors, 1)

	// The output file carries the order name and holds the mapped rows.
	require.NotEmpty(t, result.OutputFile)
	assert.True(t, strings.HasPrefix(filepath.Base(result.OutputFile), "abc_store_"))

	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Item Code,Description,Quantity\n"))
	assert.Equal(t, 3, strings.Count(string(content), "\n"))

	// The processed order file moved to the archive.
	assert.NoFileExists(t, orderPath)
	assert.FileExists(t, filepath.Join(cfg.ArchiveDir, "abc_store.txt"))
}

func TestProcessorRunNothingMappable(t *testing.T) {
	p, cfg := newTestProcessor(t)
	orderPath := writeOrderFile(t, cfg, "bad.txt", "NOPE: 5\nALSO NOPE: 2\n")

	result := p.Run(orderPath)

	require.Error(t, result.Error)
	assert.False(t, result.Success)
	assert.Len(t, result.MappingErrors, 2)

	// Failed order files stay in place for correction.
	assert.FileExists(t, orderPath)
}

func TestProcessorRunNoParsableLines(t *testing.T) {
	p, cfg := newTestProcessor(t)
	orderPath := writeOrderFile(t, cfg, "empty.txt", "# just a comment\n\n")

	result := p.Run(orderPath)

	require.Error(t, result.Error)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Stats.LinesParsed)
}

func TestProcessorRunMissingFile(t *testing.T) {
	p, cfg := newTestProcessor(t)

	result := p.Run(filepath.Join(cfg.OrdersDir, "nope.txt"))

	require.Error(t, result.Error)
	assert.False(t, result.Success)
}

func TestProcessorDryRun(t *testing.T) {
	p, cfg := newTestProcessor(t)
	p.DryRun = true
	orderPath := writeOrderFile(t, cfg, "abc_store.txt", "10026: 5\n")

	result := p.Run(orderPath)

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Empty(t, result.OutputFile)

	// Dry run writes and archives nothing.
	assert.FileExists(t, orderPath)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestProcessorWritesErrorLog(t *testing.T) {
	p, cfg := newTestProcessor(t)
	cfg.WriteErrorLog = true
	orderPath := writeOrderFile(t, cfg, "abc_store.txt", "10026: 5\nNOPE: 2\n")

	result := p.Run(orderPath)
	require.NoError(t, result.Error)

	logs, err := filepath.Glob(filepath.Join(cfg.OutputDir, "error_log_*.txt"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Row 2: Item 'NOPE' not found in catalog")
}

func TestProcessorIncludeCategory(t *testing.T) {
	p, cfg := newTestProcessor(t)
	cfg.IncludeCategory = true
	orderPath := writeOrderFile(t, cfg, "abc_store.txt", "10026: 5\n")

	result := p.Run(orderPath)
	require.NoError(t, result.Error)

	content, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Item Code,Description,Quantity,Category\n"))
	assert.Contains(t, string(content), ",Spices")
}
