// =============================================================================
// Catalog Order Mapper - Price List Builder Tests
// =============================================================================

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writePriceList creates an XLSX workbook with the given header and rows and
// returns its path.
func writePriceList(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParsePriceList(t *testing.T) {
	path := writePriceList(t, t.TempDir(), "spices.xlsx",
		[]string{"Item_Number", "Item_Description", "Product_Category"},
		[][]string{
			{"10026", "BLACK CARDAMOM PP", "Spices"},
			{"10027", "GREEN CARDAMOM PP", "Spices"},
			{"", "ORPHAN ROW", "Spices"},
			{"10028", "", "Spices"},
		})

	items, err := ParsePriceList(path)
	require.NoError(t, err)

	// Rows missing a code or a name are skipped.
	require.Len(t, items, 2)
	assert.Equal(t, "10026", items[0].ItemCode)
	assert.Equal(t, "BLACK CARDAMOM PP", items[0].ItemName)
	assert.Equal(t, "Spices", items[0].Category)
	assert.Equal(t, "spices.xlsx", items[0].SourceFile)
}

func TestParsePriceListAlternateHeaders(t *testing.T) {
	path := writePriceList(t, t.TempDir(), "grains.xlsx",
		[]string{"code", "description"},
		[][]string{
			{"10100", "BASMATI RICE 5KG"},
		})

	items, err := ParsePriceList(path)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "10100", items[0].ItemCode)
	// No category column and the default sheet name leave the item
	// uncategorized.
	assert.Empty(t, items[0].Category)
}

func TestParsePriceListSheetNameCategory(t *testing.T) {
	// Without a category column, a meaningful sheet name becomes the
	// category for every item in the sheet.
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Spices"))
	header := []string{"item_number", "item_description"}
	row := []string{"10026", "BLACK CARDAMOM PP"}
	require.NoError(t, f.SetSheetRow("Spices", "A1", &header))
	require.NoError(t, f.SetSheetRow("Spices", "A2", &row))

	path := filepath.Join(t.TempDir(), "spices.xlsx")
	require.NoError(t, f.SaveAs(path))

	items, err := ParsePriceList(path)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Spices", items[0].Category)
}

func TestParsePriceListMissingColumns(t *testing.T) {
	path := writePriceList(t, t.TempDir(), "bad.xlsx",
		[]string{"price", "moq"},
		[][]string{
			{"4.20", "12"},
		})

	_, err := ParsePriceList(path)
	assert.Error(t, err)
}

func TestBuildDocument(t *testing.T) {
	items := []Item{
		{ItemCode: "10026", ItemName: "BLACK CARDAMOM PP", Category: "Spices", SourceFile: "spices.xlsx"},
		{ItemCode: "10100", ItemName: "BASMATI RICE 5KG", Category: "Grains", SourceFile: "grains.xlsx"},
		{ItemCode: "10027", ItemName: "GREEN CARDAMOM PP", Category: "Spices", SourceFile: "spices.xlsx"},
	}

	doc := BuildDocument(items, "2.1")

	assert.Equal(t, "2.1", doc.Metadata["version"])
	assert.Equal(t, 3, doc.Metadata["total_items"])
	assert.Equal(t, []string{"Spices", "Grains"}, doc.Metadata["categories"])
	assert.Equal(t, []string{"spices.xlsx", "grains.xlsx"}, doc.Metadata["source_files"])
	assert.NotEmpty(t, doc.Metadata["generated_at"])
	assert.Len(t, doc.Items, 3)
}

func TestDocumentRoundTrip(t *testing.T) {
	// A document built from a price list must load back as a usable catalog.
	dir := t.TempDir()
	pricePath := writePriceList(t, dir, "spices.xlsx",
		[]string{"item_number", "item_description", "product_category"},
		[][]string{
			{"10026", "BLACK CARDAMOM PP", "Spices"},
		})

	items, err := ParsePriceList(pricePath)
	require.NoError(t, err)

	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, BuildDocument(items, "1.0").WriteFile(catalogPath))

	cat := New(catalogPath)
	item, err := cat.FindItem("10026")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "BLACK CARDAMOM PP", item.ItemName)

	stats, err := cat.Stats()
	require.NoError(t, err)
	assert.Equal(t, "1.0", stats.Metadata["version"])
}

func TestDiscoverPriceLists(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"spices.xlsx", "grains.xlsx", "~$spices.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := DiscoverPriceLists(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, ".xlsx", filepath.Ext(f))
		assert.NotContains(t, filepath.Base(f), "~$")
	}
}
