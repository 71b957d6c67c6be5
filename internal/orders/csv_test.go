// =============================================================================
// Catalog Order Mapper - CSV Serializer Tests
// =============================================================================

package orders

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeader(t *testing.T) {
	items := []MappedItem{
		{ItemCode: "10026", Description: "BLACK CARDAMOM PP", Quantity: decimal.NewFromInt(5), Category: "Spices"},
	}

	out := WriteCSV(items, false)
	assert.True(t, strings.HasPrefix(out, "Item Code,Description,Quantity\n"))

	out = WriteCSV(items, true)
	assert.True(t, strings.HasPrefix(out, "Item Code,Description,Quantity,Category\n"))
	assert.Contains(t, out, ",Spices")
}

func TestWriteCSVEmptyInput(t *testing.T) {
	assert.Equal(t, "", WriteCSV(nil, false))
	assert.Equal(t, "", WriteCSV([]MappedItem{}, true))
}

func TestWriteCSVQuoting(t *testing.T) {
	items := []MappedItem{
		{ItemCode: "10200", Description: `RICE, BASMATI "PREMIUM" 5KG`, Quantity: decimal.NewFromInt(2)},
	}

	out := WriteCSV(items, false)

	// The output must round-trip through a standard CSV reader.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `RICE, BASMATI "PREMIUM" 5KG`, records[1][1])
}

func TestWriteCSVFractionalQuantity(t *testing.T) {
	items := []MappedItem{
		{ItemCode: "10026", Description: "BLACK CARDAMOM PP", Quantity: decimal.RequireFromString("2.5")},
	}

	out := WriteCSV(items, false)
	assert.Contains(t, out, "10026,BLACK CARDAMOM PP,2.5\n")
}

func TestWriteCSVPreservesOrder(t *testing.T) {
	items := []MappedItem{
		{ItemCode: "3", Description: "C", Quantity: decimal.NewFromInt(1)},
		{ItemCode: "1", Description: "A", Quantity: decimal.NewFromInt(1)},
		{ItemCode: "2", Description: "B", Quantity: decimal.NewFromInt(1)},
	}

	out := WriteCSV(items, false)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,"))
	assert.True(t, strings.HasPrefix(lines[3], "2,"))
}
