package xleak

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() *SheetData {
	return &SheetData{
		Headers: []string{"name", "amount", "ok"},
		Rows: [][]CellValue{
			{StringCell("Alice"), IntCell(1234567), BoolCell(true)},
			{StringCell("with, comma"), FloatCell(12.5), CellValue{}},
		},
		Formulas: [][]string{{"", "", ""}, {"", "", ""}},
		Width:    3,
		Height:   2,
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, exportFixture()))

	want := "name,amount,ok\n" +
		"Alice,1234567,true\n" +
		"\"with, comma\",12.5,\n"
	assert.Equal(t, want, buf.String())
}

func TestExportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportText(&buf, exportFixture()))

	want := "name\tamount\tok\n" +
		"Alice\t1234567\ttrue\n" +
		"with, comma\t12.5\t\n"
	assert.Equal(t, want, buf.String())
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, exportFixture(), "people"))

	var doc struct {
		Sheet   string   `json:"sheet"`
		Columns int      `json:"columns"`
		Rows    int      `json:"rows"`
		Headers []string `json:"headers"`
		Data    [][]any  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "people", doc.Sheet)
	assert.Equal(t, 3, doc.Columns)
	assert.Equal(t, 2, doc.Rows)
	assert.Equal(t, []string{"name", "amount", "ok"}, doc.Headers)
	require.Len(t, doc.Data, 2)
	assert.Equal(t, "Alice", doc.Data[0][0])
	assert.Equal(t, float64(1234567), doc.Data[0][1])
	assert.Equal(t, true, doc.Data[0][2])
	assert.Nil(t, doc.Data[1][2])
}

func TestExportTableFormats(t *testing.T) {
	table := &TableData{
		Name:      "SalesTbl",
		SheetName: "Stats",
		Headers:   []string{"region", "sales"},
		Rows: [][]CellValue{
			{StringCell("north"), IntCell(100)},
			{StringCell("south"), ErrorCell("N/A")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTableCSV(&buf, table))
	assert.Equal(t, "region,sales\nnorth,100\nsouth,#N/A\n", buf.String())

	buf.Reset()
	require.NoError(t, ExportTableText(&buf, table))
	assert.Equal(t, "region\tsales\nnorth\t100\nsouth\t#N/A\n", buf.String())

	buf.Reset()
	require.NoError(t, ExportTableJSON(&buf, table))
	var doc struct {
		Table string  `json:"table"`
		Sheet string  `json:"sheet"`
		Data  [][]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "SalesTbl", doc.Table)
	assert.Equal(t, "Stats", doc.Sheet)
	assert.Equal(t, "ERROR: N/A", doc.Data[1][1])
}
