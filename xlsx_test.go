package xleak

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeXlsxFixture builds a two-sheet workbook: Sheet1 with typed values,
// a formula column and a date-styled serial, Stats with a named table.
func writeXlsxFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for axis, v := range map[string]any{
		"A1": "Name", "B1": "Amount", "C1": "Double",
		"A2": "Alice", "B2": 1250,
		"A3": "Bob", "B3": 2500000.5,
		"A4": "Flag", "B4": true,
	} {
		require.NoError(t, f.SetCellValue("Sheet1", axis, v))
	}
	require.NoError(t, f.SetCellFormula("Sheet1", "C2", "B2*2"))
	require.NoError(t, f.SetCellFormula("Sheet1", "C3", "B3*2"))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "D2", 45285.5))
	require.NoError(t, f.SetCellStyle("Sheet1", "D2", "D2", dateStyle))

	_, err = f.NewSheet("Stats")
	require.NoError(t, err)
	for axis, v := range map[string]any{
		"A1": "Region", "B1": "Sales",
		"A2": "north", "B2": 100,
		"A3": "south", "B3": 200.5,
	} {
		require.NoError(t, f.SetCellValue("Stats", axis, v))
	}
	require.NoError(t, f.AddTable("Stats", &excelize.Table{Range: "A1:B3", Name: "SalesTbl"}))

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func openXlsxFixture(t *testing.T) *Workbook {
	t.Helper()
	wb, err := Open(writeXlsxFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = wb.Close()
	})
	return wb
}

func TestXlsxSheetNames(t *testing.T) {
	wb := openXlsxFixture(t)
	assert.Equal(t, []string{"Sheet1", "Stats"}, wb.SheetNames())
}

func TestXlsxLoadSheetTypedValues(t *testing.T) {
	wb := openXlsxFixture(t)
	data, err := wb.LoadSheet("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Amount", "Double", ""}, data.Headers)
	assert.Equal(t, 4, data.Width)
	assert.Equal(t, 3, data.Height)

	assert.Equal(t, StringCell("Alice"), data.Rows[0][0])
	assert.Equal(t, IntCell(1250), data.Rows[0][1])
	assert.Equal(t, FloatCell(2500000.5), data.Rows[1][1])
	assert.Equal(t, BoolCell(true), data.Rows[2][1])

	// formula cells without a cached result are empty values
	assert.Equal(t, CellValue{}, data.Rows[0][2])

	require.Equal(t, DateTimeCell(45285.5), data.Rows[0][3])
	assert.Equal(t, "2023-12-25 12:00:00", data.Rows[0][3].Display())
}

func TestXlsxFormulaOverlay(t *testing.T) {
	wb := openXlsxFixture(t)
	data, err := wb.LoadSheet("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, "B2*2", data.Formulas[0][2])
	assert.Equal(t, "B3*2", data.Formulas[1][2])
	for i := range data.Formulas {
		for j := range data.Formulas[i] {
			if j == 2 && i < 2 {
				continue
			}
			assert.Equalf(t, "", data.Formulas[i][j], "row %d col %d", i, j)
		}
	}
}

func TestXlsxLazyMatchesEager(t *testing.T) {
	wb := openXlsxFixture(t)
	eager, err := wb.LoadSheet("Sheet1")
	require.NoError(t, err)
	lazy, err := wb.LoadSheetLazy("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, eager.Headers, lazy.Headers)
	assert.Equal(t, eager.Width, lazy.Width)
	assert.Equal(t, eager.Height, lazy.Height)

	rows, formulas := lazy.GetRows(0, 2)
	assert.Equal(t, eager.Rows[:2], rows)
	assert.Equal(t, eager.Formulas[:2], formulas)

	rows, formulas = lazy.GetRows(2, 10)
	assert.Equal(t, eager.Rows[2:], rows)
	assert.Equal(t, eager.Formulas[2:], formulas)

	grid := lazy.ToSheetData()
	assert.Equal(t, eager.Rows, grid.Rows)
	assert.Equal(t, eager.Formulas, grid.Formulas)
}

func TestXlsxSheetNotFound(t *testing.T) {
	wb := openXlsxFixture(t)
	_, err := wb.LoadSheet("Missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), "Missing")
	assert.Contains(t, err.Error(), "Sheet1")
}

func TestXlsxTables(t *testing.T) {
	wb := openXlsxFixture(t)

	// tables must be loaded first
	_, err := wb.TableByName("SalesTbl")
	assert.ErrorIs(t, err, ErrTablesNotLoaded)

	require.NoError(t, wb.LoadTables())

	names, err := wb.TableNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"SalesTbl"}, names)

	inStats, err := wb.TableNamesInSheet("Stats")
	require.NoError(t, err)
	assert.Equal(t, []string{"SalesTbl"}, inStats)

	inSheet1, err := wb.TableNamesInSheet("Sheet1")
	require.NoError(t, err)
	assert.Empty(t, inSheet1)

	table, err := wb.TableByName("SalesTbl")
	require.NoError(t, err)
	assert.Equal(t, "SalesTbl", table.Name)
	assert.Equal(t, "Stats", table.SheetName)
	assert.Equal(t, []string{"Region", "Sales"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, StringCell("north"), table.Rows[0][0])
	assert.Equal(t, IntCell(100), table.Rows[0][1])
	assert.Equal(t, StringCell("south"), table.Rows[1][0])
	assert.Equal(t, FloatCell(200.5), table.Rows[1][1])
}

func TestXlsxTableNotFound(t *testing.T) {
	wb := openXlsxFixture(t)
	require.NoError(t, wb.LoadTables())
	_, err := wb.TableByName("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.Contains(t, err.Error(), "Nope")
}
