package xleak

// TableData is a named table projected out of its owning sheet: a named,
// bounded subregion with its own header row, independent of any
// SheetData loaded for that sheet.
type TableData struct {
	Name      string
	SheetName string
	Headers   []string
	Rows      [][]CellValue
}

// newTableData converts a table's data subrange (header row already
// stripped by the adapter) into cell values.
func newTableData(name, sheetName string, headers []string, data *ValueRange) *TableData {
	height, width := data.Size()
	rows := make([][]CellValue, 0, height)
	for i := 0; i < height; i++ {
		row := make([]CellValue, width)
		for j, d := range data.Cells[i] {
			row[j] = datumToCell(d)
		}
		rows = append(rows, row)
	}
	return &TableData{
		Name:      name,
		SheetName: sheetName,
		Headers:   headers,
		Rows:      rows,
	}
}
