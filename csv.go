package xleak

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// csvSource exposes a delimited text file as a single pseudo-sheet named
// after the file. The whole grid is derived once at open time; there are
// no formulas and no tables.
type csvSource struct {
	name string
	grid *SheetData
}

func newCsvSource(filePath string) (*csvSource, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	var headers []string
	width := 0
	if len(records) > 0 {
		headers = records[0]
		width = len(headers)
	}

	rows := make([][]CellValue, 0, max(len(records)-1, 0))
	formulas := make([][]string, 0, cap(rows))
	for _, record := range records[min(1, len(records)):] {
		row := make([]CellValue, width)
		for c := 0; c < width && c < len(record); c++ {
			row[c] = CoerceString(record[c])
		}
		rows = append(rows, row)
		formulas = append(formulas, make([]string, width))
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if name == "" {
		name = "data"
	}

	return &csvSource{
		name: name,
		grid: &SheetData{
			Headers:  headers,
			Rows:     rows,
			Formulas: formulas,
			Width:    width,
			Height:   len(rows),
		},
	}, nil
}

func (c *csvSource) SheetNames() []string {
	return []string{c.name}
}

func (c *csvSource) LoadSheet(name string) (*SheetData, error) {
	if name != c.name {
		return nil, sheetNotFound(name, []string{c.name})
	}
	return c.grid, nil
}

func (c *csvSource) LoadSheetLazy(name string) (*LazySheetData, error) {
	if name != c.name {
		return nil, sheetNotFound(name, []string{c.name})
	}
	return newLazyFromGrid(c.grid), nil
}

func (c *csvSource) Close() error {
	return nil
}
