package xleak

// LazySheetData serves arbitrary row windows of a sheet without
// materializing the whole grid. Headers, Width and Height are computed
// once at construction; row conversion and the formula overlay run only
// for the requested window. The source bytes are already buffered in
// memory — laziness here defers conversion, not I/O.
type LazySheetData struct {
	Headers []string
	Width   int
	Height  int

	// exactly one of (vr) or (grid) is set; fr only ever rides with vr
	vr   *ValueRange
	fr   *FormulaRange
	grid *SheetData
}

// newLazyFromRange wraps a buffered value/formula range pair from a
// structured source.
func newLazyFromRange(vr *ValueRange, fr *FormulaRange) *LazySheetData {
	height, width := vr.Size()
	headers := make([]string, 0, width)
	if height > 0 {
		for _, d := range vr.Cells[0] {
			headers = append(headers, datumString(d))
		}
	}
	gridHeight := height - 1
	if gridHeight < 0 {
		gridHeight = 0
	}
	return &LazySheetData{
		Headers: headers,
		Width:   width,
		Height:  gridHeight,
		vr:      vr,
		fr:      fr,
	}
}

// newLazyFromGrid wraps an already built grid from a text source.
func newLazyFromGrid(grid *SheetData) *LazySheetData {
	return &LazySheetData{
		Headers: grid.Headers,
		Width:   grid.Width,
		Height:  grid.Height,
		grid:    grid,
	}
}

// GetRows returns data rows [start, start+count) and the matching
// formula window, both clamped to Height. Rows are zero-indexed with the
// header excluded. For any valid window the result equals the same slice
// of the fully materialized grid.
func (l *LazySheetData) GetRows(start, count int) ([][]CellValue, [][]string) {
	if start < 0 {
		start = 0
	}
	end := start + count
	if end > l.Height {
		end = l.Height
	}
	if start > end {
		start = end
	}

	if l.grid != nil {
		return l.grid.Rows[start:end], l.grid.Formulas[start:end]
	}

	rows := make([][]CellValue, 0, end-start)
	for i := 1 + start; i < 1+end; i++ {
		row := make([]CellValue, l.Width)
		for j, d := range l.vr.Cells[i] {
			row[j] = datumToCell(d)
		}
		rows = append(rows, row)
	}
	return rows, overlayFormulas(l.fr, l.Width, start, end)
}

// ToSheetData materializes the equivalent eager grid. For a text source
// this is the grid it was built from, unchanged.
func (l *LazySheetData) ToSheetData() *SheetData {
	if l.grid != nil {
		return l.grid
	}
	return NewSheetData(l.vr, l.fr)
}
