package xleak

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	names  []string
	f      *excelize.File
	tables []*TableData // nil until LoadTables
}

func newXlsxSource(filePath string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("excel/xlsx: %w", err)
	}
	return &xlsxSource{names: f.GetSheetList(), f: f}, nil
}

func (x *xlsxSource) SheetNames() []string {
	return x.names
}

func (x *xlsxSource) LoadSheet(name string) (*SheetData, error) {
	vr, fr, err := x.sheetRange(name)
	if err != nil {
		return nil, err
	}
	return NewSheetData(vr, fr), nil
}

func (x *xlsxSource) LoadSheetLazy(name string) (*LazySheetData, error) {
	vr, fr, err := x.sheetRange(name)
	if err != nil {
		return nil, err
	}
	return newLazyFromRange(vr, fr), nil
}

func (x *xlsxSource) Close() error {
	if err := x.f.Close(); err != nil {
		return fmt.Errorf("excel/xlsx: %w", err)
	}
	return nil
}

// sheetRange buffers one sheet as a typed value range plus the bounding
// box of its formula cells.
func (x *xlsxSource) sheetRange(name string) (*ValueRange, *FormulaRange, error) {
	if !slices.Contains(x.names, name) {
		return nil, nil, sheetNotFound(name, x.names)
	}
	raw, err := x.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("excel/xlsx: %w", err)
	}

	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}

	cells := make([][]Datum, len(raw))
	for r, rr := range raw {
		row := make([]Datum, width)
		for c := range rr {
			row[c] = x.datumAt(name, r, c, rr[c])
		}
		cells[r] = row
	}

	fr, err := x.formulaRange(name, len(raw), width)
	if err != nil {
		return nil, nil, err
	}
	return &ValueRange{Cells: cells}, fr, nil
}

// datumAt types one cell from its raw stored value. Numbers styled with
// a date number format become date serials; everything the format does
// not cover degrades to text.
func (x *xlsxSource) datumAt(sheet string, row, col int, raw string) Datum {
	if raw == "" {
		return Datum{}
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Datum{Kind: DatumString, Str: raw}
	}
	ctype, err := x.f.GetCellType(sheet, axis)
	if err != nil {
		return Datum{Kind: DatumString, Str: raw}
	}

	switch ctype {
	case excelize.CellTypeBool:
		return Datum{Kind: DatumBool, Bool: raw == "1" || strings.EqualFold(raw, "true")}
	case excelize.CellTypeError:
		return Datum{Kind: DatumError, Str: strings.TrimPrefix(raw, "#")}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return Datum{Kind: DatumString, Str: raw}
	case excelize.CellTypeDate:
		return Datum{Kind: DatumDateTimeISO, Str: raw}
	default:
		// number, formula result, or unset
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Datum{Kind: DatumString, Str: raw}
		}
		if x.isDateStyle(sheet, axis) {
			return Datum{Kind: DatumDateTime, Float: f}
		}
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Datum{Kind: DatumInt, Int: i}
		}
		return Datum{Kind: DatumFloat, Float: f}
	}
}

// isDateStyle reports whether the cell carries one of the builtin date
// or time number formats. Custom formats are not inspected; behavior for
// the 1904 date system is intentionally not guessed at.
func (x *xlsxSource) isDateStyle(sheet, axis string) bool {
	styleID, err := x.f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	style, err := x.f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	nf := style.NumFmt
	return (nf >= 14 && nf <= 22) || (nf >= 45 && nf <= 47)
}

// formulaRange collects every formula cell of the sheet into a dense
// range bounded by the cells that actually carry formulas, so its origin
// is independent of the value range's.
func (x *xlsxSource) formulaRange(sheet string, height, width int) (*FormulaRange, error) {
	minR, minC := height, width
	maxR, maxC := -1, -1
	found := make(map[[2]int]string)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("excel/xlsx: %w", err)
			}
			text, err := x.f.GetCellFormula(sheet, axis)
			if err != nil || text == "" {
				continue
			}
			found[[2]int{r, c}] = text
			minR, minC = min(minR, r), min(minC, c)
			maxR, maxC = max(maxR, r), max(maxC, c)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}

	fr := &FormulaRange{StartRow: minR, StartCol: minC, Cells: make([][]string, maxR-minR+1)}
	for i := range fr.Cells {
		fr.Cells[i] = make([]string, maxC-minC+1)
	}
	for pos, text := range found {
		fr.Cells[pos[0]-minR][pos[1]-minC] = text
	}
	return fr, nil
}

// ===== named tables =====

func (x *xlsxSource) LoadTables() error {
	var tables []*TableData
	for _, sheet := range x.names {
		tbls, err := x.f.GetTables(sheet)
		if err != nil {
			return fmt.Errorf("excel/xlsx: failed to load table metadata: %w", err)
		}
		for _, t := range tbls {
			td, err := x.tableData(sheet, t)
			if err != nil {
				return err
			}
			tables = append(tables, td)
		}
	}
	if tables == nil {
		tables = []*TableData{}
	}
	x.tables = tables
	return nil
}

func (x *xlsxSource) TableNames() []string {
	names := make([]string, 0, len(x.tables))
	for _, t := range x.tables {
		names = append(names, t.Name)
	}
	return names
}

func (x *xlsxSource) TableNamesInSheet(sheetName string) []string {
	var names []string
	for _, t := range x.tables {
		if t.SheetName == sheetName {
			names = append(names, t.Name)
		}
	}
	return names
}

func (x *xlsxSource) TableByName(name string) (*TableData, error) {
	if x.tables == nil {
		return nil, fmt.Errorf("%w: %q", ErrTablesNotLoaded, name)
	}
	for _, t := range x.tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
}

// tableData projects one declared table: the first row of its range is
// the table's own header row, the rest is the data subrange.
func (x *xlsxSource) tableData(sheet string, t excelize.Table) (*TableData, error) {
	topLeft, bottomRight, ok := strings.Cut(t.Range, ":")
	if !ok {
		return nil, fmt.Errorf("excel/xlsx: malformed table range %q", t.Range)
	}
	c1, r1, err := excelize.CellNameToCoordinates(topLeft)
	if err != nil {
		return nil, fmt.Errorf("excel/xlsx: %w", err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(bottomRight)
	if err != nil {
		return nil, fmt.Errorf("excel/xlsx: %w", err)
	}

	headers := make([]string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		d, err := x.cellDatum(sheet, r1-1, c-1)
		if err != nil {
			return nil, err
		}
		headers = append(headers, datumString(d))
	}

	data := &ValueRange{StartRow: r1, StartCol: c1 - 1, Cells: make([][]Datum, 0, r2-r1)}
	for r := r1 + 1; r <= r2; r++ {
		row := make([]Datum, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			d, err := x.cellDatum(sheet, r-1, c-1)
			if err != nil {
				return nil, err
			}
			row = append(row, d)
		}
		data.Cells = append(data.Cells, row)
	}
	return newTableData(t.Name, sheet, headers, data), nil
}

// cellDatum fetches and types a single cell by zero-based coordinates.
func (x *xlsxSource) cellDatum(sheet string, row, col int) (Datum, error) {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Datum{}, fmt.Errorf("excel/xlsx: %w", err)
	}
	raw, err := x.f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return Datum{}, fmt.Errorf("excel/xlsx: %w", err)
	}
	return x.datumAt(sheet, row, col, raw), nil
}
