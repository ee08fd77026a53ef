package xleak

import (
	"fmt"
	"strconv"
)

// SheetData is an eagerly materialized sheet: the first source row
// becomes Headers, the rest become Rows. Formulas mirrors Rows cell for
// cell, with "" marking cells that carry no formula. Height excludes the
// header row.
type SheetData struct {
	Headers  []string
	Rows     [][]CellValue
	Formulas [][]string
	Width    int
	Height   int
}

// NewSheetData builds a grid from a buffered value range and an optional
// formula range. fr may be nil.
func NewSheetData(vr *ValueRange, fr *FormulaRange) *SheetData {
	height, width := vr.Size()
	gridHeight := height - 1
	if gridHeight < 0 {
		gridHeight = 0
	}

	headers := make([]string, 0, width)
	if height > 0 {
		for _, d := range vr.Cells[0] {
			headers = append(headers, datumString(d))
		}
	}

	rows := make([][]CellValue, 0, gridHeight)
	for i := 1; i < height; i++ {
		row := make([]CellValue, width)
		for j, d := range vr.Cells[i] {
			row[j] = datumToCell(d)
		}
		rows = append(rows, row)
	}

	return &SheetData{
		Headers:  headers,
		Rows:     rows,
		Formulas: overlayFormulas(fr, width, 0, gridHeight),
		Width:    width,
		Height:   gridHeight,
	}
}

// overlayFormulas translates fr into grid-local coordinates, restricted
// to data rows [start, end). The formula range addresses the sheet with
// the header row at absolute row 0; grid-local row is absolute row − 1.
// Cells outside [0, width) or with empty text are dropped. The result is
// always a dense (end−start) × width grid. The same routine serves both
// the full eager build and arbitrary windows.
func overlayFormulas(fr *FormulaRange, width, start, end int) [][]string {
	grid := make([][]string, end-start)
	for i := range grid {
		grid[i] = make([]string, width)
	}
	if fr == nil {
		return grid
	}
	for ro, frow := range fr.Cells {
		abs := fr.StartRow + ro
		if abs == 0 {
			continue // header row carries no data formulas
		}
		r := abs - 1
		if r < start || r >= end {
			continue
		}
		for co, text := range frow {
			c := fr.StartCol + co
			if c >= width || text == "" {
				continue
			}
			grid[r-start][c] = text
		}
	}
	return grid
}

// datumToCell maps a native scalar onto the cell value model. The
// mapping is total: unsupported native variants degrade to text, never
// to a failure.
func datumToCell(d Datum) CellValue {
	switch d.Kind {
	case DatumEmpty:
		return CellValue{}
	case DatumString:
		return StringCell(d.Str)
	case DatumInt:
		return IntCell(d.Int)
	case DatumFloat:
		return FloatCell(d.Float)
	case DatumBool:
		return BoolCell(d.Bool)
	case DatumError:
		return ErrorCell(d.Str)
	case DatumDateTime:
		return DateTimeCell(d.Float)
	case DatumDateTimeISO, DatumDurationISO:
		return StringCell(d.Str)
	default:
		return StringCell(d.Str)
	}
}

// datumString renders a native scalar as plain header text. No grouping;
// serials stay in their serial form.
func datumString(d Datum) string {
	switch d.Kind {
	case DatumEmpty:
		return ""
	case DatumString, DatumDateTimeISO, DatumDurationISO:
		return d.Str
	case DatumInt:
		return strconv.FormatInt(d.Int, 10)
	case DatumFloat:
		if isWhole(d.Float) {
			return strconv.FormatFloat(d.Float, 'f', 0, 64)
		}
		return strconv.FormatFloat(d.Float, 'f', -1, 64)
	case DatumBool:
		return strconv.FormatBool(d.Bool)
	case DatumError:
		return "ERROR: " + d.Str
	case DatumDateTime:
		return fmt.Sprintf("Date(%v)", d.Float)
	default:
		return d.Str
	}
}
