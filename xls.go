package xleak

import (
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
)

// xlsSource reads legacy binary workbooks. The format carries no
// retrievable formula text here and no named tables, so xls sheets
// always reconcile against a nil formula range and the source does not
// implement the table capability.
type xlsSource struct {
	names    []string
	workbook xls.Workbook
}

func newXlsSource(filePath string) (*xlsSource, error) {
	workbook, err := xls.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("excel/xls: %w", err)
	}
	src := &xlsSource{workbook: workbook}
	for i := 0; i < workbook.GetNumberSheets(); i++ {
		sheet, err := src.workbook.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("excel/xls: %w", err)
		}
		src.names = append(src.names, sheet.GetName())
	}
	return src, nil
}

func (x *xlsSource) SheetNames() []string {
	return x.names
}

func (x *xlsSource) LoadSheet(name string) (*SheetData, error) {
	vr, err := x.sheetRange(name)
	if err != nil {
		return nil, err
	}
	return NewSheetData(vr, nil), nil
}

func (x *xlsSource) LoadSheetLazy(name string) (*LazySheetData, error) {
	vr, err := x.sheetRange(name)
	if err != nil {
		return nil, err
	}
	return newLazyFromRange(vr, nil), nil
}

func (x *xlsSource) Close() error {
	return nil
}

func (x *xlsSource) sheetRange(name string) (*ValueRange, error) {
	index := -1
	for i, n := range x.names {
		if n == name {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, sheetNotFound(name, x.names)
	}
	sheet, err := x.workbook.GetSheet(index)
	if err != nil {
		return nil, fmt.Errorf("excel/xls: %w", err)
	}

	rowCount := sheet.GetNumberRows()
	rawRows := make([][]structure.CellData, rowCount)
	width := 0
	for i := 0; i < rowCount; i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			return nil, fmt.Errorf("excel/xls: %w", err)
		}
		cols := row.GetCols()
		rawRows[i] = cols
		if len(cols) > width {
			width = len(cols)
		}
	}

	cells := make([][]Datum, rowCount)
	for i, cols := range rawRows {
		row := make([]Datum, width)
		for j, col := range cols {
			row[j] = xlsDatum(col)
		}
		cells[i] = row
	}
	return &ValueRange{Cells: cells}, nil
}

// xlsDatum maps one BIFF record onto a native scalar. Unknown record
// types fall back to their string form rather than failing the row.
func xlsDatum(data structure.CellData) Datum {
	if data == nil {
		return Datum{}
	}
	switch data.(type) {
	case *record.Blank, *record.FakeBlank:
		return Datum{}
	case *record.BoolErr:
		switch s := data.GetString(); strings.ToUpper(s) {
		case "TRUE":
			return Datum{Kind: DatumBool, Bool: true}
		case "FALSE":
			return Datum{Kind: DatumBool, Bool: false}
		default:
			// #NULL!, #DIV/0!, #VALUE!, #REF!, #NAME?, #NUM!, #N/A
			return Datum{Kind: DatumError, Str: strings.TrimPrefix(s, "#")}
		}
	case *record.LabelBIFF8, *record.LabelBIFF5, *record.LabelSSt:
		return Datum{Kind: DatumString, Str: data.GetString()}
	case *record.Number:
		return Datum{Kind: DatumFloat, Float: data.GetFloat64()}
	case *record.Rk:
		return Datum{Kind: DatumInt, Int: data.GetInt64()}
	default:
		return Datum{Kind: DatumString, Str: data.GetString()}
	}
}
