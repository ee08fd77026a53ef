package xleak

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// ExportCSV writes the grid as RFC 4180 CSV using raw cell strings, so
// the output round-trips without display formatting.
func ExportCSV(w io.Writer, data *SheetData) error {
	return exportCSV(w, data.Headers, data.Rows)
}

// ExportTableCSV writes a named table as CSV.
func ExportTableCSV(w io.Writer, table *TableData) error {
	return exportCSV(w, table.Headers, table.Rows)
}

func exportCSV(w io.Writer, headers []string, rows [][]CellValue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("xleak: export csv: %w", err)
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = row[i].Raw()
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("xleak: export csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("xleak: export csv: %w", err)
	}
	return nil
}

// ExportText writes the grid tab-separated using raw cell strings.
func ExportText(w io.Writer, data *SheetData) error {
	return exportText(w, data.Headers, data.Rows)
}

// ExportTableText writes a named table tab-separated.
func ExportTableText(w io.Writer, table *TableData) error {
	return exportText(w, table.Headers, table.Rows)
}

func exportText(w io.Writer, headers []string, rows [][]CellValue) error {
	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return fmt.Errorf("xleak: export text: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = c.Raw()
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("xleak: export text: %w", err)
		}
	}
	return nil
}

type (
	sheetJSON struct {
		Sheet   string   `json:"sheet"`
		Columns int      `json:"columns"`
		Rows    int      `json:"rows"`
		Headers []string `json:"headers"`
		Data    [][]any  `json:"data"`
	}

	tableJSON struct {
		Table   string   `json:"table"`
		Sheet   string   `json:"sheet"`
		Columns int      `json:"columns"`
		Rows    int      `json:"rows"`
		Headers []string `json:"headers"`
		Data    [][]any  `json:"data"`
	}
)

// ExportJSON writes the grid as one JSON document: headers plus rows of
// natively typed values (numbers stay numbers, empty cells are null,
// dates and errors fall back to their display strings).
func ExportJSON(w io.Writer, data *SheetData, sheetName string) error {
	doc := sheetJSON{
		Sheet:   sheetName,
		Columns: data.Width,
		Rows:    data.Height,
		Headers: data.Headers,
		Data:    jsonRows(data.Rows),
	}
	return writeJSON(w, doc)
}

// ExportTableJSON writes a named table as one JSON document.
func ExportTableJSON(w io.Writer, table *TableData) error {
	doc := tableJSON{
		Table:   table.Name,
		Sheet:   table.SheetName,
		Columns: len(table.Headers),
		Rows:    len(table.Rows),
		Headers: table.Headers,
		Data:    jsonRows(table.Rows),
	}
	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, doc any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("xleak: export json: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("xleak: export json: %w", err)
	}
	return nil
}

func jsonRows(rows [][]CellValue) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, c := range row {
			vals[j] = jsonValue(c)
		}
		out[i] = vals
	}
	return out
}

func jsonValue(c CellValue) any {
	switch c.Kind {
	case CellEmpty:
		return nil
	case CellString:
		return c.Str
	case CellInt:
		return c.Int
	case CellFloat:
		return c.Float
	case CellBool:
		return c.Bool
	default:
		return c.Display()
	}
}
