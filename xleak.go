package xleak

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	Version   = "0.4.0"
	Copyright = "Copyright 2025-2026 The xleak Authors"
)

var (
	ErrSheetNotFound     = errors.New("xleak: sheet not found")
	ErrTablesUnsupported = errors.New("xleak: tables are only supported in .xlsx files")
	ErrTableNotFound     = errors.New("xleak: table not found")
	ErrTablesNotLoaded   = errors.New("xleak: tables not loaded, call LoadTables first")
)

type (
	// source is the contract every adapter satisfies. The adapter owns
	// the decoded state (open handle or buffered parse result) for the
	// lifetime of the Workbook.
	source interface {
		SheetNames() []string
		LoadSheet(name string) (*SheetData, error)
		LoadSheetLazy(name string) (*LazySheetData, error)
		Close() error
	}

	// tableSource is the optional named-table capability. Only the xlsx
	// adapter implements it; everything else answers table operations
	// with ErrTablesUnsupported.
	tableSource interface {
		LoadTables() error
		TableNames() []string
		TableNamesInSheet(sheetName string) []string
		TableByName(name string) (*TableData, error)
	}

	// Workbook is the uniform access surface over one opened file.
	// A Workbook is not safe for concurrent use.
	Workbook struct {
		src source
	}
)

// Open selects an adapter by file extension and decodes the source:
// .csv goes to the text adapter, .xls to the binary workbook adapter,
// the XML workbook extensions to the xlsx adapter.
func Open(path string) (*Workbook, error) {
	var src source
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		src, err = newCsvSource(path)
	case ".xls":
		src, err = newXlsSource(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		src, err = newXlsxSource(path)
	default:
		return nil, fmt.Errorf("xleak: unsupported file format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("xleak: failed to open workbook: %w", err)
	}
	return &Workbook{src: src}, nil
}

// SheetNames returns the ordered sheet names. A text source has exactly
// one, derived from the file's base name.
func (w *Workbook) SheetNames() []string {
	return w.src.SheetNames()
}

// LoadSheet materializes the named sheet eagerly.
func (w *Workbook) LoadSheet(name string) (*SheetData, error) {
	return w.src.LoadSheet(name)
}

// LoadSheetLazy prepares the named sheet for windowed retrieval.
func (w *Workbook) LoadSheetLazy(name string) (*LazySheetData, error) {
	return w.src.LoadSheetLazy(name)
}

// LoadTables reads the named-table metadata of the whole workbook.
func (w *Workbook) LoadTables() error {
	ts, ok := w.src.(tableSource)
	if !ok {
		return ErrTablesUnsupported
	}
	return ts.LoadTables()
}

// TableNames lists all loaded table names.
func (w *Workbook) TableNames() ([]string, error) {
	ts, ok := w.src.(tableSource)
	if !ok {
		return nil, ErrTablesUnsupported
	}
	return ts.TableNames(), nil
}

// TableNamesInSheet lists the loaded table names owned by one sheet.
func (w *Workbook) TableNamesInSheet(sheetName string) ([]string, error) {
	ts, ok := w.src.(tableSource)
	if !ok {
		return nil, ErrTablesUnsupported
	}
	return ts.TableNamesInSheet(sheetName), nil
}

// TableByName projects one loaded table into a standalone result.
func (w *Workbook) TableByName(name string) (*TableData, error) {
	ts, ok := w.src.(tableSource)
	if !ok {
		return nil, ErrTablesUnsupported
	}
	return ts.TableByName(name)
}

// Close releases the adapter state. The Workbook must not be used after.
func (w *Workbook) Close() error {
	return w.src.Close()
}

// sheetNotFound builds the lookup failure carrying the requested name
// and the available alternatives.
func sheetNotFound(name string, available []string) error {
	return fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, name, strings.Join(available, ", "))
}
