package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/hungltth/xleak"
	"github.com/stephenfire/go-common/log"
	"github.com/urfave/cli/v2"
)

var (
	sheetFlag = &cli.StringFlag{
		Name:    "sheet",
		Usage:   "`SHEET` name or 1-based index to display (default: first sheet)",
		Aliases: []string{"s"},
	}

	exportFlag = &cli.StringFlag{
		Name:    "export",
		Usage:   "export `FORMAT`: csv, json or text",
		Aliases: []string{"e"},
	}

	maxRowsFlag = &cli.IntFlag{
		Name:    "max-rows",
		Usage:   "maximum `NUMBER` of rows to display (0 = all)",
		Value:   50,
		Aliases: []string{"n"},
	}

	formulasFlag = &cli.BoolFlag{
		Name:    "formulas",
		Usage:   "show formulas instead of values (ignored for csv files)",
		Aliases: []string{"f"},
	}

	listTablesFlag = &cli.BoolFlag{
		Name:  "list-tables",
		Usage: "list all named tables in the workbook (.xlsx only)",
	}

	tableFlag = &cli.StringFlag{
		Name:    "table",
		Usage:   "extract the named `TABLE` (.xlsx only)",
		Aliases: []string{"t"},
	}

	allFlags = []cli.Flag{
		sheetFlag,
		exportFlag,
		maxRowsFlag,
		formulasFlag,
		listTablesFlag,
		tableFlag,
	}
)

func main() {
	app := &cli.App{
		Name:      "xleak",
		Usage:     "a fast terminal viewer for excel and csv files",
		ArgsUsage: "FILE",
		Version:   xleak.Version,
		Copyright: xleak.Copyright,
		Flags:     allFlags,
		Action:    view,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	sort.Sort(cli.FlagsByName(app.Flags))
	var canceled atomic.Bool
	baseCtx, cancel := context.WithCancel(context.Background())
	go func() {
		defer func() {
			if canceled.CompareAndSwap(false, true) {
				cancel()
			}
		}()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		ss := <-sigs
		log.Warnf("GOT A SYSTEM SIGNAL[%s]\n", ss.String())
	}()
	if err := app.RunContext(baseCtx, os.Args); err != nil {
		log.Errorf("exit from main: %v", err)
		if canceled.CompareAndSwap(false, true) {
			cancel()
		}
		os.Exit(1)
	}
}

func view(ctx *cli.Context) error {
	filename := ctx.Args().First()
	if filename == "" {
		return fmt.Errorf("missing input FILE")
	}
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	wb, err := xleak.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = wb.Close()
	}()

	if ctx.Bool(listTablesFlag.Name) {
		return listTables(wb)
	}
	if name := ctx.String(tableFlag.Name); name != "" {
		return showTable(ctx, wb, name)
	}

	sheetName, err := resolveSheet(wb, ctx.String(sheetFlag.Name))
	if err != nil {
		return err
	}

	if format := ctx.String(exportFlag.Name); format != "" {
		data, err := wb.LoadSheet(sheetName)
		if err != nil {
			return err
		}
		switch format {
		case "csv":
			return xleak.ExportCSV(os.Stdout, data)
		case "json":
			return xleak.ExportJSON(os.Stdout, data, sheetName)
		case "text":
			return xleak.ExportText(os.Stdout, data)
		default:
			return fmt.Errorf("unknown export format: %s (use: csv, json or text)", format)
		}
	}

	return showSheet(wb, sheetName, ctx.Int(maxRowsFlag.Name), ctx.Bool(formulasFlag.Name))
}

// resolveSheet accepts a sheet name, a 1-based index, or nothing for the
// first sheet.
func resolveSheet(wb *xleak.Workbook, arg string) (string, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no data found in file")
	}
	if arg == "" {
		return names[0], nil
	}
	for _, name := range names {
		if name == arg {
			return name, nil
		}
	}
	if idx, err := strconv.Atoi(arg); err == nil {
		if idx < 1 || idx > len(names) {
			return "", fmt.Errorf("sheet index %d out of range (1-%d)", idx, len(names))
		}
		return names[idx-1], nil
	}
	return "", fmt.Errorf("sheet %q not found. available: %s", arg, strings.Join(names, ", "))
}

// showSheet pages the sheet through the windowed grid so only the
// displayed rows are ever converted.
func showSheet(wb *xleak.Workbook, sheetName string, maxRows int, formulas bool) error {
	lazy, err := wb.LoadSheetLazy(sheetName)
	if err != nil {
		return err
	}
	if maxRows <= 0 {
		maxRows = lazy.Height
	}
	rows, formulaGrid := lazy.GetRows(0, maxRows)

	heading := color.New(color.FgCyan, color.Bold)
	_, _ = heading.Printf("%s  (%d rows × %d columns)\n", sheetName, lazy.Height, lazy.Width)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(lazy.Headers, "\t"))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			if formulas && formulaGrid[i][j] != "" {
				cells[j] = "=" + formulaGrid[i][j]
			} else {
				cells[j] = c.Display()
			}
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rows) < lazy.Height {
		fmt.Printf("showing %d of %d rows (use -n 0 to show all)\n", len(rows), lazy.Height)
	}
	return nil
}

func listTables(wb *xleak.Workbook) error {
	if err := wb.LoadTables(); err != nil {
		return err
	}
	names, err := wb.TableNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no tables found in workbook")
		return nil
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SHEET\tTABLE")
	for _, sheet := range wb.SheetNames() {
		inSheet, err := wb.TableNamesInSheet(sheet)
		if err != nil {
			return err
		}
		for _, name := range inSheet {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", sheet, name)
		}
	}
	return tw.Flush()
}

func showTable(ctx *cli.Context, wb *xleak.Workbook, name string) error {
	if err := wb.LoadTables(); err != nil {
		return err
	}
	table, err := wb.TableByName(name)
	if err != nil {
		return err
	}

	switch format := ctx.String(exportFlag.Name); format {
	case "csv":
		return xleak.ExportTableCSV(os.Stdout, table)
	case "json":
		return xleak.ExportTableJSON(os.Stdout, table)
	case "text":
		return xleak.ExportTableText(os.Stdout, table)
	case "":
	default:
		return fmt.Errorf("unknown export format: %s (use: csv, json or text)", format)
	}

	heading := color.New(color.FgCyan, color.Bold)
	_, _ = heading.Printf("%s  (from sheet: %s, %d rows × %d columns)\n",
		table.Name, table.SheetName, len(table.Rows), len(table.Headers))

	maxRows := ctx.Int(maxRowsFlag.Name)
	if maxRows <= 0 || maxRows > len(table.Rows) {
		maxRows = len(table.Rows)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows[:maxRows] {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.Display()
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if maxRows < len(table.Rows) {
		fmt.Printf("showing %d of %d rows (use -n 0 to show all)\n", maxRows, len(table.Rows))
	}
	return nil
}
