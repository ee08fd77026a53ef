package xleak

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/metakeule/fmtdate"
)

// CellKind enumerates the closed set of cell value variants. Absence of
// data is CellEmpty, never a missing value.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellString
	CellInt
	CellFloat
	CellBool
	CellError
	CellDateTime // serial day-count in the 1900 date system
)

// CellValue is a single typed cell. Kind selects which field carries the
// payload; the others are zero.
type CellValue struct {
	Kind  CellKind
	Str   string  // CellString, CellError (code without leading '#')
	Int   int64   // CellInt
	Float float64 // CellFloat, CellDateTime (serial)
	Bool  bool    // CellBool
}

func StringCell(s string) CellValue    { return CellValue{Kind: CellString, Str: s} }
func IntCell(i int64) CellValue        { return CellValue{Kind: CellInt, Int: i} }
func FloatCell(f float64) CellValue    { return CellValue{Kind: CellFloat, Float: f} }
func BoolCell(b bool) CellValue        { return CellValue{Kind: CellBool, Bool: b} }
func ErrorCell(code string) CellValue  { return CellValue{Kind: CellError, Str: code} }
func DateTimeCell(d float64) CellValue { return CellValue{Kind: CellDateTime, Float: d} }

func (c CellValue) IsEmpty() bool { return c.Kind == CellEmpty }

func (c CellValue) IsNumeric() bool { return c.Kind == CellInt || c.Kind == CellFloat }

// Display renders the cell for human consumption: thousands grouping for
// numbers, floats with 2 decimals unless exactly whole, calendar form for
// date serials.
func (c CellValue) Display() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellString:
		return c.Str
	case CellInt:
		return groupThousands(strconv.FormatInt(c.Int, 10))
	case CellFloat:
		var s string
		if isWhole(c.Float) {
			s = strconv.FormatFloat(c.Float, 'f', 0, 64)
		} else {
			s = strconv.FormatFloat(c.Float, 'f', 2, 64)
		}
		intPart, fracPart, hasFrac := strings.Cut(s, ".")
		if hasFrac {
			return groupThousands(intPart) + "." + fracPart
		}
		return groupThousands(intPart)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellError:
		return "ERROR: " + c.Str
	case CellDateTime:
		return formatSerialDate(c.Float)
	default:
		return ""
	}
}

// Raw renders the cell for export and clipboard use: no grouping, no
// display rounding, errors in their native '#CODE' form. Whole floats
// still collapse to integer strings.
func (c CellValue) Raw() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellString:
		return c.Str
	case CellInt:
		return strconv.FormatInt(c.Int, 10)
	case CellFloat:
		if isWhole(c.Float) {
			return strconv.FormatFloat(c.Float, 'f', 0, 64)
		}
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellError:
		return "#" + c.Str
	case CellDateTime:
		return formatSerialDate(c.Float)
	default:
		return ""
	}
}

// String implements fmt.Stringer as an alias of Display.
func (c CellValue) String() string { return c.Display() }

// CoerceString converts a raw text field to a typed cell: integer first,
// then float, otherwise text. Empty input is the empty cell, never an
// empty string cell. Coercion is total; it cannot fail.
func CoerceString(s string) CellValue {
	if s == "" {
		return CellValue{}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntCell(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatCell(f)
	}
	return StringCell(s)
}

// serialEpoch is day 0 of the 1900 date system.
var serialEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// formatSerialDate decodes a 1900-system serial day-count. Serials above
// 60 are shifted down by one to compensate for the nonexistent
// 1900-02-29 that the original Lotus encoding counted. A numerically
// non-zero fraction of a day is appended as HH:MM:SS.
func formatSerialDate(serial float64) string {
	days := int(math.Floor(serial))
	if days > 60 {
		days--
	}
	date := serialEpoch.AddDate(0, 0, days)
	day := fmtdate.Format("YYYY-MM-DD", date)

	frac := serial - math.Floor(serial)
	if math.Abs(frac) < 1e-7 {
		return day
	}
	total := int(math.Round(frac * 86400))
	return fmt.Sprintf("%s %02d:%02d:%02d", day, total/3600, (total%3600)/60, total%60)
}

// groupThousands inserts a comma every three digits from the right. The
// input is a plain decimal integer string with an optional leading sign.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	if len(digits) <= 3 {
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isWhole(f float64) bool { return f == math.Trunc(f) && !math.IsInf(f, 0) }
