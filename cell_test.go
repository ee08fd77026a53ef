package xleak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayInteger(t *testing.T) {
	assert.Equal(t, "1,234,567", IntCell(1234567).Display())
	assert.Equal(t, "-1,234,567", IntCell(-1234567).Display())
	assert.Equal(t, "123", IntCell(123).Display())
	assert.Equal(t, "-123", IntCell(-123).Display())
	assert.Equal(t, "0", IntCell(0).Display())
	assert.Equal(t, "1,000", IntCell(1000).Display())
}

func TestDisplayFloat(t *testing.T) {
	assert.Equal(t, "1,234,567.89", FloatCell(1234567.89).Display())
	assert.Equal(t, "1,000", FloatCell(1000.0).Display())
	assert.Equal(t, "-1,000", FloatCell(-1000.0).Display())
	assert.Equal(t, "3.14", FloatCell(3.14159).Display())
	assert.Equal(t, "0.50", FloatCell(0.5).Display())
}

func TestDisplayScalars(t *testing.T) {
	assert.Equal(t, "true", BoolCell(true).Display())
	assert.Equal(t, "false", BoolCell(false).Display())
	assert.Equal(t, "Hello, World!", StringCell("Hello, World!").Display())
	assert.Equal(t, "", CellValue{}.Display())
	assert.Equal(t, "ERROR: DIV/0!", ErrorCell("DIV/0!").Display())
}

func TestRawNeverGroups(t *testing.T) {
	assert.Equal(t, "1234567", IntCell(1234567).Raw())
	assert.Equal(t, "-1234567", IntCell(-1234567).Raw())
	assert.Equal(t, "123.45", FloatCell(123.45).Raw())
	assert.Equal(t, "1000", FloatCell(1000.0).Raw())
	assert.Equal(t, "#DIV/0!", ErrorCell("DIV/0!").Raw())
	assert.Equal(t, "true", BoolCell(true).Raw())
	assert.Equal(t, "", CellValue{}.Raw())
}

func TestSerialDateDecode(t *testing.T) {
	// day 1 of the 1900 system
	assert.Equal(t, "1900-01-01", DateTimeCell(1).Display())
	// day 59 is the last real February day of 1900
	assert.Equal(t, "1900-02-28", DateTimeCell(59).Display())
	// serial 61 shifts down past the nonexistent 1900-02-29
	assert.Equal(t, "1900-03-01", DateTimeCell(61).Display())
	// a known modern date: 2023-12-25
	assert.Equal(t, "2023-12-25", DateTimeCell(45285).Display())
}

func TestSerialDateTime(t *testing.T) {
	assert.Equal(t, "1900-01-01 12:00:00", DateTimeCell(1.5).Display())
	assert.Equal(t, "1900-01-02 06:00:00", DateTimeCell(2.25).Display())
	// the two renderings share one decode rule
	assert.Equal(t, DateTimeCell(1.5).Display(), DateTimeCell(1.5).Raw())
	assert.Equal(t, DateTimeCell(61).Display(), DateTimeCell(61).Raw())
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, IntCell(42), CoerceString("42"))
	assert.Equal(t, IntCell(-7), CoerceString("-7"))
	assert.Equal(t, FloatCell(3.14), CoerceString("3.14"))
	assert.Equal(t, StringCell("abc"), CoerceString("abc"))
	assert.Equal(t, CellValue{}, CoerceString(""))
	// malformed numerics degrade to text, never fail
	assert.Equal(t, StringCell("12x"), CoerceString("12x"))
}

func TestCellPredicates(t *testing.T) {
	assert.True(t, CellValue{}.IsEmpty())
	assert.False(t, IntCell(0).IsEmpty())
	assert.False(t, StringCell("").IsEmpty())
	assert.True(t, IntCell(123).IsNumeric())
	assert.True(t, FloatCell(123.45).IsNumeric())
	assert.False(t, StringCell("123").IsNumeric())
	assert.False(t, CellValue{}.IsNumeric())
}
