package xleak

// DatumKind enumerates the native scalar variants a decoded source can
// produce. The set mirrors what the spreadsheet parsers emit, including
// ISO-formatted datetime/duration text, which the grid layer does not
// decode further and treats as plain text.
type DatumKind uint8

const (
	DatumEmpty DatumKind = iota
	DatumString
	DatumInt
	DatumFloat
	DatumBool
	DatumError
	DatumDateTime    // serial day-count
	DatumDateTimeISO // ISO 8601 datetime text
	DatumDurationISO // ISO 8601 duration text
)

// Datum is one native scalar cell as supplied by a source adapter. The
// zero value is the empty cell.
type Datum struct {
	Kind  DatumKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// ValueRange is the fully buffered rectangular block of typed scalar
// cells for one sheet. StartRow/StartCol locate its bounding box on the
// sheet; Cells is dense, every row the same length.
type ValueRange struct {
	StartRow int
	StartCol int
	Cells    [][]Datum
}

// Size returns (height, width) of the bounding box.
func (r *ValueRange) Size() (height, width int) {
	if r == nil || len(r.Cells) == 0 {
		return 0, 0
	}
	return len(r.Cells), len(r.Cells[0])
}

// FormulaRange is a separately bounded rectangular block of formula
// source text. Its origin is independent of the value range's and its
// row coordinates include the header row. An empty string is a cell
// without a formula.
type FormulaRange struct {
	StartRow int
	StartCol int
	Cells    [][]string
}
