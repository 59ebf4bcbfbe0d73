package results

// Column is the position of a field within a results table row.
type Column int

const (
	COLUMN_YEAR Column = iota
	COLUMN_MODULE_CODE
	COLUMN_TITLE
	COLUMN_GRADE
	COLUMN_CREDITS
	COLUMN_ECTS
	COLUMN_FHEQ_LEVEL
	COLUMN_ATTEMPTS
)

// ROW_WIDTH is the number of cells every accepted row has.
const ROW_WIDTH = 8

var columnNames = [ROW_WIDTH]string{
	COLUMN_YEAR:        "year",
	COLUMN_MODULE_CODE: "moduleCode",
	COLUMN_TITLE:       "title",
	COLUMN_GRADE:       "grade",
	COLUMN_CREDITS:     "credits",
	COLUMN_ECTS:        "ects",
	COLUMN_FHEQ_LEVEL:  "fheqLevel",
	COLUMN_ATTEMPTS:    "attempts",
}

func (c Column) String() string {
	if c < 0 || int(c) >= ROW_WIDTH {
		return "unknown"
	}
	return columnNames[c]
}

// Row is the text of the cells of one table row, in table order.
type Row [ROW_WIDTH]string

// RowFromCells accepts a row only if it has exactly ROW_WIDTH cells.
func RowFromCells(cells []string) (Row, bool) {
	var row Row
	if len(cells) != ROW_WIDTH {
		return row, false
	}
	copy(row[:], cells)
	return row, true
}

func (r Row) Get(c Column) string {
	return r[c]
}
