package retree

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Strings flattens a table to strings, one slice per row.
//
// The values of a cell are joined with ", ",
// the rows of a nested table with "; ",
// and controls are represented by their label in brackets.
// A nil formatter uses fmt.Sprint for all values.
func Strings[T any](table *Table[T], formatter Formatter[T], options ...Option) (rows [][]string, err error) {
	if formatter == nil {
		formatter = SprintFormatter[T]{}
	}
	option := JoinOptions(options...)

	if option.Has(OptionAddHeaderRow) && table.title != nil {
		header := make([]string, table.title.NumCells())
		for i, cell := range table.title.cells {
			header[i], err = dataString(cell.content, formatter)
			if err != nil {
				return nil, err
			}
		}
		rows = append(rows, header)
	}

	for _, row := range table.rows {
		if option.Has(OptionSkipHidden) && row.Hidden() {
			continue
		}
		rowStrs, err := RowStrings(row, formatter)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
}

// RowStrings returns one string per cell of row.
func RowStrings[T any](row *Row[T], formatter Formatter[T]) ([]string, error) {
	strs := make([]string, row.NumCells())
	for col, cell := range row.cells {
		str, err := CellString(cell, formatter)
		if err != nil {
			return nil, err
		}
		strs[col] = str
	}
	return strs, nil
}

// CellString returns the joined string representation
// of all data leaves of cell.
func CellString[T any](cell *Cell[T], formatter Formatter[T]) (string, error) {
	parts := make([]string, 0, len(cell.contents))
	for _, d := range cell.contents {
		str, err := dataString(d, formatter)
		if err != nil {
			return "", err
		}
		if str != "" {
			parts = append(parts, str)
		}
	}
	return strings.Join(parts, ", "), nil
}

func dataString[T any](d *Data[T], formatter Formatter[T]) (string, error) {
	if d == nil {
		return "", nil
	}
	switch d.kind {
	case KindControl:
		if d.control == nil {
			return "", nil
		}
		return "[" + d.control.Label() + "]", nil
	case KindTable:
		if d.table == nil {
			return "", nil
		}
		rows, err := Strings(d.table, formatter)
		if err != nil {
			return "", err
		}
		joined := make([]string, len(rows))
		for i, row := range rows {
			joined[i] = strings.Join(row, " ")
		}
		return strings.Join(joined, "; "), nil
	}
	return formatter.Format(d.value)
}

// StringColumnWidths returns the column widths of the passed
// rows as terminal display width.
// If numCols is negative, then the maximum number
// of columns of all rows is used.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			numCols = max(numCols, len(row))
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for _, row := range rows {
		for col := 0; col < numCols && col < len(row); col++ {
			colWidths[col] = max(colWidths[col], runewidth.StringWidth(row[col]))
		}
	}
	return colWidths
}
