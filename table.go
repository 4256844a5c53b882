package retree

import "fmt"

var _ Node[any] = new(Table[any])

// Table is the root of a table tree.
// It has an optional TitleRow and an ordered slice of Rows.
//
// Every row added to a table must have the same number of cells
// as the title row, violations panic with an error wrapping
// ErrColumnMismatch.
type Table[T any] struct {
	visibility
	title *TitleRow[T]
	rows  []*Row[T]
}

// NewTable returns a new table with the passed title row and rows.
// The title may be nil.
func NewTable[T any](title *TitleRow[T], rows ...*Row[T]) *Table[T] {
	t := &Table[T]{title: title}
	return t.Add(rows...)
}

// Title returns the title row or nil.
func (t *Table[T]) Title() *TitleRow[T] { return t.title }

// SetTitle sets the title row and returns the table.
// All existing rows must match the cell count of the new title.
func (t *Table[T]) SetTitle(title *TitleRow[T]) *Table[T] {
	t.title = title
	for i, row := range t.rows {
		t.checkColumns(i, row)
	}
	return t
}

// Rows returns the rows in display order.
// The returned slice must not be modified.
func (t *Table[T]) Rows() []*Row[T] { return t.rows }

// SetRows replaces all rows of the table and returns the table.
func (t *Table[T]) SetRows(rows []*Row[T]) *Table[T] {
	t.rows = nil
	return t.Add(rows...)
}

// Row returns the row at index or nil if index is out of bounds.
func (t *Table[T]) Row(index int) *Row[T] {
	if index < 0 || index >= len(t.rows) {
		return nil
	}
	return t.rows[index]
}

// NumRows returns the number of rows without the title row.
func (t *Table[T]) NumRows() int { return len(t.rows) }

// NumCols returns the number of cells of the title row
// or of the first row if the table has no title.
func (t *Table[T]) NumCols() int {
	switch {
	case t.title != nil:
		return t.title.NumCells()
	case len(t.rows) > 0:
		return t.rows[0].NumCells()
	}
	return 0
}

// Add appends rows to the table and returns the table.
func (t *Table[T]) Add(rows ...*Row[T]) *Table[T] {
	for _, row := range rows {
		if row == nil {
			continue
		}
		t.checkColumns(len(t.rows), row)
		t.rows = append(t.rows, row)
	}
	return t
}

// Remove removes the row at index and returns true,
// or returns false without changing the table
// if index is out of bounds.
func (t *Table[T]) Remove(index int) bool {
	if index < 0 || index >= len(t.rows) {
		return false
	}
	t.rows = append(t.rows[:index:index], t.rows[index+1:]...)
	return true
}

// IndexOf returns the index of row or -1.
func (t *Table[T]) IndexOf(row *Row[T]) int {
	for i, r := range t.rows {
		if r == row {
			return i
		}
	}
	return -1
}

// MatchData zips the labels of the title row with the passed values.
// Text values become a DataField with the value as Title,
// object values become a DataField with the label as Title
// and all values of the object as Values.
// Surplus labels or values are ignored.
func (t *Table[T]) MatchData(values []Display) DataObject {
	if t.title == nil {
		return DataObject{}
	}
	labels := t.title.Labels()
	matched := make(DataObject, 0, min(len(labels), len(values)))
	for i, label := range labels {
		if i >= len(values) {
			break
		}
		if values[i].IsObject() {
			matched = append(matched, DataField{
				Key:    label,
				Title:  label,
				Values: values[i].Object().AllValues(),
			})
		} else {
			matched = append(matched, DataField{
				Key:   label,
				Title: values[i].Text(),
			})
		}
	}
	return matched
}

// Apply passes the table to crawler and adopts the
// title row, rows and visibility of the result in place.
// If the crawler prunes the table, then the table
// is left without rows and false is returned.
func (t *Table[T]) Apply(crawler Crawler[T]) bool {
	result := crawler.CrawlTable(t)
	if result == nil {
		t.rows = nil
		return false
	}
	if result != t {
		t.title = result.title
		t.rows = result.rows
		t.hidden = result.hidden
	}
	return true
}

// Accept returns the result of crawler.CrawlTable.
func (t *Table[T]) Accept(crawler Crawler[T]) *Table[T] {
	return crawler.CrawlTable(t)
}

func (t *Table[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlTable(t); result != nil {
		return result
	}
	return nil
}

func (t *Table[T]) Filterable() bool { return true }

// Data returns the data of all rows, not including the title row.
func (t *Table[T]) Data() []T { return childData[T](t.rows) }

// Children returns the rows of the table as nodes.
// The title row is not included.
func (t *Table[T]) Children() []Node[T] { return asNodes[T](t.rows) }

func (t *Table[T]) checkColumns(index int, row *Row[T]) {
	if t.title == nil || row == nil {
		return
	}
	if row.NumCells() != t.title.NumCells() {
		panic(fmt.Errorf("%w: row %d has %d cells but title has %d", ErrColumnMismatch, index, row.NumCells(), t.title.NumCells()))
	}
}
