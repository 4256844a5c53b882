package retree

import "fmt"

var (
	_ Node[any] = new(Row[any])
	_ Node[any] = new(TitleRow[any])
)

// Row is an ordered slice of cells.
type Row[T any] struct {
	visibility
	cells []*Cell[T]
}

// NewRow returns a row with the passed cells.
func NewRow[T any](cells ...*Cell[T]) *Row[T] {
	return &Row[T]{cells: cells}
}

// ValueRow returns a row with one value cell per passed value.
func ValueRow[T any](values ...T) *Row[T] {
	cells := make([]*Cell[T], len(values))
	for i, v := range values {
		cells[i] = ValueCell(v)
	}
	return NewRow(cells...)
}

// Cells returns the cells of the row.
func (r *Row[T]) Cells() []*Cell[T] { return r.cells }

// Cell returns the cell at index or nil if index is out of bounds.
func (r *Row[T]) Cell(index int) *Cell[T] {
	if index < 0 || index >= len(r.cells) {
		return nil
	}
	return r.cells[index]
}

// SetCells replaces the cells of the row and returns the row.
func (r *Row[T]) SetCells(cells []*Cell[T]) *Row[T] {
	r.cells = cells
	return r
}

// Add appends cells and returns the row.
func (r *Row[T]) Add(cells ...*Cell[T]) *Row[T] {
	r.cells = append(r.cells, cells...)
	return r
}

func (r *Row[T]) NumCells() int { return len(r.cells) }

func (r *Row[T]) Accept(crawler Crawler[T]) *Row[T] {
	return crawler.CrawlRow(r)
}

func (r *Row[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlRow(r); result != nil {
		return result
	}
	return nil
}

func (r *Row[T]) Filterable() bool    { return true }
func (r *Row[T]) Data() []T           { return childData[T](r.cells) }
func (r *Row[T]) Children() []Node[T] { return asNodes[T](r.cells) }

// TitleRow is the header row of a table.
// It is never removed by filtering crawlers.
type TitleRow[T any] struct {
	visibility
	cells []*TitleCell[T]
}

// NewTitleRow returns a title row with the passed cells.
func NewTitleRow[T any](cells ...*TitleCell[T]) *TitleRow[T] {
	return &TitleRow[T]{cells: cells}
}

// ValueTitleRow returns a title row with one title cell per value.
func ValueTitleRow[T any](values ...T) *TitleRow[T] {
	cells := make([]*TitleCell[T], len(values))
	for i, v := range values {
		cells[i] = NewTitleCell(v)
	}
	return NewTitleRow(cells...)
}

func (r *TitleRow[T]) Cells() []*TitleCell[T] { return r.cells }

// Cell returns the title cell at index or nil if index is out of bounds.
func (r *TitleRow[T]) Cell(index int) *TitleCell[T] {
	if index < 0 || index >= len(r.cells) {
		return nil
	}
	return r.cells[index]
}

func (r *TitleRow[T]) SetCells(cells []*TitleCell[T]) *TitleRow[T] {
	r.cells = cells
	return r
}

func (r *TitleRow[T]) Add(cells ...*TitleCell[T]) *TitleRow[T] {
	r.cells = append(r.cells, cells...)
	return r
}

func (r *TitleRow[T]) NumCells() int { return len(r.cells) }

// Labels returns the string representation
// of the data of every title cell.
func (r *TitleRow[T]) Labels() []string {
	labels := make([]string, len(r.cells))
	for i, cell := range r.cells {
		labels[i] = cell.Label()
	}
	return labels
}

// ColumnIndex returns the index of the column with label or -1.
func (r *TitleRow[T]) ColumnIndex(label string) int {
	for i, cell := range r.cells {
		if cell.Label() == label {
			return i
		}
	}
	return -1
}

func (r *TitleRow[T]) Accept(crawler Crawler[T]) *TitleRow[T] {
	return crawler.CrawlTitleRow(r)
}

func (r *TitleRow[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlTitleRow(r); result != nil {
		return result
	}
	return nil
}

func (r *TitleRow[T]) Filterable() bool    { return false }
func (r *TitleRow[T]) Data() []T           { return childData[T](r.cells) }
func (r *TitleRow[T]) Children() []Node[T] { return asNodes[T](r.cells) }

func formatLabel[T any](values []T) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(values[0])
	}
	return fmt.Sprint(values)
}
