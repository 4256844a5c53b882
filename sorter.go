package retree

import "cmp"

// Sorter returns the passed pair in the desired order.
type Sorter[R any] func(a, b R) (first, second R)

// Invert returns a Sorter that returns the pair
// in the reverse order of s.
// A pair that s keeps in the passed order
// either way is also kept by the inverted Sorter.
func (s Sorter[R]) Invert() Sorter[R] {
	return func(a, b R) (R, R) {
		first, second := s(b, a)
		return second, first
	}
}

// LessSorter returns a Sorter that keeps the order of a and b
// unless less(b, a) is true.
func LessSorter[R any](less func(a, b R) bool) Sorter[R] {
	return func(a, b R) (R, R) {
		if less(b, a) {
			return b, a
		}
		return a, b
	}
}

// ColumnSorter returns a Sorter that orders rows by the
// data of the cell at col compared with less.
// Rows without that cell are sorted first.
func ColumnSorter[T any](col int, less func(a, b []T) bool) Sorter[*Row[T]] {
	return LessSorter(func(a, b *Row[T]) bool {
		ca, cb := a.Cell(col), b.Cell(col)
		switch {
		case ca == nil:
			return cb != nil
		case cb == nil:
			return false
		}
		return less(ca.Data(), cb.Data())
	})
}

// OrderedColumnSorter returns a ColumnSorter comparing
// the data of the cells lexicographically.
func OrderedColumnSorter[T cmp.Ordered](col int) Sorter[*Row[T]] {
	return ColumnSorter(col, func(a, b []T) bool {
		for i := range min(len(a), len(b)) {
			if c := cmp.Compare(a[i], b[i]); c != 0 {
				return c < 0
			}
		}
		return len(a) < len(b)
	})
}

var _ Crawler[any] = new(SortingCrawler[any])

// SortingCrawler reorders the direct rows of the crawled table
// with an exchange sort using Sorter for every adjacent pair.
// Nested tables are not sorted.
type SortingCrawler[T any] struct {
	BaseCrawler[T]

	Sorter Sorter[*Row[T]]
}

func NewSortingCrawler[T any](sorter Sorter[*Row[T]]) *SortingCrawler[T] {
	return &SortingCrawler[T]{Sorter: sorter}
}

func (s *SortingCrawler[T]) CrawlTable(t *Table[T]) *Table[T] {
	rows := t.rows
	for i := len(rows) - 1; i > 0; i-- {
		for j := 0; j < i; j++ {
			rows[j], rows[j+1] = s.Sorter(rows[j], rows[j+1])
		}
	}
	return t
}
