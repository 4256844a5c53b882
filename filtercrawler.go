package retree

var _ Crawler[any] = new(FilterCrawler[any])

// FilterCrawler returns a pruned copy of the crawled tree
// that only contains the nodes with values passing Keep.
//
// A cell is kept if at least one of its data leaves passes or is a
// nested table that keeps at least one row. A row is kept if at
// least one of its cells is kept. A table is kept if at least one
// filterable row is kept. Title rows are always kept.
// The crawled tree is not modified.
type FilterCrawler[T any] struct {
	BaseCrawler[T]

	Keep func(value T) bool
}

// NewFilterCrawler returns a FilterCrawler for keep.
func NewFilterCrawler[T any](keep func(value T) bool) *FilterCrawler[T] {
	return &FilterCrawler[T]{Keep: keep}
}

// Matches returns if the table keeps at least one row.
func (f *FilterCrawler[T]) Matches(t *Table[T]) bool {
	return f.CrawlTable(t) != nil
}

func (f *FilterCrawler[T]) CrawlTable(t *Table[T]) *Table[T] {
	var (
		rows       []*Row[T]
		filterable bool
	)
	for _, row := range t.rows {
		kept := row.Accept(f)
		if kept == nil {
			continue
		}
		rows = append(rows, kept)
		filterable = filterable || kept.Filterable()
	}
	if !filterable {
		return nil
	}
	title := t.title
	if title != nil {
		if kept := title.Accept(f); kept != nil {
			title = kept
		}
	}
	// Cells of kept rows may have been pruned,
	// so the rows are not checked against the title
	result := &Table[T]{title: title, rows: rows}
	result.hidden = t.hidden
	return result
}

func (f *FilterCrawler[T]) CrawlRow(r *Row[T]) *Row[T] {
	var cells []*Cell[T]
	for _, cell := range r.cells {
		if kept := cell.Accept(f); kept != nil {
			cells = append(cells, kept)
		}
	}
	if len(cells) == 0 {
		return nil
	}
	result := NewRow(cells...)
	result.hidden = r.hidden
	return result
}

func (f *FilterCrawler[T]) CrawlCell(c *Cell[T]) *Cell[T] {
	var contents []*Data[T]
	for _, d := range c.contents {
		if kept := d.Accept(f); kept != nil {
			contents = append(contents, kept)
		}
	}
	if len(contents) == 0 {
		return nil
	}
	result := NewCell(contents...)
	result.hidden = c.hidden
	return result
}

func (f *FilterCrawler[T]) CrawlData(d *Data[T]) *Data[T] {
	switch d.kind {
	case KindValue, KindHTML:
		if f.Keep(d.value) {
			return d
		}
	case KindTable:
		if d.table == nil {
			return nil
		}
		if kept := d.table.Accept(f); kept != nil {
			return TableData(kept)
		}
	}
	return nil
}
