package retree

// Verdict is the result of a column predicate.
type Verdict int8

const (
	// Abstain means the predicate has no opinion,
	// for example because no filter value is set.
	Abstain Verdict = iota
	Pass
	Fail
)

// VerdictOf returns Pass for true and Fail for false.
func VerdictOf(pass bool) Verdict {
	if pass {
		return Pass
	}
	return Fail
}

func (v Verdict) String() string {
	switch v {
	case Abstain:
		return "Abstain"
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	}
	return "Verdict(?)"
}

// ColumnPredicate judges the values of one cell.
type ColumnPredicate[T any] func(values []T) Verdict

var _ Crawler[any] = new(ColumnFilterCrawler[any])

// ColumnFilterCrawler shows every row of the crawled table
// for which no configured column predicate returns Fail
// and hides all other rows.
// Rows are not pruned, so crawling again with
// other predicates reverses the result.
type ColumnFilterCrawler[T any] struct {
	BaseCrawler[T]

	// Predicates by column index
	Predicates map[int]ColumnPredicate[T]
}

func NewColumnFilterCrawler[T any](predicates map[int]ColumnPredicate[T]) *ColumnFilterCrawler[T] {
	return &ColumnFilterCrawler[T]{Predicates: predicates}
}

func (f *ColumnFilterCrawler[T]) CrawlTable(t *Table[T]) *Table[T] {
	for _, row := range t.rows {
		row.Accept(f)
	}
	return t
}

func (f *ColumnFilterCrawler[T]) CrawlRow(r *Row[T]) *Row[T] {
	if f.shows(r) {
		r.Show()
	} else {
		r.Hide()
	}
	return r
}

func (f *ColumnFilterCrawler[T]) shows(r *Row[T]) bool {
	for col, predicate := range f.Predicates {
		if predicate == nil {
			continue
		}
		var values []T
		if cell := r.Cell(col); cell != nil {
			values = cell.Data()
		}
		if predicate(values) == Fail {
			return false
		}
	}
	return true
}
