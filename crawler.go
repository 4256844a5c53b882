package retree

// Crawler visits the nodes of a table tree.
//
// Every method receives a live node and returns either the
// same node, a replacement node, or nil to prune the node.
// Crawlers that need to descend into the tree do so by passing
// themselves to the children of the visited node.
type Crawler[T any] interface {
	CrawlTable(*Table[T]) *Table[T]
	CrawlTitleRow(*TitleRow[T]) *TitleRow[T]
	CrawlRow(*Row[T]) *Row[T]
	CrawlTitleCell(*TitleCell[T]) *TitleCell[T]
	CrawlCell(*Cell[T]) *Cell[T]
	CrawlData(*Data[T]) *Data[T]
}

var _ Crawler[any] = BaseCrawler[any]{}

// BaseCrawler implements every Crawler method by returning
// the passed node unchanged.
// Embed it to implement only the methods a crawler needs.
type BaseCrawler[T any] struct{}

func (BaseCrawler[T]) CrawlTable(t *Table[T]) *Table[T]             { return t }
func (BaseCrawler[T]) CrawlTitleRow(r *TitleRow[T]) *TitleRow[T]    { return r }
func (BaseCrawler[T]) CrawlRow(r *Row[T]) *Row[T]                   { return r }
func (BaseCrawler[T]) CrawlTitleCell(c *TitleCell[T]) *TitleCell[T] { return c }
func (BaseCrawler[T]) CrawlCell(c *Cell[T]) *Cell[T]                { return c }
func (BaseCrawler[T]) CrawlData(d *Data[T]) *Data[T]                { return d }
