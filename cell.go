package retree

var (
	_ Node[any] = new(Cell[any])
	_ Node[any] = new(TitleCell[any])
)

// Cell holds an ordered slice of Data leaves.
// Most cells hold exactly one Data leaf.
type Cell[T any] struct {
	visibility
	contents []*Data[T]
}

// NewCell returns a cell with the passed data leaves.
func NewCell[T any](contents ...*Data[T]) *Cell[T] {
	return &Cell[T]{contents: contents}
}

// ValueCell returns a cell with one KindValue leaf per value.
func ValueCell[T any](values ...T) *Cell[T] {
	contents := make([]*Data[T], len(values))
	for i, v := range values {
		contents[i] = ValueData(v)
	}
	return NewCell(contents...)
}

// Contents returns the data leaves of the cell.
func (c *Cell[T]) Contents() []*Data[T] { return c.contents }

func (c *Cell[T]) SetContents(contents []*Data[T]) *Cell[T] {
	c.contents = contents
	return c
}

func (c *Cell[T]) Add(contents ...*Data[T]) *Cell[T] {
	c.contents = append(c.contents, contents...)
	return c
}

func (c *Cell[T]) Accept(crawler Crawler[T]) *Cell[T] {
	return crawler.CrawlCell(c)
}

func (c *Cell[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlCell(c); result != nil {
		return result
	}
	return nil
}

func (c *Cell[T]) Filterable() bool    { return true }
func (c *Cell[T]) Data() []T           { return childData[T](c.contents) }
func (c *Cell[T]) Children() []Node[T] { return asNodes[T](c.contents) }

// TitleCell is a cell of a TitleRow.
// It holds exactly one Data leaf and an optional
// Sorter for the rows of the column.
type TitleCell[T any] struct {
	visibility
	content *Data[T]
	sorter  Sorter[*Row[T]]
}

// NewTitleCell returns a title cell with a KindValue leaf.
func NewTitleCell[T any](value T) *TitleCell[T] {
	return &TitleCell[T]{content: ValueData(value)}
}

// NewTitleCellData returns a title cell with the passed leaf.
func NewTitleCellData[T any](content *Data[T]) *TitleCell[T] {
	return &TitleCell[T]{content: content}
}

func (c *TitleCell[T]) Content() *Data[T] { return c.content }

func (c *TitleCell[T]) SetContent(content *Data[T]) *TitleCell[T] {
	c.content = content
	return c
}

// Sorter returns the sorter of the column or nil.
func (c *TitleCell[T]) Sorter() Sorter[*Row[T]] { return c.sorter }

// WithSorter sets the sorter of the column and returns the cell.
func (c *TitleCell[T]) WithSorter(sorter Sorter[*Row[T]]) *TitleCell[T] {
	c.sorter = sorter
	return c
}

// Label returns the string representation of the cell data.
func (c *TitleCell[T]) Label() string {
	return formatLabel(c.Data())
}

func (c *TitleCell[T]) Accept(crawler Crawler[T]) *TitleCell[T] {
	return crawler.CrawlTitleCell(c)
}

func (c *TitleCell[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlTitleCell(c); result != nil {
		return result
	}
	return nil
}

func (c *TitleCell[T]) Filterable() bool { return false }

func (c *TitleCell[T]) Data() []T {
	if c.content == nil {
		return nil
	}
	return c.content.Data()
}

func (c *TitleCell[T]) Children() []Node[T] {
	if c.content == nil {
		return []Node[T]{}
	}
	return []Node[T]{c.content}
}
