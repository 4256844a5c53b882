package retree

var _ Node[any] = new(Data[any])

// DataKind tags the variant of a Data leaf.
type DataKind int

const (
	// KindValue is a plain value that has to be escaped for display.
	KindValue DataKind = iota
	// KindHTML is a value that is rendered as raw HTML.
	KindHTML
	// KindControl is an interactive Control of an external view layer.
	KindControl
	// KindTable is a nested Table.
	KindTable
)

func (k DataKind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindHTML:
		return "HTML"
	case KindControl:
		return "Control"
	case KindTable:
		return "Table"
	}
	return "DataKind(?)"
}

// Data is the leaf node of a table tree.
// Which of the fields is used depends on Kind.
type Data[T any] struct {
	visibility
	kind    DataKind
	value   T
	control Control
	table   *Table[T]
}

func ValueData[T any](value T) *Data[T] {
	return &Data[T]{kind: KindValue, value: value}
}

func HTMLData[T any](value T) *Data[T] {
	return &Data[T]{kind: KindHTML, value: value}
}

func ControlData[T any](control Control) *Data[T] {
	return &Data[T]{kind: KindControl, control: control}
}

func TableData[T any](table *Table[T]) *Data[T] {
	return &Data[T]{kind: KindTable, table: table}
}

func (d *Data[T]) Kind() DataKind { return d.kind }

// Value returns the value of a KindValue or KindHTML leaf.
func (d *Data[T]) Value() T { return d.value }

// Control returns the control of a KindControl leaf or nil.
func (d *Data[T]) Control() Control { return d.control }

// Table returns the nested table of a KindTable leaf or nil.
func (d *Data[T]) Table() *Table[T] { return d.table }

func (d *Data[T]) Accept(crawler Crawler[T]) *Data[T] {
	return crawler.CrawlData(d)
}

func (d *Data[T]) AcceptCrawler(crawler Crawler[T]) Node[T] {
	if result := crawler.CrawlData(d); result != nil {
		return result
	}
	return nil
}

func (d *Data[T]) Filterable() bool { return true }

// Data returns the value of KindValue and KindHTML leafs,
// the data of a nested table, or nil for controls.
func (d *Data[T]) Data() []T {
	switch d.kind {
	case KindValue, KindHTML:
		return []T{d.value}
	case KindTable:
		if d.table != nil {
			return d.table.Data()
		}
	}
	return nil
}

// Children returns the rows of a nested table
// or nil because every other Data is a leaf.
func (d *Data[T]) Children() []Node[T] {
	if d.kind == KindTable && d.table != nil {
		return d.table.Children()
	}
	return nil
}
