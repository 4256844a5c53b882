package retree

import (
	"fmt"
	"slices"
)

var _ Crawler[any] = new(ActionCrawler[any])

// Action is performed by an ActionCrawler on a node.
type Action[T any] func(crawler *ActionCrawler[T], node Node[T])

// ActionCrawler performs an Action on the node at a path
// of child indices, or on the crawled node and all its
// descendants if no path is given.
//
// The path is consumed from its end, so the last index selects
// a row of the crawled table, the one before a cell of that row,
// and so on. Indices outside of the children of a node and paths
// longer than the depth of the tree are programming errors
// and cause a panic.
type ActionCrawler[T any] struct {
	BaseCrawler[T]

	// CrawlChildren enables performing the action on all
	// descendants of the crawled node if no path was given.
	// Defaults to true.
	CrawlChildren bool

	action   Action[T]
	path     []int
	explicit bool
}

// NewActionCrawler returns an ActionCrawler for action.
// It panics with ErrNilAction if action is nil.
func NewActionCrawler[T any](action Action[T], path ...int) *ActionCrawler[T] {
	if action == nil {
		panic(ErrNilAction)
	}
	return &ActionCrawler[T]{
		CrawlChildren: true,
		action:        action,
		path:          slices.Clone(path),
		explicit:      len(path) > 0,
	}
}

// RemainingPath returns the part of the path that
// has not been consumed yet.
func (c *ActionCrawler[T]) RemainingPath() []int { return c.path }

func (c *ActionCrawler[T]) CrawlTable(t *Table[T]) *Table[T] {
	c.visit(t, t.Children(), t.title)
	return t
}

func (c *ActionCrawler[T]) CrawlTitleRow(r *TitleRow[T]) *TitleRow[T] {
	c.visit(r, r.Children(), nil)
	return r
}

func (c *ActionCrawler[T]) CrawlRow(r *Row[T]) *Row[T] {
	c.visit(r, r.Children(), nil)
	return r
}

func (c *ActionCrawler[T]) CrawlTitleCell(cell *TitleCell[T]) *TitleCell[T] {
	c.visit(cell, cell.Children(), nil)
	return cell
}

func (c *ActionCrawler[T]) CrawlCell(cell *Cell[T]) *Cell[T] {
	c.visit(cell, cell.Children(), nil)
	return cell
}

func (c *ActionCrawler[T]) CrawlData(d *Data[T]) *Data[T] {
	c.visit(d, d.Children(), nil)
	return d
}

func (c *ActionCrawler[T]) visit(node Node[T], children []Node[T], title *TitleRow[T]) {
	if len(c.path) == 0 {
		c.action(c, node)
		if !c.CrawlChildren || c.explicit {
			return
		}
		if title != nil {
			title.AcceptCrawler(c)
		}
		for _, child := range children {
			child.AcceptCrawler(c)
		}
		return
	}

	if children == nil {
		panic(fmt.Errorf("%w: %T has no children for remaining path %v", ErrNoChildComponents, node, c.path))
	}
	last := len(c.path) - 1
	index := c.path[last]
	if index < 0 || index >= len(children) {
		panic(fmt.Errorf("%w: index %d of %T not in [0..%d)", ErrIndexOutOfBounds, index, node, len(children)))
	}
	c.path = c.path[:last]
	children[index].AcceptCrawler(c)
}
