// Package retree implements a generic recursive table model.
//
// A Table consists of an optional TitleRow and Rows,
// rows consist of Cells and every Cell holds Data leaves.
// A Data leaf is either a plain value, a raw HTML value,
// an interactive Control or a nested Table.
//
// Traversal and transformation of a table tree is done by
// Crawler implementations that visit the nodes of the tree
// and return either the visited node, a replacement node,
// or nil to prune the node from the result.
package retree

import "errors"

var (
	// ErrColumnMismatch is the error wrapped by panics caused by rows
	// that have a different number of cells than the title row.
	ErrColumnMismatch = errors.New("title mismatch")

	// ErrIndexOutOfBounds is the error wrapped by panics caused by
	// an ActionCrawler path index outside of the children of a node.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrNoChildComponents is the error wrapped by panics caused by
	// an ActionCrawler path that is longer than the depth of the tree.
	ErrNoChildComponents = errors.New("no child components")

	// ErrNilAction is the panic value of NewActionCrawler
	// when called with a nil action.
	ErrNilAction = errors.New("ActionCrawler needs an action")
)

// Node is implemented by every element of a table tree.
type Node[T any] interface {
	// Hidden returns if the node should not be displayed.
	Hidden() bool
	Hide()
	Show()

	// Filterable returns false for title nodes
	// that are kept by filters regardless of their data.
	Filterable() bool

	// Data returns the flattened leaf values of the node
	// in depth first order.
	Data() []T

	// Children returns the child nodes in display order
	// or nil for leaf nodes.
	Children() []Node[T]

	// AcceptCrawler passes the node to the type specific
	// method of the crawler and returns its result.
	// A nil result means the crawler pruned the node.
	AcceptCrawler(crawler Crawler[T]) Node[T]
}

// visibility is embedded by all node types
// to implement Hidden, Hide and Show.
type visibility struct {
	hidden bool
}

func (v *visibility) Hidden() bool { return v.hidden }

func (v *visibility) Hide() { v.hidden = true }

func (v *visibility) Show() { v.hidden = false }

func childData[T any, N Node[T]](children []N) []T {
	var data []T
	for _, child := range children {
		data = append(data, child.Data()...)
	}
	return data
}

func asNodes[T any, N Node[T]](children []N) []Node[T] {
	nodes := make([]Node[T], len(children))
	for i, child := range children {
		nodes[i] = child
	}
	return nodes
}
