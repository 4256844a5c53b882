// Package htmltree writes table trees as HTML.
//
// Values are HTML escaped unless they are HTML data leaves
// or formatted by a RawFormatter. Nested tables are rendered
// as tables within their cell and controls are rendered
// by a configurable ControlRenderer.
//
// Example usage:
//
//	err := htmltree.NewWriter[string]().
//	    WithHeaderRow(true).
//	    WithTableClass("aliases").
//	    Write(ctx, os.Stdout, table, "Officials")
package htmltree

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"maps"
	"strings"

	retree "github.com/domonda/go-retree"
)

// ControlRenderer renders a control as HTML.
type ControlRenderer func(control retree.Control) template.HTML

// ButtonControlRenderer renders a control as disabled button
// because the HTML output has no connection to the callbacks of the control.
func ButtonControlRenderer(control retree.Control) template.HTML {
	return template.HTML("<button disabled>" + template.HTMLEscapeString(control.Label()) + "</button>") //#nosec G203
}

// Writer writes a retree.Table as HTML table element.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer[T any] struct {
	tableClass       string
	nestedClass      string
	formatter        retree.Formatter[T]
	columnFormatters map[int]RawFormatter[T]
	controlRenderer  ControlRenderer
	emptyValue       template.HTML
	headerRow        bool
	skipHidden       bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
	nestedTemplate   *template.Template
}

// NewWriter creates a new HTML table writer for tables with values of type T.
//
// Default configuration:
//   - fmt.Sprint formatting of values
//   - controls rendered as disabled buttons
//   - hidden rows are skipped
//   - no header row
func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		formatter:        retree.SprintFormatter[T]{},
		columnFormatters: make(map[int]RawFormatter[T]),
		controlRenderer:  ButtonControlRenderer,
		skipHidden:       true,
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
		nestedTemplate:   NestedTemplate,
	}
}

// Write writes table as HTML to dest.
// The caption strings are joined with spaces.
func (w *Writer[T]) Write(ctx context.Context, dest io.Writer, table *retree.Table[T], caption ...string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	templData := &RowTemplateContext{
		TemplateContext: TemplateContext{
			TableClass: w.tableClass,
			Caption:    strings.Join(caption, " "),
		},
	}
	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow && table.Title() != nil {
		templData.IsHeaderRow = true
		templData.RawCells, err = w.titleCells(table.Title())
		if err != nil {
			return err
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for _, row := range table.Rows() {
		if w.skipHidden && row.Hidden() {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		templData.Hidden = row.Hidden()
		templData.RawCells = make([]template.HTML, row.NumCells())
		for col, cell := range row.Cells() {
			templData.RawCells[col], err = w.cellHTML(col, cell)
			if err != nil {
				return err
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer[T]) titleCells(title *retree.TitleRow[T]) ([]template.HTML, error) {
	cells := make([]template.HTML, title.NumCells())
	for i, cell := range title.Cells() {
		if cell.Content() == nil {
			continue
		}
		html, err := w.dataHTML(-1, cell.Content())
		if err != nil {
			return nil, err
		}
		cells[i] = html
	}
	return cells, nil
}

func (w *Writer[T]) cellHTML(col int, cell *retree.Cell[T]) (template.HTML, error) {
	contents := cell.Contents()
	if len(contents) == 0 {
		return w.emptyValue, nil
	}
	parts := make([]string, 0, len(contents))
	for _, d := range contents {
		html, err := w.dataHTML(col, d)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(html))
	}
	return template.HTML(strings.Join(parts, " ")), nil //#nosec G203
}

// dataHTML renders a data leaf, col is -1 for title cells.
func (w *Writer[T]) dataHTML(col int, d *retree.Data[T]) (template.HTML, error) {
	switch d.Kind() {
	case retree.KindHTML:
		str, err := w.formatter.Format(d.Value())
		return template.HTML(str), err //#nosec G203

	case retree.KindControl:
		if d.Control() == nil {
			return w.emptyValue, nil
		}
		return w.controlRenderer(d.Control()), nil

	case retree.KindTable:
		if d.Table() == nil {
			return w.emptyValue, nil
		}
		return w.nestedHTML(d.Table())
	}

	if formatter, ok := w.columnFormatters[col]; ok && col >= 0 {
		return formatter.RawHTML(d.Value())
	}
	str, err := w.formatter.Format(d.Value())
	if err != nil {
		return "", err
	}
	return template.HTML(template.HTMLEscapeString(str)), nil //#nosec G203
}

func (w *Writer[T]) nestedHTML(table *retree.Table[T]) (template.HTML, error) {
	var (
		templData = NestedTemplateContext{TableClass: w.nestedClass}
		err       error
	)
	if table.Title() != nil {
		templData.Header, err = w.titleCells(table.Title())
		if err != nil {
			return "", err
		}
	}
	for _, row := range table.Rows() {
		if w.skipHidden && row.Hidden() {
			continue
		}
		cells := make([]template.HTML, row.NumCells())
		for i, cell := range row.Cells() {
			// Column formatters only apply to the outer table
			cells[i], err = w.cellHTML(-1, cell)
			if err != nil {
				return "", err
			}
		}
		templData.Rows = append(templData.Rows, cells)
	}
	var buf bytes.Buffer
	if err := w.nestedTemplate.Execute(&buf, templData); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //#nosec G203
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// WithHeaderRow returns a new writer that renders the title row
// using <th> elements.
func (w *Writer[T]) WithHeaderRow(headerRow bool) *Writer[T] {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithTableClass returns a new writer with the specified CSS class for the table element.
func (w *Writer[T]) WithTableClass(tableClass string) *Writer[T] {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithNestedTableClass returns a new writer with the specified
// CSS class for the table elements of nested tables.
func (w *Writer[T]) WithNestedTableClass(nestedClass string) *Writer[T] {
	mod := w.clone()
	mod.nestedClass = nestedClass
	return mod
}

// WithSkipHidden returns a new writer that skips hidden rows
// or renders them with the hidden attribute.
func (w *Writer[T]) WithSkipHidden(skipHidden bool) *Writer[T] {
	mod := w.clone()
	mod.skipHidden = skipHidden
	return mod
}

// WithFormatter returns a new writer using formatter for all values.
// The result is HTML escaped except for HTML data leaves.
func (w *Writer[T]) WithFormatter(formatter retree.Formatter[T]) *Writer[T] {
	mod := w.clone()
	mod.formatter = formatter
	return mod
}

// WithColumnFormatter returns a new writer with the formatter registered for the specified column.
// Column formatters take precedence over the value formatter.
// If nil is passed as formatter, any previously registered formatter for this column is removed.
func (w *Writer[T]) WithColumnFormatter(columnIndex int, formatter RawFormatter[T]) *Writer[T] {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithControlRenderer returns a new writer rendering controls with renderer.
func (w *Writer[T]) WithControlRenderer(renderer ControlRenderer) *Writer[T] {
	mod := w.clone()
	mod.controlRenderer = renderer
	return mod
}

// WithEmptyValue returns a new writer with the specified HTML
// to use for cells without data.
func (w *Writer[T]) WithEmptyValue(emptyValue template.HTML) *Writer[T] {
	mod := w.clone()
	mod.emptyValue = emptyValue
	return mod
}

// WithTemplate returns a new writer with custom templates for rendering the HTML table.
//
// The templates receive TemplateContext and RowTemplateContext respectively.
// See templates.go for the default templates and context structures.
func (w *Writer[T]) WithTemplate(tableTemplate, rowTemplate, footerTemplate *template.Template) *Writer[T] {
	mod := w.clone()
	mod.headerTemplate = tableTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TableClass returns the CSS class configured for the table element.
func (w *Writer[T]) TableClass() string {
	return w.tableClass
}

// EmptyValue returns the HTML rendered for cells without data.
func (w *Writer[T]) EmptyValue() template.HTML {
	return w.emptyValue
}
