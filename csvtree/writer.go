package csvtree

import (
	"bytes"
	"context"
	"io"
	"maps"
	"strings"

	"github.com/domonda/go-types/charset"
	"github.com/mattn/go-runewidth"

	retree "github.com/domonda/go-retree"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// PassthroughEncoder returns an Encoder that returns the passed data unchanged.
func PassthroughEncoder() Encoder {
	return EncoderFunc(func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// CharsetEncoder returns an Encoder converting UTF-8
// to the named charset encoding.
func CharsetEncoder(name string) (Encoder, error) {
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes a retree.Table as CSV.
//
// Writer is immutable after creation, all With* methods
// return a new Writer with the modified configuration.
type Writer[T any] struct {
	formatter        retree.Formatter[T]
	columnFormatters map[int]retree.Formatter[string]
	padding          Padding
	headerRow        bool
	skipHidden       bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		formatter:        retree.SprintFormatter[T]{},
		columnFormatters: make(map[int]retree.Formatter[string]),
		padding:          NoPadding,
		headerRow:        false,
		skipHidden:       true,
		quoteAllFields:   false,
		quoteEmptyFields: false,
		escapeQuotes:     `""`,
		delimiter:        ';',
		newLine:          "\r\n",
		encoder:          nil,
	}
}

// NewFormatWriter returns a Writer for the separator,
// newline and encoding of format.
func NewFormatWriter[T any](format *Format) (*Writer[T], error) {
	err := format.Validate()
	if err != nil {
		return nil, err
	}
	w := NewWriter[T]()
	w.delimiter = rune(format.Separator[0])
	w.newLine = format.Newline
	if !format.IsUTF8() {
		w.encoder, err = CharsetEncoder(format.Encoding)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// Write writes table to dest formatted as CSV.
func (w *Writer[T]) Write(ctx context.Context, dest io.Writer, table *retree.Table[T]) error {
	rows, err := w.TableStrings(ctx, table)
	if err != nil {
		return err
	}

	var colWidths []int
	if w.padding != NoPadding {
		colWidths = retree.StringColumnWidths(rows, -1)
	}

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for _, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.writeRow(rowBuf, row, colWidths)
		_, err = rowBuf.WriteString(w.newLine)
		if err != nil {
			return err
		}

		if w.encoder != nil {
			// Read, encode, and write back the buffered row
			encoded, err := w.encoder.Bytes(rowBuf.Bytes())
			if err != nil {
				return err
			}
			rowBuf.Reset()
			rowBuf.Write(encoded)
		}

		_, err = dest.Write(rowBuf.Bytes())
		if err != nil {
			return err
		}
		rowBuf.Reset()
	}
	return nil
}

func (w *Writer[T]) writeRow(rowBuf *bytes.Buffer, row []string, colWidths []int) {
	for col, str := range row {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		if colWidths == nil {
			rowBuf.WriteString(str)
			continue
		}
		var (
			padTotal = colWidths[col] - runewidth.StringWidth(str)
			padLeft  = 0
			padRight = 0
		)
		switch w.padding {
		case AlignLeft:
			padRight = padTotal
		case AlignRight:
			padLeft = padTotal
		case AlignCenter:
			padLeft = padTotal / 2
			padRight = (padTotal + 1) / 2
		}
		rowBuf.WriteString(strings.Repeat(" ", padLeft))
		rowBuf.WriteString(str)
		rowBuf.WriteString(strings.Repeat(" ", padRight))
	}
}

// TableStrings returns the escaped CSV fields of table,
// including the header row if configured.
func (w *Writer[T]) TableStrings(ctx context.Context, table *retree.Table[T]) ([][]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var options []retree.Option
	if w.headerRow {
		options = append(options, retree.OptionAddHeaderRow)
	}
	if w.skipHidden {
		options = append(options, retree.OptionSkipHidden)
	}
	rows, err := retree.Strings(table, w.formatter, options...)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		isHeader := r == 0 && w.headerRow && table.Title() != nil
		for col, str := range row {
			if formatter, ok := w.columnFormatters[col]; ok && !isHeader {
				str, err = formatter.Format(str)
				if err != nil {
					return nil, err
				}
			}
			row[col] = w.escapeString(str)
		}
	}
	return rows, nil
}

func (w *Writer[T]) escapeString(str string) string {
	// Just in case remove all \r,
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsRune(str, '\n'):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return strings.ReplaceAll(str, `"`, w.escapeQuotes)
}

func (w *Writer[T]) WithHeaderRow(headerRow bool) *Writer[T] {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer[T]) WithSkipHidden(skipHidden bool) *Writer[T] {
	mod := w.clone()
	mod.skipHidden = skipHidden
	return mod
}

func (w *Writer[T]) WithFormatter(formatter retree.Formatter[T]) *Writer[T] {
	mod := w.clone()
	mod.formatter = formatter
	return mod
}

// WithColumnFormatter returns a new writer with the passed formatter registered for columnIndex.
// The formatter receives the flattened cell string.
// If nil is passed as formatter, then a previous registered column formatter is removed.
func (w *Writer[T]) WithColumnFormatter(columnIndex int, formatter retree.Formatter[string]) *Writer[T] {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

func (w *Writer[T]) WithPadding(padding Padding) *Writer[T] {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer[T]) WithQuoteAllFields(quoteAllFields bool) *Writer[T] {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer[T]) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer[T] {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer[T]) WithEscapeQuotes(escapeQuotes string) *Writer[T] {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer[T]) WithDelimiter(delimiter rune) *Writer[T] {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer[T]) WithNewLine(newLine string) *Writer[T] {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer[T]) WithEncoder(encoder Encoder) *Writer[T] {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer[T]) Delimiter() rune {
	return w.delimiter
}

func (w *Writer[T]) NewLine() string {
	return w.newLine
}

func (w *Writer[T]) Encoder() Encoder {
	return w.encoder
}
