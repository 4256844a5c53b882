package htmltree

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/goccy/go-json"
)

var (
	_ RawFormatter[any] = RawFormatterFunc[any](nil)
	_ RawFormatter[any] = Raw[any]("")
	_ RawFormatter[any] = JSONFormatter[any]("")
	_ RawFormatter[any] = SpanClassFormatter[any]("")
)

// RawFormatter formats a value as HTML that is not escaped.
type RawFormatter[T any] interface {
	RawHTML(value T) (template.HTML, error)
}

type RawFormatterFunc[T any] func(value T) (template.HTML, error)

func (f RawFormatterFunc[T]) RawHTML(value T) (template.HTML, error) {
	return f(value)
}

// Raw returns itself for every value.
type Raw[T any] template.HTML

func (r Raw[T]) RawHTML(T) (template.HTML, error) {
	return template.HTML(r), nil
}

func escaped[T any](value T) string {
	return template.HTMLEscapeString(fmt.Sprint(value))
}

// PreFormatter returns a RawFormatter wrapping
// the escaped value in a <pre> element.
func PreFormatter[T any]() RawFormatterFunc[T] {
	return func(value T) (template.HTML, error) {
		return template.HTML("<pre>" + escaped(value) + "</pre>"), nil //#nosec G203
	}
}

// CodeFormatter returns a RawFormatter wrapping
// the escaped value in a <code> element.
func CodeFormatter[T any]() RawFormatterFunc[T] {
	return func(value T) (template.HTML, error) {
		return template.HTML("<code>" + escaped(value) + "</code>"), nil //#nosec G203
	}
}

// AnchorFormatter returns a RawFormatter returning an HTML anchor
// element with the escaped value as id and inner text.
func AnchorFormatter[T any]() RawFormatterFunc[T] {
	return func(value T) (template.HTML, error) {
		return template.HTML(fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", escaped(value))), nil //#nosec G203
	}
}

// JSONFormatter formats JSON values indented with
// the underlying string within a <pre> element.
type JSONFormatter[T any] string

func (indent JSONFormatter[T]) RawHTML(value T) (template.HTML, error) {
	var src bytes.Buffer
	_, err := fmt.Fprintf(&src, "%s", any(value))
	if err != nil {
		return "", err
	}
	var indented bytes.Buffer
	err = json.Indent(&indented, src.Bytes(), "", string(indent))
	if err != nil {
		return "", err
	}
	return template.HTML("<pre>" + template.HTMLEscapeString(indented.String()) + "</pre>"), nil //#nosec G203
}

// SpanClassFormatter formats the value within an HTML span element
// with the class of the underlying string value.
type SpanClassFormatter[T any] string

func (class SpanClassFormatter[T]) RawHTML(value T) (template.HTML, error) {
	return template.HTML(fmt.Sprintf("<span class='%s'>%s</span>", class, escaped(value))), nil //#nosec G203
}
