package retree

import (
	"reflect"
	"strings"
	"unicode"
)

// DefaultStructFieldNaming uses the "col" tag as title,
// ignores fields titled "-" and uses SpacePascalCase
// for untagged fields.
var DefaultStructFieldNaming = StructFieldNaming{
	Tag:      "col",
	Ignore:   "-",
	Untagged: SpacePascalCase,
}

// StructFieldNaming maps struct fields to column titles.
//
// A nil *StructFieldNaming titles every exported
// field with its field name.
type StructFieldNaming struct {
	// Tag is the field tag holding the title
	Tag string
	// Ignore is the title of fields that are not columns
	Ignore string
	// Untagged returns the title of fields without Tag.
	// If nil, the field name is used.
	Untagged func(fieldName string) string
}

// Title returns the column title of field.
func (n *StructFieldNaming) Title(field reflect.StructField) string {
	if n == nil {
		return field.Name
	}
	if n.Tag != "" {
		if title, _, _ := strings.Cut(field.Tag.Get(n.Tag), ","); title != "" {
			return title
		}
	}
	if n.Untagged == nil {
		return field.Name
	}
	return n.Untagged(field.Name)
}

// Titles returns the column titles of the exported fields of
// structType, which may also be a pointer to a struct type.
// The fields of embedded structs are inlined.
func (n *StructFieldNaming) Titles(structType reflect.Type) Texts {
	titles := Texts{}
	for _, field := range columnFields(structType) {
		title := n.Title(field)
		if n != nil && n.Ignore != "" && title == n.Ignore {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

func columnFields(t reflect.Type) (fields []reflect.StructField) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous && isStruct(field.Type) {
			// promoted fields follow
			continue
		}
		if field.IsExported() {
			fields = append(fields, field)
		}
	}
	return fields
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// StructTitles returns the column titles of the struct type S
// using DefaultStructFieldNaming.
// The result is usable as title of a table of S rows.
func StructTitles[S any]() Texts {
	return DefaultStructFieldNaming.Titles(reflect.TypeFor[S]())
}

// SpacePascalCase splits PascalCase or snake_case
// names into words separated by a space.
// Runs of upper case characters stay one word.
func SpacePascalCase(name string) string {
	var (
		words     []string
		word      []rune
		prevUpper bool
	)
	flush := func() {
		if len(word) > 0 {
			words = append(words, string(word))
			word = word[:0]
		}
	}
	for _, r := range name {
		upper := unicode.IsUpper(r)
		switch {
		case r == '_' || unicode.IsSpace(r):
			flush()
		case upper && !prevUpper:
			flush()
			word = append(word, r)
		default:
			word = append(word, r)
		}
		prevUpper = upper
	}
	flush()
	return strings.Join(words, " ")
}
