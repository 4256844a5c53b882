package retree

import (
	"slices"
	"strings"
)

// ToDisplayData is implemented by entities that
// can be rendered as the columns of a table row.
type ToDisplayData interface {
	ToDisplayData() []Display
}

// DataField is one column of a DataObject.
type DataField struct {
	// Key is the title string of the column
	Key string
	// Title is the value displayed in the title cell of the column
	Title string
	// Values of the column, one per row
	Values []string
}

// DataObject is an ordered mapping from title strings
// to title values and column values.
// It is rendered as a nested table and used as
// structural metadata of table rows.
type DataObject []DataField

// Get returns the field with key.
func (o DataObject) Get(key string) (DataField, bool) {
	for _, f := range o {
		if f.Key == key {
			return f, true
		}
	}
	return DataField{}, false
}

func (o DataObject) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// AllValues returns the values of all fields in order.
func (o DataObject) AllValues() []string {
	var values []string
	for _, f := range o {
		values = append(values, f.Values...)
	}
	return values
}

// NumRows returns the length of the longest field.
func (o DataObject) NumRows() int {
	n := 0
	for _, f := range o {
		n = max(n, len(f.Values))
	}
	return n
}

// Clone returns a deep copy.
func (o DataObject) Clone() DataObject {
	if o == nil {
		return nil
	}
	c := make(DataObject, len(o))
	for i, f := range o {
		c[i] = DataField{Key: f.Key, Title: f.Title, Values: slices.Clone(f.Values)}
	}
	return c
}

// Equal returns true if both objects have the same fields
// in the same order. A nil and an empty Values slice are equal.
func (o DataObject) Equal(other DataObject) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i].Key != other[i].Key || o[i].Title != other[i].Title || !slices.Equal(o[i].Values, other[i].Values) {
			return false
		}
	}
	return true
}

// Table returns the object as table with one title cell per field
// and one row per index of the field values.
// Missing values of shorter fields are empty strings.
func (o DataObject) Table() *Table[string] {
	title := NewTitleRow[string]()
	for _, f := range o {
		title.Add(NewTitleCell(f.Title))
	}
	table := NewTable(title)
	for row := range o.NumRows() {
		values := make([]string, len(o))
		for col, f := range o {
			if row < len(f.Values) {
				values[col] = f.Values[row]
			}
		}
		table.Add(ValueRow(values...))
	}
	return table
}

func (o DataObject) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Title)
		if len(f.Values) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(f.Values, ", "))
			b.WriteByte(']')
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Display is either a text or a DataObject
// column value returned by ToDisplayData.
type Display struct {
	text     string
	object   DataObject
	isObject bool
}

func TextDisplay(text string) Display {
	return Display{text: text}
}

func ObjectDisplay(object DataObject) Display {
	return Display{object: object, isObject: true}
}

func (d Display) IsObject() bool     { return d.isObject }
func (d Display) Text() string       { return d.text }
func (d Display) Object() DataObject { return d.object }

func (d Display) Clone() Display {
	return Display{text: d.text, object: d.object.Clone(), isObject: d.isObject}
}

// Equal compares text and object deeply.
func (d Display) Equal(other Display) bool {
	if d.isObject != other.isObject {
		return false
	}
	if d.isObject {
		return d.object.Equal(other.object)
	}
	return d.text == other.text
}

func (d Display) String() string {
	if d.isObject {
		return d.object.String()
	}
	return d.text
}

// CloneDisplays returns a deep copy of values.
func CloneDisplays(values []Display) []Display {
	c := make([]Display, len(values))
	for i, v := range values {
		c[i] = v.Clone()
	}
	return c
}

// Texts implements ToDisplayData for a list of strings.
// It is typically used as title of a table.
type Texts []string

func (t Texts) ToDisplayData() []Display {
	values := make([]Display, len(t))
	for i, s := range t {
		values[i] = TextDisplay(s)
	}
	return values
}
