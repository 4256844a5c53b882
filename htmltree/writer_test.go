package htmltree

import (
	"context"
	"html/template"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	retree "github.com/domonda/go-retree"
)

func exampleTable() *retree.Table[string] {
	location := retree.DataObject{
		{Key: "Key", Title: "Key", Values: []string{"r1"}},
		{Key: "Name", Title: "Name", Values: []string{"Lab"}},
	}
	hidden := retree.NewRow(retree.ValueCell("yeet"), retree.ValueCell[string](), retree.NewCell[string]())
	hidden.Hide()
	return retree.NewTable(
		retree.ValueTitleRow("Name", "Location", "Delete"),
		retree.NewRow(
			retree.ValueCell("seggs & co"),
			retree.NewCell(retree.TableData(location.Table())),
			retree.NewCell(retree.ControlData[string](retree.NewButton(nil, "Delete"))),
		),
		hidden,
	)
}

func ExampleWriter() {
	NewWriter[string]().
		WithHeaderRow(true).
		WithTableClass("aliases").
		Write(context.Background(), os.Stdout, exampleTable(), "Officials")

	// Output:
	// <table class='aliases'>
	//   <caption>Officials</caption>
	//   <tr><th>Name</th><th>Location</th><th>Delete</th></tr>
	//   <tr><td>seggs &amp; co</td><td><table><tr><th>Key</th><th>Name</th></tr><tr><td>r1</td><td>Lab</td></tr></table></td><td><button disabled>Delete</button></td></tr>
	// </table>
}

func TestWriter(t *testing.T) {
	tests := []struct {
		name   string
		writer *Writer[string]
		want   string
	}{
		{
			name:   "hidden rows",
			writer: NewWriter[string]().WithSkipHidden(false).WithEmptyValue("-"),
			want: "<table>\n" +
				"  <tr><td>seggs &amp; co</td><td><table><tr><th>Key</th><th>Name</th></tr><tr><td>r1</td><td>Lab</td></tr></table></td><td><button disabled>Delete</button></td></tr>\n" +
				"  <tr hidden><td>yeet</td><td>-</td><td>-</td></tr>\n" +
				"</table>",
		},
		{
			name: "column formatter and control renderer",
			writer: NewWriter[string]().
				WithNestedTableClass("location").
				WithColumnFormatter(0, CodeFormatter[string]()).
				WithControlRenderer(func(c retree.Control) template.HTML {
					return template.HTML("<a>" + c.Label() + "</a>")
				}),
			want: "<table>\n" +
				"  <tr><td><code>seggs &amp; co</code></td><td><table class='location'><tr><th>Key</th><th>Name</th></tr><tr><td>r1</td><td>Lab</td></tr></table></td><td><a>Delete</a></td></tr>\n" +
				"</table>",
		},
		{
			name:   "removed column formatter",
			writer: NewWriter[string]().WithColumnFormatter(0, Raw[string]("x")).WithColumnFormatter(0, nil),
			want: "<table>\n" +
				"  <tr><td>seggs &amp; co</td><td><table><tr><th>Key</th><th>Name</th></tr><tr><td>r1</td><td>Lab</td></tr></table></td><td><button disabled>Delete</button></td></tr>\n" +
				"</table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			err := tt.writer.Write(context.Background(), &b, exampleTable())
			require.NoError(t, err)
			require.Equal(t, tt.want, b.String())
		})
	}

	t.Run("immutable", func(t *testing.T) {
		w := NewWriter[string]()
		require.Equal(t, "a", w.WithTableClass("a").TableClass())
		require.Empty(t, w.TableClass())
		require.Equal(t, template.HTML("-"), w.WithEmptyValue("-").EmptyValue())
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, NewWriter[string]().Write(ctx, &strings.Builder{}, exampleTable()), context.Canceled)
	})

	t.Run("HTML data is not escaped", func(t *testing.T) {
		table := retree.NewTable(nil, retree.NewRow(retree.NewCell(retree.HTMLData("<b>bold</b>"))))
		var b strings.Builder
		require.NoError(t, NewWriter[string]().Write(context.Background(), &b, table))
		require.Contains(t, b.String(), "<td><b>bold</b></td>")
	})
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name      string
		formatter RawFormatter[string]
		value     string
		want      template.HTML
	}{
		{name: "pre", formatter: PreFormatter[string](), value: "a<b", want: "<pre>a&lt;b</pre>"},
		{name: "anchor", formatter: AnchorFormatter[string](), value: "r1", want: "<a id='r1'>r1</a>"},
		{name: "span", formatter: SpanClassFormatter[string]("name"), value: "seggs", want: "<span class='name'>seggs</span>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.formatter.RawHTML(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	html, err := JSONFormatter[string]("  ").RawHTML(`{"ok":true}`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(html), "<pre>{"), html)
	require.Contains(t, string(html), "  &#34;ok&#34;: true")

	_, err = JSONFormatter[string]("  ").RawHTML("{")
	require.Error(t, err)
}
