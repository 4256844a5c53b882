package csvtree

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	retree "github.com/domonda/go-retree"
)

func testTable() *retree.Table[string] {
	hidden := retree.NewRow(retree.ValueCell("hidden"), retree.ValueCell("x"), retree.ValueCell("y"))
	hidden.Hide()
	return retree.NewTable(
		retree.ValueTitleRow("A", "B", "Blah"),
		retree.NewRow(retree.ValueCell("1"), retree.ValueCell("Hello"), retree.ValueCell[string]()),
		hidden,
		retree.NewRow(retree.ValueCell("123"), retree.ValueCell("world!"), retree.ValueCell("0")),
	)
}

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		writer   *Writer[string]
		table    *retree.Table[string]
		wantDest string
	}{
		{
			name:     "empty table",
			writer:   NewWriter[string]().WithHeaderRow(true),
			table:    retree.NewTable[string](nil),
			wantDest: ``,
		},
		{
			name:   "simple",
			writer: NewWriter[string]().WithHeaderRow(true),
			table:  testTable(),
			wantDest: "" +
				`A;B;Blah` + "\r\n" +
				`1;Hello;` + "\r\n" +
				`123;world!;0` + "\r\n",
		},
		{
			name:   "simple no header",
			writer: NewWriter[string]().WithHeaderRow(true).WithHeaderRow(false),
			table:  testTable(),
			wantDest: "" +
				`1;Hello;` + "\r\n" +
				`123;world!;0` + "\r\n",
		},
		{
			name:   "hidden rows",
			writer: NewWriter[string]().WithSkipHidden(false).WithNewLine("\n"),
			table:  testTable(),
			wantDest: "" +
				`1;Hello;` + "\n" +
				`hidden;x;y` + "\n" +
				`123;world!;0` + "\n",
		},
		{
			name: "padded align left",
			writer: NewWriter[string]().
				WithHeaderRow(true).
				WithDelimiter('|').
				WithPadding(AlignLeft),
			table: testTable(),
			wantDest: "" +
				`A  |B     |Blah` + "\r\n" +
				`1  |Hello |    ` + "\r\n" +
				`123|world!|0   ` + "\r\n",
		},
		{
			name: "padded align center",
			writer: NewWriter[string]().
				WithHeaderRow(true).
				WithDelimiter('|').
				WithPadding(AlignCenter),
			table: testTable(),
			wantDest: "" +
				` A |  B   |Blah` + "\r\n" +
				` 1 |Hello |    ` + "\r\n" +
				`123|world!| 0  ` + "\r\n",
		},
		{
			name: "padded align right",
			writer: NewWriter[string]().
				WithDelimiter('|').
				WithPadding(AlignRight),
			table: testTable(),
			wantDest: "" +
				`  1| Hello| ` + "\r\n" +
				`123|world!|0` + "\r\n",
		},
		{
			name:   "quoting",
			writer: NewWriter[string]().WithDelimiter(',').WithQuoteEmptyFields(true),
			table: retree.NewTable(nil,
				retree.NewRow(retree.ValueCell("a,b"), retree.ValueCell(`say "hi"`), retree.ValueCell("")),
				retree.NewRow(retree.ValueCell("line\r\nbreak"), retree.ValueCell("x"), retree.ValueCell("y")),
			),
			wantDest: "" +
				`"a,b",say ""hi"",""` + "\r\n" +
				"\"line\nbreak\",x,y" + "\r\n",
		},
		{
			name:   "quote all",
			writer: NewWriter[string]().WithQuoteAllFields(true).WithEscapeQuotes(`\"`),
			table:  retree.NewTable(nil, retree.NewRow(retree.ValueCell(`a"b`), retree.ValueCell("c"))),
			wantDest: `"a\"b";"c"` + "\r\n",
		},
		{
			name: "column formatter",
			writer: NewWriter[string]().
				WithHeaderRow(true).
				WithColumnFormatter(1, retree.PrintfFormatter[string]("<%s>")),
			table: testTable(),
			wantDest: "" +
				`A;B;Blah` + "\r\n" +
				`1;<Hello>;` + "\r\n" +
				`123;<world!>;0` + "\r\n",
		},
		{
			name: "nested table and control",
			writer: NewWriter[string]().
				WithFormatter(retree.FormatterFunc[string](func(v string) (string, error) {
					return strings.ToUpper(v), nil
				})),
			table: retree.NewTable(nil, retree.NewRow(
				retree.NewCell(retree.TableData(retree.DataObject{
					{Key: "Key", Title: "Key", Values: []string{"r1"}},
					{Key: "Name", Title: "Name", Values: []string{"Lab"}},
				}.Table())),
				retree.NewCell(retree.ControlData[string](retree.NewButton(nil, "Delete"))),
			)),
			wantDest: `R1 LAB;[Delete]` + "\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := bytes.NewBuffer(nil)
			err := tt.writer.Write(ctx, dest, tt.table)
			require.NoError(t, err)
			require.Equal(t, tt.wantDest, dest.String())
		})
	}
}

func TestWriter_Encoding(t *testing.T) {
	w, err := NewFormatWriter[string](&Format{Encoding: "ISO 8859-1", Separator: ",", Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, ',', w.Delimiter())
	require.Equal(t, "\n", w.NewLine())
	require.NotNil(t, w.Encoder())

	dest := bytes.NewBuffer(nil)
	table := retree.NewTable(nil, retree.NewRow(retree.ValueCell("Grüße"), retree.ValueCell("x")))
	require.NoError(t, w.Write(context.Background(), dest, table))
	require.Equal(t, []byte("Gr\xfc\xdfe,x\n"), dest.Bytes())

	rows, err := ParseWithFormat(dest.Bytes(), &Format{Encoding: "ISO 8859-1", Separator: ",", Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Grüße", "x"}}, rows)

	utf8, err := NewFormatWriter[string](NewFormat(","))
	require.NoError(t, err)
	require.Nil(t, utf8.Encoder())

	_, err = NewFormatWriter[string](&Format{Encoding: "UTF-8", Separator: ",,", Newline: "\n"})
	require.Error(t, err)
}

func TestWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWriter[string]().Write(ctx, bytes.NewBuffer(nil), testTable())
	require.ErrorIs(t, err, context.Canceled)
}
