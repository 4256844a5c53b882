package htmltree

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .RawCells}}<th>{{$cell}}</th>{{end}}</tr>\n" +
		"{{else if .Hidden}}" +
		"  <tr hidden>{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr>{{range $cell := .RawCells}}<td>{{$cell}}</td>{{end}}</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>",
	))

	// NestedTemplate renders a nested table within a cell
	NestedTemplate = template.Must(template.New("nested").Parse("" +
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>" +
		"{{if .Header}}<tr>{{range $cell := .Header}}<th>{{$cell}}</th>{{end}}</tr>{{end}}" +
		"{{range $row := .Rows}}<tr>{{range $cell := $row}}<td>{{$cell}}</td>{{end}}</tr>{{end}}" +
		"</table>",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	Hidden      bool
	RowIndex    int
	RawCells    []template.HTML
}

type NestedTemplateContext struct {
	TableClass string
	Header     []template.HTML
	Rows       [][]template.HTML
}
